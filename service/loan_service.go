package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kumaravel655/loan-backend/metrics"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// LoanService owns the loan lifecycle: creating a loan materializes its
// schedule, and every installment write is followed by a due sync in the
// same transaction.
type LoanService struct {
	store Store
	sync  *DueSynchronizer
	log   *logrus.Logger
	now   func() time.Time
}

func NewLoanService(store Store, sync *DueSynchronizer, log *logrus.Logger) *LoanService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LoanService{
		store: store,
		sync:  sync,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateLoan persists loan and generates its schedule exactly once. Invalid
// terms are rejected before anything is written.
func (s *LoanService) CreateLoan(ctx context.Context, loan *models.Loan) ([]models.LoanSchedule, error) {
	if loan.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer_id is required", ErrValidation)
	}
	if loan.ScheduleMethod == "" {
		loan.ScheduleMethod = models.ScheduleFlat
	}
	if loan.LoanStatus == "" {
		loan.LoanStatus = models.LoanActive
	}
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = s.now()
	}

	rows, err := GenerateSchedule(TermsOf(loan), loan.ScheduleMethod)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateLoan(ctx, loan); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}
		if err := s.writeSchedule(ctx, tx, loan.ID, rows); err != nil {
			return err
		}
		loan.DueAmount = rows[0].TotalDue
		return tx.UpdateLoanFields(ctx, loan.ID, map[string]any{"due_amount": loan.DueAmount})
	})
	if err != nil {
		return nil, err
	}

	metrics.SchedulesGenerated.WithLabelValues(string(loan.ScheduleMethod)).Inc()
	s.log.WithFields(logrus.Fields{
		"loan_id":      loan.ID,
		"method":       loan.ScheduleMethod,
		"installments": len(rows),
	}).Info("loan created with schedule")
	return rows, nil
}

// PreviewSchedule computes a schedule without persisting anything.
func (s *LoanService) PreviewSchedule(terms LoanTerms, method models.ScheduleMethod) ([]models.LoanSchedule, error) {
	if terms.StartDate.IsZero() {
		terms.StartDate = s.now()
	}
	if method == "" {
		method = models.ScheduleFlat
	}
	return GenerateSchedule(terms, method)
}

// RegenerateSchedule clears a loan's installments (and their dues) and builds
// the schedule again. It refuses once any due has been paid or skipped.
func (s *LoanService) RegenerateSchedule(ctx context.Context, loanID uint) ([]models.LoanSchedule, error) {
	var (
		rows   []models.LoanSchedule
		method models.ScheduleMethod
	)
	err := s.store.Transaction(ctx, func(tx Store) error {
		loan, err := tx.GetLoan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("loan %d: %w", loanID, err)
		}
		method = loan.ScheduleMethod
		dues, err := tx.ListDues(ctx, loanID)
		if err != nil {
			return err
		}
		for _, d := range dues {
			if d.Settled() {
				return fmt.Errorf("%w: due %d of loan %d is already %s", ErrValidation, d.DueNumber, loanID, d.PaymentStatus)
			}
		}

		existing, err := tx.ListInstallments(ctx, loanID)
		if err != nil {
			return err
		}
		sync := s.sync.WithStore(tx)
		for i := range existing {
			if err := tx.DeleteInstallment(ctx, existing[i].ID); err != nil {
				return fmt.Errorf("delete installment %d: %w", existing[i].ID, err)
			}
			if err := sync.SyncDue(ctx, &existing[i], ChangeDeleted); err != nil {
				return err
			}
		}

		rows, err = GenerateSchedule(TermsOf(loan), loan.ScheduleMethod)
		if err != nil {
			return err
		}
		if err := s.writeSchedule(ctx, tx, loanID, rows); err != nil {
			return err
		}
		return tx.UpdateLoanFields(ctx, loanID, map[string]any{"due_amount": rows[0].TotalDue})
	})
	if err != nil {
		return nil, err
	}
	metrics.SchedulesGenerated.WithLabelValues(string(method)).Inc()
	s.log.WithFields(logrus.Fields{"loan_id": loanID, "installments": len(rows)}).Info("schedule regenerated")
	return rows, nil
}

func (s *LoanService) writeSchedule(ctx context.Context, tx Store, loanID uint, rows []models.LoanSchedule) error {
	sync := s.sync.WithStore(tx)
	for i := range rows {
		rows[i].LoanID = loanID
		if err := tx.CreateInstallment(ctx, &rows[i]); err != nil {
			return fmt.Errorf("create installment %d: %w", rows[i].InstallmentNo, err)
		}
		if err := sync.SyncDue(ctx, &rows[i], ChangeCreated); err != nil {
			return err
		}
	}
	metrics.InstallmentsGenerated.Add(float64(len(rows)))
	return nil
}

// InstallmentUpdate carries a manual correction; nil fields are left as is.
type InstallmentUpdate struct {
	DueDate            *time.Time
	PrincipalAmount    *decimal.Decimal
	InterestAmount     *decimal.Decimal
	TotalDue           *decimal.Decimal
	RemainingPrincipal *decimal.Decimal
}

func (u InstallmentUpdate) empty() bool {
	return u.DueDate == nil && u.PrincipalAmount == nil && u.InterestAmount == nil &&
		u.TotalDue == nil && u.RemainingPrincipal == nil
}

func (s *LoanService) UpdateInstallment(ctx context.Context, id uint, u InstallmentUpdate) (*models.LoanSchedule, error) {
	if u.empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	for _, v := range []*decimal.Decimal{u.PrincipalAmount, u.InterestAmount, u.TotalDue, u.RemainingPrincipal} {
		if v != nil && v.IsNegative() {
			return nil, fmt.Errorf("%w: amounts must not be negative", ErrValidation)
		}
	}

	var inst *models.LoanSchedule
	err := s.store.Transaction(ctx, func(tx Store) error {
		var err error
		inst, err = tx.GetInstallment(ctx, id)
		if err != nil {
			return fmt.Errorf("installment %d: %w", id, err)
		}
		if u.DueDate != nil {
			inst.DueDate = dateOf(*u.DueDate)
		}
		if u.PrincipalAmount != nil {
			inst.PrincipalAmount = u.PrincipalAmount.Round(moneyPlaces)
		}
		if u.InterestAmount != nil {
			inst.InterestAmount = u.InterestAmount.Round(moneyPlaces)
		}
		if u.TotalDue != nil {
			inst.TotalDue = u.TotalDue.Round(moneyPlaces)
		}
		if u.RemainingPrincipal != nil {
			inst.RemainingPrincipal = u.RemainingPrincipal.Round(moneyPlaces)
		}
		if err := tx.SaveInstallment(ctx, inst); err != nil {
			return fmt.Errorf("save installment %d: %w", id, err)
		}
		return s.sync.WithStore(tx).SyncDue(ctx, inst, ChangeUpdated)
	})
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *LoanService) DeleteInstallment(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		inst, err := tx.GetInstallment(ctx, id)
		if err != nil {
			return fmt.Errorf("installment %d: %w", id, err)
		}
		if err := tx.DeleteInstallment(ctx, id); err != nil {
			return fmt.Errorf("delete installment %d: %w", id, err)
		}
		return s.sync.WithStore(tx).SyncDue(ctx, inst, ChangeDeleted)
	})
}

type PaymentInput struct {
	DueID   uint
	Amount  decimal.Decimal
	Method  models.PaymentMethod
	AgentID uint
}

// RecordPayment marks a pending due as paid. When no unpaid dues remain the
// loan is closed.
func (s *LoanService) RecordPayment(ctx context.Context, in PaymentInput) (*models.LoanDue, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !in.Method.Valid() {
		return nil, fmt.Errorf("%w: payment_method must be cash, upi or card", ErrValidation)
	}

	var due *models.LoanDue
	err := s.store.Transaction(ctx, func(tx Store) error {
		var err error
		due, err = tx.LockDue(ctx, in.DueID)
		if err != nil {
			return fmt.Errorf("due %d: %w", in.DueID, err)
		}
		if due.Settled() {
			return fmt.Errorf("%w: due %d is already %s", ErrValidation, due.ID, due.PaymentStatus)
		}

		now := s.now()
		method := in.Method
		agent := in.AgentID
		due.PaymentStatus = models.PaymentPaid
		due.PaidAmount = in.Amount.Round(moneyPlaces)
		due.PaymentMethod = &method
		due.CollectedBy = &agent
		due.PaidAt = &now
		if err := tx.SaveDuePayment(ctx, due); err != nil {
			return err
		}
		return s.closeIfSettled(ctx, tx, due.LoanID)
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(string(in.Method)).Inc()
	s.log.WithFields(logrus.Fields{
		"due_id":  due.ID,
		"loan_id": due.LoanID,
		"amount":  due.PaidAmount.StringFixed(moneyPlaces),
		"method":  in.Method,
	}).Info("payment recorded")
	return due, nil
}

func (s *LoanService) SkipDue(ctx context.Context, dueID uint, reason string, agentID uint) (*models.LoanDue, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: skip_reason is required", ErrValidation)
	}

	var due *models.LoanDue
	err := s.store.Transaction(ctx, func(tx Store) error {
		var err error
		due, err = tx.LockDue(ctx, dueID)
		if err != nil {
			return fmt.Errorf("due %d: %w", dueID, err)
		}
		if due.Settled() {
			return fmt.Errorf("%w: due %d is already %s", ErrValidation, due.ID, due.PaymentStatus)
		}
		agent := agentID
		due.PaymentStatus = models.PaymentSkipped
		due.SkipReason = &reason
		due.CollectedBy = &agent
		return tx.SaveDuePayment(ctx, due)
	})
	if err != nil {
		return nil, err
	}
	return due, nil
}

func (s *LoanService) closeIfSettled(ctx context.Context, tx Store, loanID uint) error {
	dues, err := tx.ListDues(ctx, loanID)
	if err != nil {
		return err
	}
	for _, d := range dues {
		if d.PaymentStatus != models.PaymentPaid {
			return nil
		}
	}
	return tx.UpdateLoanFields(ctx, loanID, map[string]any{"loan_status": models.LoanClosed})
}
