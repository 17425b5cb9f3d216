package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/Kumaravel655/loan-backend/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements service.Store on Postgres through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ service.Store = (*GormStore)(nil)

func (s *GormStore) Transaction(ctx context.Context, fn func(tx service.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// ===== loans =====

func (s *GormStore) CreateLoan(ctx context.Context, loan *models.Loan) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(loan).Error
}

func (s *GormStore) GetLoan(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.WithContext(ctx).First(&loan, id).Error; err != nil {
		return nil, notFound(err, "loan", id)
	}
	return &loan, nil
}

func (s *GormStore) UpdateLoanFields(ctx context.Context, id uint, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&models.Loan{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("loan %d: %w", id, service.ErrNotFound)
	}
	return nil
}

// ===== schedule =====

func (s *GormStore) CreateInstallment(ctx context.Context, inst *models.LoanSchedule) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(inst).Error
}

func (s *GormStore) GetInstallment(ctx context.Context, id uint) (*models.LoanSchedule, error) {
	var inst models.LoanSchedule
	if err := s.db.WithContext(ctx).First(&inst, id).Error; err != nil {
		return nil, notFound(err, "installment", id)
	}
	return &inst, nil
}

func (s *GormStore) ListInstallments(ctx context.Context, loanID uint) ([]models.LoanSchedule, error) {
	var rows []models.LoanSchedule
	err := s.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_no ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) SaveInstallment(ctx context.Context, inst *models.LoanSchedule) error {
	res := s.db.WithContext(ctx).Model(&models.LoanSchedule{}).
		Where("id = ?", inst.ID).
		Updates(map[string]any{
			"due_date":            inst.DueDate,
			"principal_amount":    inst.PrincipalAmount,
			"interest_amount":     inst.InterestAmount,
			"total_due":           inst.TotalDue,
			"remaining_principal": inst.RemainingPrincipal,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("installment %d: %w", inst.ID, service.ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteInstallment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.LoanSchedule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("installment %d: %w", id, service.ErrNotFound)
	}
	return nil
}

func (s *GormStore) SetInstallmentAssignee(ctx context.Context, id uint, userID *uint) error {
	res := s.db.WithContext(ctx).Model(&models.LoanSchedule{}).
		Where("id = ?", id).
		Update("assigned_to_id", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("installment %d: %w", id, service.ErrNotFound)
	}
	return nil
}

// ===== dues =====

func (s *GormStore) MirrorDue(ctx context.Context, loanID uint, dueNumber int, fn service.MirrorFunc) (*models.LoanDue, error) {
	var out models.LoanDue
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var due models.LoanDue
		err := lockDueByKey(tx, loanID, dueNumber, &due)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			due = models.LoanDue{LoanID: loanID, DueNumber: dueNumber}
			fn(&due, true)
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "loan_id"}, {Name: "due_number"}},
				DoNothing: true,
			}).Create(&due)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				out = due
				return nil
			}
			// lost the insert race; update the row the other writer created
			if err := lockDueByKey(tx, loanID, dueNumber, &due); err != nil {
				return err
			}
		case err != nil:
			return err
		}

		if fn(&due, false) {
			if err := tx.Model(&models.LoanDue{}).
				Where("id = ?", due.ID).
				Updates(map[string]any{
					"due_date":   due.DueDate,
					"due_amount": due.DueAmount,
				}).Error; err != nil {
				return err
			}
		}
		out = due
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func lockDueByKey(tx *gorm.DB, loanID uint, dueNumber int, due *models.LoanDue) error {
	return tx.Clauses(clauseUpdateLock()).
		Where("loan_id = ? AND due_number = ?", loanID, dueNumber).
		Take(due).Error
}

func (s *GormStore) DeleteDue(ctx context.Context, loanID uint, dueNumber int) error {
	return s.db.WithContext(ctx).
		Where("loan_id = ? AND due_number = ?", loanID, dueNumber).
		Delete(&models.LoanDue{}).Error
}

func (s *GormStore) LockDue(ctx context.Context, id uint) (*models.LoanDue, error) {
	var due models.LoanDue
	if err := s.db.WithContext(ctx).Clauses(clauseUpdateLock()).First(&due, id).Error; err != nil {
		return nil, notFound(err, "due", id)
	}
	return &due, nil
}

func (s *GormStore) SaveDuePayment(ctx context.Context, due *models.LoanDue) error {
	return s.db.WithContext(ctx).Model(due).
		Select("payment_status", "paid_amount", "payment_method", "collected_by", "skip_reason", "paid_at").
		Updates(due).Error
}

func (s *GormStore) ListDues(ctx context.Context, loanID uint) ([]models.LoanDue, error) {
	var rows []models.LoanDue
	err := s.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("due_number ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) PendingDuesOn(ctx context.Context, day time.Time) ([]service.DueReminder, error) {
	var rows []service.DueReminder
	err := s.db.WithContext(ctx).Raw(`
		SELECT d.id AS due_id, d.loan_id, d.due_number, d.due_date, d.due_amount,
		       c.full_name AS customer_name, COALESCE(c.email, '') AS customer_email,
		       s.assigned_to_id
		FROM loan_dues d
		JOIN loans l ON l.id = d.loan_id
		JOIN customers c ON c.id = l.customer_id
		LEFT JOIN loan_schedule s ON s.loan_id = d.loan_id AND s.installment_no = d.due_number
		WHERE d.payment_status = ? AND d.due_date = ? AND l.loan_status = ?
		ORDER BY d.loan_id, d.due_number`,
		models.PaymentPending, day.Format("2006-01-02"), models.LoanActive).
		Scan(&rows).Error
	return rows, err
}

// ===== users / notifications =====

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

func (s *GormStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}
