package service

import (
	"context"
	"fmt"

	"github.com/Kumaravel655/loan-backend/metrics"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ConflictPolicy decides what re-synchronizing an installment does to a due
// that has already been settled (paid or skipped).
type ConflictPolicy string

const (
	// PolicyMirror always copies due_date and due_amount from the installment.
	// Payment tracking fields are left as they are, so a paid due stays paid.
	PolicyMirror ConflictPolicy = "mirror"
	// PolicyFreezeSettled leaves settled dues completely untouched.
	PolicyFreezeSettled ConflictPolicy = "freeze-settled"
)

func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(s); p {
	case "":
		return PolicyMirror, nil
	case PolicyMirror, PolicyFreezeSettled:
		return p, nil
	}
	return "", fmt.Errorf("unknown due sync policy %q", s)
}

// DueSynchronizer keeps the loan_dues ledger in 1:1 correspondence with
// loan_schedule rows. Callers invoke SyncDue after every installment write.
type DueSynchronizer struct {
	store  Store
	policy ConflictPolicy
	log    *logrus.Logger
}

func NewDueSynchronizer(store Store, policy ConflictPolicy, log *logrus.Logger) *DueSynchronizer {
	if policy == "" {
		policy = PolicyMirror
	}
	return &DueSynchronizer{store: store, policy: policy, log: log}
}

// WithStore returns a synchronizer bound to tx, typically a transaction.
func (s *DueSynchronizer) WithStore(tx Store) *DueSynchronizer {
	cp := *s
	cp.store = tx
	return &cp
}

func (s *DueSynchronizer) Policy() ConflictPolicy { return s.policy }

func (s *DueSynchronizer) SyncDue(ctx context.Context, inst *models.LoanSchedule, kind ChangeKind) error {
	if inst == nil || inst.LoanID == 0 || inst.InstallmentNo <= 0 {
		return fmt.Errorf("%w: installment without loan or number", ErrValidation)
	}

	var err error
	switch kind {
	case ChangeCreated, ChangeUpdated:
		err = s.mirror(ctx, inst)
	case ChangeDeleted:
		err = s.store.DeleteDue(ctx, inst.LoanID, inst.InstallmentNo)
	default:
		err = fmt.Errorf("%w: unknown change kind %q", ErrValidation, kind)
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.DueSyncs.WithLabelValues(string(kind), outcome).Inc()
	return err
}

func (s *DueSynchronizer) mirror(ctx context.Context, inst *models.LoanSchedule) error {
	due, err := s.store.MirrorDue(ctx, inst.LoanID, inst.InstallmentNo, func(d *models.LoanDue, created bool) bool {
		if created {
			d.PaymentStatus = models.PaymentPending
			d.PaidAmount = decimal.Zero
			d.DueDate = inst.DueDate
			d.DueAmount = inst.TotalDue
			return true
		}
		if s.policy == PolicyFreezeSettled && d.Settled() {
			return false
		}
		if d.DueDate.Equal(inst.DueDate) && d.DueAmount.Equal(inst.TotalDue) {
			return false
		}
		d.DueDate = inst.DueDate
		d.DueAmount = inst.TotalDue
		return true
	})
	if err != nil {
		return fmt.Errorf("sync due %d/%d: %w", inst.LoanID, inst.InstallmentNo, err)
	}
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"loan_id":    inst.LoanID,
			"due_number": inst.InstallmentNo,
			"status":     due.PaymentStatus,
		}).Debug("due synchronized")
	}
	return nil
}
