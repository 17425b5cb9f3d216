package service

import (
	"context"
	"fmt"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/sirupsen/logrus"
)

// Assigner attaches collection agents to schedule installments.
type Assigner struct {
	store Store
	// RequireAgentRole rejects collectors whose role is not collection_agent.
	RequireAgentRole bool
	log              *logrus.Logger
}

func NewAssigner(store Store, requireAgentRole bool, log *logrus.Logger) *Assigner {
	return &Assigner{store: store, RequireAgentRole: requireAgentRole, log: log}
}

// AssignCollector sets assigned_to on one installment. No other field is
// written and the mirrored due is not re-synchronized.
func (a *Assigner) AssignCollector(ctx context.Context, installmentID, collectorID uint) (*models.LoanSchedule, error) {
	inst, err := a.store.GetInstallment(ctx, installmentID)
	if err != nil {
		return nil, fmt.Errorf("installment %d: %w", installmentID, err)
	}
	user, err := a.store.GetUser(ctx, collectorID)
	if err != nil {
		return nil, fmt.Errorf("collector %d: %w", collectorID, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: collector %d is inactive", ErrValidation, collectorID)
	}
	if a.RequireAgentRole && user.Role != models.RoleCollectionAgent {
		return nil, fmt.Errorf("%w: user %d has role %q, want %q", ErrValidation, collectorID, user.Role, models.RoleCollectionAgent)
	}

	if err := a.store.SetInstallmentAssignee(ctx, inst.ID, &user.ID); err != nil {
		return nil, fmt.Errorf("assign installment %d: %w", inst.ID, err)
	}
	inst.AssignedToID = &user.ID

	if a.log != nil {
		a.log.WithFields(logrus.Fields{
			"installment_id": inst.ID,
			"loan_id":        inst.LoanID,
			"collector_id":   user.ID,
		}).Info("collector assigned")
	}
	return inst, nil
}
