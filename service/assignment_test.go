package service

import (
	"context"
	"testing"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInstallment(t *testing.T, store *memStore) models.LoanSchedule {
	t.Helper()
	inst := installment(1, 1, "2024-02-01", "100.00")
	require.NoError(t, store.CreateInstallment(context.Background(), inst))
	return *inst
}

func TestAssignCollector(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	inst := seedInstallment(t, store)
	agent := store.addUser(models.User{Username: "agent", Role: models.RoleCollectionAgent, IsActive: true})

	a := NewAssigner(store, true, quietLogger())
	got, err := a.AssignCollector(ctx, inst.ID, agent.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedToID)
	assert.Equal(t, agent.ID, *got.AssignedToID)

	stored, _ := store.GetInstallment(ctx, inst.ID)
	require.NotNil(t, stored.AssignedToID)
	assert.Equal(t, agent.ID, *stored.AssignedToID)
	assert.True(t, inst.TotalDue.Equal(stored.TotalDue))
	assert.Equal(t, inst.DueDate, stored.DueDate)
}

func TestAssignCollector_RoleCheck(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	inst := seedInstallment(t, store)
	staff := store.addUser(models.User{Username: "staff", Role: models.RoleStaff, IsActive: true})

	_, err := NewAssigner(store, true, nil).AssignCollector(ctx, inst.ID, staff.ID)
	assert.ErrorIs(t, err, ErrValidation)
	stored, _ := store.GetInstallment(ctx, inst.ID)
	assert.Nil(t, stored.AssignedToID)

	// without the role requirement any active user can collect
	_, err = NewAssigner(store, false, nil).AssignCollector(ctx, inst.ID, staff.ID)
	require.NoError(t, err)
	stored, _ = store.GetInstallment(ctx, inst.ID)
	require.NotNil(t, stored.AssignedToID)
	assert.Equal(t, staff.ID, *stored.AssignedToID)
}

func TestAssignCollector_Rejections(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	inst := seedInstallment(t, store)
	inactive := store.addUser(models.User{Username: "gone", Role: models.RoleCollectionAgent})
	a := NewAssigner(store, true, nil)

	_, err := a.AssignCollector(ctx, 999, inactive.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.AssignCollector(ctx, inst.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.AssignCollector(ctx, inst.ID, inactive.ID)
	assert.ErrorIs(t, err, ErrValidation)

	stored, _ := store.GetInstallment(ctx, inst.ID)
	assert.Nil(t, stored.AssignedToID)
}
