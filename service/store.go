package service

import (
	"context"
	"time"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/shopspring/decimal"
)

// MirrorFunc mutates a due record in place. created reports whether the due
// is new. Returning false leaves an existing due unwritten.
type MirrorFunc func(due *models.LoanDue, created bool) bool

// Store is the persistence port of the ledger core. Implementations must
// return errors wrapping ErrNotFound for missing rows.
type Store interface {
	// Transaction runs fn against a Store bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	CreateLoan(ctx context.Context, loan *models.Loan) error
	GetLoan(ctx context.Context, id uint) (*models.Loan, error)
	UpdateLoanFields(ctx context.Context, id uint, fields map[string]any) error

	CreateInstallment(ctx context.Context, inst *models.LoanSchedule) error
	GetInstallment(ctx context.Context, id uint) (*models.LoanSchedule, error)
	ListInstallments(ctx context.Context, loanID uint) ([]models.LoanSchedule, error)
	// SaveInstallment writes the schedule fields of inst, never assigned_to.
	SaveInstallment(ctx context.Context, inst *models.LoanSchedule) error
	DeleteInstallment(ctx context.Context, id uint) error
	SetInstallmentAssignee(ctx context.Context, id uint, userID *uint) error

	// MirrorDue atomically creates or updates the due keyed by
	// (loanID, dueNumber). Updates only persist due_date and due_amount.
	MirrorDue(ctx context.Context, loanID uint, dueNumber int, fn MirrorFunc) (*models.LoanDue, error)
	// DeleteDue removes the due keyed by (loanID, dueNumber), if any.
	DeleteDue(ctx context.Context, loanID uint, dueNumber int) error
	// LockDue loads a due by id for update within the current transaction.
	LockDue(ctx context.Context, id uint) (*models.LoanDue, error)
	SaveDuePayment(ctx context.Context, due *models.LoanDue) error
	ListDues(ctx context.Context, loanID uint) ([]models.LoanDue, error)
	PendingDuesOn(ctx context.Context, day time.Time) ([]DueReminder, error)

	GetUser(ctx context.Context, id uint) (*models.User, error)
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// DueReminder is a pending due joined with who to remind about it.
type DueReminder struct {
	DueID         uint
	LoanID        uint
	DueNumber     int
	DueDate       time.Time
	DueAmount     decimal.Decimal
	CustomerName  string
	CustomerEmail string
	AssignedToID  *uint
}
