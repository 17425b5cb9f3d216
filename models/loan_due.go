// models/loan_due.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentSkipped PaymentStatus = "skipped"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodUPI  PaymentMethod = "upi"
	MethodCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodUPI || m == MethodCard
}

// LoanDue mirrors one LoanSchedule row (due_date, due_amount) and carries its
// own payment tracking state.
type LoanDue struct {
	ID        uint      `gorm:"primaryKey" json:"due_id"`
	LoanID    uint      `gorm:"not null;uniqueIndex:idx_due_loan_number" json:"loan_id"`
	DueNumber int       `gorm:"not null;uniqueIndex:idx_due_loan_number" json:"due_number"`
	DueDate   time.Time `gorm:"type:date;not null;index" json:"due_date"`

	DueAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"due_amount"`
	PaidAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"paid_amount"`

	PaymentMethod *PaymentMethod `gorm:"size:10" json:"payment_method"`
	CollectedBy   *uint          `gorm:"index" json:"collected_by"`
	PaymentStatus PaymentStatus  `gorm:"size:10;not null;default:pending;index" json:"payment_status"`
	SkipReason    *string        `gorm:"type:text" json:"skip_reason"`
	PaidAt        *time.Time     `json:"paid_at"`
}

func (d LoanDue) Settled() bool {
	return d.PaymentStatus == PaymentPaid || d.PaymentStatus == PaymentSkipped
}
