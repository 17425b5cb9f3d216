// models/loan_schedule.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanSchedule is one installment of a loan's repayment schedule.
type LoanSchedule struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LoanID        uint      `gorm:"not null;uniqueIndex:idx_schedule_loan_installment" json:"loan_id"`
	InstallmentNo int       `gorm:"not null;uniqueIndex:idx_schedule_loan_installment" json:"installment_no"`
	DueDate       time.Time `gorm:"type:date;not null" json:"due_date"`

	PrincipalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"principal_amount"`
	InterestAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"interest_amount"`
	TotalDue           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_due"`
	RemainingPrincipal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"remaining_principal"`

	// weak reference, the collector is not owned by the installment
	AssignedToID *uint `gorm:"index" json:"assigned_to"`
	AssignedTo   *User `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (LoanSchedule) TableName() string {
	return "loan_schedule"
}
