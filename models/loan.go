// models/loan.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RepaymentMode string

const (
	RepaymentDaily   RepaymentMode = "daily"
	RepaymentWeekly  RepaymentMode = "weekly"
	RepaymentMonthly RepaymentMode = "monthly"
)

type ScheduleMethod string

const (
	ScheduleFlat     ScheduleMethod = "flat"
	ScheduleReducing ScheduleMethod = "reducing"
)

type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanClosed    LoanStatus = "closed"
	LoanDefaulted LoanStatus = "defaulted"
)

// Loan terms (principal, count, rate, mode, method) are fixed once the
// schedule has been generated.
type Loan struct {
	ID         uint      `gorm:"primaryKey" json:"loan_id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer,omitempty"`
	LoanTypeID *uint     `gorm:"index" json:"loan_type_id"`
	LoanType   *LoanType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"loan_type,omitempty"`

	PrincipalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"principal_amount"`
	TotalDueCount      int             `gorm:"not null" json:"total_due_count"`
	DueAmount          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"due_amount"` // total of installment 1
	InterestPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"interest_percentage"`
	RepaymentMode      RepaymentMode   `gorm:"size:10;not null" json:"repayment_mode"`
	ScheduleMethod     ScheduleMethod  `gorm:"size:10;not null;default:flat" json:"schedule_method"`
	LoanStatus         LoanStatus      `gorm:"size:10;not null;default:active" json:"loan_status"`
	CreatedBy          uint            `gorm:"not null" json:"created_by"`

	Schedules []LoanSchedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"schedules,omitempty"`
	Dues      []LoanDue      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"dues,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
