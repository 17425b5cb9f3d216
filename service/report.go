package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===== DTO =====

type LoanSummaryRow struct {
	LoanID          uint            `json:"loan_id"`
	CustomerID      uint            `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	LoanStatus      string          `json:"loan_status"`
	DuesTotal       int64           `json:"dues_total"`
	DuesPaid        int64           `json:"dues_paid"`
	DuesSkipped     int64           `json:"dues_skipped"`
	AmountDue       decimal.Decimal `json:"amount_due"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	Outstanding     decimal.Decimal `json:"outstanding"` // AmountDue - AmountPaid
}

type methodTotal struct {
	PaymentMethod string
	Total         decimal.Decimal
}

// ===== Service =====

type ReportService interface {
	// Rebuilds the daily_collections row of one agent for one day from the
	// dues that agent collected.
	ComputeDailyCollection(ctx context.Context, day time.Time, agentID uint) (*models.DailyCollection, error)

	// Per-loan repayment progress, optionally for one customer.
	LoanSummary(ctx context.Context, customerID uint) ([]LoanSummaryRow, error)
}

type reportService struct{ db *gorm.DB }

func NewReportService(db *gorm.DB) ReportService { return &reportService{db: db} }

func (s *reportService) ComputeDailyCollection(ctx context.Context, day time.Time, agentID uint) (*models.DailyCollection, error) {
	if agentID == 0 {
		return nil, fmt.Errorf("%w: agent_id is required", ErrValidation)
	}
	day = dateOf(day)
	next := day.AddDate(0, 0, 1)

	var totals []methodTotal
	if err := s.db.WithContext(ctx).
		Table("loan_dues").
		Select(`payment_method, COALESCE(SUM(paid_amount), 0) AS total`).
		Where("payment_status = ? AND collected_by = ?", models.PaymentPaid, agentID).
		Where("paid_at >= ? AND paid_at < ?", day, next).
		Group("payment_method").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	row := models.DailyCollection{
		CollectionDate: day,
		AgentID:        agentID,
		CashTotal:      decimal.Zero,
		UPITotal:       decimal.Zero,
		CardTotal:      decimal.Zero,
	}
	for _, t := range totals {
		switch models.PaymentMethod(t.PaymentMethod) {
		case models.MethodCash:
			row.CashTotal = t.Total
		case models.MethodUPI:
			row.UPITotal = t.Total
		case models.MethodCard:
			row.CardTotal = t.Total
		}
	}

	// one row per (date, agent); recomputation overwrites the totals
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_date"}, {Name: "agent_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cash_total", "upi_total", "card_total"}),
	}).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.WithTotal(), nil
}

func (s *reportService) LoanSummary(ctx context.Context, customerID uint) ([]LoanSummaryRow, error) {
	q := s.db.WithContext(ctx).
		Table("loans").
		Select(`
			loans.id AS loan_id,
			loans.customer_id,
			c.full_name AS customer_name,
			loans.principal_amount,
			loans.loan_status,
			COUNT(d.id) AS dues_total,
			COUNT(d.id) FILTER (WHERE d.payment_status = 'paid') AS dues_paid,
			COUNT(d.id) FILTER (WHERE d.payment_status = 'skipped') AS dues_skipped,
			COALESCE(SUM(d.due_amount), 0) AS amount_due,
			COALESCE(SUM(d.paid_amount), 0) AS amount_paid
		`).
		Joins("INNER JOIN customers c ON c.id = loans.customer_id").
		Joins("LEFT JOIN loan_dues d ON d.loan_id = loans.id").
		Group("loans.id, c.full_name").
		Order("loans.id DESC")

	if customerID != 0 {
		q = q.Where("loans.customer_id = ?", customerID)
	}

	var rows []LoanSummaryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Outstanding = rows[i].AmountDue.Sub(rows[i].AmountPaid)
	}
	return rows, nil
}
