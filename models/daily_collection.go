package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DailyCollection struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CollectionDate time.Time       `gorm:"type:date;not null;uniqueIndex:idx_collection_date_agent" json:"collection_date"`
	AgentID        uint            `gorm:"not null;uniqueIndex:idx_collection_date_agent" json:"agent_id"`
	CashTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cash_total"`
	UPITotal       decimal.Decimal `gorm:"column:upi_total;type:numeric(12,2);not null;default:0" json:"upi_total"`
	CardTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"card_total"`
	TotalAmount    decimal.Decimal `gorm:"-" json:"total_amount"` // derived, see WithTotal
}

func (d *DailyCollection) WithTotal() *DailyCollection {
	d.TotalAmount = d.CashTotal.Add(d.UPITotal).Add(d.CardTotal)
	return d
}
