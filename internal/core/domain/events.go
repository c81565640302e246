package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatusChanged is emitted after a calendar slot is updated.
type PaymentStatusChanged struct {
	PlayerID        string          `json:"playerId"`
	MonthIndex      int             `json:"monthIndex"`
	Paid            bool            `json:"paid"`
	Exempt          bool            `json:"exempt"`
	AggregateStatus FinancialStatus `json:"aggregateStatus"`
	OccurredAt      time.Time       `json:"occurredAt"`
}

// FinancialSummaryChanged is emitted when club totals may have moved.
type FinancialSummaryChanged struct {
	Year         int             `json:"year"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	OccurredAt   time.Time       `json:"occurredAt"`
}
