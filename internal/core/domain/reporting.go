package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTotals are the raw sums the ledger store computes for a window.
type LedgerTotals struct {
	Revenue decimal.Decimal
	Expense decimal.Decimal
}

// FinancialSummary is the club-wide position for a calendar year.
type FinancialSummary struct {
	Year             int             `json:"year"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	PendingDuesCount int             `json:"pendingDuesCount"`
}

// YearWindow returns the half-open interval [Jan 1 of year, Jan 1 of year+1).
func YearWindow(year int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(1, 0, 0)
}
