package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetLedgerTotals sums non-exempt revenue and all expenses with a
	// transaction date in [from, to).
	GetLedgerTotals(ctx context.Context, from, to time.Time) (domain.LedgerTotals, error)
}
