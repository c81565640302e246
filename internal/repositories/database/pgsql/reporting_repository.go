package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// ledgerTotalsQuery sums revenue and expense in [$1, $2). Exempt rows never
// count as revenue.
const ledgerTotalsQuery = `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'REVENUE' AND NOT exempt THEN amount ELSE 0 END), 0) AS total_revenue,
			COALESCE(SUM(CASE WHEN kind = 'EXPENSE' THEN amount ELSE 0 END), 0) AS total_expense
		FROM ledger_entries
		WHERE transaction_date >= $1 AND transaction_date < $2
	`

// GetLedgerTotals sums non-exempt revenue and expense in [from, to). An
// empty window yields zeros.
func (r *reportingRepository) GetLedgerTotals(ctx context.Context, from, to time.Time) (domain.LedgerTotals, error) {
	var totals domain.LedgerTotals
	if err := r.Pool.QueryRow(ctx, ledgerTotalsQuery, from, to).Scan(&totals.Revenue, &totals.Expense); err != nil {
		return domain.LedgerTotals{}, fmt.Errorf("error querying ledger totals: %w", err)
	}
	return totals, nil
}
