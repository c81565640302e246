package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	playerRepo    portsrepo.PlayerReader
	calendar      domain.DuesCalendar
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingCalendar sets the calendar used to repair stored dues records.
func WithReportingCalendar(cal domain.DuesCalendar) ReportingServiceOption {
	return func(s *reportingService) {
		s.calendar = cal
		if cal.Location != nil {
			s.Location = cal.Location
		}
	}
}

// WithReportingBase applies shared service options such as the clock.
func WithReportingBase(opts ...ServiceOption) ReportingServiceOption {
	return func(s *reportingService) {
		for _, opt := range opts {
			opt(&s.BaseService)
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, playerRepo portsrepo.PlayerReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		playerRepo:    playerRepo,
		calendar:      domain.DefaultDuesCalendar(),
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Summarize computes revenue, expense and balance for the year from the
// ledger, and the pending dues count from the calendars. The two reads are
// independent and run concurrently.
func (s *reportingService) Summarize(ctx context.Context, year int) (*domain.FinancialSummary, error) {
	if year < 1900 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d is out of range", apperrors.ErrValidation, year)
	}
	from, to := domain.YearWindow(year, s.Location)

	var (
		totals  domain.LedgerTotals
		records []domain.PlayerDuesRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.reportingRepo.GetLedgerTotals(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to retrieve ledger totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.playerRepo.ListDuesRecords(gctx)
		if err != nil {
			return fmt.Errorf("failed to retrieve dues records: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute financial summary", slog.Int("year", year))
		return nil, err
	}

	now := s.Now()
	pending := 0
	for i := range records {
		rec := records[i]
		rec.EnsureNormalized(s.calendar)
		pending += rec.PendingCount(now)
	}

	summary := &domain.FinancialSummary{
		Year:             year,
		TotalRevenue:     totals.Revenue,
		TotalExpense:     totals.Expense,
		Balance:          totals.Revenue.Sub(totals.Expense),
		PendingDuesCount: pending,
	}

	s.LogInfo(ctx, "Financial summary generated",
		slog.Int("year", year),
		slog.String("balance", summary.Balance.String()),
		slog.Int("pending_dues", pending))
	return summary, nil
}
