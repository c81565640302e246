package services

import (
	"context"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// Summarize computes the club's revenue, expense, balance and pending
	// dues count for a calendar year.
	Summarize(ctx context.Context, year int) (*domain.FinancialSummary, error)
}
