package dto

import (
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancialSummaryResponse represents the yearly club position.
type FinancialSummaryResponse struct {
	Year             int             `json:"year"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	PendingDuesCount int             `json:"pendingDuesCount"`
}

// ToFinancialSummaryResponse converts a domain.FinancialSummary
func ToFinancialSummaryResponse(s *domain.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		Year:             s.Year,
		TotalRevenue:     s.TotalRevenue,
		TotalExpense:     s.TotalExpense,
		Balance:          s.Balance,
		PendingDuesCount: s.PendingDuesCount,
	}
}
