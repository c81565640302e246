package dto

import (
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a ledger entry.
type CreateTransactionRequest struct {
	Description     string           `json:"description" binding:"required,max=200"`
	Amount          decimal.Decimal  `json:"amount"`
	Kind            domain.EntryKind `json:"kind" binding:"required,oneof=REVENUE EXPENSE"`
	Category        string           `json:"category" binding:"omitempty,max=60"`
	TransactionDate *time.Time       `json:"transactionDate"` // Optional: defaults to now
	DueDate         *time.Time       `json:"dueDate"`
	PlayerID        *string          `json:"playerId"`
	Exempt          bool             `json:"exempt"`
}

// ListTransactionsParams defines query parameters for listing ledger entries.
type ListTransactionsParams struct {
	Month     string  `form:"month" binding:"omitempty,yearmonth"` // YYYY-MM
	Kind      string  `form:"kind" binding:"omitempty,oneof=REVENUE EXPENSE"`
	Category  string  `form:"category"`
	PlayerID  string  `form:"playerId"`
	Limit     int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	EntryID         string             `json:"entryId"`
	Description     string             `json:"description"`
	Amount          decimal.Decimal    `json:"amount"`
	Kind            domain.EntryKind   `json:"kind"`
	Category        string             `json:"category"`
	TransactionDate time.Time          `json:"transactionDate"`
	DueDate         *time.Time         `json:"dueDate,omitempty"`
	PlayerID        *string            `json:"playerId,omitempty"`
	PlayerName      *string            `json:"playerName,omitempty"`
	Exempt          bool               `json:"exempt"`
	Status          domain.EntryStatus `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.LedgerEntry to TransactionResponse DTO
func ToTransactionResponse(e *domain.LedgerEntry) TransactionResponse {
	return TransactionResponse{
		EntryID:         e.EntryID,
		Description:     e.Description,
		Amount:          e.Amount,
		Kind:            e.Kind,
		Category:        e.Category,
		TransactionDate: e.TransactionDate,
		DueDate:         e.DueDate,
		PlayerID:        e.PlayerID,
		PlayerName:      e.PlayerName,
		Exempt:          e.Exempt,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}
