package services

import (
	"context"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/dto"
)

// TransactionSvcFacade defines ledger CRUD operations
type TransactionSvcFacade interface {
	// CreateTransaction records a ledger entry.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// ListTransactions lists ledger entries newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// DeleteTransaction removes a ledger entry.
	DeleteTransaction(ctx context.Context, entryID string, requestingUserID string) error
}
