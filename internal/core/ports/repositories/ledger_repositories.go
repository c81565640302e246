package repositories

import (
	"context"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindDuesEntry retrieves the revenue entry keyed by player and description.
	// Returns apperrors.ErrNotFound when no such entry exists.
	FindDuesEntry(ctx context.Context, playerID, description string) (*domain.LedgerEntry, error)

	// FindEntryByID retrieves a single entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntries lists entries newest first.
	FindEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries
type LedgerWriter interface {
	// SaveEntry inserts a new entry. Returns apperrors.ErrDuplicate when a
	// dues entry with the same key already exists.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntry overwrites the mutable fields of an existing entry.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteEntry removes an entry. Returns apperrors.ErrNotFound when absent.
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
