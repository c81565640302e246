package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
)

// PlayerReader defines read operations for roster data
type PlayerReader interface {
	// FindPlayerByID retrieves a player and its stored dues record.
	FindPlayerByID(ctx context.Context, playerID string) (*domain.Player, error)

	// FindPlayers retrieves players matching the position and name filters.
	// The status filter is left to the caller since stored status may be stale.
	FindPlayers(ctx context.Context, filter domain.PlayerFilter) ([]domain.Player, error)

	// ListDuesRecords retrieves the dues record of every player.
	ListDuesRecords(ctx context.Context) ([]domain.PlayerDuesRecord, error)
}

// PlayerWriter defines write operations for roster data
type PlayerWriter interface {
	// SavePlayer persists a new player.
	SavePlayer(ctx context.Context, player domain.Player) error

	// UpdatePlayer stores the profile fields of player. When previousName
	// differs from player.Name the player's dues entries are rekeyed to the
	// new name in the same transaction.
	UpdatePlayer(ctx context.Context, player domain.Player, previousName string) error

	// UpdatePlayerDues replaces the stored dues record of a player.
	UpdatePlayerDues(ctx context.Context, record domain.PlayerDuesRecord, updatedBy string, updatedAt time.Time) error

	// DeletePlayer removes the player together with its dues ledger entries.
	DeletePlayer(ctx context.Context, playerID string) error
}

// PlayerRepositoryFacade combines all player-related repository interfaces
type PlayerRepositoryFacade interface {
	PlayerReader
	PlayerWriter
}
