package services

import (
	"context"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/dto"
)

// PlayerReaderSvc defines read operations for the roster
type PlayerReaderSvc interface {
	// GetPlayerByID retrieves a player with a normalized dues record.
	GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error)

	// ListPlayers retrieves players ordered by name.
	ListPlayers(ctx context.Context, params dto.ListPlayersParams) ([]domain.Player, error)
}

// PlayerWriterSvc defines write operations for the roster
type PlayerWriterSvc interface {
	// CreatePlayer adds a player with a fresh dues calendar.
	CreatePlayer(ctx context.Context, req dto.CreatePlayerRequest, creatorUserID string) (*domain.Player, error)

	// UpdatePlayer changes the profile of a player. A rename carries over to
	// the player's dues ledger entries.
	UpdatePlayer(ctx context.Context, playerID string, req dto.UpdatePlayerRequest, userID string) (*domain.Player, error)

	// DeletePlayer removes a player and its dues ledger entries.
	DeletePlayer(ctx context.Context, playerID string, requestingUserID string) error
}

// PlayerSvcFacade combines all player-related service interfaces
type PlayerSvcFacade interface {
	PlayerReaderSvc
	PlayerWriterSvc
}
