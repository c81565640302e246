package dto

import (
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
)

// CreatePlayerRequest defines the data needed to add a player to the roster.
type CreatePlayerRequest struct {
	Name      string                `json:"name" binding:"required,min=2,max=120"`
	Position  domain.PlayerPosition `json:"position" binding:"required,playerposition"`
	Level     domain.PlayerLevel    `json:"level" binding:"omitempty,playerlevel"`
	Phone     *string               `json:"phone" binding:"omitempty,max=30"`
	Email     *string               `json:"email" binding:"omitempty,email"`
	BirthDate *time.Time            `json:"birthDate"`
}

// UpdatePlayerRequest changes the profile of a player. Nil fields are kept.
type UpdatePlayerRequest struct {
	Name      *string                `json:"name" binding:"omitempty,min=2,max=120"`
	Position  *domain.PlayerPosition `json:"position" binding:"omitempty,playerposition"`
	Level     *domain.PlayerLevel    `json:"level" binding:"omitempty,playerlevel"`
	Phone     *string                `json:"phone" binding:"omitempty,max=30"`
	Email     *string                `json:"email" binding:"omitempty,email"`
	BirthDate *time.Time             `json:"birthDate"`
}

// ListPlayersParams defines query parameters for listing players.
type ListPlayersParams struct {
	Position string `form:"position" binding:"omitempty,playerposition"`
	Status   string `form:"status" binding:"omitempty,oneof=COMPLIANT DELINQUENT"`
	Name     string `form:"name"`
}

// PlayerResponse defines the data returned for a player.
type PlayerResponse struct {
	PlayerID        string                 `json:"playerId"`
	Name            string                 `json:"name"`
	Position        domain.PlayerPosition  `json:"position"`
	Level           domain.PlayerLevel     `json:"level"`
	Phone           *string                `json:"phone,omitempty"`
	Email           *string                `json:"email,omitempty"`
	BirthDate       *time.Time             `json:"birthDate,omitempty"`
	FinancialStatus domain.FinancialStatus `json:"financialStatus"`
	Dues            domain.DuesView        `json:"dues"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// ListPlayersResponse wraps the list of players.
type ListPlayersResponse struct {
	Players []PlayerResponse `json:"players"`
}

// ToPlayerResponse converts a domain.Player to PlayerResponse DTO
func ToPlayerResponse(p *domain.Player) PlayerResponse {
	return PlayerResponse{
		PlayerID:        p.PlayerID,
		Name:            p.Name,
		Position:        p.Position,
		Level:           p.Level,
		Phone:           p.Phone,
		Email:           p.Email,
		BirthDate:       p.BirthDate,
		FinancialStatus: p.Dues.AggregateStatus,
		Dues:            p.Dues.View(),
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
		LastUpdatedAt:   p.LastUpdatedAt,
		LastUpdatedBy:   p.LastUpdatedBy,
	}
}

// ToListPlayersResponse converts a slice of domain.Player to ListPlayersResponse DTO
func ToListPlayersResponse(players []domain.Player) ListPlayersResponse {
	resp := ListPlayersResponse{Players: make([]PlayerResponse, len(players))}
	for i := range players {
		resp.Players[i] = ToPlayerResponse(&players[i])
	}
	return resp
}
