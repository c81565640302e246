package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/google/uuid"
)

type playerService struct {
	BaseService
	playerRepo  portsrepo.PlayerRepositoryFacade
	resolver    domain.StatusResolver
	calendar    domain.DuesCalendar
	playerLocks *keyedMutex
}

// PlayerServiceOption is a functional option for configuring the player service
type PlayerServiceOption func(*playerService)

// WithPlayerStatusResolver sets the policy used to recompute statuses on read.
func WithPlayerStatusResolver(resolver domain.StatusResolver) PlayerServiceOption {
	return func(s *playerService) {
		s.resolver = resolver
	}
}

// WithPlayerCalendar sets the calendar used for new and repaired records.
func WithPlayerCalendar(cal domain.DuesCalendar) PlayerServiceOption {
	return func(s *playerService) {
		s.calendar = cal
		if cal.Location != nil {
			s.Location = cal.Location
		}
	}
}

// WithPlayerBase applies shared service options such as the clock.
func WithPlayerBase(opts ...ServiceOption) PlayerServiceOption {
	return func(s *playerService) {
		for _, opt := range opts {
			opt(&s.BaseService)
		}
	}
}

// withPlayerLocks shares the per-player locks of the dues service so a rename
// never interleaves with a slot update.
func withPlayerLocks(locks *keyedMutex) PlayerServiceOption {
	return func(s *playerService) {
		s.playerLocks = locks
	}
}

// NewPlayerService creates a new player service with the provided options
func NewPlayerService(playerRepo portsrepo.PlayerRepositoryFacade, options ...PlayerServiceOption) portssvc.PlayerSvcFacade {
	svc := &playerService{
		playerRepo:  playerRepo,
		resolver:    domain.StrictMonthlyResolver{},
		calendar:    domain.DefaultDuesCalendar(),
		playerLocks: newKeyedMutex(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PlayerSvcFacade = (*playerService)(nil)

func (s *playerService) CreatePlayer(ctx context.Context, req dto.CreatePlayerRequest, creatorUserID string) (*domain.Player, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", apperrors.ErrValidation)
	}
	level := req.Level
	if level == "" {
		level = domain.LevelMember
	}

	now := s.Now()
	playerID := uuid.NewString()
	player := domain.Player{
		PlayerID:    playerID,
		Name:        name,
		Position:    req.Position,
		Level:       level,
		Phone:       req.Phone,
		Email:       req.Email,
		BirthDate:   req.BirthDate,
		Dues:        domain.NewPlayerDuesRecord(playerID, name, now.Year(), s.calendar),
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.playerRepo.SavePlayer(ctx, player); err != nil {
		s.LogError(ctx, err, "Failed to save player", slog.String("name", name))
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	s.LogInfo(ctx, "Player created",
		slog.String("player_id", playerID),
		slog.String("position", string(player.Position)),
		slog.String("created_by", creatorUserID))
	return &player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	player, err := s.playerRepo.FindPlayerByID(ctx, playerID)
	if err != nil {
		return nil, s.wrapFindError(ctx, err, playerID)
	}
	s.prepare(player, s.Now())
	return player, nil
}

// ListPlayers applies the status filter after recomputing each status, since
// the stored value only changes when a slot is written.
func (s *playerService) ListPlayers(ctx context.Context, params dto.ListPlayersParams) ([]domain.Player, error) {
	filter := domain.PlayerFilter{
		Position: domain.PlayerPosition(params.Position),
		Status:   domain.FinancialStatus(params.Status),
		Name:     strings.TrimSpace(params.Name),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
	}

	players, err := s.playerRepo.FindPlayers(ctx, domain.PlayerFilter{Position: filter.Position, Name: filter.Name})
	if err != nil {
		s.LogError(ctx, err, "Failed to list players")
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	now := s.Now()
	out := make([]domain.Player, 0, len(players))
	for i := range players {
		p := players[i]
		s.prepare(&p, now)
		if filter.Status != "" && p.Dues.AggregateStatus != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// UpdatePlayer applies the non-nil fields of req. Renaming rekeys the dues
// entries so reconciliation keeps finding them.
func (s *playerService) UpdatePlayer(ctx context.Context, playerID string, req dto.UpdatePlayerRequest, userID string) (*domain.Player, error) {
	unlock := s.playerLocks.Lock(playerID)
	defer unlock()

	player, err := s.playerRepo.FindPlayerByID(ctx, playerID)
	if err != nil {
		return nil, s.wrapFindError(ctx, err, playerID)
	}
	previousName := player.Name
	if err := applyPlayerChanges(player, req); err != nil {
		return nil, err
	}

	now := s.Now()
	player.Touch(userID, now)
	if err := s.playerRepo.UpdatePlayer(ctx, *player, previousName); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		return nil, s.wrapFindError(ctx, err, playerID)
	}

	renamed := previousName != player.Name
	s.LogInfo(ctx, "Player updated",
		slog.String("player_id", playerID),
		slog.Bool("renamed", renamed),
		slog.String("updated_by", userID))
	s.prepare(player, now)
	return player, nil
}

func applyPlayerChanges(p *domain.Player, req dto.UpdatePlayerRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return fmt.Errorf("%w: player name cannot be empty", apperrors.ErrValidation)
		}
		p.Name = name
	}
	if req.Position != nil {
		if !req.Position.IsValid() {
			return fmt.Errorf("%w: unknown position %q", apperrors.ErrValidation, *req.Position)
		}
		p.Position = *req.Position
	}
	if req.Level != nil {
		if !req.Level.IsValid() {
			return fmt.Errorf("%w: unknown level %q", apperrors.ErrValidation, *req.Level)
		}
		p.Level = *req.Level
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.BirthDate != nil {
		p.BirthDate = req.BirthDate
	}
	return nil
}

func (s *playerService) DeletePlayer(ctx context.Context, playerID string, requestingUserID string) error {
	if err := s.playerRepo.DeletePlayer(ctx, playerID); err != nil {
		return s.wrapFindError(ctx, err, playerID)
	}
	s.LogInfo(ctx, "Player deleted",
		slog.String("player_id", playerID),
		slog.String("deleted_by", requestingUserID))
	return nil
}

func (s *playerService) prepare(p *domain.Player, now time.Time) {
	p.Dues.PlayerID = p.PlayerID
	p.Dues.PlayerName = p.Name
	p.Dues.EnsureNormalized(s.calendar)
	p.Dues.RefreshStatus(now, s.resolver)
}

func (s *playerService) wrapFindError(ctx context.Context, err error, playerID string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrPlayerNotFound
	}
	s.LogError(ctx, err, "Player repository call failed", slog.String("player_id", playerID))
	return fmt.Errorf("player repository: %w", err)
}
