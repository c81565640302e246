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
	"github.com/SscSPs/club_finance_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// monthLayout is the YYYY-MM form used by the month filter.
const monthLayout = "2006-01"

type transactionService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	playerRepo portsrepo.PlayerReader
}

// NewTransactionService creates the ledger CRUD service.
func NewTransactionService(ledgerRepo portsrepo.LedgerRepositoryFacade, playerRepo portsrepo.PlayerReader, opts ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService: newBaseService(opts),
		ledgerRepo:  ledgerRepo,
		playerRepo:  playerRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	now := s.Now()
	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		Description:     strings.TrimSpace(req.Description),
		Amount:          req.Amount,
		Kind:            req.Kind,
		Category:        strings.TrimSpace(req.Category),
		TransactionDate: now,
		DueDate:         req.DueDate,
		Exempt:          req.Exempt,
		AuditFields:     domain.NewAuditFields(creatorUserID, now),
	}
	if req.TransactionDate != nil {
		entry.TransactionDate = *req.TransactionDate
	}
	if entry.Category == "" {
		entry.Category = domain.CategoryOther
		if entry.Kind == domain.KindRevenue {
			entry.Category = domain.CategoryDues
		}
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if req.PlayerID != nil && *req.PlayerID != "" {
		player, err := s.playerRepo.FindPlayerByID(ctx, *req.PlayerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrPlayerNotFound
			}
			return nil, fmt.Errorf("failed to load player: %w", err)
		}
		pid, name := player.PlayerID, player.Name
		entry.PlayerID, entry.PlayerName = &pid, &name
	}
	entry.RefreshStatus(now)

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry", slog.String("description", entry.Description))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: an entry with this description already exists for the player", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("kind", string(entry.Kind)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := domain.LedgerFilter{
		Kind:     domain.EntryKind(params.Kind),
		Category: params.Category,
		PlayerID: params.PlayerID,
		Limit:    params.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Kind != "" && !filter.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, params.Kind)
	}
	if params.Month != "" {
		from, to, err := s.monthWindow(params.Month)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &from, &to
	}
	if params.NextToken != nil && *params.NextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		filter.CursorDate, filter.CursorCreatedAt = &date, &createdAt
	}

	pageSize := filter.Limit
	filter.Limit = pageSize + 1
	entries, err := s.ledgerRepo.FindEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	resp := &dto.ListTransactionsResponse{Transactions: make([]dto.TransactionResponse, 0, min(len(entries), pageSize))}
	if len(entries) > pageSize {
		last := entries[pageSize-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		resp.NextToken = &token
		entries = entries[:pageSize]
	}
	for i := range entries {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(&entries[i]))
	}
	return resp, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, entryID string, requestingUserID string) error {
	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete ledger entry", slog.String("entry_id", entryID))
		}
		return err
	}
	s.LogInfo(ctx, "Ledger entry deleted",
		slog.String("entry_id", entryID),
		slog.String("deleted_by", requestingUserID))
	return nil
}

func (s *transactionService) monthWindow(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(monthLayout, month, s.location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be YYYY-MM", apperrors.ErrValidation)
	}
	return start, start.AddDate(0, 1, 0), nil
}
