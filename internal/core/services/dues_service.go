package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/core/ports/notifications"
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/SscSPs/club_finance_app/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// rebuildConcurrency bounds how many players RebuildLedger reconciles at once.
const rebuildConcurrency = 4

// duesService implements the DuesSvcFacade interface
type duesService struct {
	BaseService
	playerRepo  portsrepo.PlayerRepositoryFacade
	reconciler  portssvc.LedgerReconciler
	reporting   portssvc.ReportingService
	publisher   notifications.EventPublisher
	resolver    domain.StatusResolver
	calendar    domain.DuesCalendar
	duesAmount  decimal.Decimal
	playerLocks *keyedMutex
}

// DuesServiceOption is a functional option for configuring the dues service
type DuesServiceOption func(*duesService)

// WithStatusResolver sets the policy that derives the aggregate status.
func WithStatusResolver(resolver domain.StatusResolver) DuesServiceOption {
	return func(s *duesService) {
		s.resolver = resolver
	}
}

// WithDuesCalendar sets the due-date calendar.
func WithDuesCalendar(cal domain.DuesCalendar) DuesServiceOption {
	return func(s *duesService) {
		s.calendar = cal
		if cal.Location != nil {
			s.Location = cal.Location
		}
	}
}

// WithDefaultDuesAmount sets the monthly fee used when a request carries none.
func WithDefaultDuesAmount(amount decimal.Decimal) DuesServiceOption {
	return func(s *duesService) {
		s.duesAmount = amount
	}
}

// WithEventPublisher sets where change notifications go.
func WithEventPublisher(publisher notifications.EventPublisher) DuesServiceOption {
	return func(s *duesService) {
		s.publisher = publisher
	}
}

// WithReportingService enables the summary notification after each change.
func WithReportingService(reporting portssvc.ReportingService) DuesServiceOption {
	return func(s *duesService) {
		s.reporting = reporting
	}
}

func withDuesPlayerLocks(locks *keyedMutex) DuesServiceOption {
	return func(s *duesService) {
		s.playerLocks = locks
	}
}

// WithDuesBase applies shared service options such as the clock.
func WithDuesBase(opts ...ServiceOption) DuesServiceOption {
	return func(s *duesService) {
		for _, opt := range opts {
			opt(&s.BaseService)
		}
	}
}

// NewDuesService creates a new dues service with the provided options
func NewDuesService(playerRepo portsrepo.PlayerRepositoryFacade, reconciler portssvc.LedgerReconciler, options ...DuesServiceOption) portssvc.DuesSvcFacade {
	svc := &duesService{
		playerRepo:  playerRepo,
		reconciler:  reconciler,
		resolver:    domain.StrictMonthlyResolver{},
		calendar:    domain.DefaultDuesCalendar(),
		playerLocks: newKeyedMutex(),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.DuesSvcFacade = (*duesService)(nil)

// GetDues returns the player's calendar with its status recomputed for now.
func (s *duesService) GetDues(ctx context.Context, playerID string) (*domain.DuesView, error) {
	record, err := s.loadRecord(ctx, playerID)
	if err != nil {
		return nil, err
	}
	record.RefreshStatus(s.Now(), s.resolver)
	view := record.View()
	return &view, nil
}

// SetSlot persists the slot change first and reconciles the ledger second. If
// reconciliation fails the change is kept and the result is returned along
// with a *apperrors.LedgerSyncError.
func (s *duesService) SetSlot(ctx context.Context, playerID string, monthIndex int, req dto.SetSlotRequest, userID string) (*domain.SlotUpdateResult, error) {
	if !domain.ValidMonthIndex(monthIndex) {
		return nil, apperrors.ErrInvalidMonth
	}
	change := domain.SlotChange{Paid: req.Paid, Exempt: req.Exempt}
	if err := change.Validate(); err != nil {
		return nil, err
	}
	amount := s.duesAmount
	if req.DuesAmount != nil {
		amount = *req.DuesAmount
	}

	result, syncErr, err := s.applySlot(ctx, playerID, monthIndex, change, amount, userID)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, playerID, monthIndex, result)
	if syncErr != nil {
		return result, syncErr
	}
	return result, nil
}

func (s *duesService) applySlot(ctx context.Context, playerID string, monthIndex int, change domain.SlotChange, amount decimal.Decimal, userID string) (*domain.SlotUpdateResult, *apperrors.LedgerSyncError, error) {
	unlock := s.playerLocks.Lock(playerID)
	defer unlock()

	record, err := s.loadRecord(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}
	// Only a new payment needs an amount; re-marking a paid month keeps the stored one.
	if change.Paid != nil && *change.Paid && !record.Slots[monthIndex].Paid && !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: dues amount must be positive to record a payment", apperrors.ErrValidation)
	}

	now := s.Now()
	if err := record.SetSlot(monthIndex, change, now, s.resolver); err != nil {
		return nil, nil, err
	}
	if err := s.playerRepo.UpdatePlayerDues(ctx, *record, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to persist dues calendar",
			slog.String("player_id", playerID),
			slog.Int("month_index", monthIndex))
		return nil, nil, fmt.Errorf("failed to save dues calendar: %w", err)
	}

	slot := record.Slots[monthIndex]
	metrics.SlotUpdates.WithLabelValues(slotState(slot)).Inc()
	s.LogInfo(ctx, "Dues slot updated",
		slog.String("player_id", playerID),
		slog.Int("month_index", monthIndex),
		slog.Bool("paid", slot.Paid),
		slog.Bool("exempt", slot.Exempt),
		slog.String("status", string(record.AggregateStatus)),
		slog.String("user_id", userID))

	result := &domain.SlotUpdateResult{
		Dues:         record.View(),
		MonthIndex:   monthIndex,
		Slot:         record.View().Slots[monthIndex],
		LedgerSynced: true,
	}

	outcome, err := s.reconciler.Reconcile(ctx, record.PlayerID, record.PlayerName, monthIndex, slot, amount)
	if err != nil {
		result.LedgerSynced = false
		syncErr := asSyncError(err, playerID, monthIndex)
		metrics.LedgerSyncFailures.WithLabelValues(syncErr.Operation).Inc()
		s.LogError(ctx, err, "Ledger reconciliation failed after slot update",
			slog.String("player_id", playerID),
			slog.Int("month_index", monthIndex),
			slog.String("operation", syncErr.Operation))
		return result, syncErr, nil
	}
	result.Outcome = outcome
	return result, nil, nil
}

// ReconcilePlayer re-derives all twelve ledger entries of one player.
func (s *duesService) ReconcilePlayer(ctx context.Context, playerID string, duesAmount *decimal.Decimal) (*domain.ReconcileReport, error) {
	amount := s.duesAmount
	if duesAmount != nil {
		amount = *duesAmount
	}

	unlock := s.playerLocks.Lock(playerID)
	defer unlock()

	record, err := s.loadRecord(ctx, playerID)
	if err != nil {
		return nil, err
	}

	report := &domain.ReconcileReport{Players: 1, Outcomes: make(map[domain.ReconcileOutcome]int)}
	var firstErr error
	for i := range record.Slots {
		outcome, err := s.reconciler.Reconcile(ctx, record.PlayerID, record.PlayerName, i, record.Slots[i], amount)
		if err != nil {
			report.Failures++
			if firstErr == nil {
				firstErr = asSyncError(err, playerID, i)
			}
			s.LogError(ctx, err, "Failed to reconcile month",
				slog.String("player_id", playerID),
				slog.Int("month_index", i))
			continue
		}
		report.Outcomes[outcome]++
	}

	s.LogInfo(ctx, "Player ledger reconciled",
		slog.String("player_id", playerID),
		slog.Int("failures", report.Failures))
	return report, firstErr
}

// RebuildLedger reconciles every player with bounded concurrency. Failures are
// counted in the report; only a failure to list players aborts the run.
func (s *duesService) RebuildLedger(ctx context.Context, duesAmount *decimal.Decimal) (*domain.ReconcileReport, error) {
	players, err := s.playerRepo.FindPlayers(ctx, domain.PlayerFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list players for ledger rebuild")
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	var (
		mu    sync.Mutex
		total = &domain.ReconcileReport{Outcomes: make(map[domain.ReconcileOutcome]int)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rebuildConcurrency)
	for _, p := range players {
		playerID := p.PlayerID
		g.Go(func() error {
			report, err := s.ReconcilePlayer(gctx, playerID, duesAmount)
			mu.Lock()
			defer mu.Unlock()
			if report != nil {
				total.Add(*report)
			} else if err != nil {
				total.Players++
				total.Failures++
			}
			return nil
		})
	}
	_ = g.Wait()

	s.LogInfo(ctx, "Ledger rebuild finished",
		slog.Int("players", total.Players),
		slog.Int("failures", total.Failures))
	return total, nil
}

// loadRecord fetches the player's record and repairs it. A repaired record is
// not written back here; the next mutation persists it.
func (s *duesService) loadRecord(ctx context.Context, playerID string) (*domain.PlayerDuesRecord, error) {
	player, err := s.playerRepo.FindPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrPlayerNotFound
		}
		s.LogError(ctx, err, "Failed to load player", slog.String("player_id", playerID))
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	record := player.Dues
	record.PlayerID = player.PlayerID
	record.PlayerName = player.Name
	if record.EnsureNormalized(s.calendar) {
		s.LogDebug(ctx, "Repaired dues record on read", slog.String("player_id", playerID))
	}
	return &record, nil
}

// notify publishes the slot change and the refreshed yearly totals. Failures
// are logged and counted but never fail the request.
func (s *duesService) notify(ctx context.Context, playerID string, monthIndex int, result *domain.SlotUpdateResult) {
	if s.publisher == nil {
		return
	}
	now := s.Now()

	err := s.publisher.PublishPaymentStatusChanged(ctx, domain.PaymentStatusChanged{
		PlayerID:        playerID,
		MonthIndex:      monthIndex,
		Paid:            result.Slot.Paid,
		Exempt:          result.Slot.Exempt,
		AggregateStatus: result.Dues.AggregateStatus,
		OccurredAt:      now,
	})
	if err != nil {
		metrics.NotificationFailures.WithLabelValues("payment_status").Inc()
		s.LogWarn(ctx, "Failed to publish payment status change",
			slog.String("player_id", playerID),
			slog.String("error", err.Error()))
	}

	if s.reporting == nil {
		return
	}
	summary, err := s.reporting.Summarize(ctx, now.Year())
	if err != nil {
		metrics.NotificationFailures.WithLabelValues("financial_summary").Inc()
		s.LogWarn(ctx, "Failed to compute summary for notification", slog.String("error", err.Error()))
		return
	}
	err = s.publisher.PublishFinancialSummaryChanged(ctx, domain.FinancialSummaryChanged{
		Year:         summary.Year,
		TotalRevenue: summary.TotalRevenue,
		TotalExpense: summary.TotalExpense,
		Balance:      summary.Balance,
		OccurredAt:   now,
	})
	if err != nil {
		metrics.NotificationFailures.WithLabelValues("financial_summary").Inc()
		s.LogWarn(ctx, "Failed to publish financial summary", slog.String("error", err.Error()))
	}
}

func asSyncError(err error, playerID string, monthIndex int) *apperrors.LedgerSyncError {
	var syncErr *apperrors.LedgerSyncError
	if errors.As(err, &syncErr) {
		return syncErr
	}
	return &apperrors.LedgerSyncError{PlayerID: playerID, MonthIndex: monthIndex, Operation: "reconcile", Err: err}
}

func slotState(slot domain.CalendarSlot) string {
	switch {
	case slot.Paid:
		return "paid"
	case slot.Exempt:
		return "exempt"
	default:
		return "open"
	}
}
