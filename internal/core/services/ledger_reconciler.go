package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reconcilerActor is recorded as the author of ledger rows the reconciler writes.
const reconcilerActor = "dues-reconciler"

type ledgerReconciler struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerReconciler creates the reconciler that projects calendar slots onto the ledger.
func NewLedgerReconciler(ledgerRepo portsrepo.LedgerRepositoryFacade, opts ...ServiceOption) portssvc.LedgerReconciler {
	return &ledgerReconciler{
		BaseService: newBaseService(opts),
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LedgerReconciler = (*ledgerReconciler)(nil)

// Reconcile makes the ledger match slot. A paid slot owns a revenue entry with
// the dues amount, an exempt slot owns a zero-amount exempt entry, and an open
// slot owns nothing.
func (r *ledgerReconciler) Reconcile(ctx context.Context, playerID, playerName string, monthIndex int, slot domain.CalendarSlot, duesAmount decimal.Decimal) (domain.ReconcileOutcome, error) {
	if !domain.ValidMonthIndex(monthIndex) {
		return "", apperrors.ErrInvalidMonth
	}
	description := domain.DuesDescription(monthIndex, playerName)

	existing, err := r.findEntry(ctx, playerID, description)
	if err != nil {
		return "", r.syncError(playerID, monthIndex, "lookup", err)
	}

	var outcome domain.ReconcileOutcome
	switch {
	case slot.Paid:
		outcome, err = r.ensureEntry(ctx, existing, playerID, playerName, monthIndex, slot, duesAmount, false)
	case slot.Exempt:
		outcome, err = r.ensureEntry(ctx, existing, playerID, playerName, monthIndex, slot, decimal.Zero, true)
	default:
		outcome, err = r.removeEntry(ctx, existing)
	}
	if err != nil {
		var syncErr *apperrors.LedgerSyncError
		if errors.As(err, &syncErr) {
			syncErr.PlayerID, syncErr.MonthIndex = playerID, monthIndex
			return "", syncErr
		}
		return "", err
	}

	metrics.LedgerReconciliations.WithLabelValues(string(outcome)).Inc()
	r.LogDebug(ctx, "Ledger reconciled",
		slog.String("player_id", playerID),
		slog.Int("month_index", monthIndex),
		slog.String("outcome", string(outcome)))
	return outcome, nil
}

func (r *ledgerReconciler) findEntry(ctx context.Context, playerID, description string) (*domain.LedgerEntry, error) {
	entry, err := r.ledgerRepo.FindDuesEntry(ctx, playerID, description)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return entry, err
}

func (r *ledgerReconciler) ensureEntry(ctx context.Context, existing *domain.LedgerEntry, playerID, playerName string, monthIndex int, slot domain.CalendarSlot, amount decimal.Decimal, exempt bool) (domain.ReconcileOutcome, error) {
	now := r.Now()

	if existing == nil {
		if !exempt && !amount.IsPositive() {
			return "", fmt.Errorf("%w: dues amount must be positive to record a payment", apperrors.ErrValidation)
		}
		entry := r.newDuesEntry(playerID, playerName, monthIndex, slot, amount, exempt, now)
		err := r.ledgerRepo.SaveEntry(ctx, entry)
		if err == nil {
			return domain.OutcomeCreated, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return "", &apperrors.LedgerSyncError{Operation: "create", Err: err}
		}
		// Another writer created it between lookup and insert; fall through to update it.
		existing, err = r.findEntry(ctx, playerID, entry.Description)
		if err != nil || existing == nil {
			if err == nil {
				err = apperrors.ErrNotFound
			}
			return "", &apperrors.LedgerSyncError{Operation: "lookup", Err: err}
		}
	}

	updated := *existing
	updated.Exempt = exempt
	if exempt {
		updated.Amount = decimal.Zero
	} else if !updated.Amount.IsPositive() {
		if !amount.IsPositive() {
			return "", fmt.Errorf("%w: dues amount must be positive to record a payment", apperrors.ErrValidation)
		}
		updated.Amount = amount
	}
	if updated.DueDate == nil && !slot.DueDate.IsZero() {
		due := slot.DueDate
		updated.DueDate = &due
	}
	updated.RefreshStatus(now)

	if entriesEqual(*existing, updated) {
		return domain.OutcomeUnchanged, nil
	}
	updated.Touch(reconcilerActor, now)
	if err := r.ledgerRepo.UpdateEntry(ctx, updated); err != nil {
		return "", &apperrors.LedgerSyncError{Operation: "update", Err: err}
	}
	return domain.OutcomeUpdated, nil
}

func (r *ledgerReconciler) removeEntry(ctx context.Context, existing *domain.LedgerEntry) (domain.ReconcileOutcome, error) {
	if existing == nil {
		return domain.OutcomeUnchanged, nil
	}
	err := r.ledgerRepo.DeleteEntry(ctx, existing.EntryID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.OutcomeUnchanged, nil
	}
	if err != nil {
		return "", &apperrors.LedgerSyncError{Operation: "delete", Err: err}
	}
	return domain.OutcomeDeleted, nil
}

func (r *ledgerReconciler) newDuesEntry(playerID, playerName string, monthIndex int, slot domain.CalendarSlot, amount decimal.Decimal, exempt bool, now time.Time) domain.LedgerEntry {
	txDate := now
	if slot.PaymentDate != nil {
		txDate = *slot.PaymentDate
	}
	pid, pname := playerID, playerName
	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		Description:     domain.DuesDescription(monthIndex, playerName),
		Amount:          amount,
		Kind:            domain.KindRevenue,
		Category:        domain.CategoryDues,
		TransactionDate: txDate,
		PlayerID:        &pid,
		PlayerName:      &pname,
		Exempt:          exempt,
		AuditFields:     domain.NewAuditFields(reconcilerActor, now),
	}
	if !slot.DueDate.IsZero() {
		due := slot.DueDate
		entry.DueDate = &due
	}
	entry.RefreshStatus(now)
	return entry
}

func (r *ledgerReconciler) syncError(playerID string, monthIndex int, op string, err error) error {
	return &apperrors.LedgerSyncError{PlayerID: playerID, MonthIndex: monthIndex, Operation: op, Err: err}
}

// entriesEqual compares the fields reconciliation may change.
func entriesEqual(a, b domain.LedgerEntry) bool {
	sameDue := (a.DueDate == nil && b.DueDate == nil) ||
		(a.DueDate != nil && b.DueDate != nil && a.DueDate.Equal(*b.DueDate))
	return a.Amount.Equal(b.Amount) && a.Exempt == b.Exempt && a.Status == b.Status && sameDue
}
