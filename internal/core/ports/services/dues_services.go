package services

import (
	"context"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReconciler keeps the ledger in step with calendar slots.
type LedgerReconciler interface {
	// Reconcile derives the ledger entry for one month purely from the slot
	// state. Calling it again with the same state changes nothing.
	Reconcile(ctx context.Context, playerID, playerName string, monthIndex int, slot domain.CalendarSlot, duesAmount decimal.Decimal) (domain.ReconcileOutcome, error)
}

// DuesReaderSvc defines read operations for dues calendars
type DuesReaderSvc interface {
	// GetDues returns the normalized calendar with its status recomputed for now.
	GetDues(ctx context.Context, playerID string) (*domain.DuesView, error)
}

// DuesWriterSvc defines mutations of dues calendars
type DuesWriterSvc interface {
	// SetSlot updates one month. A ledger failure after the calendar was stored
	// is returned as *apperrors.LedgerSyncError together with a non-nil result.
	SetSlot(ctx context.Context, playerID string, monthIndex int, req dto.SetSlotRequest, userID string) (*domain.SlotUpdateResult, error)
}

// DuesMaintenanceSvc defines the ledger repair operations
type DuesMaintenanceSvc interface {
	// ReconcilePlayer re-derives all twelve ledger entries of one player.
	ReconcilePlayer(ctx context.Context, playerID string, duesAmount *decimal.Decimal) (*domain.ReconcileReport, error)

	// RebuildLedger re-derives the dues ledger entries of every player.
	RebuildLedger(ctx context.Context, duesAmount *decimal.Decimal) (*domain.ReconcileReport, error)
}

// DuesSvcFacade combines all dues-related service interfaces
type DuesSvcFacade interface {
	DuesReaderSvc
	DuesWriterSvc
	DuesMaintenanceSvc
}
