package dto

import (
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetSlotRequest updates one month of a player's dues calendar.
// Pointers distinguish "leave as is" from an explicit false.
type SetSlotRequest struct {
	Paid       *bool            `json:"paid"`
	Exempt     *bool            `json:"exempt"`
	DuesAmount *decimal.Decimal `json:"duesAmount"` // Optional: overrides the configured monthly fee
}

// ReconcileRequest re-derives a player's ledger entries from the stored calendar.
type ReconcileRequest struct {
	DuesAmount *decimal.Decimal `json:"duesAmount"`
}

// SlotUpdateResponse is returned after a slot mutation.
type SlotUpdateResponse struct {
	domain.SlotUpdateResult
	Warning string `json:"warning,omitempty"`
}

// ToSlotUpdateResponse converts a domain.SlotUpdateResult, attaching a
// warning when the ledger is out of step with the calendar.
func ToSlotUpdateResponse(res *domain.SlotUpdateResult) SlotUpdateResponse {
	out := SlotUpdateResponse{SlotUpdateResult: *res}
	if !res.LedgerSynced {
		out.Warning = "payment saved but the ledger could not be updated; retry reconciliation"
	}
	return out
}

// ReconcileResponse reports a ledger repair run.
type ReconcileResponse struct {
	domain.ReconcileReport
	Warning string `json:"warning,omitempty"`
}

// ToReconcileResponse converts a domain.ReconcileReport, attaching a warning
// when some months could not be synchronized.
func ToReconcileResponse(report *domain.ReconcileReport) ReconcileResponse {
	out := ReconcileResponse{ReconcileReport: *report}
	if report.Failures > 0 {
		out.Warning = "some ledger entries could not be updated; retry reconciliation"
	}
	return out
}
