package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryKind separates income from spending.
type EntryKind string

const (
	KindRevenue EntryKind = "REVENUE"
	KindExpense EntryKind = "EXPENSE"
)

// IsValid reports whether the kind is known.
func (k EntryKind) IsValid() bool {
	return k == KindRevenue || k == KindExpense
}

// EntryStatus is the settlement state of a ledger entry.
type EntryStatus string

const (
	EntryPending EntryStatus = "PENDING"
	EntryPaid    EntryStatus = "PAID"
	EntryOverdue EntryStatus = "OVERDUE"
	EntryExempt  EntryStatus = "EXEMPT"
)

const (
	// CategoryDues marks monthly fee entries.
	CategoryDues = "dues"
	// CategoryOther is the fallback category for expenses.
	CategoryOther = "other"
)

var monthNamesPT = [MonthsPerYear]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the Portuguese month name used in ledger descriptions.
func MonthName(monthIndex int) string {
	if !ValidMonthIndex(monthIndex) {
		return ""
	}
	return monthNamesPT[monthIndex]
}

// DuesDescription is the key that ties a calendar slot to its ledger entry.
func DuesDescription(monthIndex int, playerName string) string {
	return fmt.Sprintf("Mensalidade %s - %s", MonthName(monthIndex), playerName)
}

// DuesDescriptions returns the twelve dues keys of a player, January first.
func DuesDescriptions(playerName string) []string {
	out := make([]string, MonthsPerYear)
	for i := range out {
		out[i] = DuesDescription(i, playerName)
	}
	return out
}

// LedgerEntry is a single financial transaction.
type LedgerEntry struct {
	EntryID         string          `json:"entryId"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Kind            EntryKind       `json:"kind"`
	Category        string          `json:"category"`
	TransactionDate time.Time       `json:"transactionDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	PlayerID        *string         `json:"playerId,omitempty"`
	PlayerName      *string         `json:"playerName,omitempty"`
	Exempt          bool            `json:"exempt"`
	Status          EntryStatus     `json:"status"`
	AuditFields
}

// IsDues reports whether the entry is a monthly fee revenue row.
func (e *LedgerEntry) IsDues() bool {
	return e.Kind == KindRevenue && e.Category == CategoryDues
}

// RefreshStatus derives Status for dues entries. Exempt wins, then overdue
// when past due with nothing recorded, then paid when an amount exists.
// Other entries are settled when recorded.
func (e *LedgerEntry) RefreshStatus(now time.Time) {
	if !e.IsDues() {
		if e.Status == "" {
			e.Status = EntryPaid
		}
		return
	}
	switch {
	case e.Exempt:
		e.Status = EntryExempt
	case e.DueDate != nil && now.After(*e.DueDate) && !e.Amount.IsPositive():
		e.Status = EntryOverdue
	case e.Amount.IsPositive():
		e.Status = EntryPaid
	default:
		e.Status = EntryPending
	}
}

// Validate checks the invariants shared by every entry.
func (e *LedgerEntry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	if !e.Kind.IsValid() {
		return fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, e.Kind)
	}
	if e.TransactionDate.IsZero() {
		return fmt.Errorf("%w: transaction date is required", apperrors.ErrValidation)
	}
	if e.Exempt && e.Kind != KindRevenue {
		return fmt.Errorf("%w: only revenue entries can be exempt", apperrors.ErrValidation)
	}
	if e.Exempt && !e.Amount.IsZero() {
		return fmt.Errorf("%w: exempt entries carry no amount", apperrors.ErrValidation)
	}
	return nil
}

// LedgerFilter narrows a ledger listing. Zero values are ignored.
type LedgerFilter struct {
	From     *time.Time
	To       *time.Time
	Kind     EntryKind
	Category string
	PlayerID string
	Limit    int
	// Cursor continues after the entry with this transaction date and creation time.
	CursorDate      *time.Time
	CursorCreatedAt *time.Time
}

// ReconcileOutcome reports what reconciliation did to the ledger.
type ReconcileOutcome string

const (
	OutcomeCreated   ReconcileOutcome = "CREATED"
	OutcomeUpdated   ReconcileOutcome = "UPDATED"
	OutcomeDeleted   ReconcileOutcome = "DELETED"
	OutcomeUnchanged ReconcileOutcome = "UNCHANGED"
)

// SlotUpdateResult is returned after a calendar slot changes. LedgerSynced is
// false when the slot was stored but its ledger entry could not be updated.
type SlotUpdateResult struct {
	Dues         DuesView         `json:"dues"`
	MonthIndex   int              `json:"monthIndex"`
	Slot         CalendarSlot     `json:"slot"`
	Outcome      ReconcileOutcome `json:"outcome,omitempty"`
	LedgerSynced bool             `json:"ledgerSynced"`
}

// ReconcileReport summarizes a full re-derivation of the ledger.
type ReconcileReport struct {
	Players  int                      `json:"players"`
	Outcomes map[ReconcileOutcome]int `json:"outcomes"`
	Failures int                      `json:"failures"`
}

// Add folds another report into r.
func (r *ReconcileReport) Add(other ReconcileReport) {
	if r.Outcomes == nil {
		r.Outcomes = make(map[ReconcileOutcome]int)
	}
	r.Players += other.Players
	r.Failures += other.Failures
	for k, v := range other.Outcomes {
		r.Outcomes[k] += v
	}
}
