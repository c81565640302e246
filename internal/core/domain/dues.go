package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
)

// MonthsPerYear is the fixed size of a dues calendar.
const MonthsPerYear = 12

// DefaultDueDay is the day of the month a monthly fee falls due.
const DefaultDueDay = 20

// FinancialStatus is the aggregate dues standing of a player.
type FinancialStatus string

const (
	StatusCompliant  FinancialStatus = "COMPLIANT"
	StatusDelinquent FinancialStatus = "DELINQUENT"
)

// IsValid reports whether the status is one of the known values.
func (s FinancialStatus) IsValid() bool {
	return s == StatusCompliant || s == StatusDelinquent
}

// CalendarSlot is the dues obligation for one month.
// Paid and Exempt are mutually exclusive and PaymentDate is set only while Paid.
type CalendarSlot struct {
	Paid        bool       `json:"paid"`
	Exempt      bool       `json:"exempt"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	DueDate     time.Time  `json:"dueDate"`
}

// UnmarshalJSON accepts the structured form plus the older shapes found in
// stored rows: a bare boolean meaning "paid", or an object keyed pago/isento.
func (s *CalendarSlot) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = CalendarSlot{}
		return nil
	}

	var flag bool
	if err := json.Unmarshal(trimmed, &flag); err == nil {
		*s = CalendarSlot{Paid: flag}
		return nil
	}

	var raw struct {
		Paid        *bool      `json:"paid"`
		Exempt      *bool      `json:"exempt"`
		PaymentDate *time.Time `json:"paymentDate"`
		DueDate     *time.Time `json:"dueDate"`
		Pago        *bool      `json:"pago"`
		Isento      *bool      `json:"isento"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("decode calendar slot: %w", err)
	}

	*s = CalendarSlot{PaymentDate: raw.PaymentDate}
	switch {
	case raw.Paid != nil:
		s.Paid = *raw.Paid
	case raw.Pago != nil:
		s.Paid = *raw.Pago
	}
	switch {
	case raw.Exempt != nil:
		s.Exempt = *raw.Exempt
	case raw.Isento != nil:
		s.Exempt = *raw.Isento
	}
	if raw.DueDate != nil {
		s.DueDate = *raw.DueDate
	}
	return nil
}

// DuesCalendar describes where due dates fall.
type DuesCalendar struct {
	DueDay   int
	Location *time.Location
}

// DefaultDuesCalendar returns the 20th-of-the-month calendar in UTC.
func DefaultDuesCalendar() DuesCalendar {
	return DuesCalendar{DueDay: DefaultDueDay, Location: time.UTC}
}

func (c DuesCalendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// DueDate returns midnight of the due day for the given month. Days past the
// end of a short month are clamped to its last day.
func (c DuesCalendar) DueDate(year, monthIndex int) time.Time {
	day := c.DueDay
	if day <= 0 {
		day = DefaultDueDay
	}
	lastDay := time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, c.location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, c.location())
}

// DefaultSlot returns an unpaid, non-exempt slot for the month.
func (c DuesCalendar) DefaultSlot(year, monthIndex int) CalendarSlot {
	return CalendarSlot{DueDate: c.DueDate(year, monthIndex)}
}

// ValidMonthIndex reports whether idx addresses a calendar slot.
func ValidMonthIndex(idx int) bool {
	return idx >= 0 && idx < MonthsPerYear
}

// PlayerDuesRecord is the 12-month dues calendar of one player.
type PlayerDuesRecord struct {
	PlayerID        string          `json:"playerId"`
	PlayerName      string          `json:"playerName"`
	Year            int             `json:"year"`
	Slots           []CalendarSlot  `json:"slots"`
	AggregateStatus FinancialStatus `json:"aggregateStatus"`
}

// NewPlayerDuesRecord builds a fresh record with twelve default slots.
func NewPlayerDuesRecord(playerID, playerName string, year int, cal DuesCalendar) PlayerDuesRecord {
	rec := PlayerDuesRecord{
		PlayerID:        playerID,
		PlayerName:      playerName,
		Year:            year,
		AggregateStatus: StatusCompliant,
	}
	rec.EnsureNormalized(cal)
	return rec
}

// EnsureNormalized repairs the record in place so it always has exactly
// twelve well-formed slots. Flags at existing indices are kept. It returns
// true when anything had to be repaired.
func (r *PlayerDuesRecord) EnsureNormalized(cal DuesCalendar) bool {
	repaired := false
	if r.Year == 0 {
		r.Year = time.Now().In(cal.location()).Year()
		repaired = true
	}

	if len(r.Slots) != MonthsPerYear {
		slots := make([]CalendarSlot, MonthsPerYear)
		for i := range slots {
			if i < len(r.Slots) {
				slots[i] = r.Slots[i]
			} else {
				slots[i] = cal.DefaultSlot(r.Year, i)
			}
		}
		r.Slots = slots
		repaired = true
	}

	for i := range r.Slots {
		s := &r.Slots[i]
		if s.DueDate.IsZero() {
			s.DueDate = cal.DueDate(r.Year, i)
			repaired = true
		}
		if s.Paid && s.Exempt {
			s.Exempt = false
			repaired = true
		}
		if s.Paid && s.PaymentDate == nil {
			due := s.DueDate
			s.PaymentDate = &due
			repaired = true
		}
		if !s.Paid && s.PaymentDate != nil {
			s.PaymentDate = nil
			repaired = true
		}
	}

	if !r.AggregateStatus.IsValid() {
		r.AggregateStatus = StatusCompliant
		repaired = true
	}
	return repaired
}

// SlotChange is a requested mutation of one slot. Nil fields are left as they are.
type SlotChange struct {
	Paid   *bool
	Exempt *bool
}

// Validate checks the change before any state is touched.
func (c SlotChange) Validate() error {
	if c.Paid == nil && c.Exempt == nil {
		return fmt.Errorf("%w: paid or exempt must be provided", apperrors.ErrValidation)
	}
	if c.Paid != nil && c.Exempt != nil && *c.Paid && *c.Exempt {
		return fmt.Errorf("%w: a month cannot be both paid and exempt", apperrors.ErrValidation)
	}
	return nil
}

// SetSlot applies change to monthIndex and recomputes the aggregate status.
// The record must already be normalized.
func (r *PlayerDuesRecord) SetSlot(monthIndex int, change SlotChange, now time.Time, resolver StatusResolver) error {
	if !ValidMonthIndex(monthIndex) {
		return apperrors.ErrInvalidMonth
	}
	if err := change.Validate(); err != nil {
		return err
	}
	if len(r.Slots) != MonthsPerYear {
		return fmt.Errorf("%w: dues record is not normalized", apperrors.ErrValidation)
	}

	slot := &r.Slots[monthIndex]
	wasPaid := slot.Paid

	if change.Paid != nil {
		slot.Paid = *change.Paid
	}
	if change.Exempt != nil {
		slot.Exempt = *change.Exempt
	}
	if change.Exempt != nil && *change.Exempt {
		slot.Paid = false
	}
	if change.Paid != nil && *change.Paid {
		slot.Exempt = false
	}

	switch {
	case slot.Paid && (!wasPaid || slot.PaymentDate == nil):
		paidAt := now
		slot.PaymentDate = &paidAt
	case !slot.Paid:
		slot.PaymentDate = nil
	}

	r.AggregateStatus = resolver.Resolve(r.Slots, now)
	return nil
}

// Slot returns a copy of the slot at monthIndex.
func (r *PlayerDuesRecord) Slot(monthIndex int) (CalendarSlot, error) {
	if !ValidMonthIndex(monthIndex) || monthIndex >= len(r.Slots) {
		return CalendarSlot{}, apperrors.ErrInvalidMonth
	}
	return r.Slots[monthIndex], nil
}

// RefreshStatus recomputes the aggregate status for ref.
func (r *PlayerDuesRecord) RefreshStatus(ref time.Time, resolver StatusResolver) {
	r.AggregateStatus = resolver.Resolve(r.Slots, ref)
}

// PendingCount counts unpaid, non-exempt months up to the month of ref.
func (r *PlayerDuesRecord) PendingCount(ref time.Time) int {
	current := int(ref.Month()) - 1
	pending := 0
	for i, s := range r.Slots {
		if i > current {
			break
		}
		if !s.Paid && !s.Exempt {
			pending++
		}
	}
	return pending
}

// DuesView is the read-only projection of a dues record.
type DuesView struct {
	PlayerID        string          `json:"playerId"`
	PlayerName      string          `json:"playerName"`
	Year            int             `json:"year"`
	Slots           []CalendarSlot  `json:"slots"`
	AggregateStatus FinancialStatus `json:"aggregateStatus"`
}

// View returns a detached copy of the record.
func (r *PlayerDuesRecord) View() DuesView {
	slots := make([]CalendarSlot, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = s
		if s.PaymentDate != nil {
			paidAt := *s.PaymentDate
			slots[i].PaymentDate = &paidAt
		}
	}
	return DuesView{
		PlayerID:        r.PlayerID,
		PlayerName:      r.PlayerName,
		Year:            r.Year,
		Slots:           slots,
		AggregateStatus: r.AggregateStatus,
	}
}
