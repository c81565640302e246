package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/models"
)

// ToModelPlayer converts a domain Player to a model Player, encoding the
// dues calendar as JSON.
func ToModelPlayer(d domain.Player) (models.Player, error) {
	payments, err := EncodeSlots(d.Dues.Slots)
	if err != nil {
		return models.Player{}, err
	}
	return models.Player{
		PlayerID:        d.PlayerID,
		Name:            d.Name,
		Position:        string(d.Position),
		Level:           string(d.Level),
		Phone:           d.Phone,
		Email:           d.Email,
		BirthDate:       d.BirthDate,
		DuesYear:        d.Dues.Year,
		Payments:        payments,
		FinancialStatus: string(d.Dues.AggregateStatus),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainPlayer converts a model Player to a domain Player. The calendar is
// decoded as stored; callers normalize it before use.
func ToDomainPlayer(m models.Player) (domain.Player, error) {
	slots, err := DecodeSlots(m.Payments)
	if err != nil {
		return domain.Player{}, fmt.Errorf("player %s: %w", m.PlayerID, err)
	}
	return domain.Player{
		PlayerID:  m.PlayerID,
		Name:      m.Name,
		Position:  domain.PlayerPosition(m.Position),
		Level:     domain.PlayerLevel(m.Level),
		Phone:     m.Phone,
		Email:     m.Email,
		BirthDate: m.BirthDate,
		Dues: domain.PlayerDuesRecord{
			PlayerID:        m.PlayerID,
			PlayerName:      m.Name,
			Year:            m.DuesYear,
			Slots:           slots,
			AggregateStatus: domain.FinancialStatus(m.FinancialStatus),
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}

// EncodeSlots serializes a calendar for the payments column.
func EncodeSlots(slots []domain.CalendarSlot) ([]byte, error) {
	if slots == nil {
		slots = []domain.CalendarSlot{}
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("encode dues calendar: %w", err)
	}
	return b, nil
}

// DecodeSlots parses the payments column. An empty column yields no slots.
func DecodeSlots(raw []byte) ([]domain.CalendarSlot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var slots []domain.CalendarSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, fmt.Errorf("decode dues calendar: %w", err)
	}
	return slots, nil
}
