package mapping

import (
	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		Description:     d.Description,
		Amount:          d.Amount,
		Kind:            string(d.Kind),
		Category:        d.Category,
		TransactionDate: d.TransactionDate,
		DueDate:         d.DueDate,
		PlayerID:        d.PlayerID,
		PlayerName:      d.PlayerName,
		Exempt:          d.Exempt,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		Description:     m.Description,
		Amount:          m.Amount,
		Kind:            domain.EntryKind(m.Kind),
		Category:        m.Category,
		TransactionDate: m.TransactionDate,
		DueDate:         m.DueDate,
		PlayerID:        m.PlayerID,
		PlayerName:      m.PlayerName,
		Exempt:          m.Exempt,
		Status:          domain.EntryStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
