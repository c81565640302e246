package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the ledger_entries table.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	Kind            string          `db:"kind"`
	Category        string          `db:"category"`
	TransactionDate time.Time       `db:"transaction_date"`
	DueDate         *time.Time      `db:"due_date"`
	PlayerID        *string         `db:"player_id"`
	PlayerName      *string         `db:"player_name"`
	Exempt          bool            `db:"exempt"`
	Status          string          `db:"status"`
	AuditFields
}
