package models

import "time"

// Player is a row of the players table. Payments holds the JSONB calendar,
// which may still contain older slot shapes.
type Player struct {
	PlayerID        string     `db:"player_id"`
	Name            string     `db:"name"`
	Position        string     `db:"position"`
	Level           string     `db:"level"`
	Phone           *string    `db:"phone"`
	Email           *string    `db:"email"`
	BirthDate       *time.Time `db:"birth_date"`
	DuesYear        int        `db:"dues_year"`
	Payments        []byte     `db:"payments"`
	FinancialStatus string     `db:"financial_status"`
	AuditFields
}
