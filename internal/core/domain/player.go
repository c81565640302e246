package domain

import "time"

// PlayerPosition is the field position a player usually takes.
type PlayerPosition string

const (
	PositionGoalkeeper    PlayerPosition = "Goleiro"
	PositionDefender      PlayerPosition = "Defensor"
	PositionLeftBack      PlayerPosition = "Lateral-Esquerdo"
	PositionRightBack     PlayerPosition = "Lateral-Direito"
	PositionHoldingMid    PlayerPosition = "Volante"
	PositionRightMidfield PlayerPosition = "Meia-Direita"
	PositionLeftMidfield  PlayerPosition = "Meia-Esquerda"
	PositionCentreForward PlayerPosition = "Centroavante"
)

// Positions lists every accepted position.
var Positions = []PlayerPosition{
	PositionGoalkeeper, PositionDefender, PositionLeftBack, PositionRightBack,
	PositionHoldingMid, PositionRightMidfield, PositionLeftMidfield, PositionCentreForward,
}

// IsValid reports whether p is one of Positions.
func (p PlayerPosition) IsValid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// PlayerLevel is the membership tier of a player.
type PlayerLevel string

const (
	LevelMember  PlayerLevel = "Associado"
	LevelGuest   PlayerLevel = "Convidado"
	LevelVisitor PlayerLevel = "Visitante"
)

// Levels lists every accepted membership tier.
var Levels = []PlayerLevel{LevelMember, LevelGuest, LevelVisitor}

// IsValid reports whether l is one of Levels.
func (l PlayerLevel) IsValid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

// Player is a club roster entry together with its dues calendar.
type Player struct {
	PlayerID  string           `json:"playerId"`
	Name      string           `json:"name"`
	Position  PlayerPosition   `json:"position"`
	Level     PlayerLevel      `json:"level"`
	Phone     *string          `json:"phone,omitempty"`
	Email     *string          `json:"email,omitempty"`
	BirthDate *time.Time       `json:"birthDate,omitempty"`
	Dues      PlayerDuesRecord `json:"dues"`
	AuditFields
}

// PlayerFilter narrows a roster listing.
type PlayerFilter struct {
	Position PlayerPosition
	Status   FinancialStatus
	Name     string
}
