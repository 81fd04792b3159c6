package models

import "time"

// PlayerPosition is a playing role a player can fill.
type PlayerPosition string

const (
	PositionSetter   PlayerPosition = "ARMADORA"
	PositionOpposite PlayerPosition = "OPUESTA"
	PositionOutside  PlayerPosition = "PUNTA"
	PositionMiddle   PlayerPosition = "CENTRAL"
	PositionLibero   PlayerPosition = "LIBERO"
)

// IsValid reports whether p is one of the known positions.
func (p PlayerPosition) IsValid() bool {
	switch p {
	case PositionSetter, PositionOpposite, PositionOutside, PositionMiddle, PositionLibero:
		return true
	}
	return false
}

type Player struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Number    *string          `json:"number,omitempty"`
	Positions []PlayerPosition `json:"positions"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"created_at"`
}

// PlayerPatch is a partial update of a player; nil fields are left untouched.
type PlayerPatch struct {
	FirstName *string           `json:"first_name,omitempty"`
	LastName  *string           `json:"last_name,omitempty"`
	Number    *string           `json:"number,omitempty"`
	Positions *[]PlayerPosition `json:"positions,omitempty"`
	Active    *bool             `json:"active,omitempty"`
}
