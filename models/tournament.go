package models

import "time"

// Tournament groups matches played at one event.
type Tournament struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type TournamentPatch struct {
	Name *string `json:"name,omitempty"`
	Date *string `json:"date,omitempty"`
}
