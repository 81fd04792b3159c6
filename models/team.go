package models

import "time"

type Team struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	PlayerIDs []string  `json:"player_ids"`
	CreatedAt time.Time `json:"created_at"`

	LogoKey *string `json:"logo_key,omitempty"`
	// LogoURL is resolved from LogoKey on read and never stored.
	LogoURL *string `json:"logo_url,omitempty"`
}

// TeamPatch is a partial update of a team; nil fields are left untouched.
type TeamPatch struct {
	Name      *string   `json:"name,omitempty"`
	PlayerIDs *[]string `json:"player_ids,omitempty"`
	LogoKey   *string   `json:"logo_key,omitempty"`
}
