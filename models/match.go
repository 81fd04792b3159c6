package models

import "time"

// Side identifies one of the two sides of a match.
type Side string

const (
	SideTeam     Side = "team"
	SideOpponent Side = "opponent"
)

// MatchStatus is derived from the set sequence and the completed flag, it is never stored.
type MatchStatus string

const (
	MatchStatusConfiguring MatchStatus = "configuring"
	MatchStatusInProgress  MatchStatus = "in_progress"
	MatchStatusCompleted   MatchStatus = "completed"
)

// Set is one set of a match. Sets are embedded in the match document and are not
// addressable on their own.
type Set struct {
	ID            string `json:"id"`
	SetNumber     int    `json:"set_number"`
	ScoreTeam     int    `json:"score_team"`
	ScoreOpponent int    `json:"score_opponent"`
	Lineup        Lineup `json:"lineup"`
	IsCompleted   bool   `json:"is_completed"`
}

// Match is the persisted match document: one contest between the coached team and an opponent.
type Match struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TeamID       string    `json:"team_id"`
	TournamentID *string   `json:"tournament_id,omitempty"`
	Opponent     string    `json:"opponent"`
	Date         string    `json:"date"`
	IsHome       bool      `json:"is_home"`
	Sets         []Set     `json:"sets"`
	Winner       *Side     `json:"winner,omitempty"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// Status reports the state machine position of the match.
func (m Match) Status() MatchStatus {
	switch {
	case m.Completed:
		return MatchStatusCompleted
	case len(m.Sets) == 0:
		return MatchStatusConfiguring
	default:
		return MatchStatusInProgress
	}
}

// Clone returns a copy that shares no mutable storage with m.
func (m Match) Clone() Match {
	out := m
	if m.Sets != nil {
		out.Sets = make([]Set, len(m.Sets))
		copy(out.Sets, m.Sets)
	}
	if m.TournamentID != nil {
		id := *m.TournamentID
		out.TournamentID = &id
	}
	if m.Winner != nil {
		w := *m.Winner
		out.Winner = &w
	}
	return out
}

// MatchPatch carries the top-level fields of a partial update. Nil fields are left untouched
// in the stored document.
type MatchPatch struct {
	Opponent     *string `json:"opponent,omitempty"`
	Date         *string `json:"date,omitempty"`
	IsHome       *bool   `json:"is_home,omitempty"`
	TournamentID *string `json:"tournament_id,omitempty"`
	Sets         *[]Set  `json:"sets,omitempty"`
	Winner       *Side   `json:"winner,omitempty"`
	Completed    *bool   `json:"completed,omitempty"`
}
