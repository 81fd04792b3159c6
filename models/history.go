package models

// MatchResult is the set tally of a match, recomputed from scores on every read.
type MatchResult struct {
	TeamSetsWon     int  `json:"team_sets_won"`
	OpponentSetsWon int  `json:"opponent_sets_won"`
	Won             bool `json:"won"`
}

// WinLossRecord aggregates match results for one owner.
type WinLossRecord struct {
	Matches int                    `json:"matches"`
	Wins    int                    `json:"wins"`
	Losses  int                    `json:"losses"`
	Results map[string]MatchResult `json:"results"`
}

// SlotRole describes what a lineup slot stands for.
type SlotRole string

const (
	RoleCourtPosition SlotRole = "position"
	RoleLibero        SlotRole = "libero"
)

// Appearance is one set in which a player held a lineup slot.
type Appearance struct {
	SetNumber int      `json:"set_number"`
	Slot      int      `json:"slot"`
	Role      SlotRole `json:"role"`
}

// Participation lists the appearances of a player in one match.
type Participation struct {
	Match       Match        `json:"match"`
	Result      MatchResult  `json:"result"`
	Appearances []Appearance `json:"appearances"`
}

// HistoryEntry is a match as shown in the history view.
type HistoryEntry struct {
	Match    Match       `json:"match"`
	TeamName string      `json:"team_name"`
	Result   MatchResult `json:"result"`
}
