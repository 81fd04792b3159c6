package scoring

import (
	"sort"
	"strings"

	"github.com/Dosada05/volley-coach/models"
)

// ResultFilter partitions matches by outcome.
type ResultFilter string

const (
	ResultAll  ResultFilter = "ALL"
	ResultWon  ResultFilter = "WON"
	ResultLost ResultFilter = "LOST"
)

// VenueFilter partitions matches by the home/away flag.
type VenueFilter string

const (
	VenueAll  VenueFilter = "ALL"
	VenueHome VenueFilter = "HOME"
	VenueAway VenueFilter = "AWAY"
)

// SortOrder selects how match lists are ordered.
type SortOrder string

const (
	SortNewestFirst SortOrder = "newest"
	SortOldestFirst SortOrder = "oldest"
	SortByMatchDate SortOrder = "date"
)

// MatchFilter combines its criteria with AND. Empty values behave as ALL.
type MatchFilter struct {
	// Query matches the opponent or the team name, case-insensitively.
	Query  string
	Result ResultFilter
	Venue  VenueFilter
}

// ResultOf counts the sets each side won by comparing scores. It is recomputed on every
// call because scores may be corrected after a match is finished.
func ResultOf(match models.Match) models.MatchResult {
	var r models.MatchResult
	for _, s := range match.Sets {
		switch {
		case s.ScoreTeam > s.ScoreOpponent:
			r.TeamSetsWon++
		case s.ScoreOpponent > s.ScoreTeam:
			r.OpponentSetsWon++
		}
	}
	r.Won = r.TeamSetsWon > r.OpponentSetsWon
	return r
}

// WinLossRecord tallies wins and losses; every match that is not a win counts as a loss.
func WinLossRecord(matches []models.Match) models.WinLossRecord {
	record := models.WinLossRecord{
		Matches: len(matches),
		Results: make(map[string]models.MatchResult, len(matches)),
	}
	for _, m := range matches {
		r := ResultOf(m)
		record.Results[m.ID] = r
		if r.Won {
			record.Wins++
		} else {
			record.Losses++
		}
	}
	return record
}

// FilterMatches keeps the matches accepted by f. teamNames maps team id to display name.
func FilterMatches(matches []models.Match, teamNames map[string]string, f MatchFilter) []models.Match {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if query != "" &&
			!strings.Contains(strings.ToLower(m.Opponent), query) &&
			!strings.Contains(strings.ToLower(teamNames[m.TeamID]), query) {
			continue
		}

		won := ResultOf(m).Won
		if (f.Result == ResultWon && !won) || (f.Result == ResultLost && won) {
			continue
		}
		if (f.Venue == VenueHome && !m.IsHome) || (f.Venue == VenueAway && m.IsHome) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ParticipationHistory returns the matches in which playerID held at least one lineup slot,
// with every (set, slot) appearance. Match order is preserved.
func ParticipationHistory(matches []models.Match, playerID string) []models.Participation {
	history := make([]models.Participation, 0)
	if playerID == "" {
		return history
	}
	for _, m := range matches {
		var appearances []models.Appearance
		for _, s := range m.Sets {
			for _, slot := range s.Lineup.SlotsOf(playerID) {
				appearances = append(appearances, models.Appearance{
					SetNumber: s.SetNumber,
					Slot:      slot,
					Role:      SlotRole(slot),
				})
			}
		}
		if len(appearances) == 0 {
			continue
		}
		history = append(history, models.Participation{
			Match:       m,
			Result:      ResultOf(m),
			Appearances: appearances,
		})
	}
	return history
}

// SortMatches returns a sorted copy; the input slice is left untouched.
func SortMatches(matches []models.Match, order SortOrder) []models.Match {
	out := make([]models.Match, len(matches))
	copy(out, matches)

	var less func(i, j int) bool
	switch order {
	case SortOldestFirst:
		less = func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) }
	case SortByMatchDate:
		less = func(i, j int) bool {
			if out[i].Date == out[j].Date {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].Date > out[j].Date
		}
	default:
		less = func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) }
	}
	sort.SliceStable(out, less)
	return out
}

// ParseResultFilter maps a query value to a ResultFilter; unknown values mean ALL.
func ParseResultFilter(v string) ResultFilter {
	switch ResultFilter(strings.ToUpper(strings.TrimSpace(v))) {
	case ResultWon:
		return ResultWon
	case ResultLost:
		return ResultLost
	}
	return ResultAll
}

// ParseVenueFilter maps a query value to a VenueFilter; unknown values mean ALL.
func ParseVenueFilter(v string) VenueFilter {
	switch VenueFilter(strings.ToUpper(strings.TrimSpace(v))) {
	case VenueHome:
		return VenueHome
	case VenueAway:
		return VenueAway
	}
	return VenueAll
}

// ParseSortOrder maps a query value to a SortOrder; unknown values mean newest first.
func ParseSortOrder(v string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(v))) {
	case SortOldestFirst:
		return SortOldestFirst
	case SortByMatchDate:
		return SortByMatchDate
	}
	return SortNewestFirst
}
