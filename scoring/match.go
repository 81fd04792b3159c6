package scoring

import (
	"strings"
	"time"

	"github.com/Dosada05/volley-coach/models"
)

// SetsToWin is the number of set wins that decides a best-of-five match.
const SetsToWin = 3

// DateLayout is the calendar date format of Match.Date.
const DateLayout = "2006-01-02"

// MatchConfig is the setup a coach finalizes before the first serve.
type MatchConfig struct {
	OwnerID      string
	TeamID       string
	TournamentID *string
	Opponent     string
	Date         string
	IsHome       bool
}

// StartMatch moves a configured match to in-progress with an empty first set.
// Id and creation time are left for the repository to assign.
func StartMatch(cfg MatchConfig, now time.Time) (models.Match, error) {
	owner := strings.TrimSpace(cfg.OwnerID)
	team := strings.TrimSpace(cfg.TeamID)
	opponent := strings.TrimSpace(cfg.Opponent)
	switch {
	case owner == "":
		return models.Match{}, ErrOwnerRequired
	case team == "":
		return models.Match{}, ErrTeamRequired
	case opponent == "":
		return models.Match{}, ErrOpponentRequired
	}

	date := strings.TrimSpace(cfg.Date)
	if date == "" {
		date = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return models.Match{}, ErrInvalidDate
	}

	var tournamentID *string
	if cfg.TournamentID != nil && strings.TrimSpace(*cfg.TournamentID) != "" {
		id := strings.TrimSpace(*cfg.TournamentID)
		tournamentID = &id
	}

	return models.Match{
		UserID:       owner,
		TeamID:       team,
		TournamentID: tournamentID,
		Opponent:     opponent,
		Date:         date,
		IsHome:       cfg.IsHome,
		Sets:         []models.Set{NewSet(1)},
	}, nil
}

// RecordSetResult finalizes the set in progress and decides what comes next: the match is
// completed as soon as one side holds SetsToWin set wins, otherwise the next set is appended.
// The input match is never modified; on error it is returned as is.
func RecordSetResult(match models.Match, scoreTeam, scoreOpponent int) (models.Match, error) {
	if match.Completed {
		return match, ErrMatchCompleted
	}
	if len(match.Sets) == 0 {
		return match, ErrMatchNotStarted
	}
	last := len(match.Sets) - 1
	if match.Sets[last].IsCompleted {
		return match, ErrNoActiveSet
	}

	finalized, err := FinalizeSet(match.Sets[last], scoreTeam, scoreOpponent)
	if err != nil {
		return match, err
	}

	out := match.Clone()
	out.Sets[last] = finalized

	if !decide(&out) {
		out.Sets = append(out.Sets, NewSet(len(out.Sets)+1))
	}
	return out, nil
}

// decide completes m when one side holds SetsToWin set wins and reports whether it did.
func decide(m *models.Match) bool {
	teamWins, opponentWins := Tally(*m)
	switch {
	case teamWins >= SetsToWin:
		complete(m, models.SideTeam)
	case opponentWins >= SetsToWin:
		complete(m, models.SideOpponent)
	default:
		return false
	}
	return true
}

func complete(m *models.Match, winner models.Side) {
	m.Completed = true
	m.Winner = &winner
}

// Tally counts completed sets won by each side.
func Tally(match models.Match) (teamWins, opponentWins int) {
	for _, s := range match.Sets {
		winner, ok := SetWinner(s)
		if !ok {
			continue
		}
		if winner == models.SideTeam {
			teamWins++
		} else {
			opponentWins++
		}
	}
	return teamWins, opponentWins
}

// AssignLineupSlot places playerID in slot of the set at setIndex. Only the set in progress
// takes lineup changes; lineups of finished sets are history.
func AssignLineupSlot(match models.Match, setIndex, slot int, playerID string) (models.Match, error) {
	return updateLineup(match, setIndex, func(l models.Lineup) (models.Lineup, error) {
		return AssignSlot(l, slot, playerID)
	})
}

// ClearLineupSlot empties slot of the set at setIndex.
func ClearLineupSlot(match models.Match, setIndex, slot int) (models.Match, error) {
	return updateLineup(match, setIndex, func(l models.Lineup) (models.Lineup, error) {
		return ClearSlot(l, slot)
	})
}

// CopyLineupFromSet replaces the lineup of the target set with the lineup of the source set.
func CopyLineupFromSet(match models.Match, sourceIndex, targetIndex int) (models.Match, error) {
	if err := checkSetIndex(match, sourceIndex); err != nil {
		return match, err
	}
	source := match.Sets[sourceIndex].Lineup
	return updateLineup(match, targetIndex, func(models.Lineup) (models.Lineup, error) {
		return CopyLineup(source), nil
	})
}

// CopyLineupFromCompletedSet carries the rotation of a finished set over to another set.
func CopyLineupFromCompletedSet(match models.Match, sourceIndex, targetIndex int) (models.Match, error) {
	if err := checkSetIndex(match, sourceIndex); err != nil {
		return match, err
	}
	if sourceIndex == targetIndex {
		return match, ErrSameSet
	}
	if !match.Sets[sourceIndex].IsCompleted {
		return match, ErrSourceSetNotCompleted
	}
	return CopyLineupFromSet(match, sourceIndex, targetIndex)
}

// CorrectSetScore overwrites the score of a completed set. It is a deliberate override and
// is allowed on completed matches, where completed and winner are left as they were recorded.
// On a match in progress a correction that gives one side SetsToWin set wins completes the
// match, and the set that was in progress is dropped.
func CorrectSetScore(match models.Match, setIndex, scoreTeam, scoreOpponent int) (models.Match, error) {
	if err := checkSetIndex(match, setIndex); err != nil {
		return match, err
	}
	if !match.Sets[setIndex].IsCompleted {
		return match, ErrSetNotCompleted
	}
	corrected, err := FinalizeSet(match.Sets[setIndex], scoreTeam, scoreOpponent)
	if err != nil {
		return match, err
	}
	out := match.Clone()
	out.Sets[setIndex] = corrected
	if !match.Completed && decide(&out) {
		if last := len(out.Sets) - 1; !out.Sets[last].IsCompleted {
			out.Sets = out.Sets[:last]
		}
	}
	return out, nil
}

// ActiveSet returns the set in progress and its index.
func ActiveSet(match models.Match) (models.Set, int, bool) {
	if match.Completed || len(match.Sets) == 0 {
		return models.Set{}, -1, false
	}
	last := len(match.Sets) - 1
	if match.Sets[last].IsCompleted {
		return models.Set{}, -1, false
	}
	return match.Sets[last], last, true
}

// CompletedSets returns the finished sets in play order.
func CompletedSets(match models.Match) []models.Set {
	sets := make([]models.Set, 0, len(match.Sets))
	for _, s := range match.Sets {
		if s.IsCompleted {
			sets = append(sets, s)
		}
	}
	return sets
}

func checkSetIndex(match models.Match, setIndex int) error {
	if setIndex < 0 || setIndex >= len(match.Sets) {
		return ErrSetIndexOutOfRange
	}
	return nil
}

func updateLineup(match models.Match, setIndex int, apply func(models.Lineup) (models.Lineup, error)) (models.Match, error) {
	if match.Completed {
		return match, ErrMatchCompleted
	}
	if err := checkSetIndex(match, setIndex); err != nil {
		return match, err
	}
	if match.Sets[setIndex].IsCompleted {
		return match, ErrSetAlreadyCompleted
	}
	lineup, err := apply(match.Sets[setIndex].Lineup)
	if err != nil {
		return match, err
	}
	out := match.Clone()
	out.Sets[setIndex].Lineup = lineup
	return out, nil
}
