package scoring

import (
	"github.com/Dosada05/volley-coach/models"
	"github.com/google/uuid"
)

// NewSet returns an empty set in progress: 0-0, no lineup.
func NewSet(setNumber int) models.Set {
	return models.Set{
		ID:        uuid.NewString(),
		SetNumber: setNumber,
	}
}

// FinalizeSet stores the final score and marks the set completed. Scores are taken as
// entered; only ties and negative values are rejected. On error the set is returned unchanged.
func FinalizeSet(set models.Set, scoreTeam, scoreOpponent int) (models.Set, error) {
	if err := checkScore(scoreTeam, scoreOpponent); err != nil {
		return set, err
	}
	set.ScoreTeam = scoreTeam
	set.ScoreOpponent = scoreOpponent
	set.IsCompleted = true
	return set, nil
}

// SetWinner returns the side with the higher score. ok is false while the set is in progress.
func SetWinner(set models.Set) (winner models.Side, ok bool) {
	if !set.IsCompleted {
		return "", false
	}
	if set.ScoreTeam > set.ScoreOpponent {
		return models.SideTeam, true
	}
	return models.SideOpponent, true
}

func checkScore(scoreTeam, scoreOpponent int) error {
	if scoreTeam < 0 || scoreOpponent < 0 {
		return ErrNegativeScore
	}
	if scoreTeam == scoreOpponent {
		return ErrTieScore
	}
	return nil
}
