package scoring

import "fmt"

const (
	regularSetPoints  = 25
	decidingSetPoints = 15
	decidingSetNumber = 5
	winningMargin     = 2
)

// ValidateRegulationScore checks a final score against indoor volleyball rules: 25 points
// (15 in the fifth set) with a two point margin; a set past the target ends exactly two apart.
// It is stricter than FinalizeSet and only applied when strict scoring is enabled.
func ValidateRegulationScore(setNumber, scoreTeam, scoreOpponent int) error {
	if err := checkScore(scoreTeam, scoreOpponent); err != nil {
		return err
	}
	target := regularSetPoints
	if setNumber == decidingSetNumber {
		target = decidingSetPoints
	}

	high, low := scoreTeam, scoreOpponent
	if low > high {
		high, low = low, high
	}

	switch {
	case high < target:
		return fmt.Errorf("%w: %d-%d, winner needs at least %d points", ErrIrregularScore, scoreTeam, scoreOpponent, target)
	case high == target && high-low < winningMargin:
		return fmt.Errorf("%w: %d-%d, winner needs a %d point margin", ErrIrregularScore, scoreTeam, scoreOpponent, winningMargin)
	case high > target && high-low != winningMargin:
		return fmt.Errorf("%w: %d-%d, an extended set ends %d points apart", ErrIrregularScore, scoreTeam, scoreOpponent, winningMargin)
	}
	return nil
}
