package scoring

import "github.com/Dosada05/volley-coach/models"

func checkSlot(slot int) error {
	if slot < 1 || slot > models.LineupSize {
		return ErrInvalidSlot
	}
	return nil
}

// AssignSlot puts playerID in slot after clearing any other slot the player holds,
// so the player ends up in exactly one slot. The input lineup is not modified.
// Player ids are not checked against a roster.
func AssignSlot(lineup models.Lineup, slot int, playerID string) (models.Lineup, error) {
	if err := checkSlot(slot); err != nil {
		return lineup, err
	}
	out := lineup
	if playerID != "" {
		for i := range out {
			if out[i] == playerID {
				out[i] = ""
			}
		}
	}
	out[slot-1] = playerID
	return out, nil
}

// ClearSlot empties slot.
func ClearSlot(lineup models.Lineup, slot int) (models.Lineup, error) {
	if err := checkSlot(slot); err != nil {
		return lineup, err
	}
	out := lineup
	out[slot-1] = ""
	return out, nil
}

// CopyLineup returns a copy of source. Applied to a set it replaces the whole lineup,
// empty source slots included.
func CopyLineup(source models.Lineup) models.Lineup {
	return source
}

// SlotRole reports the role a slot stands for: slot 7 is the libero, 1-6 are court positions.
func SlotRole(slot int) models.SlotRole {
	if slot == models.LiberoSlot {
		return models.RoleLibero
	}
	return models.RoleCourtPosition
}
