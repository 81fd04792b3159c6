package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	// LineupSize is the number of slots: six court positions plus the libero.
	LineupSize = 7
	// LiberoSlot is the slot reserved for the libero.
	LiberoSlot = 7
)

// Lineup maps slot 1..7 to a player id; an empty string is an empty slot.
// It is an array so that assigning or passing it copies the whole lineup.
type Lineup [LineupSize]string

// Player returns the player in slot, or "" when the slot is empty or out of range.
func (l Lineup) Player(slot int) string {
	if slot < 1 || slot > LineupSize {
		return ""
	}
	return l[slot-1]
}

// SlotsOf lists the slots occupied by playerID in ascending order.
func (l Lineup) SlotsOf(playerID string) []int {
	var slots []int
	if playerID == "" {
		return slots
	}
	for i, id := range l {
		if id == playerID {
			slots = append(slots, i+1)
		}
	}
	return slots
}

// IsEmpty reports whether no slot is assigned.
func (l Lineup) IsEmpty() bool {
	return l == Lineup{}
}

// MarshalJSON writes the lineup as {"1": "id", ..., "7": null}.
func (l Lineup) MarshalJSON() ([]byte, error) {
	out := make(map[string]*string, LineupSize)
	for i, id := range l {
		key := strconv.Itoa(i + 1)
		if id == "" {
			out[key] = nil
			continue
		}
		v := id
		out[key] = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the object form written by MarshalJSON. Missing keys are empty slots.
func (l *Lineup) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var parsed Lineup
	for key, id := range raw {
		slot, err := strconv.Atoi(key)
		if err != nil || slot < 1 || slot > LineupSize {
			return fmt.Errorf("lineup: invalid slot key %q", key)
		}
		if id != nil {
			parsed[slot-1] = *id
		}
	}
	*l = parsed
	return nil
}
