package scoring

import (
	"errors"
	"testing"

	"github.com/Dosada05/volley-coach/models"
)

func TestNewSet(t *testing.T) {
	s := NewSet(4)
	if s.ID == "" {
		t.Fatalf("set id should be assigned")
	}
	if s.SetNumber != 4 || s.ScoreTeam != 0 || s.ScoreOpponent != 0 || s.IsCompleted {
		t.Fatalf("unexpected new set %+v", s)
	}
	if !s.Lineup.IsEmpty() {
		t.Fatalf("new set lineup should be empty")
	}
	if NewSet(1).ID == NewSet(1).ID {
		t.Fatalf("set ids should be unique")
	}
}

func TestSetWinner(t *testing.T) {
	tests := []struct {
		name     string
		team     int
		opponent int
		want     models.Side
	}{
		{"team wins", 25, 20, models.SideTeam},
		{"opponent wins", 22, 25, models.SideOpponent},
		{"extended set", 31, 29, models.SideTeam},
		{"manual low score", 1, 0, models.SideTeam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet(1)
			if _, ok := SetWinner(s); ok {
				t.Fatalf("set in progress should have no winner")
			}
			s, err := FinalizeSet(s, tt.team, tt.opponent)
			if err != nil {
				t.Fatalf("FinalizeSet error: %v", err)
			}
			got, ok := SetWinner(s)
			if !ok || got != tt.want {
				t.Fatalf("winner = %q (%v), want %q", got, ok, tt.want)
			}
		})
	}
}

func TestFinalizeSetRejectsTie(t *testing.T) {
	for _, score := range []int{0, 1, 24, 25, 40} {
		s := NewSet(1)
		s.ScoreTeam, s.ScoreOpponent = 3, 2
		got, err := FinalizeSet(s, score, score)
		if !errors.Is(err, ErrTieScore) || !errors.Is(err, ErrValidation) {
			t.Fatalf("%d-%d: err = %v, want ErrTieScore", score, score, err)
		}
		if got != s {
			t.Fatalf("%d-%d: set changed after rejected call: %+v", score, score, got)
		}
	}
}

func TestFinalizeSetRejectsNegative(t *testing.T) {
	if _, err := FinalizeSet(NewSet(1), -1, 25); !errors.Is(err, ErrNegativeScore) {
		t.Fatalf("err = %v, want ErrNegativeScore", err)
	}
}

func TestFinalizeSetKeepsScoresAsEntered(t *testing.T) {
	s, err := FinalizeSet(NewSet(2), 12, 10)
	if err != nil {
		t.Fatalf("FinalizeSet error: %v", err)
	}
	if !s.IsCompleted || s.ScoreTeam != 12 || s.ScoreOpponent != 10 {
		t.Fatalf("unexpected set %+v", s)
	}
}
