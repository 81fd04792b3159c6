package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/volley-coach/scoring"
)

func TestHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	juniors := f.team(t, owner, "Lobas Sub-18")
	seniors := f.team(t, owner, "Lobas Mayores")

	won := f.match(t, juniors.ID, "Club Norte")
	f.play(t, won.ID, [2]int{25, 20}, [2]int{25, 20}, [2]int{25, 20})

	away := false
	lost, err := f.matches.StartMatch(ctx, owner, StartMatchInput{TeamID: seniors.ID, Opponent: "Atlético Sur", IsHome: &away})
	if err != nil {
		t.Fatal(err)
	}
	f.play(t, lost.ID, [2]int{20, 25}, [2]int{20, 25}, [2]int{20, 25})

	unplayed := f.match(t, seniors.ID, "Club Norte B")

	all, err := f.history.History(ctx, owner, HistoryQuery{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(all.Entries) != 3 || all.Record.Wins != 1 || all.Record.Losses != 2 {
		t.Fatalf("unexpected history: %d entries, record %+v", len(all.Entries), all.Record)
	}
	if all.Record.Results[unplayed.ID].Won {
		t.Errorf("an unplayed match is not a win")
	}
	for _, e := range all.Entries {
		if e.Match.ID == won.ID && (e.TeamName != "Lobas Sub-18" || !e.Result.Won || e.Result.TeamSetsWon != 3) {
			t.Errorf("won entry: %+v", e)
		}
	}

	tests := []struct {
		name   string
		filter scoring.MatchFilter
		want   int
	}{
		{"by team name", scoring.MatchFilter{Query: "mayores"}, 2},
		{"by opponent", scoring.MatchFilter{Query: "norte"}, 2},
		{"won only", scoring.MatchFilter{Result: scoring.ResultWon}, 1},
		{"lost and away", scoring.MatchFilter{Result: scoring.ResultLost, Venue: scoring.VenueAway}, 1},
		{"home lost", scoring.MatchFilter{Result: scoring.ResultLost, Venue: scoring.VenueHome}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := f.history.History(ctx, owner, HistoryQuery{Filter: tt.filter})
			if err != nil {
				t.Fatal(err)
			}
			if len(view.Entries) != tt.want || view.Record.Matches != tt.want {
				t.Errorf("got %d entries, want %d", len(view.Entries), tt.want)
			}
		})
	}

	record, err := f.history.Record(ctx, owner)
	if err != nil || record.Matches != 3 || record.Wins != 1 {
		t.Errorf("record: %+v %v", record, err)
	}
	again, _ := f.history.Record(ctx, owner)
	if again.Wins != record.Wins || again.Losses != record.Losses {
		t.Errorf("record is not stable across calls")
	}
}

func TestRecordReflectsCorrections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")
	f.play(t, m.ID, [2]int{20, 25}, [2]int{20, 25}, [2]int{20, 25})

	for i := 0; i < 3; i++ {
		if _, err := f.matches.CorrectSetScore(ctx, owner, m.ID, i, 25, 20); err != nil {
			t.Fatal(err)
		}
	}
	record, _ := f.history.Record(ctx, owner)
	if record.Wins != 1 {
		t.Errorf("results are recomputed from scores on read, got %+v", record)
	}
}

func TestPlayerHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.team(t, owner, "Lobas")
	ana, err := f.players.CreatePlayer(ctx, owner, PlayerInput{FirstName: "Ana", Positions: nil})
	if err != nil {
		t.Fatal(err)
	}

	first := f.match(t, team.ID, "Rivales")
	if _, err := f.matches.AssignLineupSlot(ctx, owner, first.ID, 0, 7, ana.ID); err != nil {
		t.Fatal(err)
	}
	f.play(t, first.ID, [2]int{25, 20})
	if _, err := f.matches.AssignLineupSlot(ctx, owner, first.ID, 1, 2, ana.ID); err != nil {
		t.Fatal(err)
	}
	f.match(t, team.ID, "Sin Ana")

	view, err := f.history.PlayerHistory(ctx, owner, ana.ID)
	if err != nil {
		t.Fatalf("player history: %v", err)
	}
	if len(view.Participations) != 1 {
		t.Fatalf("got %d participations, want 1", len(view.Participations))
	}
	p := view.Participations[0]
	if p.TeamName != "Lobas" || len(p.Appearances) != 2 {
		t.Fatalf("participation: %+v", p)
	}
	if p.Appearances[0].Slot != 7 || p.Appearances[0].Role != "libero" || p.Appearances[1].SetNumber != 2 {
		t.Errorf("appearances: %+v", p.Appearances)
	}

	if _, err := f.history.PlayerHistory(ctx, stranger, ana.ID); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("stranger: got %v", err)
	}
}
