package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/volley-coach/live"
	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/scoring"
)

func TestStartMatch(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	f := newFixture(t, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()
	team := f.team(t, owner, "Lobas")
	foreign := f.team(t, stranger, "Otras")

	m, err := f.matches.StartMatch(ctx, owner, StartMatchInput{TeamID: team.ID, Opponent: "  Rivales  "})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if m.ID == "" || m.Date != "2024-06-01" || !m.IsHome || m.Opponent != "Rivales" {
		t.Errorf("unexpected match %+v", m)
	}
	if len(m.Sets) != 1 || m.Sets[0].SetNumber != 1 || m.Status() != models.MatchStatusInProgress {
		t.Errorf("match should start with one empty set: %+v", m.Sets)
	}

	stored, err := f.matches.GetMatch(ctx, owner, m.ID)
	if err != nil || stored.ID != m.ID {
		t.Fatalf("get: %v", err)
	}

	away := false
	tests := []struct {
		name  string
		input StartMatchInput
		want  error
	}{
		{"missing opponent", StartMatchInput{TeamID: team.ID}, scoring.ErrOpponentRequired},
		{"missing team", StartMatchInput{Opponent: "X"}, scoring.ErrTeamRequired},
		{"bad date", StartMatchInput{TeamID: team.ID, Opponent: "X", Date: "01/06/2024"}, scoring.ErrInvalidDate},
		{"unknown team", StartMatchInput{TeamID: "nope", Opponent: "X"}, ErrTeamNotFound},
		{"foreign team", StartMatchInput{TeamID: foreign.ID, Opponent: "X", IsHome: &away}, ErrTeamNotFound},
		{"unknown tournament", StartMatchInput{TeamID: team.ID, Opponent: "X", TournamentID: &missingTournamentID}, ErrTournamentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.matches.StartMatch(ctx, owner, tt.input); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

var missingTournamentID = "missing-tournament"

func TestRecordSetResultPersistsAndCompletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.team(t, owner, "Lobas")
	m := f.match(t, team.ID, "Rivales")

	after := f.play(t, m.ID, [2]int{25, 20}, [2]int{22, 25}, [2]int{25, 23})
	if after.Completed || len(after.Sets) != 4 {
		t.Fatalf("after three sets: completed=%v sets=%d", after.Completed, len(after.Sets))
	}
	if ev := f.notifier.last(t); ev.Type != live.MatchUpdated || len(ev.Match.Sets) != 4 {
		t.Errorf("expected MATCH_UPDATED with 4 sets, got %s with %d", ev.Type, len(ev.Match.Sets))
	}

	final := f.play(t, m.ID, [2]int{25, 20})
	if !final.Completed || final.Winner == nil || *final.Winner != models.SideTeam || len(final.Sets) != 4 {
		t.Fatalf("match should be won 3-1 over 4 sets: %+v", final)
	}
	if ev := f.notifier.last(t); ev.Type != live.MatchCompleted {
		t.Errorf("expected MATCH_COMPLETED, got %s", ev.Type)
	}

	stored, _ := f.matches.GetMatch(ctx, owner, m.ID)
	if !stored.Completed || len(stored.Sets) != 4 || stored.Opponent != "Rivales" {
		t.Errorf("stored match differs from returned one: %+v", stored)
	}

	if _, err := f.matches.RecordSetResult(ctx, owner, m.ID, 25, 10); !errors.Is(err, scoring.ErrMatchCompleted) {
		t.Errorf("recording after completion: got %v", err)
	}
}

func TestTieIsRejectedWithoutWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")
	events := f.notifier.count()

	_, err := f.matches.RecordSetResult(ctx, owner, m.ID, 24, 24)
	if !errors.Is(err, scoring.ErrTieScore) || !errors.Is(err, scoring.ErrValidation) {
		t.Fatalf("got %v, want tie validation error", err)
	}
	stored, _ := f.matches.GetMatch(ctx, owner, m.ID)
	if len(stored.Sets) != 1 || stored.Sets[0].IsCompleted {
		t.Errorf("tie changed the stored match: %+v", stored.Sets)
	}
	if f.notifier.count() != events {
		t.Errorf("tie published an event")
	}
}

func TestStrictScoring(t *testing.T) {
	f := newFixture(t, WithStrictScoring(true))
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")

	if _, err := f.matches.RecordSetResult(ctx, owner, m.ID, 20, 18); !errors.Is(err, scoring.ErrIrregularScore) {
		t.Errorf("20-18 under strict scoring: got %v", err)
	}
	if _, err := f.matches.RecordSetResult(ctx, owner, m.ID, 27, 25); err != nil {
		t.Errorf("27-25 under strict scoring: %v", err)
	}
	if _, err := f.matches.CorrectSetScore(ctx, owner, m.ID, 0, 25, 24); !errors.Is(err, scoring.ErrIrregularScore) {
		t.Errorf("25-24 correction under strict scoring: got %v", err)
	}

	lenient := newFixture(t)
	m2 := lenient.match(t, lenient.team(t, owner, "Lobas").ID, "Rivales")
	if _, err := lenient.matches.RecordSetResult(ctx, owner, m2.ID, 20, 18); err != nil {
		t.Errorf("default scoring should accept 20-18: %v", err)
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")

	if _, err := f.matches.GetMatch(ctx, stranger, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("get by stranger: got %v", err)
	}
	if _, err := f.matches.RecordSetResult(ctx, stranger, m.ID, 25, 10); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("record by stranger: got %v", err)
	}
	if err := f.matches.DeleteMatch(ctx, stranger, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("delete by stranger: got %v", err)
	}
	list, err := f.matches.ListMatches(ctx, stranger, scoring.SortNewestFirst)
	if err != nil || len(list) != 0 {
		t.Errorf("stranger sees %d matches (%v)", len(list), err)
	}
}

func TestLineupOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")

	steps := []struct {
		slot   int
		player string
	}{{1, "p1"}, {2, "p2"}, {3, "p3"}, {7, "p7"}, {5, "p3"}}
	var cur *models.Match
	for _, st := range steps {
		var err error
		if cur, err = f.matches.AssignLineupSlot(ctx, owner, m.ID, 0, st.slot, st.player); err != nil {
			t.Fatalf("assign %d=%s: %v", st.slot, st.player, err)
		}
	}
	lineup := cur.Sets[0].Lineup
	if lineup.Player(3) != "" || lineup.Player(5) != "p3" || lineup.Player(7) != "p7" {
		t.Errorf("player moved to slot 5 should leave slot 3: %v", lineup)
	}

	if cur, _ = f.matches.ClearLineupSlot(ctx, owner, m.ID, 0, 7); cur.Sets[0].Lineup.Player(7) != "" {
		t.Errorf("slot 7 not cleared")
	}
	if _, err := f.matches.AssignLineupSlot(ctx, owner, m.ID, 0, 8, "p8"); !errors.Is(err, scoring.ErrInvalidSlot) {
		t.Errorf("slot 8: got %v", err)
	}
	if _, err := f.matches.AssignLineupSlot(ctx, owner, m.ID, 3, 1, "p1"); !errors.Is(err, scoring.ErrSetIndexOutOfRange) {
		t.Errorf("set 3: got %v", err)
	}

	// Set 1 is in progress, it cannot be a copy source yet.
	if _, err := f.matches.CopyLineup(ctx, owner, m.ID, 0, 1); !errors.Is(err, scoring.ErrSourceSetNotCompleted) {
		t.Errorf("copy from set in progress: got %v", err)
	}
	f.play(t, m.ID, [2]int{25, 20})
	if _, err := f.matches.AssignLineupSlot(ctx, owner, m.ID, 1, 4, "p9"); err != nil {
		t.Fatal(err)
	}
	copied, err := f.matches.CopyLineup(ctx, owner, m.ID, 0, 1)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if copied.Sets[1].Lineup != copied.Sets[0].Lineup {
		t.Errorf("copy must replace the target lineup: %v vs %v", copied.Sets[1].Lineup, copied.Sets[0].Lineup)
	}
	if _, err := f.matches.CopyLineup(ctx, owner, m.ID, 1, 0); !errors.Is(err, scoring.ErrSourceSetNotCompleted) {
		t.Errorf("copy from set in progress: got %v", err)
	}

	active, err := f.matches.GetActiveSet(ctx, owner, m.ID)
	if err != nil || active.Index != 1 || active.Set.SetNumber != 2 {
		t.Errorf("active set: %+v %v", active, err)
	}
	done, err := f.matches.GetCompletedSets(ctx, owner, m.ID)
	if err != nil || len(done) != 1 || done[0].ScoreTeam != 25 {
		t.Errorf("completed sets: %+v %v", done, err)
	}
}

func TestCompletedMatchIsFrozenExceptCorrections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")
	f.play(t, m.ID, [2]int{20, 25}, [2]int{18, 25}, [2]int{23, 25})

	if _, err := f.matches.AssignLineupSlot(ctx, owner, m.ID, 0, 1, "p1"); !errors.Is(err, scoring.ErrMatchCompleted) {
		t.Errorf("lineup edit after completion: got %v", err)
	}
	if _, err := f.matches.GetActiveSet(ctx, owner, m.ID); !errors.Is(err, scoring.ErrNoActiveSet) {
		t.Errorf("active set of completed match: got %v", err)
	}

	corrected, err := f.matches.CorrectSetScore(ctx, owner, m.ID, 0, 25, 20)
	if err != nil {
		t.Fatalf("correct: %v", err)
	}
	if corrected.Sets[0].ScoreTeam != 25 || *corrected.Winner != models.SideOpponent || !corrected.Completed {
		t.Errorf("correction must keep the recorded outcome: %+v", corrected)
	}
	if _, err := f.matches.CorrectSetScore(ctx, owner, m.ID, 0, 20, 20); !errors.Is(err, scoring.ErrTieScore) {
		t.Errorf("tied correction: got %v", err)
	}
}

func TestCorrectionThatDecidesMatchCompletesIt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")
	f.play(t, m.ID, [2]int{25, 20}, [2]int{25, 20}, [2]int{20, 25})

	corrected, err := f.matches.CorrectSetScore(ctx, owner, m.ID, 2, 25, 20)
	if err != nil {
		t.Fatalf("correct: %v", err)
	}
	if !corrected.Completed || corrected.Winner == nil || *corrected.Winner != models.SideTeam || len(corrected.Sets) != 3 {
		t.Fatalf("correction to 3-0 must complete the match: %+v", corrected)
	}
	if ev := f.notifier.last(t); ev.Type != live.MatchCompleted {
		t.Errorf("event = %s, want %s", ev.Type, live.MatchCompleted)
	}

	stored, err := f.matches.GetMatch(ctx, owner, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.Completed || len(stored.Sets) != 3 {
		t.Errorf("stored match: completed=%v sets=%d", stored.Completed, len(stored.Sets))
	}
	if _, err := f.matches.RecordSetResult(ctx, owner, m.ID, 25, 20); !errors.Is(err, scoring.ErrMatchCompleted) {
		t.Errorf("result after deciding correction: got %v", err)
	}
}

func TestLineupOfFinishedSetCannotChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")
	if _, err := f.matches.AssignLineupSlot(ctx, owner, m.ID, 0, 1, "p1"); err != nil {
		t.Fatal(err)
	}
	f.play(t, m.ID, [2]int{25, 20}, [2]int{20, 25})

	if _, err := f.matches.AssignLineupSlot(ctx, owner, m.ID, 0, 2, "p2"); !errors.Is(err, scoring.ErrSetAlreadyCompleted) {
		t.Errorf("assign in finished set: got %v", err)
	}
	if _, err := f.matches.CopyLineup(ctx, owner, m.ID, 0, 1); !errors.Is(err, scoring.ErrSetAlreadyCompleted) {
		t.Errorf("copy into finished set: got %v", err)
	}
	stored, _ := f.matches.GetMatch(ctx, owner, m.ID)
	if stored.Sets[0].Lineup.Player(1) != "p1" || stored.Sets[0].Lineup.Player(2) != "" {
		t.Errorf("finished set lineup changed: %v", stored.Sets[0].Lineup)
	}
}

func TestUpdateMatchDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")
	f.play(t, m.ID, [2]int{25, 20})
	copa, err := f.tournaments.CreateTournament(ctx, owner, TournamentInput{Name: "Copa", Date: "2024-06-01"})
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := f.tournaments.CreateTournament(ctx, stranger, TournamentInput{Name: "Ajena"})
	if err != nil {
		t.Fatal(err)
	}

	opponent, date, away := "  Halcones ", "2024-07-02", false
	updated, err := f.matches.UpdateMatchDetails(ctx, owner, m.ID, UpdateMatchInput{
		Opponent:     &opponent,
		Date:         &date,
		IsHome:       &away,
		TournamentID: &copa.ID,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Opponent != "Halcones" || updated.Date != date || updated.IsHome || updated.TournamentID == nil || *updated.TournamentID != copa.ID {
		t.Errorf("details not applied: %+v", updated)
	}
	if len(updated.Sets) != 2 || !updated.Sets[0].IsCompleted {
		t.Errorf("sets must be left as they were: %+v", updated.Sets)
	}
	if ev := f.notifier.last(t); ev.Type != live.MatchUpdated || ev.Match.Opponent != "Halcones" {
		t.Errorf("event = %+v", ev)
	}

	blank, badDate := " ", "02/07/2024"
	tests := []struct {
		name    string
		ownerID string
		input   UpdateMatchInput
		wantErr error
	}{
		{"no fields", owner, UpdateMatchInput{}, ErrNoMatchChanges},
		{"blank opponent", owner, UpdateMatchInput{Opponent: &blank}, scoring.ErrOpponentRequired},
		{"bad date", owner, UpdateMatchInput{Date: &badDate}, scoring.ErrInvalidDate},
		{"foreign tournament", owner, UpdateMatchInput{TournamentID: &foreign.ID}, ErrTournamentNotFound},
		{"foreign match", stranger, UpdateMatchInput{Opponent: &opponent}, ErrMatchNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.matches.UpdateMatchDetails(ctx, tt.ownerID, m.ID, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPersistenceFailureIsWrappedAndNothingIsPublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")

	broken := NewMatchService(failingMatchRepository{f.matchRepo}, f.teamRepo, f.tournRepo, f.notifier, testLogger())
	events := f.notifier.count()

	_, err := broken.RecordSetResult(ctx, owner, m.ID, 25, 20)
	if !errors.Is(err, ErrPersistence) || !errors.Is(err, errStoreDown) {
		t.Fatalf("got %v, want wrapped persistence error", err)
	}
	if f.notifier.count() != events {
		t.Errorf("failed write published an event")
	}
	stored, _ := f.matches.GetMatch(ctx, owner, m.ID)
	if stored.Sets[0].IsCompleted {
		t.Errorf("failed write changed the stored match")
	}
}

func TestDeleteMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.match(t, f.team(t, owner, "Lobas").ID, "Rivales")

	if err := f.matches.DeleteMatch(ctx, owner, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ev := f.notifier.last(t); ev.Type != live.MatchDeleted || ev.Match.ID != m.ID {
		t.Errorf("expected MATCH_DELETED for %s, got %+v", m.ID, ev)
	}
	if _, err := f.matches.GetMatch(ctx, owner, m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("get after delete: got %v", err)
	}
}
