package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/storage"
)

func TestTeamService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.teams.CreateTeam(ctx, owner, TeamInput{Name: "  "}); !errors.Is(err, ErrTeamNameRequired) {
		t.Errorf("blank name: got %v", err)
	}

	team, err := f.teams.CreateTeam(ctx, owner, TeamInput{Name: "Lobas", PlayerIDs: []string{"p1", " p2 ", "p1", ""}})
	if err != nil {
		t.Fatal(err)
	}
	if len(team.PlayerIDs) != 2 || team.PlayerIDs[1] != "p2" {
		t.Errorf("roster not normalized: %v", team.PlayerIDs)
	}
	f.team(t, owner, "águilas")
	f.team(t, owner, "Bravas")

	list, err := f.teams.ListTeams(ctx, owner)
	if err != nil || len(list) != 3 || list[0].Name != "Bravas" || list[1].Name != "Lobas" {
		t.Errorf("teams must be sorted by name: %v %v", list, err)
	}

	rename := "Lobas Sub-18"
	updated, err := f.teams.UpdateTeam(ctx, owner, team.ID, UpdateTeamInput{Name: &rename})
	if err != nil || updated.Name != rename || len(updated.PlayerIDs) != 2 {
		t.Errorf("update kept roster? %+v %v", updated, err)
	}
	if _, err := f.teams.UpdateTeam(ctx, stranger, team.ID, UpdateTeamInput{Name: &rename}); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("stranger update: got %v", err)
	}

	withLogo, err := f.teams.UploadTeamLogo(ctx, owner, team.ID, "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload logo: %v", err)
	}
	if withLogo.LogoKey == nil || withLogo.LogoURL == nil || !strings.HasPrefix(*withLogo.LogoURL, "https://cdn.test/logos/teams/") {
		t.Fatalf("logo not attached: %+v", withLogo)
	}
	firstKey := *withLogo.LogoKey

	replaced, err := f.teams.UploadTeamLogo(ctx, owner, team.ID, "image/jpeg", strings.NewReader("jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if *replaced.LogoKey == firstKey {
		t.Errorf("replacement reused the key")
	}
	if _, ok := f.uploader.objects[firstKey]; ok {
		t.Errorf("previous logo was not deleted")
	}

	if _, err := f.teams.UploadTeamLogo(ctx, owner, team.ID, "text/plain", strings.NewReader("x")); !errors.Is(err, ErrInvalidLogo) {
		t.Errorf("text logo: got %v", err)
	}

	noStorage := NewTeamService(f.teamRepo, nil, testLogger())
	if _, err := noStorage.UploadTeamLogo(ctx, owner, team.ID, "image/png", strings.NewReader("x")); !errors.Is(err, storage.ErrUploadsDisabled) {
		t.Errorf("upload without storage: got %v", err)
	}

	got, _ := f.teams.GetTeam(ctx, owner, team.ID)
	if got.LogoURL == nil {
		t.Errorf("logo url not resolved on read")
	}

	if err := f.teams.DeleteTeam(ctx, owner, team.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.teams.GetTeam(ctx, owner, team.ID); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("get after delete: got %v", err)
	}
	if len(f.uploader.objects) != 0 {
		t.Errorf("logo left behind after team delete: %v", f.uploader.objects)
	}
}

func TestPlayerService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input PlayerInput
		want  error
	}{
		{"missing name", PlayerInput{LastName: "Pérez"}, ErrPlayerNameRequired},
		{"unknown position", PlayerInput{FirstName: "Ana", Positions: []models.PlayerPosition{"PIVOT"}}, ErrInvalidPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.players.CreatePlayer(ctx, owner, tt.input); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	number := " 7 "
	zoe, err := f.players.CreatePlayer(ctx, owner, PlayerInput{
		FirstName: "Zoe",
		Number:    &number,
		Positions: []models.PlayerPosition{"libero", models.PositionLibero},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !zoe.Active || *zoe.Number != "7" || len(zoe.Positions) != 1 || zoe.Positions[0] != models.PositionLibero {
		t.Errorf("player not normalized: %+v", zoe)
	}
	ana, _ := f.players.CreatePlayer(ctx, owner, PlayerInput{FirstName: "Ana"})

	list, _ := f.players.ListPlayers(ctx, owner)
	if len(list) != 2 || list[0].ID != ana.ID {
		t.Errorf("players must be sorted by first name")
	}

	inactive := false
	updated, err := f.players.UpdatePlayer(ctx, owner, zoe.ID, UpdatePlayerInput{Active: &inactive})
	if err != nil || updated.Active || updated.FirstName != "Zoe" {
		t.Errorf("update: %+v %v", updated, err)
	}

	team, _ := f.teams.CreateTeam(ctx, owner, TeamInput{Name: "Lobas", PlayerIDs: []string{zoe.ID, "ghost", ana.ID}})
	roster, err := f.players.ListTeamPlayers(ctx, owner, team.ID)
	if err != nil || len(roster) != 2 || roster[0].ID != zoe.ID || roster[1].ID != ana.ID {
		t.Errorf("roster must keep order and skip unknown ids: %v %v", roster, err)
	}

	if err := f.players.DeletePlayer(ctx, stranger, zoe.ID); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("stranger delete: got %v", err)
	}
	if err := f.players.DeletePlayer(ctx, owner, zoe.ID); err != nil {
		t.Errorf("delete: %v", err)
	}
}

func TestTournamentService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.tournaments.CreateTournament(ctx, owner, TournamentInput{Name: "Copa", Date: "mañana"}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date: got %v", err)
	}
	older, err := f.tournaments.CreateTournament(ctx, owner, TournamentInput{Name: "Liga", Date: "2024-03-01"})
	if err != nil {
		t.Fatal(err)
	}
	newer, _ := f.tournaments.CreateTournament(ctx, owner, TournamentInput{Name: "Copa", Date: "2024-09-01"})

	list, _ := f.tournaments.ListTournaments(ctx, owner)
	if len(list) != 2 || list[0].ID != newer.ID {
		t.Errorf("tournaments must be latest first")
	}

	empty := ""
	if _, err := f.tournaments.UpdateTournament(ctx, owner, older.ID, UpdateTournamentInput{Name: &empty}); !errors.Is(err, ErrTournamentNameRequired) {
		t.Errorf("blank rename: got %v", err)
	}

	team := f.team(t, owner, "Lobas")
	m, err := f.matches.StartMatch(ctx, owner, StartMatchInput{TeamID: team.ID, Opponent: "X", TournamentID: &older.ID})
	if err != nil || m.TournamentID == nil || *m.TournamentID != older.ID {
		t.Errorf("match in tournament: %+v %v", m, err)
	}

	if err := f.tournaments.DeleteTournament(ctx, owner, older.ID); err != nil {
		t.Errorf("delete: %v", err)
	}
}

func TestPurgeOwnerData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team := f.team(t, owner, "Lobas")
	if _, err := f.teams.UploadTeamLogo(ctx, owner, team.ID, "image/png", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	f.players.CreatePlayer(ctx, owner, PlayerInput{FirstName: "Ana"})
	f.tournaments.CreateTournament(ctx, owner, TournamentInput{Name: "Liga"})
	f.match(t, team.ID, "Rivales")
	f.match(t, team.ID, "Otras")

	other := f.team(t, stranger, "Ajenas")

	summary, err := f.ownerData.PurgeOwnerData(ctx, owner)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	want := PurgeSummary{Players: 1, Teams: 1, Tournaments: 1, Matches: 2}
	if *summary != want {
		t.Errorf("summary = %+v, want %+v", *summary, want)
	}
	if len(f.uploader.objects) != 0 {
		t.Errorf("logos left after purge")
	}
	if teams, _ := f.teams.ListTeams(ctx, owner); len(teams) != 0 {
		t.Errorf("owner still has teams")
	}
	if _, err := f.teams.GetTeam(ctx, stranger, other.ID); err != nil {
		t.Errorf("another owner's data was purged: %v", err)
	}

	again, err := f.ownerData.PurgeOwnerData(ctx, owner)
	if err != nil || *again != (PurgeSummary{}) {
		t.Errorf("second purge: %+v %v", again, err)
	}
}
