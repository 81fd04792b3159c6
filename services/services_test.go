package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/repositories"
	"github.com/Dosada05/volley-coach/storage"
)

const (
	owner    = "coach-1"
	stranger = "coach-2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type recordedEvent struct {
	Type  string
	Match models.Match
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *fakeNotifier) NotifyMatch(eventType string, match *models.Match) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Type: eventType, Match: match.Clone()})
}

func (n *fakeNotifier) last(t *testing.T) recordedEvent {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		t.Fatal("no event published")
	}
	return n.events[len(n.events)-1]
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string]string)}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = string(data)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

// failingMatchRepository fails every update, the other calls go to the wrapped repository.
type failingMatchRepository struct {
	repositories.MatchRepository
}

var errStoreDown = errors.New("store unavailable")

func (r failingMatchRepository) Update(ctx context.Context, id string, patch models.MatchPatch) (*models.Match, error) {
	return nil, errStoreDown
}

type fixture struct {
	store       repositories.DocumentStore
	matchRepo   repositories.MatchRepository
	teamRepo    repositories.TeamRepository
	playerRepo  repositories.PlayerRepository
	tournRepo   repositories.TournamentRepository
	notifier    *fakeNotifier
	uploader    *fakeUploader
	matches     *MatchService
	teams       *TeamService
	players     *PlayerService
	tournaments *TournamentService
	history     *HistoryService
	ownerData   *OwnerDataService
}

func newFixture(t *testing.T, opts ...MatchServiceOption) *fixture {
	t.Helper()
	store := repositories.NewMemoryDocumentStore()
	f := &fixture{
		store:      store,
		matchRepo:  repositories.NewMatchRepository(store),
		teamRepo:   repositories.NewTeamRepository(store),
		playerRepo: repositories.NewPlayerRepository(store),
		tournRepo:  repositories.NewTournamentRepository(store),
		notifier:   &fakeNotifier{},
		uploader:   newFakeUploader(),
	}
	logger := testLogger()
	f.matches = NewMatchService(f.matchRepo, f.teamRepo, f.tournRepo, f.notifier, logger, opts...)
	f.teams = NewTeamService(f.teamRepo, f.uploader, logger)
	f.players = NewPlayerService(f.playerRepo, f.teamRepo)
	f.tournaments = NewTournamentService(f.tournRepo)
	f.history = NewHistoryService(f.matchRepo, f.teamRepo, f.playerRepo)
	f.ownerData = NewOwnerDataService(f.playerRepo, f.teamRepo, f.tournRepo, f.matchRepo, f.uploader, logger)
	return f
}

func (f *fixture) team(t *testing.T, ownerID, name string) *models.Team {
	t.Helper()
	team, err := f.teams.CreateTeam(context.Background(), ownerID, TeamInput{Name: name})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	return team
}

func (f *fixture) match(t *testing.T, teamID, opponent string) *models.Match {
	t.Helper()
	m, err := f.matches.StartMatch(context.Background(), owner, StartMatchInput{TeamID: teamID, Opponent: opponent})
	if err != nil {
		t.Fatalf("start match: %v", err)
	}
	return m
}

func (f *fixture) play(t *testing.T, matchID string, scores ...[2]int) *models.Match {
	t.Helper()
	var m *models.Match
	for _, sc := range scores {
		var err error
		m, err = f.matches.RecordSetResult(context.Background(), owner, matchID, sc[0], sc[1])
		if err != nil {
			t.Fatalf("record %v: %v", sc, err)
		}
	}
	return m
}
