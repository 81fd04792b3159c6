package services

import (
	"context"

	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/repositories"
	"github.com/Dosada05/volley-coach/scoring"
	"golang.org/x/sync/errgroup"
)

type HistoryQuery struct {
	Filter scoring.MatchFilter
	Order  scoring.SortOrder
}

// HistoryView is the filtered match list; Record counts only the listed matches.
type HistoryView struct {
	Entries []models.HistoryEntry `json:"entries"`
	Record  models.WinLossRecord  `json:"record"`
}

type PlayerParticipation struct {
	models.Participation
	TeamName string `json:"team_name"`
}

type PlayerHistoryView struct {
	Player         models.Player         `json:"player"`
	Participations []PlayerParticipation `json:"participations"`
	Record         models.WinLossRecord  `json:"record"`
}

// HistoryService answers read-only questions over stored matches. Results are recomputed
// from the set scores on every call.
type HistoryService struct {
	matches repositories.MatchRepository
	teams   repositories.TeamRepository
	players repositories.PlayerRepository
}

func NewHistoryService(matches repositories.MatchRepository, teams repositories.TeamRepository, players repositories.PlayerRepository) *HistoryService {
	return &HistoryService{matches: matches, teams: teams, players: players}
}

func (s *HistoryService) History(ctx context.Context, ownerID string, q HistoryQuery) (*HistoryView, error) {
	matches, teamNames, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	listed := scoring.SortMatches(scoring.FilterMatches(matches, teamNames, q.Filter), q.Order)
	view := &HistoryView{
		Entries: make([]models.HistoryEntry, 0, len(listed)),
		Record:  scoring.WinLossRecord(listed),
	}
	for _, m := range listed {
		view.Entries = append(view.Entries, models.HistoryEntry{
			Match:    m,
			TeamName: teamNames[m.TeamID],
			Result:   view.Record.Results[m.ID],
		})
	}
	return view, nil
}

// Record is the win/loss tally over every match of the owner.
func (s *HistoryService) Record(ctx context.Context, ownerID string) (*models.WinLossRecord, error) {
	matches, err := s.matches.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistenceError("list matches of", ownerID, err)
	}
	record := scoring.WinLossRecord(matches)
	return &record, nil
}

// PlayerHistory lists the matches the player took part in, newest first.
func (s *HistoryService) PlayerHistory(ctx context.Context, ownerID, playerID string) (*PlayerHistoryView, error) {
	var (
		player    *models.Player
		matches   []models.Match
		teamNames map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		player, err = ownedPlayer(gctx, s.players, ownerID, playerID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, teamNames, err = s.load(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	history := scoring.ParticipationHistory(scoring.SortMatches(matches, scoring.SortNewestFirst), playerID)
	played := make([]models.Match, 0, len(history))
	view := &PlayerHistoryView{
		Player:         *player,
		Participations: make([]PlayerParticipation, 0, len(history)),
	}
	for _, p := range history {
		played = append(played, p.Match)
		view.Participations = append(view.Participations, PlayerParticipation{
			Participation: p,
			TeamName:      teamNames[p.Match.TeamID],
		})
	}
	view.Record = scoring.WinLossRecord(played)
	return view, nil
}

// load fetches the owner's matches and team names concurrently.
func (s *HistoryService) load(ctx context.Context, ownerID string) ([]models.Match, map[string]string, error) {
	var (
		matches []models.Match
		teams   []models.Team
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if matches, err = s.matches.ListByOwner(gctx, ownerID); err != nil {
			return persistenceError("list matches of", ownerID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if teams, err = s.teams.ListByOwner(gctx, ownerID); err != nil {
			return persistenceError("list teams of", ownerID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return matches, names, nil
}
