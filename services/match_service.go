package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/volley-coach/live"
	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/repositories"
	"github.com/Dosada05/volley-coach/scoring"
)

// MatchNotifier receives the stored state of a match after every change.
type MatchNotifier interface {
	NotifyMatch(eventType string, match *models.Match)
}

type StartMatchInput struct {
	TeamID       string  `json:"team_id"`
	TournamentID *string `json:"tournament_id,omitempty"`
	Opponent     string  `json:"opponent"`
	Date         string  `json:"date"`
	IsHome       *bool   `json:"is_home"`
}

// UpdateMatchInput edits the setup of a match. Nil fields are left untouched.
type UpdateMatchInput struct {
	Opponent     *string `json:"opponent,omitempty"`
	Date         *string `json:"date,omitempty"`
	IsHome       *bool   `json:"is_home,omitempty"`
	TournamentID *string `json:"tournament_id,omitempty"`
}

// ActiveSetView is the set in progress together with its position in the match.
type ActiveSetView struct {
	Index int        `json:"index"`
	Set   models.Set `json:"set"`
}

type MatchService struct {
	matches     repositories.MatchRepository
	teams       repositories.TeamRepository
	tournaments repositories.TournamentRepository
	notifier    MatchNotifier
	logger      *slog.Logger
	strict      bool
	now         func() time.Time
}

type MatchServiceOption func(*MatchService)

// WithStrictScoring makes set results follow regulation scoring (25/15 points, two apart).
func WithStrictScoring(strict bool) MatchServiceOption {
	return func(s *MatchService) { s.strict = strict }
}

// WithClock replaces time.Now, used for default match dates.
func WithClock(now func() time.Time) MatchServiceOption {
	return func(s *MatchService) { s.now = now }
}

func NewMatchService(
	matches repositories.MatchRepository,
	teams repositories.TeamRepository,
	tournaments repositories.TournamentRepository,
	notifier MatchNotifier,
	logger *slog.Logger,
	opts ...MatchServiceOption,
) *MatchService {
	s := &MatchService{
		matches:     matches,
		teams:       teams,
		tournaments: tournaments,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartMatch creates a match with its first set. The team (and tournament, when given)
// must belong to the owner. Home is the default venue.
func (s *MatchService) StartMatch(ctx context.Context, ownerID string, input StartMatchInput) (*models.Match, error) {
	isHome := true
	if input.IsHome != nil {
		isHome = *input.IsHome
	}

	match, err := scoring.StartMatch(scoring.MatchConfig{
		OwnerID:      ownerID,
		TeamID:       input.TeamID,
		TournamentID: input.TournamentID,
		Opponent:     input.Opponent,
		Date:         input.Date,
		IsHome:       isHome,
	}, s.now())
	if err != nil {
		return nil, err
	}

	if _, err := ownedTeam(ctx, s.teams, ownerID, match.TeamID); err != nil {
		return nil, err
	}
	if match.TournamentID != nil {
		if _, err := ownedTournament(ctx, s.tournaments, ownerID, *match.TournamentID); err != nil {
			return nil, err
		}
	}

	if err := s.matches.Create(ctx, &match); err != nil {
		return nil, persistenceError("create match", match.ID, err)
	}
	s.logger.Info("match started",
		slog.String("match_id", match.ID),
		slog.String("team_id", match.TeamID),
		slog.String("opponent", match.Opponent),
	)
	return &match, nil
}

func (s *MatchService) GetMatch(ctx context.Context, ownerID, matchID string) (*models.Match, error) {
	return ownedMatch(ctx, s.matches, ownerID, matchID)
}

// ListMatches returns the owner's matches, newest first unless order says otherwise.
func (s *MatchService) ListMatches(ctx context.Context, ownerID string, order scoring.SortOrder) ([]models.Match, error) {
	matches, err := s.matches.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistenceError("list matches of", ownerID, err)
	}
	return scoring.SortMatches(matches, order), nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, ownerID, matchID string) error {
	match, err := ownedMatch(ctx, s.matches, ownerID, matchID)
	if err != nil {
		return err
	}
	if err := s.matches.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return persistenceError("delete match", matchID, err)
	}
	s.notify(live.MatchDeleted, match)
	s.logger.Info("match deleted", slog.String("match_id", matchID))
	return nil
}

// UpdateMatchDetails edits opponent, date, venue or tournament. Sets and the outcome are not
// touched, so completed matches can be edited too.
func (s *MatchService) UpdateMatchDetails(ctx context.Context, ownerID, matchID string, input UpdateMatchInput) (*models.Match, error) {
	if _, err := ownedMatch(ctx, s.matches, ownerID, matchID); err != nil {
		return nil, err
	}

	var patch models.MatchPatch
	if input.Opponent != nil {
		opponent := strings.TrimSpace(*input.Opponent)
		if opponent == "" {
			return nil, scoring.ErrOpponentRequired
		}
		patch.Opponent = &opponent
	}
	if input.Date != nil {
		date := strings.TrimSpace(*input.Date)
		if _, err := time.Parse(scoring.DateLayout, date); err != nil {
			return nil, scoring.ErrInvalidDate
		}
		patch.Date = &date
	}
	if input.TournamentID != nil {
		tournamentID := strings.TrimSpace(*input.TournamentID)
		if _, err := ownedTournament(ctx, s.tournaments, ownerID, tournamentID); err != nil {
			return nil, err
		}
		patch.TournamentID = &tournamentID
	}
	patch.IsHome = input.IsHome
	if patch == (models.MatchPatch{}) {
		return nil, ErrNoMatchChanges
	}

	stored, err := s.matches.Update(ctx, matchID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, persistenceError("update match", matchID, err)
	}
	s.notify(live.MatchUpdated, stored)
	return stored, nil
}

// RecordSetResult closes the set in progress with the given score.
func (s *MatchService) RecordSetResult(ctx context.Context, ownerID, matchID string, scoreTeam, scoreOpponent int) (*models.Match, error) {
	return s.mutate(ctx, ownerID, matchID, func(m models.Match) (models.Match, error) {
		if s.strict {
			if _, _, ok := scoring.ActiveSet(m); ok {
				if err := scoring.ValidateRegulationScore(len(m.Sets), scoreTeam, scoreOpponent); err != nil {
					return m, err
				}
			}
		}
		return scoring.RecordSetResult(m, scoreTeam, scoreOpponent)
	})
}

// CorrectSetScore overwrites the score of a completed set.
func (s *MatchService) CorrectSetScore(ctx context.Context, ownerID, matchID string, setIndex, scoreTeam, scoreOpponent int) (*models.Match, error) {
	return s.mutate(ctx, ownerID, matchID, func(m models.Match) (models.Match, error) {
		if s.strict && setIndex >= 0 && setIndex < len(m.Sets) {
			if err := scoring.ValidateRegulationScore(m.Sets[setIndex].SetNumber, scoreTeam, scoreOpponent); err != nil {
				return m, err
			}
		}
		return scoring.CorrectSetScore(m, setIndex, scoreTeam, scoreOpponent)
	})
}

func (s *MatchService) AssignLineupSlot(ctx context.Context, ownerID, matchID string, setIndex, slot int, playerID string) (*models.Match, error) {
	return s.mutate(ctx, ownerID, matchID, func(m models.Match) (models.Match, error) {
		return scoring.AssignLineupSlot(m, setIndex, slot, playerID)
	})
}

func (s *MatchService) ClearLineupSlot(ctx context.Context, ownerID, matchID string, setIndex, slot int) (*models.Match, error) {
	return s.mutate(ctx, ownerID, matchID, func(m models.Match) (models.Match, error) {
		return scoring.ClearLineupSlot(m, setIndex, slot)
	})
}

// CopyLineup replaces the lineup of targetIndex with the one used in the completed set sourceIndex.
func (s *MatchService) CopyLineup(ctx context.Context, ownerID, matchID string, sourceIndex, targetIndex int) (*models.Match, error) {
	return s.mutate(ctx, ownerID, matchID, func(m models.Match) (models.Match, error) {
		return scoring.CopyLineupFromCompletedSet(m, sourceIndex, targetIndex)
	})
}

func (s *MatchService) GetActiveSet(ctx context.Context, ownerID, matchID string) (*ActiveSetView, error) {
	match, err := ownedMatch(ctx, s.matches, ownerID, matchID)
	if err != nil {
		return nil, err
	}
	set, idx, ok := scoring.ActiveSet(*match)
	if !ok {
		return nil, scoring.ErrNoActiveSet
	}
	return &ActiveSetView{Index: idx, Set: set}, nil
}

func (s *MatchService) GetCompletedSets(ctx context.Context, ownerID, matchID string) ([]models.Set, error) {
	match, err := ownedMatch(ctx, s.matches, ownerID, matchID)
	if err != nil {
		return nil, err
	}
	return scoring.CompletedSets(*match), nil
}

// mutate loads the match, applies op and stores sets, completed and winner in one merge.
// It returns the stored match; on any error nothing was written.
func (s *MatchService) mutate(ctx context.Context, ownerID, matchID string, op func(models.Match) (models.Match, error)) (*models.Match, error) {
	current, err := ownedMatch(ctx, s.matches, ownerID, matchID)
	if err != nil {
		return nil, err
	}

	next, err := op(*current)
	if err != nil {
		return nil, err
	}

	patch := models.MatchPatch{
		Sets:      &next.Sets,
		Completed: &next.Completed,
		Winner:    next.Winner,
	}
	stored, err := s.matches.Update(ctx, matchID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		s.logger.Error("failed to store match",
			slog.String("match_id", matchID),
			slog.Any("error", err),
		)
		return nil, persistenceError("update match", matchID, err)
	}

	event := live.MatchUpdated
	if stored.Completed && !current.Completed {
		event = live.MatchCompleted
		winner := ""
		if stored.Winner != nil {
			winner = string(*stored.Winner)
		}
		s.logger.Info("match completed", slog.String("match_id", matchID), slog.String("winner", winner))
	}
	s.notify(event, stored)
	return stored, nil
}

func (s *MatchService) notify(event string, match *models.Match) {
	if s.notifier != nil {
		s.notifier.NotifyMatch(event, match)
	}
}
