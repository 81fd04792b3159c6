package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/repositories"
)

type TournamentInput struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type UpdateTournamentInput struct {
	Name *string `json:"name,omitempty"`
	Date *string `json:"date,omitempty"`
}

type TournamentService struct {
	repo repositories.TournamentRepository
}

func NewTournamentService(repo repositories.TournamentRepository) *TournamentService {
	return &TournamentService{repo: repo}
}

func (s *TournamentService) CreateTournament(ctx context.Context, ownerID string, input TournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	date := strings.TrimSpace(input.Date)
	if !validDate(date) {
		return nil, ErrInvalidDate
	}

	tournament := &models.Tournament{UserID: ownerID, Name: name, Date: date}
	if err := s.repo.Create(ctx, tournament); err != nil {
		return nil, persistenceError("create tournament", tournament.ID, err)
	}
	return tournament, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, ownerID, id string) (*models.Tournament, error) {
	return ownedTournament(ctx, s.repo, ownerID, id)
}

// ListTournaments returns the owner's tournaments, latest date first.
func (s *TournamentService) ListTournaments(ctx context.Context, ownerID string) ([]models.Tournament, error) {
	tournaments, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistenceError("list tournaments of", ownerID, err)
	}
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tournaments[i].Date > tournaments[j].Date
	})
	return tournaments, nil
}

func (s *TournamentService) UpdateTournament(ctx context.Context, ownerID, id string, input UpdateTournamentInput) (*models.Tournament, error) {
	if _, err := ownedTournament(ctx, s.repo, ownerID, id); err != nil {
		return nil, err
	}

	var patch models.TournamentPatch
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameRequired
		}
		patch.Name = &name
	}
	if input.Date != nil {
		date := strings.TrimSpace(*input.Date)
		if !validDate(date) {
			return nil, ErrInvalidDate
		}
		patch.Date = &date
	}

	tournament, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, persistenceError("update tournament", id, err)
	}
	return tournament, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, ownerID, id string) error {
	if _, err := ownedTournament(ctx, s.repo, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return persistenceError("delete tournament", id, err)
	}
	return nil
}
