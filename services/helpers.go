package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/repositories"
	"github.com/Dosada05/volley-coach/scoring"
	"github.com/Dosada05/volley-coach/storage"
)

// The owned* helpers load a document and hide it from anyone but its owner.

func ownedMatch(ctx context.Context, repo repositories.MatchRepository, ownerID, id string) (*models.Match, error) {
	m, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, persistenceError("load match", id, err)
	}
	if m.UserID != ownerID {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

func ownedTeam(ctx context.Context, repo repositories.TeamRepository, ownerID, id string) (*models.Team, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, persistenceError("load team", id, err)
	}
	if t.UserID != ownerID {
		return nil, ErrTeamNotFound
	}
	return t, nil
}

func ownedPlayer(ctx context.Context, repo repositories.PlayerRepository, ownerID, id string) (*models.Player, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, persistenceError("load player", id, err)
	}
	if p.UserID != ownerID {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

func ownedTournament(ctx context.Context, repo repositories.TournamentRepository, ownerID, id string) (*models.Tournament, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, persistenceError("load tournament", id, err)
	}
	if t.UserID != ownerID {
		return nil, ErrTournamentNotFound
	}
	return t, nil
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil {
		return
	}
	team.LogoURL = nil
	if team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
			team.LogoURL = &url
		}
	}
}

// validDate accepts an empty date or a YYYY-MM-DD calendar date.
func validDate(date string) bool {
	if date == "" {
		return true
	}
	_, err := time.Parse(scoring.DateLayout, date)
	return err == nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
