package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/repositories"
	"github.com/Dosada05/volley-coach/storage"
)

type TeamInput struct {
	Name      string   `json:"name"`
	PlayerIDs []string `json:"player_ids"`
}

type UpdateTeamInput struct {
	Name      *string   `json:"name,omitempty"`
	PlayerIDs *[]string `json:"player_ids,omitempty"`
}

type TeamService struct {
	teams    repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

// NewTeamService builds the service; uploader may be nil, logo uploads then fail with
// storage.ErrUploadsDisabled.
func NewTeamService(teams repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) *TeamService {
	return &TeamService{teams: teams, uploader: uploader, logger: logger}
}

func (s *TeamService) CreateTeam(ctx context.Context, ownerID string, input TeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team := &models.Team{
		UserID:    ownerID,
		Name:      name,
		PlayerIDs: normalizeRoster(input.PlayerIDs),
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, persistenceError("create team", team.ID, err)
	}
	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, ownerID, teamID string) (*models.Team, error) {
	team, err := ownedTeam(ctx, s.teams, ownerID, teamID)
	if err != nil {
		return nil, err
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

// ListTeams returns the owner's teams ordered by name.
func (s *TeamService) ListTeams(ctx context.Context, ownerID string) ([]models.Team, error) {
	teams, err := s.teams.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistenceError("list teams of", ownerID, err)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return strings.ToLower(teams[i].Name) < strings.ToLower(teams[j].Name)
	})
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, ownerID, teamID string, input UpdateTeamInput) (*models.Team, error) {
	if _, err := ownedTeam(ctx, s.teams, ownerID, teamID); err != nil {
		return nil, err
	}

	var patch models.TeamPatch
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		patch.Name = &name
	}
	if input.PlayerIDs != nil {
		roster := normalizeRoster(*input.PlayerIDs)
		patch.PlayerIDs = &roster
	}

	return s.update(ctx, teamID, patch)
}

// DeleteTeam removes the team. Matches keep their team id and show it unresolved.
func (s *TeamService) DeleteTeam(ctx context.Context, ownerID, teamID string) error {
	team, err := ownedTeam(ctx, s.teams, ownerID, teamID)
	if err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return persistenceError("delete team", teamID, err)
	}
	if team.LogoKey != nil {
		s.deleteObject(ctx, *team.LogoKey)
	}
	return nil
}

// UploadTeamLogo stores a new logo under a fresh key and drops the previous one.
func (s *TeamService) UploadTeamLogo(ctx context.Context, ownerID, teamID, contentType string, body io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, storage.ErrUploadsDisabled
	}
	team, err := ownedTeam(ctx, s.teams, ownerID, teamID)
	if err != nil {
		return nil, err
	}

	key, err := storage.LogoObjectKey("teams", teamID, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLogo, err)
	}
	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("upload team logo: %w", err)
	}

	updated, err := s.update(ctx, teamID, models.TeamPatch{LogoKey: &key})
	if err != nil {
		s.deleteObject(ctx, key)
		return nil, err
	}
	if team.LogoKey != nil && *team.LogoKey != key {
		s.deleteObject(ctx, *team.LogoKey)
	}
	return updated, nil
}

func (s *TeamService) update(ctx context.Context, teamID string, patch models.TeamPatch) (*models.Team, error) {
	team, err := s.teams.Update(ctx, teamID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, persistenceError("update team", teamID, err)
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *TeamService) deleteObject(ctx context.Context, key string) {
	if s.uploader == nil || key == "" {
		return
	}
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored logo", slog.String("key", key), slog.Any("error", err))
	}
}

// normalizeRoster trims ids and drops blanks and duplicates, keeping the first occurrence.
func normalizeRoster(ids []string) []string {
	roster := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		roster = append(roster, id)
	}
	return roster
}
