package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Dosada05/volley-coach/models"
	"github.com/Dosada05/volley-coach/repositories"
)

type PlayerInput struct {
	FirstName string                  `json:"first_name"`
	LastName  string                  `json:"last_name"`
	Number    *string                 `json:"number,omitempty"`
	Positions []models.PlayerPosition `json:"positions"`
	Active    *bool                   `json:"active,omitempty"`
}

type UpdatePlayerInput struct {
	FirstName *string                  `json:"first_name,omitempty"`
	LastName  *string                  `json:"last_name,omitempty"`
	Number    *string                  `json:"number,omitempty"`
	Positions *[]models.PlayerPosition `json:"positions,omitempty"`
	Active    *bool                    `json:"active,omitempty"`
}

type PlayerService struct {
	players repositories.PlayerRepository
	teams   repositories.TeamRepository
}

func NewPlayerService(players repositories.PlayerRepository, teams repositories.TeamRepository) *PlayerService {
	return &PlayerService{players: players, teams: teams}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, ownerID string, input PlayerInput) (*models.Player, error) {
	first := strings.TrimSpace(input.FirstName)
	if first == "" {
		return nil, ErrPlayerNameRequired
	}
	positions, err := normalizePositions(input.Positions)
	if err != nil {
		return nil, err
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	player := &models.Player{
		UserID:    ownerID,
		FirstName: first,
		LastName:  strings.TrimSpace(input.LastName),
		Number:    trimmedPtr(input.Number),
		Positions: positions,
		Active:    active,
	}
	if err := s.players.Create(ctx, player); err != nil {
		return nil, persistenceError("create player", player.ID, err)
	}
	return player, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, ownerID, playerID string) (*models.Player, error) {
	return ownedPlayer(ctx, s.players, ownerID, playerID)
}

// ListPlayers returns the owner's players ordered by first name.
func (s *PlayerService) ListPlayers(ctx context.Context, ownerID string) ([]models.Player, error) {
	players, err := s.players.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistenceError("list players of", ownerID, err)
	}
	sortPlayers(players)
	return players, nil
}

// ListTeamPlayers resolves the roster of a team in roster order. Ids that no longer
// resolve to one of the owner's players are skipped.
func (s *PlayerService) ListTeamPlayers(ctx context.Context, ownerID, teamID string) ([]models.Player, error) {
	team, err := ownedTeam(ctx, s.teams, ownerID, teamID)
	if err != nil {
		return nil, err
	}
	players, err := s.players.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistenceError("list players of", ownerID, err)
	}

	byID := make(map[string]models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	roster := make([]models.Player, 0, len(team.PlayerIDs))
	for _, id := range team.PlayerIDs {
		if p, ok := byID[id]; ok {
			roster = append(roster, p)
		}
	}
	return roster, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, ownerID, playerID string, input UpdatePlayerInput) (*models.Player, error) {
	if _, err := ownedPlayer(ctx, s.players, ownerID, playerID); err != nil {
		return nil, err
	}

	patch := models.PlayerPatch{
		LastName: trimmedPtr(input.LastName),
		Number:   trimmedPtr(input.Number),
		Active:   input.Active,
	}
	if input.FirstName != nil {
		first := strings.TrimSpace(*input.FirstName)
		if first == "" {
			return nil, ErrPlayerNameRequired
		}
		patch.FirstName = &first
	}
	if input.Positions != nil {
		positions, err := normalizePositions(*input.Positions)
		if err != nil {
			return nil, err
		}
		patch.Positions = &positions
	}

	player, err := s.players.Update(ctx, playerID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, persistenceError("update player", playerID, err)
	}
	return player, nil
}

// DeletePlayer removes the player. Lineups that reference the id are left as they are.
func (s *PlayerService) DeletePlayer(ctx context.Context, ownerID, playerID string) error {
	if _, err := ownedPlayer(ctx, s.players, ownerID, playerID); err != nil {
		return err
	}
	if err := s.players.Delete(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return persistenceError("delete player", playerID, err)
	}
	return nil
}

func normalizePositions(in []models.PlayerPosition) ([]models.PlayerPosition, error) {
	out := make([]models.PlayerPosition, 0, len(in))
	seen := make(map[models.PlayerPosition]bool, len(in))
	for _, p := range in {
		p = models.PlayerPosition(strings.ToUpper(strings.TrimSpace(string(p))))
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, p)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func sortPlayers(players []models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return strings.ToLower(players[i].FirstName) < strings.ToLower(players[j].FirstName)
	})
}
