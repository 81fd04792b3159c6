package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/volley-coach/repositories"
	"github.com/Dosada05/volley-coach/storage"
	"golang.org/x/sync/errgroup"
)

// PurgeSummary counts the documents removed per collection.
type PurgeSummary struct {
	Players     int64 `json:"players"`
	Teams       int64 `json:"teams"`
	Tournaments int64 `json:"tournaments"`
	Matches     int64 `json:"matches"`
}

// OwnerDataService removes everything an owner has stored, for account deletion.
type OwnerDataService struct {
	players     repositories.PlayerRepository
	teams       repositories.TeamRepository
	tournaments repositories.TournamentRepository
	matches     repositories.MatchRepository
	uploader    storage.FileUploader
	logger      *slog.Logger
}

func NewOwnerDataService(
	players repositories.PlayerRepository,
	teams repositories.TeamRepository,
	tournaments repositories.TournamentRepository,
	matches repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) *OwnerDataService {
	return &OwnerDataService{
		players:     players,
		teams:       teams,
		tournaments: tournaments,
		matches:     matches,
		uploader:    uploader,
		logger:      logger,
	}
}

// PurgeOwnerData deletes the owner's players, teams, tournaments and matches. The collections
// are independent and purged concurrently; on failure the remaining ones may be left in place
// and the call can simply be repeated.
func (s *OwnerDataService) PurgeOwnerData(ctx context.Context, ownerID string) (*PurgeSummary, error) {
	teams, err := s.teams.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistenceError("list teams of", ownerID, err)
	}

	var summary PurgeSummary
	g, gctx := errgroup.WithContext(ctx)
	purge := func(what string, n *int64, del func(context.Context, string) (int64, error)) {
		g.Go(func() error {
			count, err := del(gctx, ownerID)
			if err != nil {
				return persistenceError("purge "+what+" of", ownerID, err)
			}
			*n = count
			return nil
		})
	}
	purge("players", &summary.Players, s.players.DeleteByOwner)
	purge("teams", &summary.Teams, s.teams.DeleteByOwner)
	purge("tournaments", &summary.Tournaments, s.tournaments.DeleteByOwner)
	purge("matches", &summary.Matches, s.matches.DeleteByOwner)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.uploader != nil {
		for _, t := range teams {
			if t.LogoKey == nil || *t.LogoKey == "" {
				continue
			}
			if err := s.uploader.Delete(ctx, *t.LogoKey); err != nil {
				s.logger.Warn("failed to delete stored logo", slog.String("key", *t.LogoKey), slog.Any("error", err))
			}
		}
	}

	s.logger.Info("owner data purged",
		slog.String("owner_id", ownerID),
		slog.Int64("players", summary.Players),
		slog.Int64("teams", summary.Teams),
		slog.Int64("tournaments", summary.Tournaments),
		slog.Int64("matches", summary.Matches),
	)
	return &summary, nil
}
