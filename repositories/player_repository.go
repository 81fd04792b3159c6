package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/volley-coach/models"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerConflict = errors.New("player id already exists")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Player, error)
	// Update merges the non-nil fields of patch into the stored player and returns the result.
	Update(ctx context.Context, id string, patch models.PlayerPatch) (*models.Player, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

type documentPlayerRepository struct {
	store DocumentStore
}

func NewPlayerRepository(store DocumentStore) PlayerRepository {
	return &documentPlayerRepository{store: store}
}

func (r *documentPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	newDocumentMeta(&player.ID, &player.CreatedAt)
	body, err := encodeDocument(player)
	if err != nil {
		return err
	}
	err = r.store.Insert(ctx, CollectionPlayers, &Record{
		ID:        player.ID,
		OwnerID:   player.UserID,
		CreatedAt: player.CreatedAt,
		Body:      body,
	})
	return translateStoreError(err, ErrPlayerNotFound, ErrPlayerConflict)
}

func (r *documentPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	rec, err := r.store.Get(ctx, CollectionPlayers, id)
	if err != nil {
		return nil, translateStoreError(err, ErrPlayerNotFound, ErrPlayerConflict)
	}
	return decodeDocument[models.Player](rec)
}

func (r *documentPlayerRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Player, error) {
	records, err := r.store.ListByOwner(ctx, CollectionPlayers, ownerID)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[models.Player](records)
}

func (r *documentPlayerRepository) Update(ctx context.Context, id string, patch models.PlayerPatch) (*models.Player, error) {
	body, err := encodeDocument(patch)
	if err != nil {
		return nil, err
	}
	rec, err := r.store.Merge(ctx, CollectionPlayers, id, body)
	if err != nil {
		return nil, translateStoreError(err, ErrPlayerNotFound, ErrPlayerConflict)
	}
	return decodeDocument[models.Player](rec)
}

func (r *documentPlayerRepository) Delete(ctx context.Context, id string) error {
	return translateStoreError(r.store.Delete(ctx, CollectionPlayers, id), ErrPlayerNotFound, ErrPlayerConflict)
}

func (r *documentPlayerRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.store.DeleteByOwner(ctx, CollectionPlayers, ownerID)
}
