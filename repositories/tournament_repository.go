package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/volley-coach/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentConflict = errors.New("tournament id already exists")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Tournament, error)
	// Update merges the non-nil fields of patch into the stored tournament and returns the result.
	Update(ctx context.Context, id string, patch models.TournamentPatch) (*models.Tournament, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

type documentTournamentRepository struct {
	store DocumentStore
}

func NewTournamentRepository(store DocumentStore) TournamentRepository {
	return &documentTournamentRepository{store: store}
}

func (r *documentTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	newDocumentMeta(&tournament.ID, &tournament.CreatedAt)
	body, err := encodeDocument(tournament)
	if err != nil {
		return err
	}
	err = r.store.Insert(ctx, CollectionTournaments, &Record{
		ID:        tournament.ID,
		OwnerID:   tournament.UserID,
		CreatedAt: tournament.CreatedAt,
		Body:      body,
	})
	return translateStoreError(err, ErrTournamentNotFound, ErrTournamentConflict)
}

func (r *documentTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	rec, err := r.store.Get(ctx, CollectionTournaments, id)
	if err != nil {
		return nil, translateStoreError(err, ErrTournamentNotFound, ErrTournamentConflict)
	}
	return decodeDocument[models.Tournament](rec)
}

func (r *documentTournamentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Tournament, error) {
	records, err := r.store.ListByOwner(ctx, CollectionTournaments, ownerID)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[models.Tournament](records)
}

func (r *documentTournamentRepository) Update(ctx context.Context, id string, patch models.TournamentPatch) (*models.Tournament, error) {
	body, err := encodeDocument(patch)
	if err != nil {
		return nil, err
	}
	rec, err := r.store.Merge(ctx, CollectionTournaments, id, body)
	if err != nil {
		return nil, translateStoreError(err, ErrTournamentNotFound, ErrTournamentConflict)
	}
	return decodeDocument[models.Tournament](rec)
}

func (r *documentTournamentRepository) Delete(ctx context.Context, id string) error {
	return translateStoreError(r.store.Delete(ctx, CollectionTournaments, id), ErrTournamentNotFound, ErrTournamentConflict)
}

func (r *documentTournamentRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.store.DeleteByOwner(ctx, CollectionTournaments, ownerID)
}
