package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/volley-coach/models"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchConflict = errors.New("match id already exists")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Match, error)
	// Update merges the non-nil fields of patch into the stored match and returns the result.
	Update(ctx context.Context, id string, patch models.MatchPatch) (*models.Match, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

type documentMatchRepository struct {
	store DocumentStore
}

func NewMatchRepository(store DocumentStore) MatchRepository {
	return &documentMatchRepository{store: store}
}

func (r *documentMatchRepository) Create(ctx context.Context, match *models.Match) error {
	newDocumentMeta(&match.ID, &match.CreatedAt)
	body, err := encodeDocument(match)
	if err != nil {
		return err
	}
	err = r.store.Insert(ctx, CollectionMatches, &Record{
		ID:        match.ID,
		OwnerID:   match.UserID,
		CreatedAt: match.CreatedAt,
		Body:      body,
	})
	return translateStoreError(err, ErrMatchNotFound, ErrMatchConflict)
}

func (r *documentMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	rec, err := r.store.Get(ctx, CollectionMatches, id)
	if err != nil {
		return nil, translateStoreError(err, ErrMatchNotFound, ErrMatchConflict)
	}
	return decodeDocument[models.Match](rec)
}

func (r *documentMatchRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Match, error) {
	records, err := r.store.ListByOwner(ctx, CollectionMatches, ownerID)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[models.Match](records)
}

func (r *documentMatchRepository) Update(ctx context.Context, id string, patch models.MatchPatch) (*models.Match, error) {
	body, err := encodeDocument(patch)
	if err != nil {
		return nil, err
	}
	rec, err := r.store.Merge(ctx, CollectionMatches, id, body)
	if err != nil {
		return nil, translateStoreError(err, ErrMatchNotFound, ErrMatchConflict)
	}
	return decodeDocument[models.Match](rec)
}

func (r *documentMatchRepository) Delete(ctx context.Context, id string) error {
	return translateStoreError(r.store.Delete(ctx, CollectionMatches, id), ErrMatchNotFound, ErrMatchConflict)
}

func (r *documentMatchRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.store.DeleteByOwner(ctx, CollectionMatches, ownerID)
}
