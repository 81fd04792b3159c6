package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/volley-coach/models"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamConflict = errors.New("team id already exists")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Team, error)
	// Update merges the non-nil fields of patch into the stored team and returns the result.
	Update(ctx context.Context, id string, patch models.TeamPatch) (*models.Team, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

type documentTeamRepository struct {
	store DocumentStore
}

func NewTeamRepository(store DocumentStore) TeamRepository {
	return &documentTeamRepository{store: store}
}

func (r *documentTeamRepository) Create(ctx context.Context, team *models.Team) error {
	newDocumentMeta(&team.ID, &team.CreatedAt)
	body, err := encodeDocument(team)
	if err != nil {
		return err
	}
	err = r.store.Insert(ctx, CollectionTeams, &Record{
		ID:        team.ID,
		OwnerID:   team.UserID,
		CreatedAt: team.CreatedAt,
		Body:      body,
	})
	return translateStoreError(err, ErrTeamNotFound, ErrTeamConflict)
}

func (r *documentTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	rec, err := r.store.Get(ctx, CollectionTeams, id)
	if err != nil {
		return nil, translateStoreError(err, ErrTeamNotFound, ErrTeamConflict)
	}
	return decodeDocument[models.Team](rec)
}

func (r *documentTeamRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Team, error) {
	records, err := r.store.ListByOwner(ctx, CollectionTeams, ownerID)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[models.Team](records)
}

func (r *documentTeamRepository) Update(ctx context.Context, id string, patch models.TeamPatch) (*models.Team, error) {
	body, err := encodeDocument(patch)
	if err != nil {
		return nil, err
	}
	rec, err := r.store.Merge(ctx, CollectionTeams, id, body)
	if err != nil {
		return nil, translateStoreError(err, ErrTeamNotFound, ErrTeamConflict)
	}
	return decodeDocument[models.Team](rec)
}

func (r *documentTeamRepository) Delete(ctx context.Context, id string) error {
	return translateStoreError(r.store.Delete(ctx, CollectionTeams, id), ErrTeamNotFound, ErrTeamConflict)
}

func (r *documentTeamRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.store.DeleteByOwner(ctx, CollectionTeams, ownerID)
}
