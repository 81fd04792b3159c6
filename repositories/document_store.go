package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Collection names. Every entity type lives in its own partition of the document store.
const (
	CollectionMatches     = "matches"
	CollectionTeams       = "teams"
	CollectionPlayers     = "players"
	CollectionTournaments = "tournaments"
)

// OwnedCollections lists the collections that hold per-owner data.
var OwnedCollections = []string{CollectionPlayers, CollectionTeams, CollectionTournaments, CollectionMatches}

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentConflict = errors.New("document id already exists")
	ErrInvalidPatch     = errors.New("patch must be a JSON object")
)

// Record is one stored document. ID, OwnerID and CreatedAt are index columns;
// Body is the whole document, those fields included.
type Record struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
	Body      json.RawMessage
}

// DocumentStore is a key-value store of JSON documents keyed by id, with a secondary
// index by owner, partitioned by collection.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (*Record, error)
	ListByOwner(ctx context.Context, collection, ownerID string) ([]*Record, error)
	Insert(ctx context.Context, collection string, rec *Record) error
	// Merge shallow-merges the top-level fields of patch into the stored document and
	// returns the result. Fields absent from patch are kept.
	Merge(ctx context.Context, collection, id string, patch json.RawMessage) (*Record, error)
	Delete(ctx context.Context, collection, id string) error
	DeleteByOwner(ctx context.Context, collection, ownerID string) (int64, error)
}

// mergeObjects applies the top-level fields of patch over body.
func mergeObjects(body, patch json.RawMessage) (json.RawMessage, error) {
	var base map[string]json.RawMessage
	if err := json.Unmarshal(body, &base); err != nil {
		return nil, fmt.Errorf("stored document is not a JSON object: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil || fields == nil {
		return nil, ErrInvalidPatch
	}
	if base == nil {
		base = make(map[string]json.RawMessage, len(fields))
	}
	for k, v := range fields {
		base[k] = v
	}
	return json.Marshal(base)
}
