package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type postgresDocumentStore struct {
	db *sql.DB
}

// NewPostgresDocumentStore stores documents in the jsonb column of the documents table.
func NewPostgresDocumentStore(db *sql.DB) DocumentStore {
	return &postgresDocumentStore{db: db}
}

func scanRecord(row interface{ Scan(dest ...interface{}) error }) (*Record, error) {
	var (
		rec       Record
		createdAt int64
		body      []byte
	)
	if err := row.Scan(&rec.ID, &rec.OwnerID, &createdAt, &body); err != nil {
		return nil, err
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	rec.Body = body
	return &rec, nil
}

func (s *postgresDocumentStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	query := `
		SELECT id, owner_id, created_at, body
		FROM documents
		WHERE collection = $1 AND id = $2`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *postgresDocumentStore) ListByOwner(ctx context.Context, collection, ownerID string) ([]*Record, error) {
	query := `
		SELECT id, owner_id, created_at, body
		FROM documents
		WHERE collection = $1 AND owner_id = $2
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, collection, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *postgresDocumentStore) Insert(ctx context.Context, collection string, rec *Record) error {
	query := `
		INSERT INTO documents (collection, id, owner_id, created_at, body)
		VALUES ($1, $2, $3, $4, $5::jsonb)`

	// lib/pq sends []byte as bytea, jsonb wants text.
	_, err := s.db.ExecContext(ctx, query,
		collection, rec.ID, rec.OwnerID, rec.CreatedAt.UnixMilli(), string(rec.Body),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDocumentConflict
		}
		return err
	}
	return nil
}

func (s *postgresDocumentStore) Merge(ctx context.Context, collection, id string, patch json.RawMessage) (*Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil || fields == nil {
		return nil, ErrInvalidPatch
	}

	query := `
		UPDATE documents
		SET body = body || $3::jsonb
		WHERE collection = $1 AND id = $2
		RETURNING id, owner_id, created_at, body`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, collection, id, string(patch)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return rec, nil
}

func (s *postgresDocumentStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	result, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDocumentNotFound)
}

func (s *postgresDocumentStore) DeleteByOwner(ctx context.Context, collection, ownerID string) (int64, error) {
	query := `DELETE FROM documents WHERE collection = $1 AND owner_id = $2`

	result, err := s.db.ExecContext(ctx, query, collection, ownerID)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n, nil
}
