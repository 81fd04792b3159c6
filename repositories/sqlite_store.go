package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type sqliteDocumentStore struct {
	db *sql.DB
}

// NewSQLiteDocumentStore stores documents as JSON text in a SQLite file. Merges run in Go
// inside a transaction, so the store does not depend on the JSON1 extension.
func NewSQLiteDocumentStore(db *sql.DB) DocumentStore {
	return &sqliteDocumentStore{db: db}
}

func (s *sqliteDocumentStore) get(ctx context.Context, exec SQLExecutor, collection, id string) (*Record, error) {
	query := `
		SELECT id, owner_id, created_at, body
		FROM documents
		WHERE collection = ? AND id = ?`

	rec, err := scanRecord(exec.QueryRowContext(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *sqliteDocumentStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	return s.get(ctx, s.db, collection, id)
}

func (s *sqliteDocumentStore) ListByOwner(ctx context.Context, collection, ownerID string) ([]*Record, error) {
	query := `
		SELECT id, owner_id, created_at, body
		FROM documents
		WHERE collection = ? AND owner_id = ?
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

func (s *sqliteDocumentStore) Insert(ctx context.Context, collection string, rec *Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.get(ctx, tx, collection, rec.ID); err == nil {
		return ErrDocumentConflict
	} else if !errors.Is(err, ErrDocumentNotFound) {
		return err
	}

	query := `
		INSERT INTO documents (collection, id, owner_id, created_at, body)
		VALUES (?, ?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, query,
		collection, rec.ID, rec.OwnerID, rec.CreatedAt.UnixMilli(), string(rec.Body),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqliteDocumentStore) Merge(ctx context.Context, collection, id string, patch json.RawMessage) (*Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := s.get(ctx, tx, collection, id)
	if err != nil {
		return nil, err
	}
	merged, err := mergeObjects(rec.Body, patch)
	if err != nil {
		return nil, err
	}

	query := `UPDATE documents SET body = ? WHERE collection = ? AND id = ?`
	result, err := tx.ExecContext(ctx, query, string(merged), collection, id)
	if err != nil {
		return nil, fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	if err := checkAffectedRows(result, ErrDocumentNotFound); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit merge: %w", err)
	}

	rec.Body = merged
	return rec, nil
}

func (s *sqliteDocumentStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = ? AND id = ?`

	result, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDocumentNotFound)
}

func (s *sqliteDocumentStore) DeleteByOwner(ctx context.Context, collection, ownerID string) (int64, error) {
	query := `DELETE FROM documents WHERE collection = ? AND owner_id = ?`

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
