package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newDocumentMeta fills in the id and creation time a document is missing.
// Creation time is kept at millisecond precision, the resolution of the created_at column.
func newDocumentMeta(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
	*createdAt = createdAt.Truncate(time.Millisecond)
}

func encodeDocument(v interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return body, nil
}

func decodeDocument[T any](rec *Record) (*T, error) {
	var v T
	if err := json.Unmarshal(rec.Body, &v); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", rec.ID, err)
	}
	return &v, nil
}

func decodeDocuments[T any](records []*Record) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		v, err := decodeDocument[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// translateStoreError swaps the generic store sentinels for the entity ones.
func translateStoreError(err, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDocumentNotFound):
		return notFound
	case errors.Is(err, ErrDocumentConflict):
		return conflict
	}
	return err
}
