package repositories

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

type memoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*Record
}

// NewMemoryDocumentStore returns a process-local store. Data does not survive a restart.
func NewMemoryDocumentStore() DocumentStore {
	return &memoryDocumentStore{collections: make(map[string]map[string]*Record)}
}

func cloneRecord(rec *Record) *Record {
	out := *rec
	out.Body = append(json.RawMessage(nil), rec.Body...)
	return &out
}

func (s *memoryDocumentStore) Get(ctx context.Context, collection, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return cloneRecord(rec), nil
}

func (s *memoryDocumentStore) ListByOwner(ctx context.Context, collection, ownerID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*Record, 0)
	for _, rec := range s.collections[collection] {
		if rec.OwnerID == ownerID {
			records = append(records, cloneRecord(rec))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (s *memoryDocumentStore) Insert(ctx context.Context, collection string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*Record)
		s.collections[collection] = docs
	}
	if _, exists := docs[rec.ID]; exists {
		return ErrDocumentConflict
	}
	docs[rec.ID] = cloneRecord(rec)
	return nil
}

func (s *memoryDocumentStore) Merge(ctx context.Context, collection, id string, patch json.RawMessage) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	merged, err := mergeObjects(rec.Body, patch)
	if err != nil {
		return nil, err
	}
	rec.Body = merged
	return cloneRecord(rec), nil
}

func (s *memoryDocumentStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return ErrDocumentNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *memoryDocumentStore) DeleteByOwner(ctx context.Context, collection, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, rec := range s.collections[collection] {
		if rec.OwnerID == ownerID {
			delete(s.collections[collection], id)
			n++
		}
	}
	return n, nil
}
