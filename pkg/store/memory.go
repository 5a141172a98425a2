package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/facade/pkg/errors"
)

// MemoryStore keeps records in memory. Useful for tests and for
// serving without persistence.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]*Record)}
}

// Put inserts or replaces a record by ID.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if err := errors.ValidateRecordID(rec.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.recs[rec.ID] = &cp
	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodePlanNotFound, "plan %s not found", id)
	}
	cp := *rec
	return &cp, nil
}

// List returns all records, newest first, without plan bodies.
func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]*Record, 0, len(s.recs))
	for _, rec := range s.recs {
		cp := *rec
		cp.Plan = nil
		recs = append(recs, &cp)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return errors.New(errors.ErrCodePlanNotFound, "plan %s not found", id)
	}
	delete(s.recs, id)
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
