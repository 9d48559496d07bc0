package store

import (
	"sort"
	"sync"
	"time"

	"github.com/clausetag/clausetag/internal/model"
)

// MemoryStore keeps mappings in memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]model.Mapping
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]model.Mapping),
	}
}

// ReplaceAuto replaces the document's automatic mappings
func (s *MemoryStore) ReplaceAuto(docID string, mappings []model.Mapping) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, inserted := replaceAuto(s.docs[docID], mappings)
	if len(kept) == 0 {
		delete(s.docs, docID)
	} else {
		s.docs[docID] = kept
	}
	return inserted, nil
}

// Put inserts or replaces a single mapping
func (s *MemoryStore) Put(m model.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.docs[m.DocumentID]
	for i, existing := range current {
		if existing.ClauseNumber == m.ClauseNumber {
			current[i] = m
			return nil
		}
	}
	s.docs[m.DocumentID] = append(current, m)
	return nil
}

// Mappings returns the document's mappings
func (s *MemoryStore) Mappings(docID string) ([]model.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mappings, ok := s.docs[docID]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]model.Mapping, len(mappings))
	copy(out, mappings)
	return out, nil
}

// All returns every stored mapping, grouped by document in sorted ID order
func (s *MemoryStore) All() ([]model.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []model.Mapping
	for _, id := range ids {
		out = append(out, s.docs[id]...)
	}
	return out, nil
}

// Documents returns sorted document IDs
func (s *MemoryStore) Documents() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Verify marks a mapping as reviewer-confirmed
func (s *MemoryStore) Verify(docID, clauseNumber string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.docs[docID]
	for i := range current {
		if current[i].ClauseNumber == clauseNumber {
			current[i].Verified = true
			current[i].VerifiedAt = &at
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a single mapping
func (s *MemoryStore) Delete(docID, clauseNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[docID]
	if !ok {
		return ErrNotFound
	}
	for i := range current {
		if current[i].ClauseNumber == clauseNumber {
			s.docs[docID] = append(current[:i], current[i+1:]...)
			if len(s.docs[docID]) == 0 {
				delete(s.docs, docID)
			}
			return nil
		}
	}
	return ErrNotFound
}
