// Package store persists evidence-to-clause mappings. Any keyed store
// satisfies the contract; this package ships an in-memory implementation and
// a JSON-file-per-document disk implementation.
package store

import (
	"errors"
	"time"

	"github.com/clausetag/clausetag/internal/model"
)

// ErrNotFound is returned when a document or mapping does not exist
var ErrNotFound = errors.New("store: not found")

// Store persists mappings keyed by document ID
type Store interface {
	// ReplaceAuto atomically replaces the document's automatic mappings
	// (auto_rule, auto_ner, suggested) with the given set. Manual and
	// verified mappings are never touched; an incoming mapping for a clause
	// already covered by a preserved mapping is dropped so the one-mapping-
	// per-clause invariant holds. Returns the number of mappings inserted.
	ReplaceAuto(docID string, mappings []model.Mapping) (int, error)

	// Put inserts a single mapping (manual assignment path). Fails silently
	// into a replace when the (document, clause) pair already exists.
	Put(m model.Mapping) error

	// Mappings returns all mappings for a document, or ErrNotFound
	Mappings(docID string) ([]model.Mapping, error)

	// All returns every stored mapping across documents
	All() ([]model.Mapping, error)

	// Documents returns the IDs of all documents with stored mappings
	Documents() ([]string, error)

	// Verify marks the (document, clause) mapping as reviewer-confirmed
	Verify(docID, clauseNumber string, at time.Time) error

	// Delete removes a single (document, clause) mapping
	Delete(docID, clauseNumber string) error
}

// replaceAuto implements the shared delete-then-insert semantics over a
// document's current mapping slice
func replaceAuto(current, incoming []model.Mapping) ([]model.Mapping, int) {
	var kept []model.Mapping
	preserved := make(map[string]bool)

	for _, m := range current {
		if m.Kind.IsAutomatic() && !m.Verified {
			continue
		}
		kept = append(kept, m)
		preserved[m.ClauseNumber] = true
	}

	inserted := 0
	for _, m := range incoming {
		if preserved[m.ClauseNumber] {
			continue
		}
		kept = append(kept, m)
		inserted++
	}

	return kept, inserted
}
