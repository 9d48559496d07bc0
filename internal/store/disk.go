package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clausetag/clausetag/internal/model"
)

// DiskStore persists mappings as one JSON file per document. Writes go
// through a temp file and rename so a failed run leaves the prior mapping
// set intact rather than partially replaced.
type DiskStore struct {
	dir string
	mu  sync.Mutex
}

// docRecord is the on-disk shape for one document's mappings
type docRecord struct {
	DocumentID string          `json:"document_id"`
	SavedAt    time.Time       `json:"saved_at"`
	Mappings   []model.Mapping `json:"mappings"`
}

// NewDiskStore creates a disk store rooted at dir
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// ReplaceAuto replaces the document's automatic mappings
func (s *DiskStore) ReplaceAuto(docID string, mappings []model.Mapping) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(docID)
	if err != nil && err != ErrNotFound {
		return 0, err
	}

	kept, inserted := replaceAuto(rec.Mappings, mappings)
	rec.DocumentID = docID
	rec.Mappings = kept

	if len(kept) == 0 {
		if err := s.remove(docID); err != nil {
			return 0, err
		}
		return 0, nil
	}

	if err := s.write(docID, rec); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Put inserts or replaces a single mapping
func (s *DiskStore) Put(m model.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(m.DocumentID)
	if err != nil && err != ErrNotFound {
		return err
	}
	rec.DocumentID = m.DocumentID

	replaced := false
	for i, existing := range rec.Mappings {
		if existing.ClauseNumber == m.ClauseNumber {
			rec.Mappings[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		rec.Mappings = append(rec.Mappings, m)
	}

	return s.write(m.DocumentID, rec)
}

// Mappings returns the document's mappings
func (s *DiskStore) Mappings(docID string) ([]model.Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(docID)
	if err != nil {
		return nil, err
	}
	return rec.Mappings, nil
}

// All returns every stored mapping across documents
func (s *DiskStore) All() ([]model.Mapping, error) {
	docs, err := s.Documents()
	if err != nil {
		return nil, err
	}

	var out []model.Mapping
	for _, id := range docs {
		mappings, err := s.Mappings(id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, mappings...)
	}
	return out, nil
}

// Documents returns the IDs of all documents with a record on disk
func (s *DiskStore) Documents() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var rec docRecord
		if err := json.Unmarshal(data, &rec); err != nil || rec.DocumentID == "" {
			continue
		}
		ids = append(ids, rec.DocumentID)
	}

	sort.Strings(ids)
	return ids, nil
}

// Verify marks a mapping as reviewer-confirmed
func (s *DiskStore) Verify(docID, clauseNumber string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(docID)
	if err != nil {
		return err
	}

	for i := range rec.Mappings {
		if rec.Mappings[i].ClauseNumber == clauseNumber {
			rec.Mappings[i].Verified = true
			rec.Mappings[i].VerifiedAt = &at
			return s.write(docID, rec)
		}
	}
	return ErrNotFound
}

// Delete removes a single mapping
func (s *DiskStore) Delete(docID, clauseNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(docID)
	if err != nil {
		return err
	}

	for i := range rec.Mappings {
		if rec.Mappings[i].ClauseNumber == clauseNumber {
			rec.Mappings = append(rec.Mappings[:i], rec.Mappings[i+1:]...)
			if len(rec.Mappings) == 0 {
				return s.remove(docID)
			}
			return s.write(docID, rec)
		}
	}
	return ErrNotFound
}

func (s *DiskStore) read(docID string) (docRecord, error) {
	data, err := os.ReadFile(s.path(docID))
	if err != nil {
		if os.IsNotExist(err) {
			return docRecord{}, ErrNotFound
		}
		return docRecord{}, fmt.Errorf("read record: %w", err)
	}

	var rec docRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return docRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func (s *DiskStore) write(docID string, rec docRecord) error {
	rec.SavedAt = time.Now().UTC()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	path := s.path(docID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace record: %w", err)
	}
	return nil
}

func (s *DiskStore) remove(docID string) error {
	err := os.Remove(s.path(docID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove record: %w", err)
	}
	return nil
}

// path generates the file path for a document ID
func (s *DiskStore) path(docID string) string {
	hash := sha256.Sum256([]byte(docID))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:16])+".json")
}
