// Package catalog loads the clause catalog that the classifier scans.
// The catalog is externally maintained reference data: standards, clauses,
// keywords, and compliance levels, kept in a YAML file.
package catalog

import (
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"

	"github.com/clausetag/clausetag/internal/model"
)

// Catalog is an immutable, loaded clause catalog
type Catalog struct {
	standards []model.Standard
	clauses   []model.Clause
	byNumber  map[string]model.Clause
}

// Standards returns the standards in file order
func (c *Catalog) Standards() []model.Standard {
	return c.standards
}

// Clauses returns the clauses in file order
func (c *Catalog) Clauses() []model.Clause {
	return c.clauses
}

// Clause looks up a clause by number
func (c *Catalog) Clause(number string) (model.Clause, bool) {
	clause, ok := c.byNumber[number]
	return clause, ok
}

// ClausesForStandard returns the clauses under a standard, in file order
func (c *Catalog) ClausesForStandard(standardNumber string) []model.Clause {
	var out []model.Clause
	for _, clause := range c.clauses {
		if clause.StandardNumber == standardNumber {
			out = append(out, clause)
		}
	}
	return out
}

// Len returns the number of clauses
func (c *Catalog) Len() int {
	return len(c.clauses)
}

// file is the on-disk catalog shape
type file struct {
	Standards []model.Standard `yaml:"standards"`
	Clauses   []clauseEntry    `yaml:"clauses"`
}

type clauseEntry struct {
	model.Clause `yaml:",inline"`
	Active       *bool `yaml:"active"` // Defaults to true when omitted
}

// Loader loads catalogs from YAML, optionally caching the parsed result so
// batch runs do not reparse the file per document
type Loader struct {
	cache      *gocache.Cache
	ttl        time.Duration
	activeOnly bool
}

// NewLoader creates a catalog loader. When cacheEnabled is false every Load
// call reads the file fresh.
func NewLoader(cfg model.CatalogConfig, cacheEnabled bool) *Loader {
	l := &Loader{
		ttl:        cfg.CacheTTL,
		activeOnly: cfg.ActiveOnly,
	}
	if cacheEnabled {
		l.cache = gocache.New(cfg.CacheTTL, 10*time.Minute)
	}
	return l
}

// Load reads and parses the catalog at path
func (l *Loader) Load(path string) (*Catalog, error) {
	if l.cache != nil {
		if cached, found := l.cache.Get(path); found {
			return cached.(*Catalog), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	cat, err := Parse(data, l.activeOnly)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if l.cache != nil {
		l.cache.Set(path, cat, l.ttl)
	}

	return cat, nil
}

// Parse builds a catalog from raw YAML
func Parse(data []byte, activeOnly bool) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	cat := &Catalog{
		standards: f.Standards,
		byNumber:  make(map[string]model.Clause),
	}

	for _, entry := range f.Clauses {
		if activeOnly && entry.Active != nil && !*entry.Active {
			continue
		}
		if entry.Number == "" {
			return nil, fmt.Errorf("clause with empty number (title %q)", entry.Title)
		}
		cat.clauses = append(cat.clauses, entry.Clause)
		cat.byNumber[entry.Number] = entry.Clause
	}

	return cat, nil
}
