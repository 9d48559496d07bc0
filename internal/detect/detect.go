// Package detect implements lightweight regex-based entity detection for
// compliance evidence text. No deeper NLP is performed; the patterns cover
// the handful of mention shapes auditors actually search for.
package detect

import (
	"regexp"

	"github.com/clausetag/clausetag/internal/model"
)

// Detector extracts entity mentions from raw document text
type Detector struct {
	standard *regexp.Regexp
	clause   *regexp.Regexp
	dates    []*regexp.Regexp
	qual     *regexp.Regexp
	orgs     []*regexp.Regexp
	policy   *regexp.Regexp
}

// orgKeywords are sector organisation terms matched as whole words
var orgKeywords = []string{"ASQA", "RTO", "Training Organisation", "VET", "AQF", "TGA"}

// NewDetector creates a detector with all patterns compiled
func NewDetector() *Detector {
	orgs := make([]*regexp.Regexp, 0, len(orgKeywords))
	for _, kw := range orgKeywords {
		orgs = append(orgs, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}

	return &Detector{
		standard: regexp.MustCompile(`(?i)\b(?:Standard|SNR|Std\.?)\s+(\d+(?:\.\d+)?)\b`),
		clause:   regexp.MustCompile(`\b(?:Clause\s+)?(\d+\.\d+(?:\.\d+)?)\b`),
		dates: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
			regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
		},
		qual:   regexp.MustCompile(`\b[A-Z]{3}\d{5}\b`),
		orgs:   orgs,
		policy: regexp.MustCompile(`(?i)\b(?:Policy|Procedure)\s+([A-Z0-9-]+)\b`),
	}
}

// Detect extracts all entity mentions from text. It is a pure function of
// its input: deterministic, never fails, and returns an empty slice when
// nothing matches. Pattern groups run in a fixed order and results are
// de-duplicated on (text, kind, start), first occurrence kept.
func (d *Detector) Detect(text string) []model.Entity {
	var entities []model.Entity

	entities = append(entities, d.matchCaptured(d.standard, text, model.EntityStandard)...)
	entities = append(entities, d.matchCaptured(d.clause, text, model.EntityClause)...)

	for _, pattern := range d.dates {
		entities = append(entities, d.matchPlain(pattern, text, model.EntityDate)...)
	}

	entities = append(entities, d.matchPlain(d.qual, text, model.EntityQualification)...)

	for _, pattern := range d.orgs {
		entities = append(entities, d.matchPlain(pattern, text, model.EntityOrg)...)
	}

	entities = append(entities, d.matchCaptured(d.policy, text, model.EntityPolicy)...)

	return dedupeEntities(entities)
}

// matchCaptured collects matches for patterns with a single capture group,
// storing the group as the entity's normalized value
func (d *Detector) matchCaptured(pattern *regexp.Regexp, text string, kind model.EntityKind) []model.Entity {
	var entities []model.Entity
	for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
		entities = append(entities, model.Entity{
			Text:  text[m[0]:m[1]],
			Kind:  kind,
			Start: m[0],
			End:   m[1],
			Value: text[m[2]:m[3]],
		})
	}
	return entities
}

// matchPlain collects matches for patterns without a capture group
func (d *Detector) matchPlain(pattern *regexp.Regexp, text string, kind model.EntityKind) []model.Entity {
	var entities []model.Entity
	for _, m := range pattern.FindAllStringIndex(text, -1) {
		entities = append(entities, model.Entity{
			Text:  text[m[0]:m[1]],
			Kind:  kind,
			Start: m[0],
			End:   m[1],
		})
	}
	return entities
}

type entityKey struct {
	text  string
	kind  model.EntityKind
	start int
}

// dedupeEntities removes exact repeats while preserving first-seen order
func dedupeEntities(entities []model.Entity) []model.Entity {
	seen := make(map[entityKey]bool)
	var unique []model.Entity

	for _, e := range entities {
		key := entityKey{text: e.Text, kind: e.Kind, start: e.Start}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, e)
	}

	return unique
}
