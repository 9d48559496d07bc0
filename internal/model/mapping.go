package model

import "time"

// MappingKind records how an evidence-to-clause mapping was produced
type MappingKind string

const (
	MappingAutoRule  MappingKind = "auto_rule" // Rule-based auto-tag
	MappingAutoNER   MappingKind = "auto_ner"  // Entity-driven auto-tag
	MappingSuggested MappingKind = "suggested" // Low-confidence suggestion for review
	MappingManual    MappingKind = "manual"    // Assigned by a human reviewer
)

// IsAutomatic reports whether the mapping was produced by a tagging run.
// Automatic mappings are superseded (deleted and reinserted) by the next run;
// manual mappings are never touched.
func (k MappingKind) IsAutomatic() bool {
	switch k {
	case MappingAutoRule, MappingAutoNER, MappingSuggested:
		return true
	}
	return false
}

// Mapping links an evidence document to a compliance clause with the
// confidence and provenance of the match
type Mapping struct {
	DocumentID      string          `json:"document_id"`
	ClauseNumber    string          `json:"clause_number"`
	Kind            MappingKind     `json:"mapping_kind"`
	Confidence      float64         `json:"confidence"` // 0.0-1.0
	MatchedEntities []Entity        `json:"matched_entities,omitempty"`
	MatchedKeywords []string        `json:"matched_keywords,omitempty"`
	RuleName        string          `json:"rule_name"`
	Metadata        MappingMetadata `json:"metadata"`
	Verified        bool            `json:"verified,omitempty"` // Confirmed by a human reviewer
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
}

// MappingMetadata captures run-level context for a mapping
type MappingMetadata struct {
	ProcessedAt time.Time `json:"processed_at"`
	TextLength  int       `json:"text_length"`
	EntityCount int       `json:"entity_count"`
}
