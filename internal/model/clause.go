package model

// Standard represents a top-level compliance standard in the catalog
type Standard struct {
	Number string `json:"number" yaml:"number"` // e.g. "1"
	Title  string `json:"title" yaml:"title"`
}

// Clause represents an individual clause within a compliance standard.
// Clauses are read-only reference data owned by the catalog.
type Clause struct {
	Number           string   `json:"number" yaml:"number"`                                           // e.g. "1.8.1"
	StandardNumber   string   `json:"standard_number,omitempty" yaml:"standard_number,omitempty"`     // Parent standard, may be empty
	Title            string   `json:"title" yaml:"title"`
	Keywords         []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`                   // Key terms for text matching
	ComplianceLevel  string   `json:"compliance_level,omitempty" yaml:"compliance_level,omitempty"`   // critical, essential, recommended
	EvidenceRequired []string `json:"evidence_required,omitempty" yaml:"evidence_required,omitempty"` // Types of evidence expected
}

// IsCritical reports whether the clause must be covered for compliance
func (c Clause) IsCritical() bool {
	return c.ComplianceLevel == "critical"
}
