package model

import "time"

// Report represents the complete result of tagging a single evidence document
type Report struct {
	Document  Document  `json:"document"`
	TaggedAt  time.Time `json:"tagged_at"`
	Entities  []Entity  `json:"entities"`
	Mappings  []Mapping `json:"mappings"`
	ClauseSet int       `json:"clause_set_size"` // Number of catalog clauses scanned
}

// Coverage represents an audit-level aggregation of mappings across documents.
// This is what an auditor reads: which clauses have evidence, which do not.
type Coverage struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalClauses          int     `json:"total_clauses"`
	ClausesWithEvidence   int     `json:"clauses_with_evidence"`
	ClausesWithout        int     `json:"clauses_without_evidence"`
	CompliancePercent     float64 `json:"compliance_percentage"`
	CriticalClauses       int     `json:"critical_clauses_count"`
	CriticalCovered       int     `json:"critical_clauses_covered"`
	CriticalCompliancePct float64 `json:"critical_compliance_percentage"`

	TotalMappings   int `json:"total_mappings"`
	AutoTagged      int `json:"auto_tagged_count"`
	VerifiedCount   int `json:"verified_count"`
	SuggestedCount  int `json:"suggested_count"`
	DocumentsTagged int `json:"documents_tagged"`

	Clauses []ClauseCoverage `json:"clauses"`
	Signals []Signal         `json:"signals"`

	LLM *LLMSummary `json:"llm,omitempty"`
}

// ClauseCoverage summarizes the evidence attached to one clause
type ClauseCoverage struct {
	ClauseNumber  string  `json:"clause_number"`
	Title         string  `json:"title,omitempty"`
	Critical      bool    `json:"critical"`
	EvidenceCount int     `json:"evidence_count"`
	VerifiedCount int     `json:"verified_count"`
	BestRule      string  `json:"best_rule,omitempty"`
	MaxConfidence float64 `json:"max_confidence"`
}

// Signal represents a diagnostic finding with transparent supporting data
type Signal struct {
	Type        SignalType     `json:"type"`
	Severity    SignalSeverity `json:"severity"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"` // Formula inputs, counts, ratios
}

// SignalType classifies coverage diagnostics
type SignalType string

const (
	SignalCoverageGap     SignalType = "coverage_gap"     // Clauses with no evidence at all
	SignalCriticalGap     SignalType = "critical_gap"     // Critical clauses without evidence
	SignalUnverifiedLoad  SignalType = "unverified_load"  // Large share of unreviewed auto-tags
	SignalLowConfidence   SignalType = "low_confidence"   // Evidence present but weakly matched
	SignalSuggestionsOnly SignalType = "suggestions_only" // Clauses covered only by suggestions
)

// SignalSeverity indicates the importance of a signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// LLMSummary contains an optional LLM-drafted narrative.
// It never affects tagging or coverage numbers and is clearly separated.
type LLMSummary struct {
	Enabled     bool     `json:"enabled"`
	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	StrictScope bool     `json:"strict_scope"` // Whether clause allowlist enforcement was on
	SummaryMD   string   `json:"summary_md,omitempty"`
	Warnings    []string `json:"warnings,omitempty"` // e.g. clause references outside the allowlist
}
