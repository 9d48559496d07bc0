// Package llm drafts optional narrative summaries of audit coverage reports.
// Summaries are informational only: they are generated after aggregation and
// never feed back into tagging or compliance numbers.
package llm

import (
	"context"
	"fmt"

	"github.com/clausetag/clausetag/internal/model"
)

// Provider defines the interface for LLM backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize drafts a coverage summary under strict scope rules
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks whether the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summary generation
type SummarizeRequest struct {
	// Coverage is the aggregated audit report to summarize
	Coverage model.Coverage

	// AllowedClauses is the STRICT allowlist of clause numbers the model may
	// reference. Anything outside it is flagged as a warning.
	AllowedClauses []string

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model is the provider-specific model name
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the drafted summary
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// BuildPrompt constructs the default coverage-summary prompt with the clause
// allowlist inlined
func BuildPrompt(cov model.Coverage, allowedClauses []string) string {
	prompt := fmt.Sprintf(`You are drafting a summary of an RTO compliance evidence coverage report.
The report describes how well uploaded evidence covers compliance clauses - it NEVER asserts that the organisation is compliant.

CRITICAL RULES:
1. You may ONLY reference clause numbers from this list:
%s

2. Do not invent clause numbers, standards, or evidence that is not in the report.
3. Describe coverage, not compliance. Use phrases like:
   - "Clause X is supported by N evidence documents..."
   - "No evidence is mapped to..."
   - "Coverage for critical clauses stands at..."
4. Auto-tagged mappings are heuristic; note when coverage rests on unverified tags.

Report figures:
- Compliance coverage: %.1f%% (%d of %d clauses with evidence)
- Critical clause coverage: %d of %d
- Mappings: %d total, %d auto-tagged, %d verified
- Documents tagged: %d

Key signals:
`, joinClauses(allowedClauses),
		cov.CompliancePercent, cov.ClausesWithEvidence, cov.TotalClauses,
		cov.CriticalCovered, cov.CriticalClauses,
		cov.TotalMappings, cov.AutoTagged, cov.VerifiedCount,
		cov.DocumentsTagged)

	for i, signal := range cov.Signals {
		if i >= 3 {
			break
		}
		prompt += fmt.Sprintf("- %s: %s\n", signal.Type, signal.Description)
	}

	prompt += "\nWrite a 3-5 sentence summary an auditor could paste into a working file."
	return prompt
}

func joinClauses(clauses []string) string {
	if len(clauses) == 0 {
		return "(no clauses in scope)"
	}
	result := ""
	for i, c := range clauses {
		if i >= 40 { // Cap the allowlist to keep the prompt small
			result += fmt.Sprintf("\n... and %d more clauses", len(clauses)-40)
			break
		}
		result += fmt.Sprintf("\n- %s", c)
	}
	return result
}
