package llm

import (
	"context"
	"fmt"
	"regexp"

	"github.com/clausetag/clausetag/internal/model"
)

// clauseRefPattern matches clause-number-shaped references in summary text
var clauseRefPattern = regexp.MustCompile(`\b\d+\.\d+(?:\.\d+)?\b`)

// Summarizer generates coverage summaries and enforces the clause allowlist
type Summarizer struct {
	provider Provider
	config   model.LLMConfig
}

// NewSummarizer creates a summarizer from configuration. Returns a disabled
// summarizer (IsEnabled false) when no provider is configured.
func NewSummarizer(config model.LLMConfig) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// Summarize drafts an LLM note for the coverage report. When strict scope is
// on, clause references outside the allowlist are reported as warnings, not
// errors: the summary still ships, flagged for the reviewer.
func (s *Summarizer) Summarize(ctx context.Context, cov model.Coverage) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	allowed := make([]string, 0, len(cov.Clauses))
	allowedSet := make(map[string]bool, len(cov.Clauses))
	for _, c := range cov.Clauses {
		allowed = append(allowed, c.ClauseNumber)
		allowedSet[c.ClauseNumber] = true
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Coverage:       cov,
		AllowedClauses: allowed,
		Model:          s.config.Model,
		MaxTokens:      s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s summarize: %w", s.provider.Name(), err)
	}

	summary := &model.LLMSummary{
		Enabled:     true,
		Provider:    s.provider.Name(),
		Model:       resp.Model,
		StrictScope: s.config.StrictScope,
		SummaryMD:   resp.Summary,
	}

	if s.config.StrictScope {
		for _, ref := range clauseRefPattern.FindAllString(resp.Summary, -1) {
			if !allowedSet[ref] {
				summary.Warnings = append(summary.Warnings,
					fmt.Sprintf("summary references clause %s which is not in the report scope", ref))
			}
		}
	}

	return summary, nil
}
