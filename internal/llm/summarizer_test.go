package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/clausetag/clausetag/internal/model"
)

type fakeProvider struct {
	summary string
	err     error
	lastReq SummarizeRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &SummarizeResponse{Summary: f.summary, Model: "fake-model"}, nil
}

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func testCoverage() model.Coverage {
	return model.Coverage{
		TotalClauses:        2,
		ClausesWithEvidence: 1,
		CompliancePercent:   50,
		Clauses: []model.ClauseCoverage{
			{ClauseNumber: "1.1", Title: "Training strategies", EvidenceCount: 2},
			{ClauseNumber: "2.1", Title: "Learner support"},
		},
	}
}

func TestSummarizer_StrictScopeFlagsOutOfScopeClauses(t *testing.T) {
	provider := &fakeProvider{
		summary: "Clause 1.1 is supported by 2 documents. Clause 9.9 is also fine.",
	}
	s := &Summarizer{
		provider: provider,
		config:   model.LLMConfig{StrictScope: true},
	}

	summary, err := s.Summarize(context.Background(), testCoverage())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if !summary.Enabled || summary.Provider != "fake" {
		t.Errorf("Unexpected summary envelope: %+v", summary)
	}
	if len(summary.Warnings) != 1 {
		t.Fatalf("Expected 1 out-of-scope warning, got %v", summary.Warnings)
	}
	if !strings.Contains(summary.Warnings[0], "9.9") {
		t.Errorf("Expected warning to name clause 9.9, got %q", summary.Warnings[0])
	}
}

func TestSummarizer_InScopeReferencesPassClean(t *testing.T) {
	provider := &fakeProvider{
		summary: "Clause 1.1 has evidence; no evidence is mapped to clause 2.1.",
	}
	s := &Summarizer{
		provider: provider,
		config:   model.LLMConfig{StrictScope: true},
	}

	summary, err := s.Summarize(context.Background(), testCoverage())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("Expected no warnings for in-scope references, got %v", summary.Warnings)
	}
}

func TestSummarizer_StrictScopeOffSkipsChecks(t *testing.T) {
	provider := &fakeProvider{summary: "Clause 9.9 reference goes unchecked."}
	s := &Summarizer{
		provider: provider,
		config:   model.LLMConfig{StrictScope: false},
	}

	summary, err := s.Summarize(context.Background(), testCoverage())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("Expected no warnings with strict scope off, got %v", summary.Warnings)
	}
}

func TestSummarizer_AllowlistBuiltFromCoverage(t *testing.T) {
	provider := &fakeProvider{summary: "ok"}
	s := &Summarizer{provider: provider, config: model.LLMConfig{}}

	if _, err := s.Summarize(context.Background(), testCoverage()); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	want := []string{"1.1", "2.1"}
	if len(provider.lastReq.AllowedClauses) != len(want) {
		t.Fatalf("Expected allowlist %v, got %v", want, provider.lastReq.AllowedClauses)
	}
	for i := range want {
		if provider.lastReq.AllowedClauses[i] != want[i] {
			t.Errorf("Allowlist entry %d: expected %s, got %s", i, want[i], provider.lastReq.AllowedClauses[i])
		}
	}
}

func TestSummarizer_ProviderErrorWrapped(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	s := &Summarizer{provider: provider, config: model.LLMConfig{}}

	_, err := s.Summarize(context.Background(), testCoverage())
	if err == nil {
		t.Fatal("Expected provider error to surface")
	}
	if !strings.Contains(err.Error(), "fake") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Expected wrapped provider error, got %v", err)
	}
}

func TestSummarizer_DisabledWhenNoProvider(t *testing.T) {
	s, err := NewSummarizer(model.LLMConfig{Provider: ""})
	if err != nil {
		t.Fatalf("NewSummarizer failed: %v", err)
	}
	if s.IsEnabled() {
		t.Error("Expected summarizer disabled with no provider configured")
	}

	summary, err := s.Summarize(context.Background(), testCoverage())
	if err != nil || summary != nil {
		t.Errorf("Expected nil summary and nil error when disabled, got %v / %v", summary, err)
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	if _, err := NewProvider(model.LLMConfig{Provider: "mystery"}); err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestBuildPrompt(t *testing.T) {
	cov := testCoverage()
	cov.Signals = []model.Signal{
		{Type: model.SignalCoverageGap, Description: "1 of 2 clauses have no evidence"},
	}

	prompt := BuildPrompt(cov, []string{"1.1", "2.1"})

	if !strings.Contains(prompt, "- 1.1") || !strings.Contains(prompt, "- 2.1") {
		t.Error("Expected the allowlist inlined in the prompt")
	}
	if !strings.Contains(prompt, "50.0%") {
		t.Error("Expected the compliance percentage in the prompt")
	}
	if !strings.Contains(prompt, "1 of 2 clauses have no evidence") {
		t.Error("Expected signals in the prompt")
	}
}

func TestBuildPrompt_AllowlistCapped(t *testing.T) {
	var clauses []string
	for i := 0; i < 60; i++ {
		clauses = append(clauses, "1."+string(rune('0'+i%10)))
	}

	prompt := BuildPrompt(model.Coverage{}, clauses)

	if !strings.Contains(prompt, "and 20 more clauses") {
		t.Error("Expected the allowlist capped at 40 entries")
	}
}
