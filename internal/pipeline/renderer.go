package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/clausetag/clausetag/internal/model"
)

// Renderer writes tagging reports and coverage summaries to JSON, Markdown,
// and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes v as indented JSON to path
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderReportMarkdown writes a per-document tagging report to path
func (r *Renderer) RenderReportMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Evidence Tagging Report\n\n")
	fmt.Fprintf(&b, "- **Document:** %s\n", report.Document.ID)
	fmt.Fprintf(&b, "- **Status:** %s\n", report.Document.Status)
	fmt.Fprintf(&b, "- **Tagged at:** %s\n", report.TaggedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Text length:** %d characters\n", report.Document.TextLength)
	fmt.Fprintf(&b, "- **Clauses scanned:** %d\n\n", report.ClauseSet)

	fmt.Fprintf(&b, "## Detected Entities (%d)\n\n", len(report.Entities))
	if len(report.Entities) == 0 {
		b.WriteString("None.\n\n")
	} else {
		b.WriteString("| Entity | Type | Value | Offset |\n")
		b.WriteString("|--------|------|-------|--------|\n")
		for _, e := range report.Entities {
			fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", e.Text, e.Kind, e.Value, e.Start)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Clause Mappings (%d)\n\n", len(report.Mappings))
	if len(report.Mappings) == 0 {
		b.WriteString("No clauses matched.\n\n")
	} else {
		b.WriteString("| Clause | Kind | Confidence | Rule | Keywords |\n")
		b.WriteString("|--------|------|------------|------|----------|\n")
		for _, m := range report.Mappings {
			fmt.Fprintf(&b, "| %s | %s | %.2f | %s | %s |\n",
				m.ClauseNumber, m.Kind, m.Confidence, m.RuleName,
				strings.Join(m.MatchedKeywords, ", "))
		}
		b.WriteString("\n")
	}

	r.footer(&b)
	return writeFile(path, b.String())
}

// RenderCoverageMarkdown writes an audit coverage report to path
func (r *Renderer) RenderCoverageMarkdown(cov *model.Coverage, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Audit Coverage Report\n\n")
	fmt.Fprintf(&b, "- **Generated:** %s\n", cov.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Compliance:** %.1f%% (%d of %d clauses with evidence)\n",
		cov.CompliancePercent, cov.ClausesWithEvidence, cov.TotalClauses)
	if cov.CriticalClauses > 0 {
		fmt.Fprintf(&b, "- **Critical compliance:** %.1f%% (%d of %d)\n",
			cov.CriticalCompliancePct, cov.CriticalCovered, cov.CriticalClauses)
	}
	fmt.Fprintf(&b, "- **Documents tagged:** %d\n", cov.DocumentsTagged)
	fmt.Fprintf(&b, "- **Mappings:** %d total, %d auto-tagged, %d verified, %d suggested\n\n",
		cov.TotalMappings, cov.AutoTagged, cov.VerifiedCount, cov.SuggestedCount)

	if len(cov.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, s := range cov.Signals {
			fmt.Fprintf(&b, "- **[%s] %s** — %s\n", s.Severity, s.Type, s.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Clause Coverage\n\n")
	b.WriteString("| Clause | Title | Critical | Evidence | Verified | Best rule | Max conf |\n")
	b.WriteString("|--------|-------|----------|----------|----------|-----------|----------|\n")
	for _, c := range cov.Clauses {
		critical := ""
		if c.Critical {
			critical = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %s | %.2f |\n",
			c.ClauseNumber, c.Title, critical, c.EvidenceCount, c.VerifiedCount,
			c.BestRule, c.MaxConfidence)
	}
	b.WriteString("\n")

	if cov.LLM != nil && cov.LLM.Enabled {
		b.WriteString("## LLM Summary (informational only, does not affect coverage)\n\n")
		b.WriteString(cov.LLM.SummaryMD)
		b.WriteString("\n\n")
		for _, w := range cov.LLM.Warnings {
			fmt.Fprintf(&b, "> Warning: %s\n", w)
		}
	}

	r.footer(&b)
	return writeFile(path, b.String())
}

// RenderSummary prints a short tagging summary to stdout
func (r *Renderer) RenderSummary(result *TagResult) {
	report := result.Report
	fmt.Printf("\nDocument:  %s\n", report.Document.ID)
	fmt.Printf("Status:    %s\n", report.Document.Status)
	fmt.Printf("Entities:  %d\n", len(report.Entities))
	fmt.Printf("Mappings:  %d created\n", result.Created)

	for _, m := range report.Mappings {
		verified := ""
		if m.Verified {
			verified = " (verified)"
		}
		fmt.Printf("  clause %-8s %.2f  %s  [%s]%s\n",
			m.ClauseNumber, m.Confidence, m.Kind, m.RuleName, verified)
	}
	fmt.Println()
}

// RenderCoverageSummary prints a short coverage summary to stdout
func (r *Renderer) RenderCoverageSummary(cov *model.Coverage) {
	fmt.Printf("\nCompliance:  %.1f%% (%d/%d clauses)\n",
		cov.CompliancePercent, cov.ClausesWithEvidence, cov.TotalClauses)
	if cov.CriticalClauses > 0 {
		fmt.Printf("Critical:    %.1f%% (%d/%d clauses)\n",
			cov.CriticalCompliancePct, cov.CriticalCovered, cov.CriticalClauses)
	}
	fmt.Printf("Mappings:    %d across %d documents\n", cov.TotalMappings, cov.DocumentsTagged)

	for _, s := range cov.Signals {
		fmt.Printf("  [%s] %s\n", s.Severity, s.Description)
	}
	fmt.Println()
}

func (r *Renderer) footer(b *strings.Builder) {
	if !r.includeFooter {
		return
	}
	b.WriteString("---\n")
	b.WriteString("Generated by clausetag. Auto-tagged mappings are heuristic matches and require human review before audit submission.\n")
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
