// Package audit aggregates stored clause mappings into the coverage view an
// auditor works from: compliance percentages, per-clause evidence counts,
// and transparent diagnostic signals.
package audit

import (
	"fmt"
	"time"

	"github.com/clausetag/clausetag/internal/catalog"
	"github.com/clausetag/clausetag/internal/model"
)

// Aggregator computes coverage reports from stored mappings
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Coverage builds the audit coverage report for a catalog and mapping set.
// Every number in the result is reproducible from the inputs; signals carry
// their formula data so the assessment is explainable.
func (a *Aggregator) Coverage(cat *catalog.Catalog, mappings []model.Mapping) *model.Coverage {
	perClause := make(map[string]*model.ClauseCoverage)
	suggestedOnly := make(map[string]bool)
	docs := make(map[string]bool)

	cov := &model.Coverage{
		GeneratedAt:  time.Now().UTC(),
		TotalClauses: cat.Len(),
	}

	for _, m := range mappings {
		docs[m.DocumentID] = true
		cov.TotalMappings++
		if m.Kind.IsAutomatic() {
			cov.AutoTagged++
		}
		if m.Verified {
			cov.VerifiedCount++
		}
		if m.Kind == model.MappingSuggested {
			cov.SuggestedCount++
		}

		cc, ok := perClause[m.ClauseNumber]
		if !ok {
			cc = &model.ClauseCoverage{ClauseNumber: m.ClauseNumber}
			perClause[m.ClauseNumber] = cc
			suggestedOnly[m.ClauseNumber] = true
		}
		cc.EvidenceCount++
		if m.Verified {
			cc.VerifiedCount++
		}
		if m.Confidence > cc.MaxConfidence {
			cc.MaxConfidence = m.Confidence
			cc.BestRule = m.RuleName
		}
		if m.Kind != model.MappingSuggested {
			suggestedOnly[m.ClauseNumber] = false
		}
	}
	cov.DocumentsTagged = len(docs)

	suggestedOnlyCount := 0
	lowConfidenceCount := 0
	for _, clause := range cat.Clauses() {
		cc := perClause[clause.Number]
		entry := model.ClauseCoverage{
			ClauseNumber: clause.Number,
			Title:        clause.Title,
			Critical:     clause.IsCritical(),
		}
		if cc != nil {
			entry.EvidenceCount = cc.EvidenceCount
			entry.VerifiedCount = cc.VerifiedCount
			entry.BestRule = cc.BestRule
			entry.MaxConfidence = cc.MaxConfidence
		}
		cov.Clauses = append(cov.Clauses, entry)

		if entry.EvidenceCount > 0 {
			cov.ClausesWithEvidence++
			if entry.Critical {
				cov.CriticalCovered++
			}
			if suggestedOnly[clause.Number] {
				suggestedOnlyCount++
			}
			if entry.MaxConfidence < 0.5 {
				lowConfidenceCount++
			}
		}
		if entry.Critical {
			cov.CriticalClauses++
		}
	}
	cov.ClausesWithout = cov.TotalClauses - cov.ClausesWithEvidence

	if cov.TotalClauses > 0 {
		cov.CompliancePercent = float64(cov.ClausesWithEvidence) / float64(cov.TotalClauses) * 100
	}
	if cov.CriticalClauses > 0 {
		cov.CriticalCompliancePct = float64(cov.CriticalCovered) / float64(cov.CriticalClauses) * 100
	}

	cov.Signals = a.signals(cov, suggestedOnlyCount, lowConfidenceCount)
	return cov
}

// signals derives the diagnostic findings for a coverage result
func (a *Aggregator) signals(cov *model.Coverage, suggestedOnly, lowConfidence int) []model.Signal {
	var signals []model.Signal

	if cov.ClausesWithout > 0 {
		severity := model.SeverityInfo
		if cov.CompliancePercent < 50 {
			severity = model.SeverityCritical
		} else if cov.CompliancePercent < 80 {
			severity = model.SeverityWarning
		}
		signals = append(signals, model.Signal{
			Type:        model.SignalCoverageGap,
			Severity:    severity,
			Description: fmt.Sprintf("%d of %d clauses have no evidence", cov.ClausesWithout, cov.TotalClauses),
			Data: map[string]any{
				"clauses_without_evidence": cov.ClausesWithout,
				"total_clauses":            cov.TotalClauses,
				"compliance_percentage":    cov.CompliancePercent,
				"formula":                  "clauses_with_evidence / total_clauses * 100",
			},
		})
	}

	if uncovered := cov.CriticalClauses - cov.CriticalCovered; uncovered > 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalCriticalGap,
			Severity:    model.SeverityCritical,
			Description: fmt.Sprintf("%d critical clauses have no evidence", uncovered),
			Data: map[string]any{
				"critical_clauses": cov.CriticalClauses,
				"critical_covered": cov.CriticalCovered,
			},
		})
	}

	if cov.AutoTagged >= 10 {
		ratio := float64(cov.VerifiedCount) / float64(cov.AutoTagged)
		if ratio < 0.2 {
			signals = append(signals, model.Signal{
				Type:        model.SignalUnverifiedLoad,
				Severity:    model.SeverityWarning,
				Description: fmt.Sprintf("only %d of %d auto-tagged mappings are verified", cov.VerifiedCount, cov.AutoTagged),
				Data: map[string]any{
					"verified":    cov.VerifiedCount,
					"auto_tagged": cov.AutoTagged,
					"ratio":       ratio,
					"formula":     "verified / auto_tagged",
				},
			})
		}
	}

	if suggestedOnly > 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalSuggestionsOnly,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%d clauses are covered only by low-confidence suggestions", suggestedOnly),
			Data: map[string]any{
				"clauses": suggestedOnly,
			},
		})
	}

	if lowConfidence > 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalLowConfidence,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("%d covered clauses have a best match below 0.50 confidence", lowConfidence),
			Data: map[string]any{
				"clauses":   lowConfidence,
				"threshold": 0.5,
			},
		})
	}

	return signals
}
