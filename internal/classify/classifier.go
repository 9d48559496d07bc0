// Package classify maps evidence document text onto compliance clauses using
// an ordered cascade of heuristic rules. The classifier is pure: it takes the
// clause catalog as an explicit input and touches no storage, so every rule
// is testable without a database.
package classify

import (
	"time"

	"github.com/clausetag/clausetag/internal/model"
)

// acceptThreshold is the minimum confidence a rule result needs to produce a
// mapping. Redundant with the weakest rule's floor today, but enforced
// separately so a future lower-confidence rule is still filtered.
const acceptThreshold = 0.40

// defaultRuleName is used when a rule result somehow carries no name
const defaultRuleName = "auto_tag_pipeline"

// nowFunc returns the current time (injectable for tests)
var nowFunc = time.Now

// Classifier decides, for every clause in a catalog, whether a document
// provides evidence for it
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the default rule cascade
func NewClassifier() *Classifier {
	return &Classifier{rules: DefaultRules()}
}

// NewClassifierWithRules creates a classifier with a custom rule list.
// Rules are evaluated in order; the first match wins.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify evaluates every catalog clause against the document and returns
// one mapping per accepted clause. It never fails: empty text short-circuits
// to no mappings, and malformed clauses simply fail their rule checks.
// Mapping order follows the catalog's own iteration order.
func (c *Classifier) Classify(text string, entities []model.Entity, catalog []model.Clause) []model.Mapping {
	if text == "" {
		return nil
	}

	doc := NewDocumentContext(text, entities)
	meta := model.MappingMetadata{
		ProcessedAt: nowFunc().UTC(),
		TextLength:  len(text),
		EntityCount: len(entities),
	}

	var mappings []model.Mapping
	for _, clause := range catalog {
		match, ok := c.evaluate(doc, clause)
		if !ok || match.Confidence < acceptThreshold {
			continue
		}

		ruleName := match.RuleName
		if ruleName == "" {
			ruleName = defaultRuleName
		}

		mappings = append(mappings, model.Mapping{
			ClauseNumber:    clause.Number,
			Kind:            match.Kind,
			Confidence:      match.Confidence,
			MatchedEntities: match.MatchedEntities,
			MatchedKeywords: match.MatchedKeywords,
			RuleName:        ruleName,
			Metadata:        meta,
		})
	}

	return mappings
}

// evaluate runs the rule cascade for one clause, first match wins
func (c *Classifier) evaluate(doc DocumentContext, clause model.Clause) (Match, bool) {
	for _, rule := range c.rules {
		if match, ok := rule.Evaluate(doc, clause); ok {
			return match, true
		}
	}
	return Match{}, false
}
