package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clausetag/clausetag/internal/model"
)

// Match is the outcome of a rule evaluation for a single clause
type Match struct {
	Kind            model.MappingKind
	Confidence      float64
	RuleName        string
	MatchedEntities []model.Entity
	MatchedKeywords []string
}

// DocumentContext carries the per-document inputs shared by every rule.
// It is built once per classification run so rules stay cheap.
type DocumentContext struct {
	Text      string
	TextLower string
	Entities  []model.Entity

	clauseRefs   map[string]bool // CLAUSE entity values
	standardRefs map[string]bool // STANDARD entity values
}

// NewDocumentContext prepares the shared rule inputs for one document
func NewDocumentContext(text string, entities []model.Entity) DocumentContext {
	ctx := DocumentContext{
		Text:         text,
		TextLower:    strings.ToLower(text),
		Entities:     entities,
		clauseRefs:   make(map[string]bool),
		standardRefs: make(map[string]bool),
	}

	for _, e := range entities {
		if e.Value == "" {
			continue
		}
		switch e.Kind {
		case model.EntityClause:
			ctx.clauseRefs[e.Value] = true
		case model.EntityStandard:
			ctx.standardRefs[e.Value] = true
		}
	}

	return ctx
}

// entitiesWithValue returns all entities whose normalized value equals v,
// regardless of kind
func (d DocumentContext) entitiesWithValue(v string) []model.Entity {
	var matched []model.Entity
	for _, e := range d.Entities {
		if e.Value != "" && e.Value == v {
			matched = append(matched, e)
		}
	}
	return matched
}

// keywordsInText returns the clause keywords present in the document as
// case-insensitive substrings
func (d DocumentContext) keywordsInText(keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(d.TextLower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// Rule evaluates one clause against a document. Rules are mutually exclusive:
// the classifier takes the first rule that reports ok, in list order.
type Rule struct {
	Name     string
	Evaluate func(doc DocumentContext, clause model.Clause) (Match, bool)
}

// DefaultRules returns the ordered rule cascade. Order is the contract:
// direct references beat standard corroboration, which beats keyword
// density, which beats title similarity.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "direct_clause_reference", Evaluate: directClauseReference},
		{Name: "standard_reference_with_keywords", Evaluate: standardReferenceWithKeywords},
		{Name: "high_keyword_density", Evaluate: highKeywordDensity},
		{Name: "title_similarity", Evaluate: titleSimilarity},
	}
}

// directClauseReference fires when the clause's own number appears either as
// a detected CLAUSE entity or as the literal phrase "clause <number>"
func directClauseReference(doc DocumentContext, clause model.Clause) (Match, bool) {
	if clause.Number == "" {
		return Match{}, false
	}
	if !doc.clauseRefs[clause.Number] && !strings.Contains(doc.TextLower, "clause "+clause.Number) {
		return Match{}, false
	}

	return Match{
		Kind:            model.MappingAutoRule,
		Confidence:      0.95,
		RuleName:        "direct_clause_reference",
		MatchedEntities: doc.entitiesWithValue(clause.Number),
	}, true
}

// standardReferenceWithKeywords fires when the parent standard is referenced
// and at least two clause keywords corroborate the match.
//
// Known imprecision, kept on purpose: the literal "standard <number>" check
// is a plain substring, so searching for "standard 1" also hits "standard 10".
func standardReferenceWithKeywords(doc DocumentContext, clause model.Clause) (Match, bool) {
	standardNum := clause.StandardNumber
	if standardNum == "" {
		return Match{}, false
	}
	if !doc.standardRefs[standardNum] && !strings.Contains(doc.TextLower, "standard "+standardNum) {
		return Match{}, false
	}

	found := doc.keywordsInText(clause.Keywords)
	if len(found) < 2 {
		return Match{}, false
	}

	return Match{
		Kind:            model.MappingAutoNER,
		Confidence:      min(0.70+0.05*float64(len(found)), 0.90),
		RuleName:        "standard_reference_with_keywords",
		MatchedEntities: doc.entitiesWithValue(standardNum),
		MatchedKeywords: found,
	}, true
}

// highKeywordDensity fires when at least 60% of the clause keywords appear
// in the document
func highKeywordDensity(doc DocumentContext, clause model.Clause) (Match, bool) {
	if len(clause.Keywords) == 0 {
		return Match{}, false
	}

	found := doc.keywordsInText(clause.Keywords)
	ratio := float64(len(found)) / float64(len(clause.Keywords))
	if ratio < 0.6 {
		return Match{}, false
	}

	return Match{
		Kind:            model.MappingAutoRule,
		Confidence:      min(0.50+0.30*ratio, 0.80),
		RuleName:        "high_keyword_density",
		MatchedKeywords: found,
	}, true
}

// titleSimilarity fires when at least half of the significant clause title
// words (longer than 3 characters) appear as whole words in the document
func titleSimilarity(doc DocumentContext, clause model.Clause) (Match, bool) {
	words := titleWords(clause.Title)
	if len(words) == 0 {
		return Match{}, false
	}

	var matched []string
	for _, w := range words {
		if wholeWordInText(doc.TextLower, w) {
			matched = append(matched, w)
		}
	}

	ratio := float64(len(matched)) / float64(len(words))
	if ratio < 0.5 {
		return Match{}, false
	}

	return Match{
		Kind:            model.MappingSuggested,
		Confidence:      min(0.40+0.20*ratio, 0.60),
		RuleName:        "title_similarity",
		MatchedKeywords: matched,
	}, true
}

// titleWords tokenizes a clause title on whitespace and keeps the distinct
// lowercased words longer than 3 characters, in first-seen order
func titleWords(title string) []string {
	seen := make(map[string]bool)
	var words []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if len(w) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}

// wholeWordInText reports whether word occurs in text bounded by word breaks
func wholeWordInText(text, word string) bool {
	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return false
	}
	return pattern.MatchString(text)
}

// String identifies a rule in logs
func (r Rule) String() string {
	return fmt.Sprintf("rule(%s)", r.Name)
}
