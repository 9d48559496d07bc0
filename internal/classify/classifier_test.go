package classify

import (
	"math"
	"testing"
	"time"

	"github.com/clausetag/clausetag/internal/detect"
	"github.com/clausetag/clausetag/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func classifyText(t *testing.T, text string, catalog []model.Clause) []model.Mapping {
	t.Helper()
	detector := detect.NewDetector()
	classifier := NewClassifier()
	return classifier.Classify(text, detector.Detect(text), catalog)
}

func TestClassify_DirectClauseReference(t *testing.T) {
	catalog := []model.Clause{
		{Number: "1.1", StandardNumber: "1", Title: "Training strategies"},
	}

	mappings := classifyText(t, "Our processes satisfy Clause 1.1 in full.", catalog)

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	m := mappings[0]
	if m.ClauseNumber != "1.1" {
		t.Errorf("Expected clause 1.1, got %s", m.ClauseNumber)
	}
	if m.Kind != model.MappingAutoRule {
		t.Errorf("Expected kind auto_rule, got %s", m.Kind)
	}
	if !almostEqual(m.Confidence, 0.95) {
		t.Errorf("Expected confidence 0.95, got %f", m.Confidence)
	}
	if m.RuleName != "direct_clause_reference" {
		t.Errorf("Expected rule direct_clause_reference, got %s", m.RuleName)
	}
	if len(m.MatchedEntities) == 0 {
		t.Error("Expected the detected CLAUSE entity to be recorded on the mapping")
	}
}

func TestClassify_DirectReferenceWinsOverWeakerRules(t *testing.T) {
	// Clause number, parent standard and two keywords all present. The
	// cascade stops at the first matching rule.
	catalog := []model.Clause{
		{
			Number:         "1.1",
			StandardNumber: "1",
			Title:          "Quality training",
			Keywords:       []string{"quality", "training"},
		},
	}

	mappings := classifyText(t,
		"Standard 1 discusses quality and training. See clause 1.1 for details.", catalog)

	if len(mappings) != 1 {
		t.Fatalf("Expected exactly 1 mapping per clause, got %d", len(mappings))
	}
	if mappings[0].RuleName != "direct_clause_reference" {
		t.Errorf("Expected direct_clause_reference to win, got %s", mappings[0].RuleName)
	}
	if !almostEqual(mappings[0].Confidence, 0.95) {
		t.Errorf("Expected confidence 0.95, got %f", mappings[0].Confidence)
	}
}

func TestClassify_StandardReferenceWithKeywords(t *testing.T) {
	catalog := []model.Clause{
		{
			Number:         "2.1",
			StandardNumber: "2",
			Title:          "Assessment validation",
			Keywords:       []string{"assessment", "validation", "moderation"},
		},
	}

	mappings := classifyText(t,
		"Standard 2 requires assessment validation across all cohorts.", catalog)

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	m := mappings[0]
	if m.Kind != model.MappingAutoNER {
		t.Errorf("Expected kind auto_ner, got %s", m.Kind)
	}
	// 2 keywords found: 0.70 + 0.05*2 = 0.80
	if !almostEqual(m.Confidence, 0.80) {
		t.Errorf("Expected confidence 0.80, got %f", m.Confidence)
	}
	if len(m.MatchedKeywords) != 2 {
		t.Errorf("Expected 2 matched keywords, got %v", m.MatchedKeywords)
	}
}

func TestClassify_StandardReferenceConfidenceCapped(t *testing.T) {
	catalog := []model.Clause{
		{
			Number:         "2.2",
			StandardNumber: "2",
			Keywords:       []string{"alpha", "bravo", "charlie", "delta", "echo"},
		},
	}

	// All 5 keywords found: 0.70 + 0.05*5 = 0.95, capped at 0.90
	mappings := classifyText(t,
		"Standard 2 covers alpha bravo charlie delta echo cases.", catalog)

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	if !almostEqual(mappings[0].Confidence, 0.90) {
		t.Errorf("Expected confidence capped at 0.90, got %f", mappings[0].Confidence)
	}
}

func TestClassify_StandardReferenceRequiresTwoKeywords(t *testing.T) {
	catalog := []model.Clause{
		{
			Number:         "2.3",
			StandardNumber: "2",
			Keywords:       []string{"validation", "moderation", "sampling"},
		},
	}

	// Standard referenced but only one keyword present, and 1/3 keyword
	// density is below the 60% floor. No rule fires.
	mappings := classifyText(t, "Standard 2 mentions validation once.", catalog)

	if len(mappings) != 0 {
		t.Fatalf("Expected no mappings with a single keyword, got %v", mappings)
	}
}

func TestClassify_StandardSubstringLooseness(t *testing.T) {
	// The "standard <n>" check is a plain substring, so a clause under
	// standard 1 also matches text about standard 10. Accepted behavior.
	catalog := []model.Clause{
		{
			Number:         "1.5",
			StandardNumber: "1",
			Keywords:       []string{"records", "retention"},
		},
	}

	mappings := classifyText(t,
		"Standard 10 covers records and retention requirements.", catalog)

	if len(mappings) != 1 {
		t.Fatalf("Expected the loose substring match to fire, got %d mappings", len(mappings))
	}
	if mappings[0].RuleName != "standard_reference_with_keywords" {
		t.Errorf("Expected standard_reference_with_keywords, got %s", mappings[0].RuleName)
	}
}

func TestClassify_HighKeywordDensity(t *testing.T) {
	catalog := []model.Clause{
		{
			Number:   "3.1",
			Keywords: []string{"complaint", "appeal", "outcome"},
		},
	}

	// 2 of 3 keywords, no standard or clause reference:
	// ratio 2/3, confidence 0.50 + 0.30*(2/3) = 0.70
	mappings := classifyText(t,
		"Every complaint is logged and each appeal is acknowledged.", catalog)

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	m := mappings[0]
	if m.Kind != model.MappingAutoRule {
		t.Errorf("Expected kind auto_rule, got %s", m.Kind)
	}
	if m.RuleName != "high_keyword_density" {
		t.Errorf("Expected high_keyword_density, got %s", m.RuleName)
	}
	if !almostEqual(m.Confidence, 0.50+0.30*2.0/3.0) {
		t.Errorf("Expected confidence 0.70, got %f", m.Confidence)
	}
}

func TestClassify_KeywordDensityBelowFloor(t *testing.T) {
	catalog := []model.Clause{
		{
			Number:   "3.2",
			Keywords: []string{"complaint", "appeal", "outcome", "register", "review"},
		},
	}

	// 2 of 5 keywords is 40%, below the 60% floor
	mappings := classifyText(t,
		"A complaint register is maintained.", catalog)

	if len(mappings) != 0 {
		t.Fatalf("Expected no mappings below the density floor, got %v", mappings)
	}
}

func TestClassify_TitleSimilarity(t *testing.T) {
	catalog := []model.Clause{
		{
			Number: "4.1",
			Title:  "Marketing and enrolment information",
		},
	}

	// Significant title words: marketing, enrolment, information.
	// Two appear as whole words: ratio 2/3, confidence 0.40 + 0.20*(2/3)
	mappings := classifyText(t,
		"Our marketing material gives accurate information to students.", catalog)

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	m := mappings[0]
	if m.Kind != model.MappingSuggested {
		t.Errorf("Expected kind suggested, got %s", m.Kind)
	}
	if m.RuleName != "title_similarity" {
		t.Errorf("Expected title_similarity, got %s", m.RuleName)
	}
	if !almostEqual(m.Confidence, 0.40+0.20*2.0/3.0) {
		t.Errorf("Expected confidence %.4f, got %f", 0.40+0.20*2.0/3.0, m.Confidence)
	}
}

func TestClassify_TitleSimilarityWholeWordsOnly(t *testing.T) {
	catalog := []model.Clause{
		{
			Number: "4.2",
			Title:  "Assessment plan",
		},
	}

	// "assessments" is not a whole-word match for "assessment", and "plan"
	// inside "planning" does not count either. Only significant word counts
	// matter: title words are {assessment, plan} -> 0 matched.
	mappings := classifyText(t,
		"Future assessments follow our planning cycle.", catalog)

	if len(mappings) != 0 {
		t.Fatalf("Expected no whole-word title matches, got %v", mappings)
	}
}

func TestClassify_EmptyTextShortCircuits(t *testing.T) {
	catalog := []model.Clause{
		{Number: "1.1", Keywords: []string{"quality"}},
	}
	entities := []model.Entity{
		{Text: "Clause 1.1", Kind: model.EntityClause, Start: 0, End: 10, Value: "1.1"},
	}

	classifier := NewClassifier()
	mappings := classifier.Classify("", entities, catalog)

	if mappings != nil {
		t.Fatalf("Expected nil mappings for empty text, got %v", mappings)
	}
}

func TestClassify_ClauseWithNoSignalsProducesNothing(t *testing.T) {
	catalog := []model.Clause{
		{Number: "5.1"}, // no keywords, no title, number never mentioned
	}

	mappings := classifyText(t, "General commentary about the organisation.", catalog)

	if len(mappings) != 0 {
		t.Fatalf("Expected no mappings, got %v", mappings)
	}
}

func TestClassify_AcceptThresholdFiltersWeakRules(t *testing.T) {
	weak := Rule{
		Name: "always_weak",
		Evaluate: func(doc DocumentContext, clause model.Clause) (Match, bool) {
			return Match{Kind: model.MappingSuggested, Confidence: 0.20, RuleName: "always_weak"}, true
		},
	}
	classifier := NewClassifierWithRules([]Rule{weak})

	mappings := classifier.Classify("some text", nil, []model.Clause{{Number: "1.1"}})

	if len(mappings) != 0 {
		t.Fatalf("Expected sub-threshold matches to be dropped, got %v", mappings)
	}
}

func TestClassify_UnnamedRuleGetsDefaultName(t *testing.T) {
	anonymous := Rule{
		Name: "anonymous",
		Evaluate: func(doc DocumentContext, clause model.Clause) (Match, bool) {
			return Match{Kind: model.MappingAutoRule, Confidence: 0.55}, true
		},
	}
	classifier := NewClassifierWithRules([]Rule{anonymous})

	mappings := classifier.Classify("some text", nil, []model.Clause{{Number: "1.1"}})

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	if mappings[0].RuleName != "auto_tag_pipeline" {
		t.Errorf("Expected fallback rule name auto_tag_pipeline, got %s", mappings[0].RuleName)
	}
}

func TestClassify_MetadataStamped(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := nowFunc
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = orig }()

	text := "See clause 1.1 for details."
	detector := detect.NewDetector()
	entities := detector.Detect(text)

	classifier := NewClassifier()
	mappings := classifier.Classify(text, entities, []model.Clause{{Number: "1.1"}})

	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	meta := mappings[0].Metadata
	if !meta.ProcessedAt.Equal(fixed) {
		t.Errorf("Expected processed_at %v, got %v", fixed, meta.ProcessedAt)
	}
	if meta.TextLength != len(text) {
		t.Errorf("Expected text_length %d, got %d", len(text), meta.TextLength)
	}
	if meta.EntityCount != len(entities) {
		t.Errorf("Expected entity_count %d, got %d", len(entities), meta.EntityCount)
	}
}

func TestClassify_OneMappingPerClause(t *testing.T) {
	catalog := []model.Clause{
		{Number: "1.1", StandardNumber: "1", Keywords: []string{"quality", "training"}},
		{Number: "1.2", StandardNumber: "1", Keywords: []string{"facilities", "equipment"}},
	}

	mappings := classifyText(t,
		"Clause 1.1 and standard 1 quality training. Clause 1.2 facilities equipment.", catalog)

	if len(mappings) != 2 {
		t.Fatalf("Expected 2 mappings, got %d", len(mappings))
	}
	seen := make(map[string]bool)
	for _, m := range mappings {
		if seen[m.ClauseNumber] {
			t.Errorf("Clause %s mapped more than once", m.ClauseNumber)
		}
		seen[m.ClauseNumber] = true
	}
}
