package sentiment

import (
	"strings"
	"testing"

	"github.com/ppiankov/legalyze/internal/model"
)

func TestAnalyze_Positive(t *testing.T) {
	result := NewAnalyzer(0).Analyze("The contract is excellent and the terms are favorable.")

	if result.Overall.Score <= 0.2 {
		t.Errorf("expected score > 0.2, got %v", result.Overall.Score)
	}
	if l := result.Overall.Label; l != model.SentimentPositive && l != model.SentimentVeryPositive {
		t.Errorf("expected a positive label, got %q", l)
	}
	if len(result.Breakdown) != 1 {
		t.Fatalf("expected 1 section, got %d", len(result.Breakdown))
	}
	terms := result.Breakdown[0].MatchedTerms
	if len(terms) != 2 || terms[0] != "excellent" || terms[1] != "favorable" {
		t.Errorf("unexpected matched terms: %v", terms)
	}
	if result.Breakdown[0].Confidence != singleScoreConfidence {
		t.Errorf("expected single-sentence confidence 0.6, got %v", result.Breakdown[0].Confidence)
	}
	// one bin, zero entropy
	if result.Overall.Confidence != 1 {
		t.Errorf("expected confidence 1, got %v", result.Overall.Confidence)
	}
}

func TestAnalyze_Negative(t *testing.T) {
	result := NewAnalyzer(0).Analyze("This is terrible and completely unacceptable.")

	if result.Overall.Score >= -0.2 {
		t.Errorf("expected score < -0.2, got %v", result.Overall.Score)
	}
	if l := result.Overall.Label; l != model.SentimentNegative && l != model.SentimentVeryNegative {
		t.Errorf("expected a negative label, got %q", l)
	}
	if len(result.KeySections) != 1 || result.KeySections[0].Type != model.KeyMostNegative {
		t.Errorf("expected a single most_negative key section, got %+v", result.KeySections)
	}
}

func TestAnalyze_NegationFlipsPositiveTerm(t *testing.T) {
	plain, _ := scoreSentence("The terms are good")
	negated, _ := scoreSentence("The terms are not good")

	if plain <= 0 {
		t.Errorf("expected positive base score, got %v", plain)
	}
	if negated >= 0 {
		t.Errorf("expected negation to flip the score, got %v", negated)
	}

	result := NewAnalyzer(0).Analyze("The terms are not good")
	if result.Overall.Score >= 0 {
		t.Errorf("expected negative overall score, got %v", result.Overall.Score)
	}
}

func TestScoreSentence(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     float64
		matched  int
	}{
		{"clamped positive", "An excellent and favorable outcome.", 1.0, 2},
		{"mild", "The fee is reasonable.", 1.0, 1},
		{"restrictive", "Vendors may not restrict access.", 0.8, 1}, // negation flips -0.8
		{"dampened", "The terms are slightly bad.", -0.9, 1},
		{"contraction negation", "It isn't acceptable.", -1.0, 1},
		{"contextual negative first", "Unlimited liability is limited here.", -1.0, 1},
		{"contextual positive", "Either party may terminate with notice.", 0.5, 1},
		{"no terms", "The parties met on Tuesday.", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := scoreSentence(tt.sentence)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
			if len(matched) != tt.matched {
				t.Errorf("matched %v, want %d terms", matched, tt.matched)
			}
		})
	}
}

func TestAnalyze_KeySectionsAndSummary(t *testing.T) {
	text := "The service is excellent.\n\nThe delivery was terrible.\n\nThe office is open on Monday."
	result := NewAnalyzer(0).Analyze(text)

	if len(result.Breakdown) != 2 {
		t.Fatalf("expected 2 scored sections, got %d", len(result.Breakdown))
	}

	kinds := map[model.KeySectionType]bool{}
	for _, k := range result.KeySections {
		kinds[k.Type] = true
	}
	if !kinds[model.KeyMostNegative] || !kinds[model.KeyMostPositive] || kinds[model.KeyMostExtreme] {
		t.Errorf("unexpected key sections: %+v", result.KeySections)
	}

	if !strings.Contains(result.Summary, "1 positive section, 1 negative section, and 0 neutral sections") {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if result.Overall.Label != model.SentimentNeutral {
		t.Errorf("expected neutral overall, got %q", result.Overall.Label)
	}
	if len(result.Visualization.Distribution) != 2 || result.Visualization.Distribution[0].Color != colorNegative {
		t.Errorf("unexpected distribution: %+v", result.Visualization.Distribution)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	result := NewAnalyzer(0).Analyze("  ")
	if result.Overall.Label != model.SentimentNeutral || result.Overall.Score != 0 {
		t.Errorf("unexpected overall: %+v", result.Overall)
	}
	if result.Breakdown == nil || len(result.Breakdown) != 0 {
		t.Errorf("expected empty breakdown")
	}
	if result.Summary != emptySummary {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	text := "The contract is excellent. The penalty is harmful.\n\nBoth parties agree."
	a, b := NewAnalyzer(0).Analyze(text), NewAnalyzer(0).Analyze(text)
	if a.Overall != b.Overall || a.Summary != b.Summary {
		t.Errorf("analysis not stable: %+v vs %+v", a.Overall, b.Overall)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  model.SentimentLabel
	}{
		{0.6, model.SentimentVeryPositive},
		{0.2, model.SentimentPositive},
		{0.19, model.SentimentNeutral},
		{-0.19, model.SentimentNeutral},
		{-0.2, model.SentimentNegative},
		{-0.6, model.SentimentVeryNegative},
	}
	for _, tt := range tests {
		if got := Label(tt.score); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestBaseline(t *testing.T) {
	b := NewBaseline(0)

	if got := b.Score(""); got != nil {
		t.Errorf("expected nil baseline for empty text, got %+v", got)
	}

	pos := b.Score("This agreement is wonderful and the terms are great.")
	if pos == nil || pos.Label != model.SentimentPositive || pos.Method != "vader" {
		t.Errorf("expected positive VADER baseline, got %+v", pos)
	}

	neg := b.Score("This is a terrible, awful and horrible deal.")
	if neg == nil || neg.Label != model.SentimentNegative {
		t.Errorf("expected negative VADER baseline, got %+v", neg)
	}
}
