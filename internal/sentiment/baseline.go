package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/segment"
	"github.com/ppiankov/legalyze/internal/util"
)

const baselineThreshold = 0.05

// Baseline scores text with VADER for comparison with the lexicon result.
// It never changes the lexicon score.
type Baseline struct {
	analyzer *govader.SentimentIntensityAnalyzer
	maxChars int
}

// NewBaseline creates a VADER baseline scanning at most maxChars characters
func NewBaseline(maxChars int) *Baseline {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Baseline{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		maxChars: maxChars,
	}
}

// Score returns the VADER polarity of text, or nil for empty text
func (b *Baseline) Score(text string) *model.SentimentBaseline {
	text = strings.Join(strings.Fields(segment.Truncate(text, b.maxChars)), " ")
	if text == "" {
		return nil
	}

	s := b.analyzer.PolarityScores(text)
	label := model.SentimentNeutral
	switch {
	case s.Compound >= baselineThreshold:
		label = model.SentimentPositive
	case s.Compound <= -baselineThreshold:
		label = model.SentimentNegative
	}

	return &model.SentimentBaseline{
		Method:   "vader",
		Compound: util.Round(s.Compound, 4),
		Positive: util.Round(s.Positive, 3),
		Negative: util.Round(s.Negative, 3),
		Neutral:  util.Round(s.Neutral, 3),
		Label:    label,
	}
}
