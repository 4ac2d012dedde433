// Package readability computes Flesch Reading Ease and related metrics.
package readability

import (
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/segment"
	"github.com/ppiankov/legalyze/internal/util"
)

const wordsPerMinute = 250

// Scorer computes readability metrics
type Scorer struct{}

// NewScorer creates a new readability scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes Flesch Reading Ease:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words), clamped to [0,100].
func (s *Scorer) Score(text string) model.Readability {
	if strings.TrimSpace(text) == "" {
		return model.EmptyReadability()
	}

	sentences := segment.Sentences(text)
	words := segment.Words(strings.ToLower(text))
	if len(sentences) == 0 || len(words) == 0 {
		return model.EmptyReadability()
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	wordCount := float64(len(words))
	avgSentenceLength := wordCount / float64(len(sentences))
	avgSyllables := float64(syllables) / wordCount

	score := 206.835 - 1.015*avgSentenceLength - 84.6*avgSyllables
	score = util.Round(util.Clamp(score, 0, 100), 1)

	return model.Readability{
		Score:               score,
		Level:               Level(score),
		AvgSentenceLength:   util.Round(avgSentenceLength, 1),
		AvgSyllablesPerWord: util.Round(avgSyllables, 2),
		ReadingTimeMinutes:  util.Round(wordCount/wordsPerMinute, 1),
		WordCount:           len(words),
		SentenceCount:       len(sentences),
	}
}

// Level maps a Flesch score to its band
func Level(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy"
	case score >= 80:
		return "Easy"
	case score >= 70:
		return "Fairly Easy"
	case score >= 60:
		return "Standard"
	case score >= 50:
		return "Fairly Difficult"
	case score >= 30:
		return "Difficult"
	default:
		return "Very Difficult"
	}
}
