// Package extract pulls scored phrases, legal terms, topics and key clauses
// out of plain document text. Every extractor is stateless and safe for
// concurrent use.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/segment"
	"github.com/ppiankov/legalyze/internal/util"
)

const (
	maxKeyPhrases      = 15
	maxPhraseWords     = 4
	minPhraseLen       = 3 // phrases must be longer than this
	positionSentences  = 10
	phraseContextChars = 40
	// below this many candidates every phrase counts; above it a phrase must repeat
	sparseCandidates = 100
)

var phraseCleanPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s.]`)

// KeyPhraseExtractor scores word n-grams by frequency, length and position
type KeyPhraseExtractor struct{}

// NewKeyPhraseExtractor creates a key phrase extractor
func NewKeyPhraseExtractor() *KeyPhraseExtractor {
	return &KeyPhraseExtractor{}
}

type phraseCount struct {
	phrase string
	freq   int
	score  float64
}

// Extract returns up to 15 key phrases, best first
func (e *KeyPhraseExtractor) Extract(text string) []model.KeyPhrase {
	result := []model.KeyPhrase{}
	if strings.TrimSpace(text) == "" {
		return result
	}

	cleaned := phraseCleanPattern.ReplaceAllString(strings.ToLower(text), " ")
	sentences := segment.Sentences(cleaned)
	if len(sentences) == 0 {
		return result
	}

	var order []string
	counts := make(map[string]*phraseCount)
	total := 0
	for _, sentence := range sentences {
		words := phraseWords(sentence)
		for i := range words {
			for n := 1; n <= maxPhraseWords && i+n <= len(words); n++ {
				phrase := strings.Join(words[i:i+n], " ")
				if len(phrase) <= minPhraseLen {
					continue
				}
				total++
				if pc, ok := counts[phrase]; ok {
					pc.freq++
					continue
				}
				counts[phrase] = &phraseCount{phrase: phrase, freq: 1}
				order = append(order, phrase)
			}
		}
	}

	minFreq := 1
	if total >= sparseCandidates {
		minFreq = 2
	}

	var scored []*phraseCount
	for _, phrase := range order {
		pc := counts[phrase]
		if pc.freq < minFreq {
			continue
		}
		lengthScore := 0.8
		if n := strings.Count(phrase, " ") + 1; n >= 2 && n <= 3 {
			lengthScore = 1.0
		}
		pc.score = float64(pc.freq) * lengthScore * (1 + positionScore(phrase, sentences))
		scored = append(scored, pc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > maxKeyPhrases {
		scored = scored[:maxKeyPhrases]
	}

	lower := util.LowerAligned(text)
	for _, pc := range scored {
		pos := strings.Index(lower, pc.phrase)
		if pos < 0 {
			continue
		}
		ctx := util.Window(text, pos-phraseContextChars, pos+len(pc.phrase)+phraseContextChars)
		ctx = strings.TrimSpace(strings.ReplaceAll(ctx, "\n", " "))

		result = append(result, model.KeyPhrase{
			Phrase:    titleCase(pc.phrase),
			Score:     util.Round(pc.score, 2),
			Frequency: pc.freq,
			Context:   ctx,
		})
	}
	return result
}

// phraseWords splits a cleaned sentence into non-stopword tokens. A trailing
// period is dropped so "agreement." and "agreement" count together.
func phraseWords(sentence string) []string {
	var words []string
	for _, w := range strings.Fields(sentence) {
		w = strings.TrimRight(w, ".")
		if w == "" || phraseStopwords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

// positionScore is 1.0 for a phrase in the first sentence, falling by 0.1 per
// sentence, and 0 past the first ten
func positionScore(phrase string, sentences []string) float64 {
	for i, s := range sentences {
		if i == positionSentences {
			break
		}
		if strings.Contains(s, phrase) {
			return float64(positionSentences-i) / positionSentences
		}
	}
	return 0
}
