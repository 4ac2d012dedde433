// Package sentiment scores document tone with a legal-domain lexicon and,
// optionally, a VADER baseline.
package sentiment

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/segment"
	"github.com/ppiankov/legalyze/internal/util"
)

const (
	// DefaultMaxChars bounds the scan on very long documents
	DefaultMaxChars = 100_000

	singleScoreConfidence = 0.6
	maxEntropy            = 4.4 // log2 of the 21 bins between -1.0 and 1.0
	sectionPreview        = 300
	maxMatchedTerms       = 10
	keySectionThreshold   = 0.1
	extremeThreshold      = 0.3

	colorPositive = "#43A047"
	colorNegative = "#E53935"
	colorNeutral  = "#9E9E9E"
	colorExtreme  = "#FFA000"

	emptySummary = "No text provided for sentiment analysis"
)

// negationTokenPattern keeps contractions whole so "don't" is seen as one word
var negationTokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:'[\p{L}]+)?`)

// Analyzer computes lexicon-based sentiment per section and overall
type Analyzer struct {
	maxChars int
}

// NewAnalyzer creates an analyzer scanning at most maxChars characters.
// Zero selects the default.
func NewAnalyzer(maxChars int) *Analyzer {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Analyzer{maxChars: maxChars}
}

type sectionResult struct {
	index     int
	sentiment model.SectionSentiment
	avg       float64
}

// Analyze scores text. Empty text yields the neutral zero result.
func (a *Analyzer) Analyze(text string) model.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return model.EmptySentiment(emptySummary)
	}

	bins := make(map[float64]int)
	var sections []sectionResult
	var total float64

	for _, section := range segment.Sections(segment.Truncate(text, a.maxChars)) {
		var scores []float64
		var terms []string
		for _, sentence := range segment.SplitSentences(section.Content, false) {
			score, matched := scoreSentence(sentence)
			if len(matched) == 0 {
				continue
			}
			scores = append(scores, score)
			bins[math.RoundToEven(score*10)/10]++
			for _, m := range matched {
				if len(terms) < maxMatchedTerms && !contains(terms, m) {
					terms = append(terms, m)
				}
			}
		}
		if len(scores) == 0 {
			continue
		}

		avg := mean(scores)
		confidence := singleScoreConfidence
		if len(scores) > 1 {
			confidence = util.Clamp(1-2*variance(scores, avg), 0, 1)
		}

		sections = append(sections, sectionResult{
			index: len(sections),
			avg:   avg,
			sentiment: model.SectionSentiment{
				Content:      preview(section.Content),
				Score:        util.Round(avg, 2),
				Label:        Label(avg),
				Confidence:   util.Round(confidence, 2),
				Length:       utf8.RuneCountInString(section.Content),
				MatchedTerms: terms,
			},
		})
		total += avg
	}

	result := model.EmptySentiment("")
	var overall float64
	if len(sections) > 0 {
		overall = total / float64(len(sections))
		result.Overall = model.SentimentScore{
			Score:      util.Round(overall, 2),
			Label:      Label(overall),
			Confidence: util.Round(distributionConfidence(bins), 2),
		}
	}

	for _, s := range sections {
		result.Breakdown = append(result.Breakdown, s.sentiment)
	}
	result.KeySections = keySections(sections)
	result.Summary = summarize(overall, sections, result.KeySections)
	result.Visualization.Distribution = distribution(bins)
	return result
}

// scoreSentence returns the normalised sentence score and the matched terms.
// Any negation word flips every contribution in the sentence.
func scoreSentence(sentence string) (float64, []string) {
	lower := strings.ToLower(sentence)
	words := segment.Words(lower)

	sign := 1.0
	for _, tok := range negationTokenPattern.FindAllString(lower, -1) {
		if negations[tok] {
			sign = -1
			break
		}
	}

	var score float64
	var matched []string
	for _, w := range words {
		if s, ok := termScore(w); ok {
			score += s * sign
			matched = append(matched, w)
		}
	}

	// a modifier rescales the contribution of the term right after it
	for i := 0; i < len(words)-1; i++ {
		m, ok := modifier(words[i])
		if !ok {
			continue
		}
		if s, ok := termScore(words[i+1]); ok {
			score += s * sign * (m - 1)
		}
	}

	for _, ct := range contextualTerms {
		if !strings.Contains(lower, ct.term) {
			continue
		}
		if ctx, ok := firstContained(lower, ct.negativeContexts); ok {
			score += ct.negativeScore * sign
			matched = append(matched, fmt.Sprintf("%s (%s)", ct.term, ctx))
		} else if ctx, ok := firstContained(lower, ct.positiveContexts); ok {
			score += ct.positiveScore * sign
			matched = append(matched, fmt.Sprintf("%s (%s)", ct.term, ctx))
		}
	}

	if len(matched) == 0 {
		return 0, nil
	}
	n := float64(len(matched))
	if score > 0 {
		return math.Min(1, score/n), matched
	}
	return math.Max(-1, score/n), matched
}

func firstContained(s string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if strings.Contains(s, c) {
			return c, true
		}
	}
	return "", false
}

// Label maps a score onto the five sentiment bands
func Label(score float64) model.SentimentLabel {
	switch {
	case score >= 0.6:
		return model.SentimentVeryPositive
	case score >= 0.2:
		return model.SentimentPositive
	case score > -0.2:
		return model.SentimentNeutral
	case score > -0.6:
		return model.SentimentNegative
	default:
		return model.SentimentVeryNegative
	}
}

// distributionConfidence is 1 - H/Hmax over the binned sentence scores
func distributionConfidence(bins map[float64]int) float64 {
	total := 0
	for _, c := range bins {
		total += c
	}
	if total == 0 {
		return 0.5
	}
	var entropy float64
	for _, c := range bins {
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return util.Clamp(1-entropy/maxEntropy, 0, 1)
}

func keySections(sections []sectionResult) []model.KeySection {
	keys := []model.KeySection{}
	if len(sections) == 0 {
		return keys
	}

	sorted := append([]sectionResult{}, sections...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].sentiment.Score < sorted[j].sentiment.Score
	})

	used := make(map[int]bool)
	if low := sorted[0]; low.sentiment.Score < -keySectionThreshold {
		keys = append(keys, keySection(model.KeyMostNegative, low, colorNegative))
		used[low.index] = true
	}
	if high := sorted[len(sorted)-1]; high.sentiment.Score > keySectionThreshold {
		keys = append(keys, keySection(model.KeyMostPositive, high, colorPositive))
		used[high.index] = true
	}

	extreme := sections[0]
	for _, s := range sections[1:] {
		if math.Abs(s.sentiment.Score) > math.Abs(extreme.sentiment.Score) {
			extreme = s
		}
	}
	if math.Abs(extreme.sentiment.Score) > extremeThreshold && !used[extreme.index] {
		color := colorNegative
		if extreme.sentiment.Score > 0 {
			color = colorExtreme
		}
		keys = append(keys, keySection(model.KeyMostExtreme, extreme, color))
	}
	return keys
}

func keySection(kind model.KeySectionType, s sectionResult, color string) model.KeySection {
	return model.KeySection{
		Type:    kind,
		Score:   s.sentiment.Score,
		Label:   s.sentiment.Label,
		Content: s.sentiment.Content,
		Color:   color,
	}
}

func summarize(overall float64, sections []sectionResult, keys []model.KeySection) string {
	var parts []string
	switch {
	case overall >= 0.6:
		parts = append(parts, "The document has a notably positive tone overall.")
	case overall >= 0.2:
		parts = append(parts, "The document has a generally positive tone.")
	case overall > -0.2:
		parts = append(parts, "The document has a mostly neutral tone.")
	case overall > -0.6:
		parts = append(parts, "The document has a somewhat negative tone.")
	default:
		parts = append(parts, "The document has a significantly negative tone.")
	}

	var positive, negative int
	for _, s := range sections {
		switch {
		case s.sentiment.Score > 0.2:
			positive++
		case s.sentiment.Score < -0.2:
			negative++
		}
	}
	neutral := len(sections) - positive - negative
	if positive > 0 || negative > 0 {
		parts = append(parts, fmt.Sprintf("Analysis identified %s, %s, and %s.",
			plural(positive, "positive section"),
			plural(negative, "negative section"),
			plural(neutral, "neutral section")))
	}

	for _, k := range keys {
		if k.Type == model.KeyMostPositive {
			parts = append(parts, "The document contains notably positive language regarding key topics or provisions.")
		}
	}
	for _, k := range keys {
		if k.Type == model.KeyMostNegative {
			parts = append(parts, "Some sections contain potentially concerning negative language.")
		}
	}
	return strings.Join(parts, " ")
}

func distribution(bins map[float64]int) []model.ScoreBin {
	keys := make([]float64, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	out := make([]model.ScoreBin, 0, len(keys))
	for _, k := range keys {
		color := colorNeutral
		switch {
		case k > 0:
			color = colorPositive
		case k < 0:
			color = colorNegative
		}
		out = append(out, model.ScoreBin{Score: k, Count: bins[k], Color: color})
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= sectionPreview {
		return s
	}
	return segment.Truncate(s, sectionPreview) + "..."
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64, avg float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += (x - avg) * (x - avg)
	}
	return sum / float64(len(xs))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
