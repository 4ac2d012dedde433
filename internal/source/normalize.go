package source

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/legalyze/internal/segment"
)

const (
	defaultLanguage  = "en"
	maxLanguageWords = 2000
	minStopwordRatio = 0.05
)

// languages are tried in order; ties keep the earlier language
var languages = []struct {
	code      string
	stopwords map[string]bool
}{
	{"en", set("the", "and", "of", "to", "in", "is", "that", "for", "with", "shall", "this", "be", "by", "or", "any")},
	{"es", set("el", "los", "las", "y", "del", "que", "por", "con", "para", "una", "es", "se", "al", "su", "lo")},
	{"fr", set("le", "les", "et", "des", "du", "que", "est", "pour", "dans", "une", "sur", "au", "aux", "ce", "qui")},
	{"de", set("der", "die", "das", "und", "den", "von", "zu", "mit", "ist", "nicht", "ein", "eine", "dem", "auf", "sich")},
}

func set(words ...string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}

// Normalize applies NFC, unifies line endings, trims every line and collapses
// runs of blank lines to one
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// DetectLanguage guesses en, es, fr or de from the share of stopwords among
// the first words of text. Anything inconclusive is English.
func DetectLanguage(text string) string {
	words := segment.Words(strings.ToLower(text))
	if len(words) > maxLanguageWords {
		words = words[:maxLanguageWords]
	}
	if len(words) == 0 {
		return defaultLanguage
	}

	best, bestCount := defaultLanguage, 0
	for _, lang := range languages {
		count := 0
		for _, w := range words {
			if lang.stopwords[w] {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = lang.code, count
		}
	}

	if float64(bestCount)/float64(len(words)) < minStopwordRatio {
		return defaultLanguage
	}
	return best
}
