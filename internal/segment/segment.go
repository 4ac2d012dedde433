// Package segment splits raw document text into sections, paragraphs,
// sentences and word tokens. Every analyzer segments through this package so
// they agree on boundaries.
package segment

import (
	"regexp"
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
)

var (
	// "1. ", "Section 2. ", "Article IV. " at the start of the text or a line
	headingPattern   = regexp.MustCompile(`(?:\n|^)\s*(?:Section\s+|Article\s+)?(?:[0-9]{1,2}|[IVXLCDM]+)\s*\.\s+`)
	paragraphPattern = regexp.MustCompile(`\n\s*\n`)
	wordPattern      = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

const (
	minChunkWords    = 50
	minSectionCount  = 3
	maxSectionCount  = 30
	chunkCountTarget = 10
)

// Sections splits text into logical sections. Numbered headings win; otherwise
// blank-line paragraphs, then single lines. Results with too few or too many
// pieces are re-chunked into fixed word windows.
func Sections(text string) []model.Section {
	if strings.TrimSpace(text) == "" {
		return []model.Section{}
	}

	if sections := splitOnHeadings(text); sections != nil {
		return sections
	}

	pieces := Paragraphs(text)
	if len(pieces) < minSectionCount {
		pieces = Lines(text)
	}

	if len(pieces) < minSectionCount || len(pieces) > maxSectionCount {
		pieces = chunkWords(text)
	}

	sections := make([]model.Section, 0, len(pieces))
	for _, p := range pieces {
		sections = append(sections, model.Section{Content: p, Index: len(sections)})
	}
	return sections
}

// splitOnHeadings returns nil when no heading splits the text
func splitOnHeadings(text string) []model.Section {
	matches := headingPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]model.Section, 0, len(matches)+1)
	add := func(heading, content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		sections = append(sections, model.Section{
			Heading: heading,
			Content: content,
			Index:   len(sections),
		})
	}

	prev := 0
	heading := ""
	for _, m := range matches {
		add(heading, text[prev:m[0]])
		heading = strings.TrimSpace(text[m[0]:m[1]])
		prev = m[1]
	}
	add(heading, text[prev:])

	return sections
}

func chunkWords(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	size := len(words) / chunkCountTarget
	if size < minChunkWords {
		size = minChunkWords
	}

	var chunks []string
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// Paragraphs splits on blank lines and drops empty pieces
func Paragraphs(text string) []string {
	return trimmed(paragraphPattern.Split(text, -1))
}

// Lines splits on single newlines and drops empty pieces
func Lines(text string) []string {
	return trimmed(strings.Split(text, "\n"))
}

// SplitSentences splits text at whitespace that follows . ? ! or :, unless the
// period closes a short capitalised token such as "Mr." or "U.". With
// newlines set, every newline is also a boundary. Pieces are trimmed and
// empty pieces dropped.
func SplitSentences(text string, newlines bool) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !isSpace(c) {
			continue
		}
		if (newlines && c == '\n') || endsSentence(text, i) {
			if piece := strings.TrimSpace(text[start:i]); piece != "" {
				out = append(out, piece)
			}
			start = i + 1
		}
	}
	if piece := strings.TrimSpace(text[start:]); piece != "" {
		out = append(out, piece)
	}
	return out
}

// Sentences splits on punctuation and newlines
func Sentences(text string) []string {
	return SplitSentences(text, true)
}

// endsSentence reports whether the whitespace byte at i is a sentence boundary
func endsSentence(text string, i int) bool {
	if i == 0 {
		return false
	}
	switch text[i-1] {
	case '?', '!', ':':
		return true
	case '.':
		if i >= 3 && isUpper(text[i-3]) && isLower(text[i-2]) {
			return false // "Mr."
		}
		if i >= 2 && isUpper(text[i-2]) {
			return false // "U."
		}
		return true
	}
	return false
}

// Words returns the word tokens of text (letters, digits and underscore)
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// Truncate cuts text to at most maxChars characters
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	n := 0
	for i := range text {
		if n == maxChars {
			return text[:i]
		}
		n++
	}
	return text
}

func trimmed(pieces []string) []string {
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
