package classify

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/legalyze/internal/model"
)

const (
	// DefaultMinChars is the shortest input worth classifying
	DefaultMinChars = 100
	titleLines      = 10
	titleBoost      = 0.2
)

// Classifier matches text against the document-type taxonomy
type Classifier struct {
	minChars int
}

// NewClassifier creates a classifier with the default minimum length
func NewClassifier() *Classifier {
	return &Classifier{minChars: DefaultMinChars}
}

// WithMinChars overrides the minimum input length
func (c *Classifier) WithMinChars(n int) *Classifier {
	if n > 0 {
		c.minChars = n
	}
	return c
}

// Classify returns the single best document type for text.
// Indicators are plain substring matches against the lower-cased text.
func (c *Classifier) Classify(text string) model.DocumentTypeResult {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < c.minChars {
		return model.UnknownDocumentType()
	}

	lower := strings.ToLower(text)
	title := titleText(text)

	best := model.UnknownDocumentType()
	for _, cat := range taxonomy {
		for _, st := range cat.subTypes {
			var found []string
			for _, ind := range st.indicators {
				if strings.Contains(lower, ind) {
					found = append(found, ind)
				}
			}
			if len(found) == 0 {
				continue
			}

			confidence := math.Min(0.3+float64(len(found))/float64(len(st.indicators))*0.7, 1.0)
			for _, ind := range found {
				if strings.Contains(title, ind) {
					confidence = math.Min(confidence+titleBoost, 1.0)
					break
				}
			}

			// strict comparison keeps the earliest declaration on ties
			if confidence > best.Confidence {
				name := st.name
				best = model.DocumentTypeResult{
					DocumentType: cat.name,
					SubType:      &name,
					Confidence:   confidence,
					Indicators:   found,
				}
			}
		}
	}

	return best
}

// titleText joins the first non-blank lines, where titles usually sit
func titleText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == titleLines {
			break
		}
	}
	return strings.ToLower(strings.Join(lines, " "))
}
