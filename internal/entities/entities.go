// Package entities extracts named entities from document text.
package entities

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/segment"
	"github.com/ppiankov/legalyze/internal/util"
)

const (
	// MaxChars caps the text handed to an entity model
	MaxChars      = 1_000_000
	contextRadius = 100
)

// Extractor finds named entities in text
type Extractor interface {
	Name() string
	Extract(text string) ([]model.Entity, error)
}

// Noop is the extractor used when entity extraction is disabled
type Noop struct{}

// NewNoop creates the disabled extractor
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Name() string { return "noop" }

// Extract always returns an empty list
func (n *Noop) Extract(string) ([]model.Entity, error) {
	return []model.Entity{}, nil
}

// Prose extracts entities with the prose averaged-perceptron tagger
type Prose struct{}

// NewProse creates a prose-backed extractor
func NewProse() *Prose {
	return &Prose{}
}

func (p *Prose) Name() string { return "prose" }

// Extract runs prose over the first MaxChars characters and locates each
// entity in document order
func (p *Prose) Extract(text string) ([]model.Entity, error) {
	text = segment.Truncate(text, MaxChars)
	if strings.TrimSpace(text) == "" {
		return []model.Entity{}, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to tag document: %w", err)
	}

	return Locate(text, doc.Entities()), nil
}

// Locate resolves tagged entities to byte offsets, searching forward from
// the previous hit so repeated mentions map to successive occurrences.
// Entities that cannot be found are skipped.
func Locate(text string, found []prose.Entity) []model.Entity {
	out := []model.Entity{}
	cursor := 0
	for _, e := range found {
		if e.Text == "" {
			continue
		}
		idx := strings.Index(text[cursor:], e.Text)
		start := cursor + idx
		if idx < 0 {
			// the tagger may emit entities out of order
			start = strings.Index(text, e.Text)
			if start < 0 {
				continue
			}
		}
		end := start + len(e.Text)
		out = append(out, model.Entity{
			Text:    e.Text,
			Label:   e.Label,
			Start:   start,
			End:     end,
			Context: util.Snippet(text, start, end, contextRadius),
		})
		if end > cursor {
			cursor = end
		}
	}
	return out
}

// New returns the prose extractor when enabled, otherwise Noop
func New(enabled bool) Extractor {
	if enabled {
		return NewProse()
	}
	return NewNoop()
}
