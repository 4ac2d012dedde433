package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"

	"github.com/ppiankov/legalyze/internal/model"
)

// MarkdownExtractor renders Markdown to HTML and extracts its text
type MarkdownExtractor struct{}

// NewMarkdownExtractor creates a Markdown extractor
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

func (e *MarkdownExtractor) Name() string { return "markdown" }

func (e *MarkdownExtractor) CanHandle(path string, contentType string) bool {
	return matches(path, contentType, []string{".md", ".markdown"}, []string{"text/markdown", "text/x-markdown"})
}

func (e *MarkdownExtractor) Extract(_ context.Context, data []byte, _ string) (model.Document, error) {
	rendered := blackfriday.Run(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))

	root, err := html.Parse(bytes.NewReader(rendered))
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to parse rendered markdown: %w", err)
	}
	return extractHTML(root, "md"), nil
}
