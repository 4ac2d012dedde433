package source

import (
	"context"
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
)

const maxTitleRunes = 120

// TextExtractor reads plain text files
type TextExtractor struct{}

// NewTextExtractor creates a plain text extractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Name() string { return "text" }

// CanHandle accepts .txt files, text/plain, and extensionless paths with no
// content type
func (e *TextExtractor) CanHandle(path string, contentType string) bool {
	if contentType == "" && extension(path) == "" {
		return true
	}
	return matches(path, contentType, []string{".txt", ".text"}, []string{"text/plain"})
}

// Extract splits pages on form feeds and takes the first line as title
func (e *TextExtractor) Extract(_ context.Context, data []byte, _ string) (model.Document, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	pages := strings.Split(content, "\f")
	content = strings.Join(pages, "\n\n")

	return model.Document{
		Content: content,
		Metadata: model.DocumentMetadata{
			Title:     firstLine(content),
			PageCount: len(pages),
			FileType:  "txt",
		},
	}, nil
}

func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len([]rune(line)) > maxTitleRunes {
			return ""
		}
		return line
	}
	return ""
}
