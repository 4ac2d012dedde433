// Package source turns raw files and HTTP bodies into plain document text.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for formats no extractor can read
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrTooLarge is returned when input exceeds the configured byte limit
	ErrTooLarge = errors.New("document exceeds size limit")
)

// Extractor converts one document format into text
type Extractor interface {
	// Name returns the extractor name
	Name() string

	// CanHandle checks if this extractor can read the given path or content type
	CanHandle(path string, contentType string) bool

	// Extract reads the document body and returns its text and metadata
	Extract(ctx context.Context, data []byte, name string) (model.Document, error)
}

// Registry manages source extractors
type Registry struct {
	extractors []Extractor
	maxBytes   int64
	normalize  bool
}

// NewRegistry creates a registry with the built-in extractors
func NewRegistry(cfg model.SourceConfig) *Registry {
	registry := &Registry{
		extractors: make([]Extractor, 0),
		maxBytes:   cfg.MaxBytes,
		normalize:  cfg.Normalize,
	}

	registry.Register(NewHTMLExtractor())
	registry.Register(NewMarkdownExtractor())
	registry.Register(NewTextExtractor())
	registry.Register(newUnsupported("pdf", []string{".pdf"}, []string{"application/pdf"}))
	registry.Register(newUnsupported("docx", []string{".docx", ".doc"}, []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword",
	}))

	return registry
}

// Register registers a new extractor; earlier registrations win
func (r *Registry) Register(e Extractor) {
	r.extractors = append(r.extractors, e)
}

// Find returns the first extractor that can handle path or contentType
func (r *Registry) Find(path string, contentType string) (Extractor, error) {
	contentType = mediaType(contentType)
	for _, e := range r.extractors {
		if e.CanHandle(path, contentType) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, describe(path, contentType))
}

// Extract reads r (bounded by the size limit), decodes it to UTF-8, extracts
// it with the matching extractor and normalises the result
func (r *Registry) Extract(ctx context.Context, body io.Reader, path string, contentType string) (model.Document, error) {
	extractor, err := r.Find(path, contentType)
	if err != nil {
		return model.Document{}, err
	}

	data, err := r.read(body)
	if err != nil {
		return model.Document{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}
	data = toUTF8(data, contentType)

	doc, err := extractor.Extract(ctx, data, path)
	if err != nil {
		return model.Document{}, fmt.Errorf("%s extractor failed for %s: %w", extractor.Name(), path, err)
	}

	if r.normalize {
		doc.Content = Normalize(doc.Content)
	} else {
		doc.Content = strings.TrimSpace(doc.Content)
	}
	doc.Language = DetectLanguage(doc.Content)
	doc.Metadata.Source = path
	doc.Metadata.Extractor = extractor.Name()
	if doc.Metadata.PageCount < 1 {
		doc.Metadata.PageCount = 1
	}
	if doc.Metadata.Title == "" {
		doc.Metadata.Title = TitleFromPath(path)
	}
	return doc, nil
}

func (r *Registry) read(body io.Reader) ([]byte, error) {
	if r.maxBytes <= 0 {
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, r.maxBytes)
	}
	return data, nil
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func extension(path string) string {
	// query strings on URLs must not hide the extension
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.ToLower(filepath.Ext(path))
}

func matches(path, contentType string, exts, types []string) bool {
	if contentType != "" {
		for _, t := range types {
			if contentType == t {
				return true
			}
		}
	}
	ext := extension(path)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func describe(path, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if ext := extension(path); ext != "" {
		return ext
	}
	return path
}

// TitleFromPath derives a fallback title from a file path or URL
func TitleFromPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	base := filepath.Base(strings.TrimRight(path, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// unsupported claims a format so it fails with ErrUnsupportedFormat instead
// of falling through to another extractor
type unsupported struct {
	name  string
	exts  []string
	types []string
}

func newUnsupported(name string, exts, types []string) *unsupported {
	return &unsupported{name: name, exts: exts, types: types}
}

func (u *unsupported) Name() string { return u.name }

func (u *unsupported) CanHandle(path string, contentType string) bool {
	return matches(path, contentType, u.exts, u.types)
}

func (u *unsupported) Extract(context.Context, []byte, string) (model.Document, error) {
	return model.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, u.name)
}
