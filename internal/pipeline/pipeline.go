package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/legalyze/internal/cache"
	"github.com/ppiankov/legalyze/internal/llm"
	"github.com/ppiankov/legalyze/internal/logging"
	"github.com/ppiankov/legalyze/internal/metrics"
	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/source"
	"github.com/ppiankov/legalyze/internal/worker"
)

// Pipeline orchestrates the complete analysis: load, cache lookup, analyze, summarize
type Pipeline struct {
	registry   *source.Registry
	fetcher    *Fetcher
	analyzer   *Analyzer
	reports    *cache.ReportCache // nil when caching is off
	summarizer *llm.Summarizer    // Optional LLM summarizer (nil if disabled)
	renderer   *Renderer
	metrics    *metrics.Metrics
	logger     logging.Logger
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
// logger and m may be nil.
func NewPipeline(cfg *model.Config, logger logging.Logger, m *metrics.Metrics) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	p := &Pipeline{
		registry: source.NewRegistry(cfg.Source),
		fetcher:  NewFetcher(cfg.HTTP).WithMetrics(m).WithLogger(logger.Named("fetcher")),
		analyzer: NewAnalyzer(cfg.Analysis, logger, m),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		metrics:  m,
		logger:   logger,
		config:   cfg,
	}

	if cfg.Cache.Enabled {
		backend, err := cache.New(cfg.Cache)
		if err != nil {
			logger.Warn("cache disabled", logging.Err(err))
		} else {
			p.reports = cache.NewReportCache(backend, cfg.Cache.DiskTTL)
		}
	}

	// LLM summary is optional: a bad provider config disables it, never the analysis
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
		if err != nil {
			logger.Warn("failed to initialize LLM provider", logging.Err(err))
		} else {
			p.summarizer = s
		}
	}

	return p
}

// WithCache replaces the report cache backend; nil turns caching off
func (p *Pipeline) WithCache(backend cache.Cache) *Pipeline {
	if backend == nil {
		p.reports = nil
		return p
	}
	p.reports = cache.NewReportCache(backend, p.config.Cache.DiskTTL)
	return p
}

// WithCrawlDelays forwards robots.txt crawl delays of URL sources to d,
// typically the batch rate limiter
func (p *Pipeline) WithCrawlDelays(d CrawlDelayer) *Pipeline {
	p.fetcher.WithCrawlDelays(d)
	return p
}

// WithSummarizer replaces the LLM summarizer
func (p *Pipeline) WithSummarizer(s *llm.Summarizer) *Pipeline {
	p.summarizer = s
	return p
}

// Analyzer returns the analyzer used for documents
func (p *Pipeline) Analyzer() *Analyzer {
	return p.analyzer
}

// Load reads a file path or fetches an http(s) URL and extracts its text
func (p *Pipeline) Load(ctx context.Context, src string) (model.Document, error) {
	var (
		doc model.Document
		err error
	)
	if worker.IsURL(src) {
		doc, err = p.loadURL(ctx, src)
	} else {
		doc, err = p.loadFile(ctx, src)
	}
	if err != nil {
		return model.Document{}, err
	}

	if strings.TrimSpace(doc.Content) == "" {
		return doc, fmt.Errorf("%w: %s", ErrEmptyDocument, src)
	}
	return doc, nil
}

func (p *Pipeline) loadFile(ctx context.Context, path string) (model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return p.registry.Extract(ctx, f, path, "")
}

func (p *Pipeline) loadURL(ctx context.Context, rawURL string) (model.Document, error) {
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return model.Document{}, fmt.Errorf("fetch: %w", err)
	}

	doc, err := p.registry.Extract(ctx, bytes.NewReader(fetched.Body), fetched.FinalURL, fetched.ContentType)
	if err != nil {
		return model.Document{}, err
	}

	meta := fetched.Meta
	doc.Metadata.FetchMeta = &meta
	// prefer the de-slugged URL subject over the raw path fallback
	if doc.Metadata.Title == source.TitleFromPath(fetched.FinalURL) {
		doc.Metadata.Title = fetched.Subject
	}
	return doc, nil
}

// AnalyzeSource loads src and analyzes it
func (p *Pipeline) AnalyzeSource(ctx context.Context, src string) (*model.AnalysisReport, error) {
	doc, err := p.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return p.AnalyzeDocument(ctx, doc), nil
}

// AnalyzeDocument analyzes an already extracted document, consulting the
// report cache first. The LLM summary is attached last and is never cached.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, doc model.Document) *model.AnalysisReport {
	hash := cache.ContentHash(doc.Content)
	variant := p.cacheVariant()

	var report *model.AnalysisReport
	if p.reports != nil {
		cached, ok := p.reports.Get(ctx, hash, variant)
		p.metrics.CacheLookup(ok)
		if ok {
			p.logger.Debug("report cache hit", logging.String("hash", hash))
			cached.Metadata = doc.Metadata
			cached.Subject = subjectOf(doc)
			report = cached
		}
	}

	if report == nil {
		report = p.analyzer.Analyze(ctx, doc)
		if p.reports != nil && report.Error == "" && len(report.Failures) == 0 {
			if err := p.reports.Put(ctx, report, variant); err != nil {
				p.logger.Warn("failed to cache report", logging.Err(err))
			}
		}
	}

	// Generate LLM summary if enabled (AFTER scoring, never affects score)
	report.LLM = nil
	if p.summarizer.IsEnabled() && report.Error == "" {
		summary, err := p.summarizer.GenerateSummary(ctx, report, doc.Content)
		if err != nil {
			p.logger.Warn("LLM summary generation failed", logging.Err(err))
		} else if summary != nil {
			p.metrics.TokensUsed(summary.TokensUsed)
			report.LLM = summary
		}
	}

	return report
}

// cacheVariant separates reports produced under different facet settings
// and text limits
func (p *Pipeline) cacheVariant() string {
	a := p.config.Analysis
	flags := []struct {
		on   bool
		name string
	}{
		{a.Entities, "ent"},
		{a.BaselineSentiment, "vader"},
		{a.IncludeStructure, "struct"},
	}

	parts := []string{fmt.Sprintf("lim%d-%d-%d-%d", a.MaxSentimentChars, a.MaxTopicChars, a.MaxLegalTermChars, a.MinClassifyChars)}
	for _, f := range flags {
		if f.on {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "+")
}

// RenderReport writes the requested report files and prints a summary
func (p *Pipeline) RenderReport(report *model.AnalysisReport, jsonPath string, mdPath string, verbose bool) error {
	if err := p.WriteReport(report, jsonPath, mdPath, verbose); err != nil {
		return err
	}
	p.renderer.RenderSummary(report)
	return nil
}

// WriteReport writes the JSON and Markdown reports; empty paths are skipped.
// An enabled LLM summary goes next to the Markdown report as <name>.llm.md.
func (p *Pipeline) WriteReport(report *model.AnalysisReport, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// LLM summary goes to its own file so it is never mistaken for analysis output
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmMdPath); err != nil {
			p.logger.Warn("failed to write LLM summary", logging.String("path", llmMdPath), logging.Err(err))
		} else if verbose {
			fmt.Printf("✓ Wrote LLM Summary: %s\n", llmMdPath)
		}
	}
	return nil
}
