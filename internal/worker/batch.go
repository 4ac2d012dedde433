package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/legalyze/internal/logging"
	"github.com/ppiankov/legalyze/internal/model"
)

// Analyzer analyzes one source: a file path or an http(s) URL
type Analyzer interface {
	AnalyzeSource(ctx context.Context, source string) (*model.AnalysisReport, error)
}

// AnalysisJob analyzes a single source
type AnalysisJob struct {
	Source   string
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute waits for the per-host rate limit on URL sources and runs the analysis
func (j *AnalysisJob) Execute(ctx context.Context) Result {
	start := time.Now()
	if j.Limiter != nil && IsURL(j.Source) {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			return &AnalysisResult{Source: j.Source, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	report, err := j.Analyzer.AnalyzeSource(ctx, j.Source)
	return &AnalysisResult{
		Source:   j.Source,
		Report:   report,
		Error:    err,
		Duration: time.Since(start),
	}
}

// AnalysisResult is the outcome of one AnalysisJob
type AnalysisResult struct {
	Source   string
	Report   *model.AnalysisReport
	Error    error
	Duration time.Duration
}

// GetError returns the error from the analysis
func (r *AnalysisResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many sources concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
	logger      logging.Logger
}

// NewBatchProcessor creates a batch processor. A non-positive rate disables
// per-host limiting.
func NewBatchProcessor(analyzer Analyzer, concurrency int, requestsPerSecond float64, burst int, logger logging.Logger) *BatchProcessor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     limiter,
		logger:      logger.Named("batch"),
	}
}

// Limiter returns the per-host limiter, nil when limiting is off
func (b *BatchProcessor) Limiter() *Limiter {
	return b.limiter
}

// Process analyzes sources and returns one result per source in input order
func (b *BatchProcessor) Process(ctx context.Context, sources []string) []*AnalysisResult {
	if len(sources) == 0 {
		return []*AnalysisResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, source := range sources {
		job := &AnalysisJob{
			Source:   source,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()

	out := make([]*AnalysisResult, len(results))
	for i, result := range results {
		r := result.(*AnalysisResult)
		if r.Error != nil {
			b.logger.Warn("analysis failed", logging.String("source", r.Source), logging.Err(r.Error))
		} else {
			b.logger.Debug("analysis finished", logging.String("source", r.Source), logging.Duration("elapsed", r.Duration))
		}
		out[i] = r
	}

	return out
}

// ProcessFile reads sources from a list file and analyzes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalysisResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.Process(ctx, sources), nil
}

// ReadSourcesFromFile reads one file path or URL per line, skipping blanks,
// # comments and duplicates
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}

// IsURL reports whether source is an http(s) URL rather than a file path
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
