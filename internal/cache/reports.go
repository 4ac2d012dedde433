package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/legalyze/internal/model"
)

// ReportCache stores analysis reports as JSON keyed by content hash
type ReportCache struct {
	backend Cache
	ttl     time.Duration
}

// NewReportCache wraps a byte cache
func NewReportCache(backend Cache, ttl time.Duration) *ReportCache {
	return &ReportCache{backend: backend, ttl: ttl}
}

// Get returns the cached report for a content hash, if any
func (c *ReportCache) Get(ctx context.Context, contentHash, variant string) (*model.AnalysisReport, bool) {
	data, ok := c.backend.Get(ctx, Key(contentHash, variant))
	if !ok {
		return nil, false
	}

	var report model.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		// stale or corrupt entries are dropped
		_ = c.backend.Delete(ctx, Key(contentHash, variant))
		return nil, false
	}
	return &report, true
}

// Put stores report under its content hash
func (c *ReportCache) Put(ctx context.Context, report *model.AnalysisReport, variant string) error {
	if report == nil || report.ContentHash == "" {
		return fmt.Errorf("report has no content hash")
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return c.backend.Set(ctx, Key(report.ContentHash, variant), data, c.ttl)
}
