// Package metrics exposes prometheus collectors for analysis runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "legalyze"

// Outcome labels for the analyses counter
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeError   = "error"
)

// Cache result labels
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// DurationBuckets cover single-document analysis times in seconds
var DurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Metrics holds the collectors registered on one registry
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	FacetFailures    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	CacheRequests    *prometheus.CounterVec
	FetchesTotal     *prometheus.CounterVec
	LLMTokensUsed    prometheus.Counter
}

// New creates a private registry with all legalyze collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Documents analyzed by outcome.",
		}, []string{"outcome"}),
		FacetFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facet_failures_total",
			Help:      "Analysis facets that failed and fell back to their empty value.",
		}, []string{"facet"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent analyzing one document.",
			Buckets:   DurationBuckets,
		}, []string{"document_type"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "URL source fetches by status class.",
		}, []string{"status"}),
		LLMTokensUsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_used_total",
			Help:      "Tokens consumed by optional LLM summaries.",
		}),
	}

	m.registry.MustRegister(
		m.AnalysesTotal,
		m.FacetFailures,
		m.AnalysisDuration,
		m.CacheRequests,
		m.FetchesTotal,
		m.LLMTokensUsed,
	)
	return m
}

// Registry returns the gatherer holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAnalysis records one finished analysis. All recorders are no-ops on a nil *Metrics.
func (m *Metrics) ObserveAnalysis(outcome, documentType string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalysisDuration.WithLabelValues(documentType).Observe(elapsed.Seconds())
}

// FacetFailed counts a recovered facet failure
func (m *Metrics) FacetFailed(facet string) {
	if m == nil {
		return
	}
	m.FacetFailures.WithLabelValues(facet).Inc()
}

// CacheLookup counts a cache hit or miss
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheRequests.WithLabelValues(CacheHit).Inc()
		return
	}
	m.CacheRequests.WithLabelValues(CacheMiss).Inc()
}

// Fetched counts a URL fetch by status class ("2xx", "4xx", "error")
func (m *Metrics) Fetched(statusCode int) {
	if m == nil {
		return
	}
	status := "error"
	if statusCode > 0 {
		status = fmt.Sprintf("%dxx", statusCode/100)
	}
	m.FetchesTotal.WithLabelValues(status).Inc()
}

// TokensUsed adds LLM token usage
func (m *Metrics) TokensUsed(n int) {
	if m == nil {
		return
	}
	if n > 0 {
		m.LLMTokensUsed.Add(float64(n))
	}
}

// WriteTextfile writes every collected metric in the text exposition format,
// for pickup by the node_exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
