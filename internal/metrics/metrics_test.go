package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	m := New()
	m.ObserveAnalysis(OutcomeSuccess, "Contract", time.Second)
	m.FacetFailed("topics")
	m.CacheLookup(true)
	m.Fetched(200)
	m.TokensUsed(10)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"legalyze_analyses_total",
		"legalyze_facet_failures_total",
		"legalyze_analysis_duration_seconds",
		"legalyze_cache_requests_total",
		"legalyze_fetches_total",
		"legalyze_llm_tokens_used_total",
	}, names)
}

func TestObserveAnalysis(t *testing.T) {
	m := New()
	m.ObserveAnalysis(OutcomeSuccess, "Contract", 200*time.Millisecond)
	m.ObserveAnalysis(OutcomeSuccess, "Contract", 300*time.Millisecond)
	m.ObserveAnalysis(OutcomePartial, "Unknown", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(OutcomePartial)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.AnalysisDuration))
}

func TestCacheLookup(t *testing.T) {
	m := New()
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(CacheHit)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues(CacheMiss)))
}

func TestFetched(t *testing.T) {
	m := New()
	m.Fetched(200)
	m.Fetched(204)
	m.Fetched(503)
	m.Fetched(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("error")))
}

func TestTokensUsed_IgnoresNonPositive(t *testing.T) {
	m := New()
	m.TokensUsed(0)
	m.TokensUsed(-5)
	m.TokensUsed(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(m.LLMTokensUsed))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.FacetFailed("sentiment")

	path := filepath.Join(t.TempDir(), "legalyze.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `legalyze_facet_failures_total{facet="sentiment"} 1`))
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis(OutcomeSuccess, "Contract", time.Second)
		m.FacetFailed("topics")
		m.CacheLookup(true)
		m.Fetched(200)
		m.TokensUsed(10)
	})
}
