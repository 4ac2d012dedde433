package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ppiankov/legalyze/internal/cache"
	"github.com/ppiankov/legalyze/internal/metrics"
	"github.com/ppiankov/legalyze/internal/model"
)

const ndaDocument = "NON-DISCLOSURE AGREEMENT\n\n" +
	"This confidentiality agreement protects confidential information shared between the signatories.\n" +
	"Each signatory keeps the confidential information secret and returns it on request.\n\n" +
	"IN NO EVENT SHALL EITHER PARTY BE LIABLE FOR ANY INDIRECT OR CONSEQUENTIAL DAMAGES ARISING OUT OF THIS AGREEMENT."

func ndaDoc() model.Document {
	return model.Document{
		Content:  ndaDocument,
		Language: "en",
		Metadata: model.DocumentMetadata{Title: "Mutual NDA", PageCount: 1, FileType: "txt", Source: "nda.txt"},
	}
}

type panickingEntities struct{}

func (panickingEntities) Name() string { return "panic" }
func (panickingEntities) Extract(string) ([]model.Entity, error) {
	panic("entity model exploded")
}

type failingEntities struct{}

func (failingEntities) Name() string { return "failing" }
func (failingEntities) Extract(string) ([]model.Entity, error) {
	return nil, errors.New("model not loaded")
}

func TestAnalyzer_Analyze_Document(t *testing.T) {
	analyzer := NewAnalyzer(model.DefaultConfig().Analysis, nil, nil)
	report := analyzer.Analyze(context.Background(), ndaDoc())

	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
	if len(report.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", report.Failures)
	}
	if _, err := uuid.Parse(report.ID); err != nil {
		t.Errorf("report ID %q is not a uuid", report.ID)
	}
	if report.ContentHash != cache.ContentHash(ndaDocument) {
		t.Errorf("content hash mismatch")
	}
	if report.Subject != "Mutual NDA" || report.Language != "en" || report.Metadata.Source != "nda.txt" {
		t.Errorf("document fields not carried: %+v", report)
	}

	a := report.Analysis
	if a.DocumentType.DocumentType != "Contract" || a.DocumentType.SubType == nil || *a.DocumentType.SubType != "Non-Disclosure Agreement" {
		t.Errorf("unexpected document type: %+v", a.DocumentType)
	}

	found := false
	for _, c := range a.KeyClauses {
		if c.ClauseType == "Limitation of Liability" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a Limitation of Liability clause, got %+v", a.KeyClauses)
	}

	if a.Compliance.DocumentType.DocumentType != "Contract" {
		t.Errorf("compliance should reuse the computed document type, got %+v", a.Compliance.DocumentType)
	}
	if len(a.Compliance.KeyClauses) != len(a.KeyClauses) {
		t.Errorf("compliance should reuse the computed clauses")
	}

	// round(0.8 * 50) from the liability clause alone
	if a.Risk.Index < 40 {
		t.Errorf("expected risk index >= 40, got %d", a.Risk.Index)
	}
	if a.Readability.WordCount == 0 {
		t.Error("expected readability to be computed")
	}
	if a.Structure != nil {
		t.Error("structure should be omitted by default")
	}
	if a.Sentiment.Baseline != nil {
		t.Error("baseline should be off by default")
	}
	if a.Entities == nil || len(a.Entities) != 0 {
		t.Errorf("noop entities should give an empty list, got %v", a.Entities)
	}
}

func TestAnalyzer_OptionalFacets(t *testing.T) {
	cfg := model.DefaultConfig().Analysis
	cfg.IncludeStructure = true
	cfg.BaselineSentiment = true

	report := NewAnalyzer(cfg, nil, nil).Analyze(context.Background(), ndaDoc())

	if len(report.Analysis.Structure) == 0 {
		t.Error("expected structure sections")
	}
	if report.Analysis.Sentiment.Baseline == nil || report.Analysis.Sentiment.Baseline.Method != "vader" {
		t.Errorf("expected vader baseline, got %+v", report.Analysis.Sentiment.Baseline)
	}
}

func TestAnalyzer_StructureSkippedWhenDisabled(t *testing.T) {
	tests := []struct {
		name    string
		include bool
		calls   int
	}{
		{"disabled", false, 0},
		{"enabled", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultConfig().Analysis
			cfg.IncludeStructure = tt.include

			calls := 0
			a := NewAnalyzer(cfg, nil, nil)
			a.sections = func(string) []model.Section {
				calls++
				return []model.Section{{Heading: "Confidentiality", Content: "secret"}}
			}

			report := a.Analyze(context.Background(), ndaDoc())
			if calls != tt.calls {
				t.Errorf("segmenter called %d times, want %d", calls, tt.calls)
			}
			if tt.include != (report.Analysis.Structure != nil) {
				t.Errorf("structure = %v, include = %v", report.Analysis.Structure, tt.include)
			}
			for _, f := range report.Failures {
				if f.Facet == FacetStructure {
					t.Errorf("unexpected structure failure: %+v", f)
				}
			}
		})
	}
}

func TestAnalyzer_EmptyDocument(t *testing.T) {
	for _, content := range []string{"", "   \n\t "} {
		doc := model.Document{Content: content}
		report := NewAnalyzer(model.DefaultConfig().Analysis, nil, nil).Analyze(context.Background(), doc)

		if report.Error != "" || len(report.Failures) != 0 {
			t.Errorf("empty input must not fail: %+v", report)
		}
		if !reflect.DeepEqual(report.Analysis, model.EmptyAnalysis()) {
			t.Errorf("expected empty analysis for %q, got %+v", content, report.Analysis)
		}
		if report.Subject != "untitled document" {
			t.Errorf("unexpected subject %q", report.Subject)
		}
	}
}

func TestAnalyzer_FacetPanicIsContained(t *testing.T) {
	m := metrics.New()
	analyzer := NewAnalyzer(model.DefaultConfig().Analysis, nil, m).WithEntities(panickingEntities{})

	report := analyzer.Analyze(context.Background(), ndaDoc())

	if report.Error != "" {
		t.Fatalf("facet panic must not fail the analysis: %s", report.Error)
	}
	if len(report.Failures) != 1 || report.Failures[0].Facet != FacetEntities {
		t.Fatalf("expected one entities failure, got %+v", report.Failures)
	}
	if !strings.Contains(report.Failures[0].Message, "entity model exploded") {
		t.Errorf("failure should carry the panic value: %s", report.Failures[0].Message)
	}
	if report.Analysis.Entities == nil || len(report.Analysis.Entities) != 0 {
		t.Errorf("failed facet should keep its empty default, got %v", report.Analysis.Entities)
	}
	if report.Analysis.DocumentType.DocumentType != "Contract" {
		t.Error("sibling facets should still run")
	}

	if got := testutil.ToFloat64(m.FacetFailures.WithLabelValues(FacetEntities)); got != 1 {
		t.Errorf("facet failure counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(metrics.OutcomePartial)); got != 1 {
		t.Errorf("partial outcome counter = %v, want 1", got)
	}
}

func TestAnalyzer_FacetErrorIsContained(t *testing.T) {
	analyzer := NewAnalyzer(model.DefaultConfig().Analysis, nil, nil).WithEntities(failingEntities{})
	report := analyzer.Analyze(context.Background(), ndaDoc())

	if len(report.Failures) != 1 || report.Failures[0].Message != "entities: model not loaded" {
		t.Errorf("unexpected failures: %+v", report.Failures)
	}
}

func TestAnalyzer_CriticalFailure(t *testing.T) {
	m := metrics.New()
	analyzer := NewAnalyzer(model.DefaultConfig().Analysis, nil, m)
	analyzer.newID = func() string { panic("id generator broken") }

	report := analyzer.Analyze(context.Background(), ndaDoc())

	if report == nil {
		t.Fatal("expected a fallback report")
	}
	if !strings.HasPrefix(report.Error, "analysis failed: id generator broken") {
		t.Errorf("unexpected error %q", report.Error)
	}
	if report.Analysis.Compliance.OverallStatus != model.OverallError {
		t.Errorf("expected compliance Error status, got %s", report.Analysis.Compliance.OverallStatus)
	}
	if report.Analysis.DocumentType.DocumentType != "Unknown" || len(report.Analysis.KeyClauses) != 0 {
		t.Errorf("fallback facets should be empty: %+v", report.Analysis)
	}
	if report.ID == "" || report.ContentHash == "" {
		t.Error("fallback report should still be identifiable")
	}
	if got := testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(metrics.OutcomeError)); got != 1 {
		t.Errorf("error outcome counter = %v, want 1", got)
	}
}

func TestAnalyzer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := NewAnalyzer(model.DefaultConfig().Analysis, nil, nil).Analyze(ctx, ndaDoc())
	if !strings.Contains(report.Error, "context canceled") {
		t.Errorf("expected cancellation in error, got %q", report.Error)
	}
}

func TestAnalyzer_Idempotent(t *testing.T) {
	analyzer := NewAnalyzer(model.DefaultConfig().Analysis, nil, nil)
	analyzer.newID = func() string { return "fixed" }
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	analyzer.now = func() time.Time { return fixed }

	first := analyzer.Analyze(context.Background(), ndaDoc())
	second := analyzer.Analyze(context.Background(), ndaDoc())

	if !reflect.DeepEqual(first, second) {
		t.Error("analyzing the same document twice should give identical reports")
	}
}

func TestGuard(t *testing.T) {
	sentinel := errors.New("bad input")

	err := guard("topics", func() error { return sentinel })
	var fe *FacetError
	if !errors.As(err, &fe) || fe.Facet != "topics" {
		t.Fatalf("expected FacetError for topics, got %v", err)
	}
	if !errors.Is(err, sentinel) {
		t.Error("FacetError should unwrap to the cause")
	}

	err = guard("risk", func() error { panic("boom") })
	if err == nil || err.Error() != "risk: panic: boom" {
		t.Errorf("unexpected panic error: %v", err)
	}

	if err := guard("ok", func() error { return nil }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
