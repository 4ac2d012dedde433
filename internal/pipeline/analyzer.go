package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/legalyze/internal/cache"
	"github.com/ppiankov/legalyze/internal/classify"
	"github.com/ppiankov/legalyze/internal/compliance"
	"github.com/ppiankov/legalyze/internal/entities"
	"github.com/ppiankov/legalyze/internal/extract"
	"github.com/ppiankov/legalyze/internal/logging"
	"github.com/ppiankov/legalyze/internal/metrics"
	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/readability"
	"github.com/ppiankov/legalyze/internal/score"
	"github.com/ppiankov/legalyze/internal/segment"
	"github.com/ppiankov/legalyze/internal/sentiment"
	"github.com/ppiankov/legalyze/internal/source"
)

var (
	// ErrEmptyDocument is returned when a source yields no text
	ErrEmptyDocument = errors.New("document has no text")

	// ErrCriticalFailure marks a report whose analysis failed outside any single facet
	ErrCriticalFailure = errors.New("analysis failed")

	// ErrUnsupportedFormat is returned for sources no extractor can read
	ErrUnsupportedFormat = source.ErrUnsupportedFormat
)

// Facet names, as reported in failures and metrics
const (
	FacetDocumentType = "document_type"
	FacetStructure    = "structure"
	FacetKeyPhrases   = "key_phrases"
	FacetReadability  = "readability"
	FacetSentiment    = "sentiment"
	FacetBaseline     = "sentiment_baseline"
	FacetTopics       = "topics"
	FacetLegalTerms   = "legal_terms"
	FacetKeyClauses   = "key_clauses"
	FacetCompliance   = "compliance"
	FacetRisk         = "risk"
	FacetEntities     = "entities"
)

// FacetError is a failure of one sub-analysis
type FacetError struct {
	Facet string
	Err   error
}

func (e *FacetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Facet, e.Err)
}

func (e *FacetError) Unwrap() error {
	return e.Err
}

// Analyzer runs every facet over a document. A failing facet falls back to its
// empty value and the rest still run.
type Analyzer struct {
	classifier  *classify.Classifier
	phrases     *extract.KeyPhraseExtractor
	readability *readability.Scorer
	sentiment   *sentiment.Analyzer
	baseline    *sentiment.Baseline
	topics      *extract.TopicExtractor
	terms       *extract.LegalTermExtractor
	clauses     *extract.KeyClauseExtractor
	compliance  *compliance.Checker
	risk        *score.RiskScorer
	entities    entities.Extractor

	includeStructure bool
	sections         func(string) []model.Section
	logger           logging.Logger
	metrics          *metrics.Metrics
	newID            func() string
	now              func() time.Time
}

// NewAnalyzer creates an analyzer from the analysis configuration.
// logger and m may be nil.
func NewAnalyzer(cfg model.AnalysisConfig, logger logging.Logger, m *metrics.Metrics) *Analyzer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	a := &Analyzer{
		classifier:       classify.NewClassifier().WithMinChars(cfg.MinClassifyChars),
		phrases:          extract.NewKeyPhraseExtractor(),
		readability:      readability.NewScorer(),
		sentiment:        sentiment.NewAnalyzer(cfg.MaxSentimentChars),
		topics:           extract.NewTopicExtractor(cfg.MaxTopicChars),
		terms:            extract.NewLegalTermExtractor(cfg.MaxLegalTermChars),
		clauses:          extract.NewKeyClauseExtractor(),
		compliance:       compliance.NewChecker(),
		risk:             score.NewRiskScorer(),
		entities:         entities.New(cfg.Entities),
		includeStructure: cfg.IncludeStructure,
		sections:         segment.Sections,
		logger:           logger.Named("analyzer"),
		metrics:          m,
		newID:            uuid.NewString,
		now:              time.Now,
	}
	if cfg.BaselineSentiment {
		a.baseline = sentiment.NewBaseline(cfg.MaxSentimentChars)
	}
	return a
}

// WithEntities replaces the entity extractor
func (a *Analyzer) WithEntities(e entities.Extractor) *Analyzer {
	if e != nil {
		a.entities = e
	}
	return a
}

// Analyze runs every facet over doc.Content. It always returns a report: facet
// failures are listed in Failures, and a failure outside the facets yields a
// fallback report with Error set.
func (a *Analyzer) Analyze(ctx context.Context, doc model.Document) (report *model.AnalysisReport) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrCriticalFailure, r)
			a.logger.Error("analysis failed", logging.String("source", doc.Metadata.Source), logging.Err(err))
			report = a.fallback(doc, err)
		}
		a.observe(report, time.Since(start))
	}()

	if err := ctx.Err(); err != nil {
		return a.fallback(doc, fmt.Errorf("%w: %v", ErrCriticalFailure, err))
	}

	report = a.newReport(doc)
	text := doc.Content
	if strings.TrimSpace(text) == "" {
		return report
	}

	an := &report.Analysis
	a.run(report, FacetDocumentType, func() error {
		an.DocumentType = a.classifier.Classify(text)
		return nil
	})
	if a.includeStructure {
		a.run(report, FacetStructure, func() error {
			an.Structure = a.sections(text)
			return nil
		})
	}
	a.run(report, FacetKeyPhrases, func() error {
		an.KeyPhrases = a.phrases.Extract(text)
		return nil
	})
	a.run(report, FacetReadability, func() error {
		an.Readability = a.readability.Score(text)
		return nil
	})
	a.run(report, FacetSentiment, func() error {
		an.Sentiment = a.sentiment.Analyze(text)
		return nil
	})
	if a.baseline != nil {
		a.run(report, FacetBaseline, func() error {
			an.Sentiment.Baseline = a.baseline.Score(text)
			return nil
		})
	}
	a.run(report, FacetTopics, func() error {
		an.Topics = a.topics.Extract(text)
		return nil
	})
	a.run(report, FacetLegalTerms, func() error {
		an.LegalTerms = a.terms.Extract(text)
		return nil
	})
	a.run(report, FacetKeyClauses, func() error {
		an.KeyClauses = a.clauses.Extract(text)
		return nil
	})
	if err := a.run(report, FacetCompliance, func() error {
		an.Compliance = a.compliance.CheckWith(text, an.DocumentType, an.KeyClauses)
		return nil
	}); err != nil {
		an.Compliance = model.ErrorCompliance(err.Error())
	}
	a.run(report, FacetRisk, func() error {
		an.Risk = a.risk.Assess(an.KeyClauses, an.Compliance, an.Sentiment)
		return nil
	})
	a.run(report, FacetEntities, func() error {
		found, err := a.entities.Extract(text)
		if err != nil {
			return err
		}
		an.Entities = found
		return nil
	})

	return report
}

// run executes one facet, converting an error or panic into a recorded failure
func (a *Analyzer) run(report *model.AnalysisReport, facet string, fn func() error) error {
	err := guard(facet, fn)
	if err == nil {
		return nil
	}

	a.logger.Warn("facet failed, using empty result",
		logging.String("facet", facet),
		logging.Err(err))
	a.metrics.FacetFailed(facet)
	report.Failures = append(report.Failures, model.FacetFailure{Facet: facet, Message: err.Error()})
	return err
}

func guard(facet string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FacetError{Facet: facet, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		return &FacetError{Facet: facet, Err: err}
	}
	return nil
}

func (a *Analyzer) newReport(doc model.Document) *model.AnalysisReport {
	return &model.AnalysisReport{
		ID:          a.newID(),
		Subject:     subjectOf(doc),
		ContentHash: cache.ContentHash(doc.Content),
		AnalyzedAt:  a.now().UTC(),
		Metadata:    doc.Metadata,
		Language:    doc.Language,
		Analysis:    model.EmptyAnalysis(),
	}
}

// fallback builds the minimal report returned on a critical failure.
// It must not depend on anything that could have caused the failure.
func (a *Analyzer) fallback(doc model.Document, err error) *model.AnalysisReport {
	report := &model.AnalysisReport{
		ID:          uuid.NewString(),
		Subject:     subjectOf(doc),
		ContentHash: cache.ContentHash(doc.Content),
		AnalyzedAt:  time.Now().UTC(),
		Metadata:    doc.Metadata,
		Language:    doc.Language,
		Analysis:    model.EmptyAnalysis(),
		Error:       err.Error(),
	}
	report.Analysis.Compliance = model.ErrorCompliance(err.Error())
	return report
}

func (a *Analyzer) observe(report *model.AnalysisReport, elapsed time.Duration) {
	if report == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	switch {
	case report.Error != "":
		outcome = metrics.OutcomeError
	case len(report.Failures) > 0:
		outcome = metrics.OutcomePartial
	}
	a.metrics.ObserveAnalysis(outcome, report.Analysis.DocumentType.DocumentType, elapsed)
	a.logger.Debug("analysis finished",
		logging.String("subject", report.Subject),
		logging.String("outcome", outcome),
		logging.Int("failures", len(report.Failures)),
		logging.Duration("elapsed", elapsed))
}

func subjectOf(doc model.Document) string {
	if doc.Metadata.Title != "" {
		return doc.Metadata.Title
	}
	if doc.Metadata.Source != "" {
		return doc.Metadata.Source
	}
	return "untitled document"
}
