package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown and a short stdout summary
type Renderer struct {
	includeFooter bool
	out           io.Writer
}

// NewRenderer creates a renderer printing summaries to stdout
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, out: os.Stdout}
}

// WithWriter redirects the stdout summary
func (r *Renderer) WithWriter(w io.Writer) *Renderer {
	r.out = w
	return r
}

// JSON serialises the report with indentation
func (r *Renderer) JSON(report *model.AnalysisReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderJSON writes the report as JSON to path
func (r *Renderer) RenderJSON(report *model.AnalysisReport, path string) error {
	data, err := r.JSON(report)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.AnalysisReport, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// RenderLLMMarkdown writes an already rendered LLM summary to path
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	return writeFile(path, []byte(markdown))
}

// Markdown renders the full report
func (r *Renderer) Markdown(report *model.AnalysisReport) string {
	var b strings.Builder
	a := report.Analysis

	fmt.Fprintf(&b, "# Legalyze Report: %s\n\n", report.Subject)
	if report.Error != "" {
		fmt.Fprintf(&b, "> **Analysis failed:** %s\n\n", report.Error)
	}

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Document Type | %s |\n", documentTypeLabel(a.DocumentType))
	fmt.Fprintf(&b, "| Risk Index | %d/100 (%s) |\n", a.Risk.Index, a.Risk.Level)
	fmt.Fprintf(&b, "| Compliance | %s (%.0f) |\n", a.Compliance.OverallStatus, a.Compliance.ComplianceScore)
	fmt.Fprintf(&b, "| Readability | %.1f (%s) |\n", a.Readability.Score, a.Readability.Level)
	fmt.Fprintf(&b, "| Sentiment | %s (%.2f) |\n", a.Sentiment.Overall.Label, a.Sentiment.Overall.Score)
	fmt.Fprintf(&b, "| Words | %d |\n", a.Readability.WordCount)
	fmt.Fprintf(&b, "| Reading Time | %.1f min |\n", a.Readability.ReadingTimeMinutes)
	fmt.Fprintf(&b, "| Language | %s |\n", report.Language)
	if report.Metadata.Source != "" {
		fmt.Fprintf(&b, "| Source | %s |\n", report.Metadata.Source)
	}
	fmt.Fprintf(&b, "| Analyzed | %s |\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))

	if len(a.Risk.Factors) > 0 {
		b.WriteString("## Risk Factors\n\n")
		for _, f := range a.Risk.Factors {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", f.Type, f.Severity, f.Description)
		}
		b.WriteString("\n")
	}

	if len(a.KeyClauses) > 0 {
		b.WriteString("## Key Clauses\n\n")
		b.WriteString("| Clause | Importance | Risk | Paragraph |\n|---|---|---|---|\n")
		for _, c := range a.KeyClauses {
			fmt.Fprintf(&b, "| %s | %.2f | %.2f | %d |\n", c.ClauseType, c.Importance, c.RiskScore, c.Paragraph)
		}
		b.WriteString("\n")
	}

	if len(a.Compliance.Warnings) > 0 || len(a.Compliance.Recommendations) > 0 {
		b.WriteString("## Compliance\n\n")
		for _, w := range a.Compliance.Warnings {
			fmt.Fprintf(&b, "- ⚠ [%s] %s\n", w.Level, w.Message)
		}
		for _, rec := range a.Compliance.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	if len(a.LegalTerms) > 0 {
		b.WriteString("## Legal Terms\n\n")
		for i, t := range a.LegalTerms {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&b, "- **%s** (%s) × %d\n", t.Term, t.Category, t.Frequency)
		}
		b.WriteString("\n")
	}

	if len(a.KeyPhrases) > 0 {
		b.WriteString("## Key Phrases\n\n")
		for i, p := range a.KeyPhrases {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&b, "- %s (%.1f)\n", p.Phrase, p.Score)
		}
		b.WriteString("\n")
	}

	if len(a.Topics) > 0 {
		b.WriteString("## Topics\n\n")
		for _, t := range a.Topics {
			fmt.Fprintf(&b, "- %s: %.1f (%s)\n", t.Topic, t.Score, t.Relevance)
		}
		b.WriteString("\n")
	}

	if a.Sentiment.Summary != "" {
		b.WriteString("## Sentiment\n\n")
		b.WriteString(a.Sentiment.Summary)
		b.WriteString("\n")
		if bl := a.Sentiment.Baseline; bl != nil {
			fmt.Fprintf(&b, "\nVADER baseline: %s (compound %.3f)\n", bl.Label, bl.Compound)
		}
		b.WriteString("\n")
	}

	if len(a.Entities) > 0 {
		fmt.Fprintf(&b, "## Entities\n\n%d named entities found.\n\n", len(a.Entities))
	}

	if len(report.Failures) > 0 {
		b.WriteString("## Partial Results\n\n")
		for _, f := range report.Failures {
			fmt.Fprintf(&b, "- %s: %s\n", f.Facet, f.Message)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("*Generated by Legalyze. Scores come from deterministic rules and are not legal advice.*\n")
	}
	return b.String()
}

// RenderSummary prints a short summary
func (r *Renderer) RenderSummary(report *model.AnalysisReport) {
	a := report.Analysis

	fmt.Fprintf(r.out, "\n📄 %s\n", report.Subject)
	if report.Error != "" {
		fmt.Fprintf(r.out, "   ✗ %s\n", report.Error)
		return
	}
	fmt.Fprintf(r.out, "   Type:        %s\n", documentTypeLabel(a.DocumentType))
	fmt.Fprintf(r.out, "   Risk:        %d/100 (%s)\n", a.Risk.Index, a.Risk.Level)
	fmt.Fprintf(r.out, "   Compliance:  %s (%.0f)\n", a.Compliance.OverallStatus, a.Compliance.ComplianceScore)
	fmt.Fprintf(r.out, "   Readability: %.1f (%s)\n", a.Readability.Score, a.Readability.Level)
	fmt.Fprintf(r.out, "   Sentiment:   %s\n", a.Sentiment.Overall.Label)
	fmt.Fprintf(r.out, "   Clauses:     %d key clauses, %d legal terms\n", len(a.KeyClauses), len(a.LegalTerms))
	if len(report.Failures) > 0 {
		fmt.Fprintf(r.out, "   ⚠ %d facet(s) fell back to empty results\n", len(report.Failures))
	}
	if report.LLM != nil && report.LLM.Enabled && report.LLM.SummaryMD != "" {
		fmt.Fprintf(r.out, "\n%s\n", report.LLM.SummaryMD)
	}
}

func documentTypeLabel(dt model.DocumentTypeResult) string {
	if dt.SubType != nil {
		return fmt.Sprintf("%s / %s", dt.DocumentType, *dt.SubType)
	}
	return dt.DocumentType
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
