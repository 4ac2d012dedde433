package compliance

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/ppiankov/legalyze/internal/model"
)

// ErrUnsupportedFormat is returned for an unknown output format
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format selects a compliance rendering
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

const (
	presentationTitle = "Document Compliance Analysis"
	maxListedReqs     = 3
	maxListedClauses  = 5
	ruleWidth         = 60
)

const (
	ansiGreen  = "\033[92m"
	ansiYellow = "\033[93m"
	ansiRed    = "\033[91m"
	ansiBlue   = "\033[94m"
	ansiEnd    = "\033[0m"
	ansiBold   = "\033[1m"
)

// ParseFormat accepts text, html or json in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatHTML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// Presentation is the display projection of a compliance report
type Presentation struct {
	Title             string                        `json:"title"`
	OverallStatus     PresentationStatus            `json:"overall_status"`
	AreasWithIssues   []model.ComplianceArea        `json:"areas_with_issues"`
	CompliantAreas    []PresentationArea            `json:"compliant_areas"`
	Warnings          []model.ComplianceWarning     `json:"warnings"`
	Recommendations   []string                      `json:"recommendations"`
	VisualizationData model.ComplianceVisualization `json:"visualization_data"`
	DocumentType      *PresentationDocumentType     `json:"document_type,omitempty"`
	KeyClauses        []PresentationClause          `json:"key_clauses,omitempty"`
}

type PresentationStatus struct {
	Status model.OverallStatus `json:"status"`
	Score  float64             `json:"score"`
}

type PresentationArea struct {
	Name string `json:"name"`
}

type PresentationDocumentType struct {
	Type       string   `json:"type"`
	SubType    *string  `json:"sub_type"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators"`
}

type PresentationClause struct {
	Type       string  `json:"type"`
	Content    string  `json:"content"`
	Importance float64 `json:"importance"`
	RiskScore  float64 `json:"risk_score"`
}

// Renderer formats compliance reports
type Renderer struct{}

// NewRenderer creates a compliance renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render formats report: ANSI text, a complete HTML page, or the
// presentation structure as JSON
func (r *Renderer) Render(report model.ComplianceReport, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(r.Text(report)), nil
	case FormatHTML:
		return r.RenderHTML(report), nil
	case FormatJSON:
		data, err := json.MarshalIndent(r.Presentation(report), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal compliance presentation: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Presentation builds the display structure consumed by web front ends
func (r *Renderer) Presentation(report model.ComplianceReport) Presentation {
	p := Presentation{
		Title: presentationTitle,
		OverallStatus: PresentationStatus{
			Status: report.OverallStatus,
			Score:  report.Visualization.ComplianceScore,
		},
		AreasWithIssues:   nonNilAreas(report.Areas),
		CompliantAreas:    []PresentationArea{},
		Warnings:          nonNilWarnings(report.Warnings),
		Recommendations:   nonNilStrings(report.Recommendations),
		VisualizationData: report.Visualization,
	}
	if p.OverallStatus.Status == "" {
		p.OverallStatus.Status = model.OverallNotAnalyzed
	}
	for _, name := range report.CompliantAreas {
		p.CompliantAreas = append(p.CompliantAreas, PresentationArea{Name: name})
	}

	if report.DocumentType.DocumentType != "" {
		p.DocumentType = &PresentationDocumentType{
			Type:       report.DocumentType.DocumentType,
			SubType:    report.DocumentType.SubType,
			Confidence: report.DocumentType.Confidence,
			Indicators: nonNilStrings(report.DocumentType.Indicators),
		}
	}
	for i, c := range report.KeyClauses {
		if i == maxListedClauses {
			break
		}
		p.KeyClauses = append(p.KeyClauses, PresentationClause{
			Type:       c.ClauseType,
			Content:    c.Content,
			Importance: c.Importance,
			RiskScore:  c.RiskScore,
		})
	}
	return p
}

// Text renders the report for a terminal with ANSI colours
func (r *Renderer) Text(report model.ComplianceReport) string {
	var out []string
	score := report.Visualization.ComplianceScore

	out = append(out, ansiBold+"COMPLIANCE CHECK RESULTS"+ansiEnd)
	out = append(out, strings.Repeat("-", ruleWidth))
	out = append(out, fmt.Sprintf("Overall Status: %s%s%s", statusColor(report.OverallStatus), report.OverallStatus, ansiEnd))
	out = append(out, fmt.Sprintf("Compliance Score: %s%s%%%s", scoreColor(score), formatScore(score), ansiEnd))
	out = append(out, "")

	if len(report.Areas) > 0 {
		out = append(out, ansiBold+"AREAS WITH COMPLIANCE ISSUES"+ansiEnd)
		for i, a := range report.Areas {
			color := ansiRed
			if a.Status == model.StatusPartiallyCompliant {
				color = ansiYellow
			}
			out = append(out, fmt.Sprintf("%d. %s%s%s - %s", i+1, color, a.Name, ansiEnd, a.Status))
			out = append(out, fmt.Sprintf("   Relevance: %s", a.Relevance))
			out = append(out, fmt.Sprintf("   Risk Level: %s", a.RiskLevel))
			if len(a.RequirementsMet) > 0 {
				out = append(out, "   "+ansiGreen+"Requirements Met:"+ansiEnd)
				for _, req := range head(a.RequirementsMet, maxListedReqs) {
					out = append(out, "   ✓ "+req)
				}
			}
			if len(a.RequirementsMissing) > 0 {
				out = append(out, "   "+ansiRed+"Requirements Missing:"+ansiEnd)
				for _, req := range head(a.RequirementsMissing, maxListedReqs) {
					out = append(out, "   ✗ "+req)
				}
			}
			out = append(out, "")
		}
	}

	if len(report.CompliantAreas) > 0 {
		out = append(out, ansiBold+"COMPLIANT AREAS"+ansiEnd)
		for i, name := range report.CompliantAreas {
			out = append(out, fmt.Sprintf("%d. %s%s%s", i+1, ansiGreen, name, ansiEnd))
		}
		out = append(out, "")
	}

	if len(report.Warnings) > 0 {
		out = append(out, ansiBold+"WARNINGS"+ansiEnd)
		for i, w := range report.Warnings {
			severity := w.Level
			if severity == "" {
				severity = model.LevelMedium
			}
			out = append(out, fmt.Sprintf("%d. %s%s%s", i+1, severityColor(severity), w.Message, ansiEnd))
			out = append(out, fmt.Sprintf("   Severity: %s", severity))
		}
		out = append(out, "")
	}

	if len(report.Recommendations) > 0 {
		out = append(out, ansiBold+"RECOMMENDATIONS"+ansiEnd)
		for i, rec := range report.Recommendations {
			out = append(out, fmt.Sprintf("%d. %s", i+1, rec))
		}
	}

	return strings.Join(out, "\n")
}

// Markdown renders the presentation structure as a Markdown document
func (r *Renderer) Markdown(report model.ComplianceReport) string {
	p := r.Presentation(report)
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Overall status:** %s  \n", p.OverallStatus.Status)
	fmt.Fprintf(&b, "**Compliance score:** %s%%\n\n", formatScore(p.OverallStatus.Score))

	if p.DocumentType != nil {
		b.WriteString("## Document Type\n\n")
		fmt.Fprintf(&b, "- Type: %s\n", p.DocumentType.Type)
		if p.DocumentType.SubType != nil {
			fmt.Fprintf(&b, "- Sub-type: %s\n", *p.DocumentType.SubType)
		}
		fmt.Fprintf(&b, "- Confidence: %.2f\n\n", p.DocumentType.Confidence)
	}

	if len(p.AreasWithIssues) > 0 {
		b.WriteString("## Areas With Issues\n\n")
		b.WriteString("| Area | Status | Relevance | Risk | Missing |\n")
		b.WriteString("|------|--------|-----------|------|---------|\n")
		for _, a := range p.AreasWithIssues {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				a.Name, a.Status, a.Relevance, a.RiskLevel, strings.Join(a.RequirementsMissing, ", "))
		}
		b.WriteString("\n")
	}

	if len(p.CompliantAreas) > 0 {
		b.WriteString("## Compliant Areas\n\n")
		for _, a := range p.CompliantAreas {
			fmt.Fprintf(&b, "- %s\n", a.Name)
		}
		b.WriteString("\n")
	}

	if len(p.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range p.Warnings {
			fmt.Fprintf(&b, "- **%s**: %s\n", w.Level, w.Message)
		}
		b.WriteString("\n")
	}

	if len(p.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, rec := range p.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	if len(p.KeyClauses) > 0 {
		b.WriteString("## Key Clauses\n\n")
		for _, c := range p.KeyClauses {
			fmt.Fprintf(&b, "### %s\n\n", c.Type)
			fmt.Fprintf(&b, "Importance %.2f, risk %.2f\n\n", c.Importance, c.RiskScore)
			fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(c.Content, "\n", " "))
		}
	}

	return b.String()
}

// RenderHTML renders the report as a complete HTML page
func (r *Renderer) RenderHTML(report model.ComplianceReport) []byte {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Title: presentationTitle,
		Flags: blackfriday.CompletePage | blackfriday.CommonHTMLFlags,
	})
	return blackfriday.Run([]byte(r.Markdown(report)), blackfriday.WithRenderer(renderer))
}

func statusColor(status model.OverallStatus) string {
	s := strings.ToLower(string(status))
	switch {
	case strings.Contains(s, "high"):
		return ansiGreen
	case strings.Contains(s, "mostly"):
		return ansiYellow
	default:
		return ansiRed
	}
}

func scoreColor(score float64) string {
	switch {
	case score >= 80:
		return ansiGreen
	case score >= 50:
		return ansiYellow
	default:
		return ansiRed
	}
}

func severityColor(level model.Level) string {
	switch strings.ToLower(string(level)) {
	case string(model.LevelHigh):
		return ansiRed
	case string(model.LevelMedium):
		return ansiYellow
	default:
		return ansiBlue
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func head(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func nonNilAreas(a []model.ComplianceArea) []model.ComplianceArea {
	if a == nil {
		return []model.ComplianceArea{}
	}
	return a
}

func nonNilWarnings(w []model.ComplianceWarning) []model.ComplianceWarning {
	if w == nil {
		return []model.ComplianceWarning{}
	}
	return w
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
