package compliance

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/legalyze/internal/model"
)

func TestRenderer_Text(t *testing.T) {
	report := NewChecker().CheckWith(gdprConsentOnly, model.UnknownDocumentType(), nil)
	out := NewRenderer().Text(report)

	assert.Contains(t, out, "COMPLIANCE CHECK RESULTS")
	assert.Contains(t, out, strings.Repeat("-", 60))
	assert.Contains(t, out, "Overall Status: "+ansiRed+"Significant Issues"+ansiEnd)
	assert.Contains(t, out, "Compliance Score: "+ansiRed+"0%"+ansiEnd)
	assert.Contains(t, out, "AREAS WITH COMPLIANCE ISSUES")
	assert.Contains(t, out, "1. "+ansiRed+"GDPR"+ansiEnd+" - Non-Compliant")
	assert.Contains(t, out, "   ✓ Consent Mechanisms")
	assert.Contains(t, out, "   ✗ Data Subject Rights")
	assert.NotContains(t, out, "   ✗ Lawful Basis for Processing", "only the first three missing requirements are listed")
	assert.Contains(t, out, "Severity: high")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.NotContains(t, out, "COMPLIANT AREAS")
}

func TestRenderer_TextPartialAreaIsYellow(t *testing.T) {
	report := NewChecker().CheckWith(securityPolicy, model.UnknownDocumentType(), nil)
	out := NewRenderer().Text(report)

	assert.Contains(t, out, ansiYellow+"Data Security"+ansiEnd)
	assert.Contains(t, out, "Compliance Score: "+ansiYellow+"50%"+ansiEnd)
	assert.Contains(t, out, ansiYellow+"Missing Data Security requirements: Breach Response"+ansiEnd)
}

func TestRenderer_TextCompliant(t *testing.T) {
	report := NewChecker().CheckWith(ccpaNotice, model.UnknownDocumentType(), nil)
	out := NewRenderer().Text(report)

	assert.Contains(t, out, "Overall Status: "+ansiGreen+"Highly Compliant")
	assert.Contains(t, out, "COMPLIANT AREAS")
	assert.Contains(t, out, "1. "+ansiGreen+"CCPA"+ansiEnd)
	assert.NotContains(t, out, "WARNINGS")
}

func TestRenderer_SeverityCaseInsensitive(t *testing.T) {
	report := model.NotAnalyzedCompliance()
	report.Warnings = []model.ComplianceWarning{{Level: "HIGH", Message: "shouting"}}
	out := NewRenderer().Text(report)
	assert.Contains(t, out, ansiRed+"shouting"+ansiEnd)
}

func TestRenderer_Presentation(t *testing.T) {
	var clauses []model.KeyClause
	for i := 0; i < 7; i++ {
		clauses = append(clauses, model.KeyClause{ClauseType: fmt.Sprintf("Clause %d", i), Importance: 0.5})
	}
	sub := "Mutual"
	docType := model.DocumentTypeResult{DocumentType: "Non-Disclosure Agreement", SubType: &sub, Confidence: 0.85}

	text := ccpaNotice + "\n\n" + gdprConsentOnly
	p := NewRenderer().Presentation(NewChecker().CheckWith(text, docType, clauses))

	assert.Equal(t, "Document Compliance Analysis", p.Title)
	assert.Equal(t, model.OverallPartiallyCompliant, p.OverallStatus.Status)
	assert.Equal(t, 50.0, p.OverallStatus.Score)
	assert.Equal(t, []PresentationArea{{Name: "CCPA"}}, p.CompliantAreas)
	require.Len(t, p.AreasWithIssues, 1)
	assert.Equal(t, "GDPR", p.AreasWithIssues[0].Name)
	assert.Len(t, p.KeyClauses, 5)
	require.NotNil(t, p.DocumentType)
	assert.Equal(t, "Mutual", *p.DocumentType.SubType)
	assert.NotNil(t, p.DocumentType.Indicators)
}

func TestRenderer_RenderJSON(t *testing.T) {
	report := NewChecker().CheckWith(unrelatedText, model.UnknownDocumentType(), nil)
	data, err := NewRenderer().Render(report, FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Document Compliance Analysis", decoded["title"])
	assert.Contains(t, decoded, "areas_with_issues")
	assert.Contains(t, decoded, "visualization_data")
	status := decoded["overall_status"].(map[string]any)
	assert.Equal(t, "Not Applicable", status["status"])
	assert.Equal(t, 100.0, status["score"])
}

func TestRenderer_RenderHTML(t *testing.T) {
	report := NewChecker().CheckWith(securityPolicy, model.UnknownDocumentType(), nil)
	data, err := NewRenderer().Render(report, FormatHTML)
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "<title>Document Compliance Analysis</title>")
	assert.Contains(t, html, "Document Compliance Analysis</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Data Security")
}

func TestRenderer_UnsupportedFormat(t *testing.T) {
	_, err := NewRenderer().Render(model.NotAnalyzedCompliance(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
