package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/legalyze/internal/model"
)

const (
	clauseWeight     = 50
	complianceWeight = 40
	toneWeight       = 10

	highRiskClause   = 0.7
	criticalClause   = 0.9
	negativeTone     = -0.2
	veryNegativeTone = -0.6
	highRiskIndex    = 70
	mediumRiskIndex  = 40
	maxExcerptRunes  = 160
)

// RiskScorer builds the document risk index from the clause, compliance
// and sentiment facets
type RiskScorer struct{}

// NewRiskScorer creates a new risk scorer
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{}
}

// Assess combines facet outputs into a 0-100 risk index with one factor per
// contributing signal
func (s *RiskScorer) Assess(clauses []model.KeyClause, compliance model.ComplianceReport, sentiment model.SentimentResult) model.RiskAssessment {
	factors := []model.RiskFactor{}

	// 1. Clause risk (0-50 points)
	clausePoints, clauseFactors := s.clauseRisk(clauses)
	factors = append(factors, clauseFactors...)

	// 2. Compliance gaps (0-40 points)
	compliancePoints, gapFactors := s.complianceRisk(compliance)
	factors = append(factors, gapFactors...)

	// 3. Negative tone (0-10 points)
	tonePoints, toneFactor := s.toneRisk(sentiment)
	if toneFactor != nil {
		factors = append(factors, *toneFactor)
	}

	index := clausePoints + compliancePoints + tonePoints
	if index > 100 {
		index = 100
	}

	return model.RiskAssessment{
		Index:   index,
		Level:   level(index),
		Factors: factors,
	}
}

// clauseRisk scores the riskiest clause and flags every high-risk one
func (s *RiskScorer) clauseRisk(clauses []model.KeyClause) (int, []model.RiskFactor) {
	var factors []model.RiskFactor
	maxRisk := 0.0
	for _, c := range clauses {
		if c.RiskScore > maxRisk {
			maxRisk = c.RiskScore
		}
		if c.RiskScore < highRiskClause {
			continue
		}

		severity := model.SeverityWarning
		if c.RiskScore >= criticalClause {
			severity = model.SeverityCritical
		}
		factors = append(factors, model.RiskFactor{
			Type:        model.RiskHighRiskClause,
			Severity:    severity,
			Description: fmt.Sprintf("High-risk %s clause (risk %.2f)", c.ClauseType, c.RiskScore),
			Data: map[string]interface{}{
				"clause_type": c.ClauseType,
				"risk_score":  c.RiskScore,
				"importance":  c.Importance,
				"paragraph":   c.Paragraph,
				"excerpt":     excerpt(c.Content),
				"formula":     "clause_risk >= 0.7",
			},
		})
	}

	return int(math.RoundToEven(maxRisk * clauseWeight)), factors
}

// complianceRisk scores the compliance shortfall and turns warnings into factors
func (s *RiskScorer) complianceRisk(report model.ComplianceReport) (int, []model.RiskFactor) {
	var factors []model.RiskFactor
	points := 0
	if len(report.DetailedResults) > 0 {
		points = int(math.RoundToEven((100 - report.ComplianceScore) / 100 * complianceWeight))
	}

	for _, w := range report.Warnings {
		severity := model.SeverityWarning
		if w.Level == model.LevelHigh {
			severity = model.SeverityCritical
		}
		factors = append(factors, model.RiskFactor{
			Type:        model.RiskComplianceGap,
			Severity:    severity,
			Description: w.Message,
			Data: map[string]interface{}{
				"area":             w.Area,
				"level":            w.Level,
				"missing":          w.MissingRequirements,
				"compliance_score": report.ComplianceScore,
				"points":           points,
				"formula":          "(100 - compliance_score) / 100 * 40",
			},
		})
	}

	return points, factors
}

// toneRisk penalizes a clearly negative overall tone
func (s *RiskScorer) toneRisk(sentiment model.SentimentResult) (int, *model.RiskFactor) {
	overall := sentiment.Overall.Score
	if overall >= negativeTone {
		return 0, nil
	}

	points := int(math.RoundToEven(math.Min(1, -overall) * toneWeight))
	severity := model.SeverityWarning
	if overall <= veryNegativeTone {
		severity = model.SeverityCritical
	}

	return points, &model.RiskFactor{
		Type:        model.RiskNegativeTone,
		Severity:    severity,
		Description: fmt.Sprintf("Negative overall tone: %.2f (%s)", overall, sentiment.Overall.Label),
		Data: map[string]interface{}{
			"overall_score": overall,
			"label":         sentiment.Overall.Label,
			"confidence":    sentiment.Overall.Confidence,
			"points":        points,
			"formula":       "min(1, -overall_score) * 10",
		},
	}
}

func level(index int) model.Level {
	switch {
	case index >= highRiskIndex:
		return model.LevelHigh
	case index >= mediumRiskIndex:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= maxExcerptRunes {
		return content
	}
	return string(runes[:maxExcerptRunes]) + "..."
}
