// Package compliance checks documents against regulatory and contractual
// requirement patterns and renders the result for terminals and browsers.
package compliance

import (
	"fmt"
	"strings"

	"github.com/ppiankov/legalyze/internal/classify"
	"github.com/ppiankov/legalyze/internal/extract"
	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/util"
)

const (
	maxRequirementContexts = 2
	requirementContext     = 100
)

// Checker evaluates the compliance areas relevant to a document
type Checker struct {
	classifier *classify.Classifier
	clauses    *extract.KeyClauseExtractor
}

// NewChecker creates a checker with its own classifier and clause extractor
func NewChecker() *Checker {
	return &Checker{
		classifier: classify.NewClassifier(),
		clauses:    extract.NewKeyClauseExtractor(),
	}
}

// Check classifies text, extracts its key clauses and evaluates compliance
func (c *Checker) Check(text string) model.ComplianceReport {
	if strings.TrimSpace(text) == "" {
		return model.NotAnalyzedCompliance()
	}
	return c.CheckWith(text, c.classifier.Classify(text), c.clauses.Extract(text))
}

// CheckWith evaluates compliance reusing an already computed document type
// and clause list. Areas with no relevance keyword in text are skipped.
func (c *Checker) CheckWith(text string, docType model.DocumentTypeResult, clauses []model.KeyClause) model.ComplianceReport {
	report := model.NotAnalyzedCompliance()
	if strings.TrimSpace(text) == "" {
		return report
	}
	report.DocumentType = docType
	if clauses != nil {
		report.KeyClauses = clauses
	}

	lower := util.LowerAligned(text)
	var compliant, partial int
	for _, a := range areas {
		detail, ok := evaluate(a, text, lower)
		if !ok {
			continue
		}
		report.DetailedResults = append(report.DetailedResults, detail)
		report.Visualization.Areas = append(report.Visualization.Areas, model.AreaVisualization{
			Name:           detail.Name,
			Status:         detail.Status,
			Relevance:      detail.Relevance,
			RelevanceScore: detail.RelevanceScore,
			Color:          detail.Color,
			RiskLevel:      detail.RiskLevel,
			Requirements: model.RequirementCounts{
				Total:   len(detail.RequirementsMet) + len(detail.RequirementsMissing),
				Met:     len(detail.RequirementsMet),
				Missing: len(detail.RequirementsMissing),
			},
		})

		if detail.Status == model.StatusCompliant {
			compliant++
			report.CompliantAreas = append(report.CompliantAreas, detail.Name)
			continue
		}
		if detail.Status == model.StatusPartiallyCompliant {
			partial++
		}

		level := model.LevelHigh
		if detail.Status == model.StatusPartiallyCompliant {
			level = model.LevelMedium
		}
		report.Areas = append(report.Areas, model.ComplianceArea{
			Name:                detail.Name,
			Status:              detail.Status,
			Relevance:           detail.Relevance,
			RequirementsMet:     detail.RequirementsMet,
			RequirementsMissing: detail.RequirementsMissing,
			RiskLevel:           detail.RiskLevel,
		})
		report.Warnings = append(report.Warnings, model.ComplianceWarning{
			Area:                detail.Name,
			Level:               level,
			MissingRequirements: detail.RequirementsMissing,
			Message:             fmt.Sprintf("Missing %s requirements: %s", detail.Name, strings.Join(detail.RequirementsMissing, ", ")),
		})
		for _, missing := range detail.RequirementsMissing {
			report.Recommendations = append(report.Recommendations, Recommendation(detail.Name, missing))
		}
	}

	// no relevant area scores 100 and reads "Not Applicable"
	if len(report.DetailedResults) == 0 {
		report.OverallStatus = model.OverallNotApplicable
		report.ComplianceScore = 100
	} else {
		score := float64(compliant*100+partial*50) / float64(len(report.DetailedResults))
		report.ComplianceScore = util.Round(score, 1)
		report.OverallStatus = overallStatus(score)
	}
	report.Visualization.ComplianceScore = report.ComplianceScore
	return report
}

// Recommendation is the suggested fix for one missing requirement
func Recommendation(area, requirement string) string {
	return fmt.Sprintf("Add a %q provision to address %s requirements.", requirement, area)
}

// evaluate scores one area; ok is false when no keyword makes it relevant
func evaluate(a area, text, lower string) (model.AreaDetail, bool) {
	var keywords []string
	for _, kw := range a.keywords {
		if keywordPatterns[kw].MatchString(lower) {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return model.AreaDetail{}, false
	}

	detail := model.AreaDetail{
		Name:                 a.name,
		RequirementsMet:      []string{},
		RequirementsContexts: make(map[string][]string),
		RequirementsMissing:  []string{},
		MatchedKeywords:      keywords,
		RiskLevel:            a.riskLevel,
		Color:                a.color,
	}

	var required, requiredMet int
	for _, r := range a.requirements {
		if r.required {
			required++
		}
		matches := r.pattern.FindAllStringIndex(lower, -1)
		if len(matches) == 0 {
			if r.required {
				detail.RequirementsMissing = append(detail.RequirementsMissing, r.name)
			}
			continue
		}
		if r.required {
			requiredMet++
		}
		detail.RequirementsMet = append(detail.RequirementsMet, r.name)

		var contexts []string
		for _, m := range matches {
			if len(contexts) == maxRequirementContexts {
				break
			}
			contexts = append(contexts, highlight(text, m[0], m[1]))
		}
		detail.RequirementsContexts[r.name] = contexts
	}

	detail.Status = model.StatusCompliant
	if required > 0 && requiredMet < required {
		missingRatio := float64(required-requiredMet) / float64(required)
		detail.Status = model.StatusPartiallyCompliant
		if missingRatio > 0.5 {
			detail.Status = model.StatusNonCompliant
		}
	}

	score := len(keywords)*20 + len(detail.RequirementsMet)*15
	if score > 100 {
		score = 100
	}
	detail.RelevanceScore = score
	switch {
	case score > 70:
		detail.Relevance = model.LevelHigh
	case score > 40:
		detail.Relevance = model.LevelMedium
	default:
		detail.Relevance = model.LevelLow
	}
	return detail, true
}

// highlight returns the match with surrounding context, the match in brackets
func highlight(text string, start, end int) string {
	matched := text[start:end]
	ctx := util.Snippet(text, start, end, requirementContext)
	return strings.ReplaceAll(ctx, matched, "["+matched+"]")
}

func overallStatus(score float64) model.OverallStatus {
	switch {
	case score >= 90:
		return model.OverallHighlyCompliant
	case score >= 70:
		return model.OverallMostlyCompliant
	case score >= 40:
		return model.OverallPartiallyCompliant
	default:
		return model.OverallSignificantIssues
	}
}
