package model

// AreaStatus is the compliance status of one evaluated area
type AreaStatus string

const (
	StatusCompliant          AreaStatus = "Compliant"
	StatusPartiallyCompliant AreaStatus = "Partially Compliant"
	StatusNonCompliant       AreaStatus = "Non-Compliant"
)

// OverallStatus is the aggregate compliance band
type OverallStatus string

const (
	OverallNotAnalyzed        OverallStatus = "Not Analyzed"
	OverallNotApplicable      OverallStatus = "Not Applicable"
	OverallSignificantIssues  OverallStatus = "Significant Issues"
	OverallPartiallyCompliant OverallStatus = "Partially Compliant"
	OverallMostlyCompliant    OverallStatus = "Mostly Compliant"
	OverallHighlyCompliant    OverallStatus = "Highly Compliant"
	OverallError              OverallStatus = "Error"
)

// ComplianceArea is an evaluated area surfaced because it is not fully compliant
type ComplianceArea struct {
	Name                string     `json:"name"`
	Status              AreaStatus `json:"status"`
	Relevance           Level      `json:"relevance"`
	RequirementsMet     []string   `json:"requirements_met"`
	RequirementsMissing []string   `json:"requirements_missing"`
	RiskLevel           Level      `json:"risk_level"`
}

// ComplianceWarning describes missing required requirements for an area
type ComplianceWarning struct {
	Area                string   `json:"area,omitempty"`
	Level               Level    `json:"level"`
	MissingRequirements []string `json:"missing_requirements,omitempty"`
	Message             string   `json:"message"`
}

// AreaDetail is the full evaluation of one relevant area
type AreaDetail struct {
	Name                 string              `json:"name"`
	Status               AreaStatus          `json:"status"`
	RequirementsMet      []string            `json:"requirements_met"`
	RequirementsContexts map[string][]string `json:"requirements_contexts"`
	RequirementsMissing  []string            `json:"requirements_missing"`
	Relevance            Level               `json:"relevance"`
	RelevanceScore       int                 `json:"relevance_score"`
	MatchedKeywords      []string            `json:"matched_keywords"`
	RiskLevel            Level               `json:"risk_level"`
	Color                string              `json:"color"`
}

// RequirementCounts summarises requirement matches for charts
type RequirementCounts struct {
	Total   int `json:"total"`
	Met     int `json:"met"`
	Missing int `json:"missing"`
}

// AreaVisualization is chart data for one area
type AreaVisualization struct {
	Name           string            `json:"name"`
	Status         AreaStatus        `json:"status"`
	Relevance      Level             `json:"relevance"`
	RelevanceScore int               `json:"relevance_score"`
	Color          string            `json:"color"`
	RiskLevel      Level             `json:"risk_level"`
	Requirements   RequirementCounts `json:"requirements"`
}

// ComplianceVisualization carries chart data for all evaluated areas
type ComplianceVisualization struct {
	Areas           []AreaVisualization `json:"areas"`
	ComplianceScore float64             `json:"compliance_score"`
}

// ComplianceReport is the aggregate result of checking all compliance areas
type ComplianceReport struct {
	OverallStatus   OverallStatus           `json:"overall_status"`
	Areas           []ComplianceArea        `json:"areas"`
	ComplianceScore float64                 `json:"compliance_score"`
	Warnings        []ComplianceWarning     `json:"warnings"`
	CompliantAreas  []string                `json:"compliant_areas"`
	Recommendations []string                `json:"recommendations"`
	Visualization   ComplianceVisualization `json:"visualization"`
	DetailedResults []AreaDetail            `json:"detailed_results"`
	DocumentType    DocumentTypeResult      `json:"document_type"`
	KeyClauses      []KeyClause             `json:"key_clauses"`
}

// NotAnalyzedCompliance is the result for empty input
func NotAnalyzedCompliance() ComplianceReport {
	return ComplianceReport{
		OverallStatus:   OverallNotAnalyzed,
		Areas:           []ComplianceArea{},
		Warnings:        []ComplianceWarning{},
		CompliantAreas:  []string{},
		Recommendations: []string{},
		Visualization:   ComplianceVisualization{Areas: []AreaVisualization{}},
		DetailedResults: []AreaDetail{},
		DocumentType:    UnknownDocumentType(),
		KeyClauses:      []KeyClause{},
	}
}

// ErrorCompliance is the result when the check itself fails
func ErrorCompliance(message string) ComplianceReport {
	r := NotAnalyzedCompliance()
	r.OverallStatus = OverallError
	r.Warnings = []ComplianceWarning{{
		Level:   LevelHigh,
		Message: "Error analyzing compliance: " + message,
	}}
	return r
}
