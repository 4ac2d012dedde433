package model

// RiskFactorType classifies a risk factor
type RiskFactorType string

const (
	RiskHighRiskClause RiskFactorType = "high_risk_clause"
	RiskComplianceGap  RiskFactorType = "compliance_gap"
	RiskNegativeTone   RiskFactorType = "negative_tone"
)

// Severity indicates the importance of a risk factor
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// RiskFactor is a diagnostic signal with transparent scoring data
type RiskFactor struct {
	Type        RiskFactorType         `json:"type"`
	Severity    Severity               `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // inputs and formula
}

// RiskAssessment is the aggregate document risk index (0-100)
type RiskAssessment struct {
	Index   int          `json:"index"`
	Level   Level        `json:"level"`
	Factors []RiskFactor `json:"factors"`
}

// EmptyRisk is the zero assessment
func EmptyRisk() RiskAssessment {
	return RiskAssessment{Level: LevelLow, Factors: []RiskFactor{}}
}
