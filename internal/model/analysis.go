package model

import "time"

// Section is one logical division of a document, in document order
type Section struct {
	Heading string `json:"heading,omitempty"`
	Content string `json:"content"`
	Index   int    `json:"index"`
}

// KeyPhrase is a salient n-gram with its score and first-occurrence context
type KeyPhrase struct {
	Phrase    string  `json:"phrase"`
	Score     float64 `json:"score"`
	Frequency int     `json:"frequency"`
	Context   string  `json:"context"`
}

// TermPosition marks whether a term was first seen near the top of a document
type TermPosition string

const (
	PositionEarly TermPosition = "early"
	PositionOther TermPosition = "other"
)

// LegalTerm is a categorized dictionary match. One per (term, category) pair.
type LegalTerm struct {
	Term           string       `json:"term"`
	Category       string       `json:"category"`
	Frequency      int          `json:"frequency"`
	Importance     float64      `json:"importance"` // 0-100
	PrimaryContext string       `json:"primary_context"`
	Context        []string     `json:"context"` // up to 3 unique snippets
	Position       TermPosition `json:"position"`
}

// Readability holds Flesch Reading Ease and derived metrics
type Readability struct {
	Score               float64 `json:"score"`
	Level               string  `json:"level"`
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
	ReadingTimeMinutes  float64 `json:"reading_time_minutes"`
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
}

// DocumentTypeResult is the single best taxonomy match
type DocumentTypeResult struct {
	DocumentType string   `json:"document_type"`
	SubType      *string  `json:"sub_type"`
	Confidence   float64  `json:"confidence"`
	Indicators   []string `json:"indicators"`
}

// UnknownDocumentType is returned when no indicator matches or the text is too short
func UnknownDocumentType() DocumentTypeResult {
	return DocumentTypeResult{
		DocumentType: "Unknown",
		Indicators:   []string{},
	}
}

// TopicType distinguishes dictionary categories from residual frequent words
type TopicType string

const (
	TopicCategory TopicType = "category"
	TopicKeyword  TopicType = "keyword"
)

// Topic is a weighted legal-domain category or a frequent keyword
type Topic struct {
	Topic     string    `json:"topic"`
	Score     float64   `json:"score"`
	Type      TopicType `json:"type"`
	Context   []string  `json:"context"`
	TopTerms  []string  `json:"top_terms,omitempty"`
	Relevance Level     `json:"relevance"`
	Color     string    `json:"color"`
}

// KeyClause is a paragraph matched to one of the clause types
type KeyClause struct {
	ClauseType string  `json:"clause_type"`
	Content    string  `json:"content"`
	Importance float64 `json:"importance"`
	RiskScore  float64 `json:"risk_score"`
	Paragraph  int     `json:"paragraph"`
}

// Entity is a named entity found by an entity extractor
type Entity struct {
	Text    string `json:"text"`
	Label   string `json:"label"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Context string `json:"context"`
}

// Level is a coarse low/medium/high indicator
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Analysis groups every facet computed for one document
type Analysis struct {
	DocumentType DocumentTypeResult `json:"document_type"`
	KeyPhrases   []KeyPhrase        `json:"key_phrases"`
	Readability  Readability        `json:"readability_score"`
	Sentiment    SentimentResult    `json:"sentiment"`
	Topics       []Topic            `json:"topics"`
	Compliance   ComplianceReport   `json:"compliance"`
	KeyClauses   []KeyClause        `json:"key_clauses"`
	LegalTerms   []LegalTerm        `json:"legal_terms"`
	Risk         RiskAssessment     `json:"risk"`
	Entities     []Entity           `json:"entities"`
	Structure    []Section          `json:"structure,omitempty"`
}

// EmptyAnalysis returns every facet at its documented empty value
func EmptyAnalysis() Analysis {
	return Analysis{
		DocumentType: UnknownDocumentType(),
		KeyPhrases:   []KeyPhrase{},
		Readability:  EmptyReadability(),
		Sentiment:    EmptySentiment("No text provided for sentiment analysis"),
		Topics:       []Topic{},
		Compliance:   NotAnalyzedCompliance(),
		KeyClauses:   []KeyClause{},
		LegalTerms:   []LegalTerm{},
		Risk:         EmptyRisk(),
		Entities:     []Entity{},
	}
}

// EmptyReadability is the readability result for empty text
func EmptyReadability() Readability {
	return Readability{Level: "Not Available"}
}

// FacetFailure records a sub-analysis that failed and fell back to its default
type FacetFailure struct {
	Facet   string `json:"facet"`
	Message string `json:"message"`
}

// AnalysisReport is the complete output for one document
type AnalysisReport struct {
	ID          string           `json:"id"`
	Subject     string           `json:"subject"`
	ContentHash string           `json:"content_hash"`
	AnalyzedAt  time.Time        `json:"analyzed_at"`
	Metadata    DocumentMetadata `json:"metadata"`
	Language    string           `json:"language"`
	Analysis    Analysis         `json:"analysis"`
	Failures    []FacetFailure   `json:"failures,omitempty"`
	LLM         *LLMSummary      `json:"llm,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// LLMSummary contains the optional LLM-generated summary.
// It is produced after analysis and never feeds back into any score.
type LLMSummary struct {
	Enabled    bool     `json:"enabled"`
	Provider   string   `json:"provider,omitempty"`
	Model      string   `json:"model,omitempty"`
	SummaryMD  string   `json:"summary_md,omitempty"`
	TokensUsed int      `json:"tokens_used,omitempty"`
	Truncated  bool     `json:"truncated"`
	Warnings   []string `json:"warnings,omitempty"`
}
