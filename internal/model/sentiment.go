package model

// SentimentLabel is the five-band sentiment classification
type SentimentLabel string

const (
	SentimentVeryPositive SentimentLabel = "very positive"
	SentimentPositive     SentimentLabel = "positive"
	SentimentNeutral      SentimentLabel = "neutral"
	SentimentNegative     SentimentLabel = "negative"
	SentimentVeryNegative SentimentLabel = "very negative"
)

// SentimentScore is a score with its label and confidence
type SentimentScore struct {
	Score      float64        `json:"score"`
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// SectionSentiment is the sentiment of one document section
type SectionSentiment struct {
	Content      string         `json:"content"`
	Score        float64        `json:"score"`
	Label        SentimentLabel `json:"label"`
	Confidence   float64        `json:"confidence"`
	Length       int            `json:"length"`
	MatchedTerms []string       `json:"matched_terms"`
}

// KeySectionType tags a section that stands out in the sentiment breakdown
type KeySectionType string

const (
	KeyMostNegative KeySectionType = "most_negative"
	KeyMostPositive KeySectionType = "most_positive"
	KeyMostExtreme  KeySectionType = "most_extreme"
)

// KeySection is a highlighted section
type KeySection struct {
	Type    KeySectionType `json:"type"`
	Score   float64        `json:"score"`
	Label   SentimentLabel `json:"label"`
	Content string         `json:"content"`
	Color   string         `json:"color"`
}

// ScoreBin is one bucket of the rounded sentence-score distribution
type ScoreBin struct {
	Score float64 `json:"score"`
	Count int     `json:"count"`
	Color string  `json:"color"`
}

// SentimentVisualization carries chart data
type SentimentVisualization struct {
	Distribution []ScoreBin `json:"distribution"`
}

// SentimentBaseline is the VADER compound score reported next to the lexicon result
type SentimentBaseline struct {
	Method   string         `json:"method"`
	Compound float64        `json:"compound"`
	Positive float64        `json:"positive"`
	Negative float64        `json:"negative"`
	Neutral  float64        `json:"neutral"`
	Label    SentimentLabel `json:"label"`
}

// SentimentResult is the full lexicon-based sentiment analysis
type SentimentResult struct {
	Overall       SentimentScore         `json:"overall"`
	Breakdown     []SectionSentiment     `json:"breakdown"`
	KeySections   []KeySection           `json:"key_sections"`
	Summary       string                 `json:"summary"`
	Visualization SentimentVisualization `json:"visualization"`
	Baseline      *SentimentBaseline     `json:"baseline,omitempty"`
}

// EmptySentiment is the neutral zero result with the given summary
func EmptySentiment(summary string) SentimentResult {
	return SentimentResult{
		Overall:       SentimentScore{Label: SentimentNeutral},
		Breakdown:     []SectionSentiment{},
		KeySections:   []KeySection{},
		Summary:       summary,
		Visualization: SentimentVisualization{Distribution: []ScoreBin{}},
	}
}
