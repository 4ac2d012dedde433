package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of an analysis report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the finished analysis. Its scores are passed as facts.
	Report *model.AnalysisReport

	// Excerpt is the document text, already cut to the input token budget
	Excerpt string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI. Ollama ignores it.
	APIKey string

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// MaxInputTokens bounds the document excerpt sent with the prompt
	MaxInputTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "", // Disabled by default
		Timeout:        30,
		MaxTokens:      800,
		MaxInputTokens: 2048,
	}
}

// BuildPrompt constructs the default summarization prompt
func BuildPrompt(report *model.AnalysisReport, excerpt string) string {
	var b strings.Builder
	a := report.Analysis

	b.WriteString(`You are summarizing a legal document analysis produced by Legalyze. The scores below were computed by deterministic rules; do not recompute, dispute or invent scores.

RULES:
1. Describe what the document is and what it obliges the parties to do.
2. Point out the risky clauses and compliance gaps listed below.
3. Only refer to content that appears in the excerpt or the findings.
4. This is not legal advice. Do not phrase it as such.

`)
	fmt.Fprintf(&b, "Document: %s\n", report.Subject)
	docType := a.DocumentType.DocumentType
	if a.DocumentType.SubType != nil {
		docType += " / " + *a.DocumentType.SubType
	}
	fmt.Fprintf(&b, "- Document Type: %s (confidence %.0f%%)\n", docType, a.DocumentType.Confidence*100)
	fmt.Fprintf(&b, "- Risk Index: %d/100 (%s)\n", a.Risk.Index, a.Risk.Level)
	fmt.Fprintf(&b, "- Compliance: %s (score %.0f)\n", a.Compliance.OverallStatus, a.Compliance.ComplianceScore)
	fmt.Fprintf(&b, "- Readability: %.1f (%s)\n", a.Readability.Score, a.Readability.Level)
	fmt.Fprintf(&b, "- Sentiment: %s\n", a.Sentiment.Summary)

	if len(a.KeyClauses) > 0 {
		b.WriteString("\nKey Clauses:\n")
		for i, c := range a.KeyClauses {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s (risk %.2f)\n", c.ClauseType, c.RiskScore)
		}
	}

	if len(a.Compliance.Warnings) > 0 {
		b.WriteString("\nCompliance Warnings:\n")
		for _, w := range a.Compliance.Warnings {
			fmt.Fprintf(&b, "- [%s] %s\n", w.Level, w.Message)
		}
	}

	if excerpt != "" {
		b.WriteString("\nDocument Excerpt:\n\"\"\"\n")
		b.WriteString(excerpt)
		b.WriteString("\n\"\"\"\n")
	}

	b.WriteString("\nProvide a 4-6 sentence summary in Markdown for a non-lawyer reader.")
	return b.String()
}
