package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/legalyze/internal/logging"
	"github.com/ppiankov/legalyze/internal/model"
)

// Summarizer produces the optional LLM summary for a finished report.
// The summary is attached after scoring and never changes a score.
type Summarizer struct {
	provider  Provider
	config    Config
	tokenizer tokenizer
	logger    logging.Logger
}

// NewSummarizer creates a summarizer. An empty provider yields a disabled summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	s := &Summarizer{
		provider: provider,
		config:   config,
		logger:   logging.Default().Named("llm"),
	}
	if provider != nil {
		tk, err := loadTokenizer()
		if err != nil {
			s.logger.Warn("tokenizer unavailable, using character budget", logging.Err(err))
		}
		s.tokenizer = tk
	}
	return s, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary asks the provider for a summary of report and the document text.
// Provider failures degrade into warnings on the returned summary.
func (s *Summarizer) GenerateSummary(ctx context.Context, report *model.AnalysisReport, text string) (*model.LLMSummary, error) {
	if !s.IsEnabled() || report == nil {
		return nil, nil
	}

	summary := &model.LLMSummary{
		Provider: s.provider.Name(),
		Model:    s.config.Model,
		Warnings: []string{},
	}

	if !s.provider.IsAvailable(ctx) {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("LLM provider %s is not available", summary.Provider))
		return summary, nil
	}
	summary.Enabled = true

	excerpt, truncated := truncateTokens(s.tokenizer, text, s.config.MaxInputTokens)
	summary.Truncated = truncated
	if truncated {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("Document text truncated to %d tokens", s.config.MaxInputTokens))
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Excerpt:   excerpt,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("summary generation failed",
				logging.String("provider", summary.Provider),
				logging.Err(err))
		}
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Summary generation failed: %v", err))
		return summary, nil
	}

	summary.SummaryMD = resp.Summary
	if resp.Model != "" {
		summary.Model = resp.Model
	}
	summary.TokensUsed = resp.TokensUsed
	summary.Warnings = append(summary.Warnings, fmt.Sprintf("Tokens used: %d", resp.TokensUsed))
	return summary, nil
}

// RenderSeparateMarkdown renders the summary as its own Markdown document
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# LLM Summary\n\n")
	b.WriteString("> **GENERATED CONTENT.** This summary was written by a language model. ")
	b.WriteString("All scores, statuses and risk levels in the analysis report were determined independently ")
	b.WriteString("by deterministic rules and are not affected by this text. This is not legal advice.\n\n")

	fmt.Fprintf(&b, "- **Provider:** %s\n", summary.Provider)
	if summary.Model != "" {
		fmt.Fprintf(&b, "- **Model:** %s\n", summary.Model)
	}
	fmt.Fprintf(&b, "- **Input Truncated:** %t\n\n", summary.Truncated)

	b.WriteString("## Summary\n\n")
	if summary.SummaryMD == "" {
		b.WriteString("_No summary generated._\n")
	} else {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
