package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	outFormat    string
	timeout      time.Duration
	userAgent    string
	noCache      bool
	noFooter     bool
	insecureTLS  bool
	withEntities bool
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|url>",
	Short: "Analyze a single legal document",
	Long: `Analyze reads one document (HTML, Markdown or plain text,
from disk or over HTTP) and reports:
- Document type and sub-type
- Key clauses with per-clause risk
- Legal terminology and key phrases
- Readability, sentiment and topics
- Regulatory compliance coverage
- An overall risk index

Example:
  legalyze analyze contract.txt
  legalyze analyze https://example.com/terms --json report.json --md report.md
  legalyze analyze nda.md --format json
  legalyze analyze nda.md --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&outFormat, "format", "text", "stdout format (text, json)")
	addAnalysisFlags(analyzeCmd)
}

// addAnalysisFlags registers the flags shared by every command that analyzes documents
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout per document")
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent for URL sources")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report cache")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	cmd.Flags().BoolVar(&withEntities, "entities", false, "extract named entities")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM summary provider (openai, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// applyFlags overlays command-line flags onto the loaded configuration
func applyFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if insecureTLS {
		cfg.HTTP.InsecureTLS = true
	}
	if withEntities {
		cfg.Analysis.Entities = true
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "ollama":
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}

// prepare loads configuration, applies flags and starts a session
func prepare(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	return newSession(cfg)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	src := args[0]

	if outFormat != "text" && outFormat != "json" {
		return fmt.Errorf("%w: %s", pipeline.ErrUnsupportedFormat, outFormat)
	}

	rt, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if rt.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", src)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", rt.cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(rt.cfg, rt.logger, rt.metrics)

	report, err := p.AnalyzeSource(ctx, src)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if rt.cfg.Output.Verbose {
		a := report.Analysis
		fmt.Fprintf(os.Stderr, "✓ Classified as %s\n", a.DocumentType.DocumentType)
		fmt.Fprintf(os.Stderr, "✓ Found %d key clauses, %d legal terms\n", len(a.KeyClauses), len(a.LegalTerms))
		fmt.Fprintf(os.Stderr, "✓ Calculated risk index: %d/100\n", a.Risk.Index)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if outFormat == "json" {
		data, err := pipeline.NewRenderer(rt.cfg.Output.IncludeFooter).JSON(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		// Files are still written when requested alongside stdout JSON
		if outJSON != "" || outMD != "" {
			if err := p.WriteReport(report, outJSON, outMD, false); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
		}
	} else if err := p.RenderReport(report, outJSON, outMD, rt.cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if report.Error != "" {
		return fmt.Errorf("%w: %s", pipeline.ErrCriticalFailure, report.Error)
	}
	return nil
}
