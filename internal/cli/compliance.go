package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/legalyze/internal/compliance"
	"github.com/ppiankov/legalyze/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	complianceFormat string
	complianceOut    string
)

// complianceCmd represents the compliance command
var complianceCmd = &cobra.Command{
	Use:   "compliance <file|url>",
	Short: "Show regulatory compliance coverage for a document",
	Long: `Compliance analyzes a document and renders only its compliance report:
relevant regulatory areas, satisfied and missing requirements, warnings
and recommendations.

Formats:
  text  colored terminal output (default)
  html  standalone HTML page
  json  presentation structure for front ends

Example:
  legalyze compliance privacy-policy.html
  legalyze compliance terms.md --format html --out compliance.html`,
	Args: cobra.ExactArgs(1),
	RunE: runCompliance,
}

func init() {
	rootCmd.AddCommand(complianceCmd)

	complianceCmd.Flags().StringVar(&complianceFormat, "format", "text", "output format (text, html, json)")
	complianceCmd.Flags().StringVarP(&complianceOut, "out", "o", "", "write to file instead of stdout")
	addAnalysisFlags(complianceCmd)
}

func runCompliance(cmd *cobra.Command, args []string) error {
	format, err := compliance.ParseFormat(complianceFormat)
	if err != nil {
		return err
	}

	rt, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	// The LLM summary is not part of the compliance view
	rt.cfg.LLM.Provider = ""

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	report, err := pipeline.NewPipeline(rt.cfg, rt.logger, rt.metrics).AnalyzeSource(ctx, args[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if report.Error != "" {
		return fmt.Errorf("%w: %s", pipeline.ErrCriticalFailure, report.Error)
	}

	out, err := compliance.NewRenderer().Render(report.Analysis.Compliance, format)
	if err != nil {
		return err
	}

	if complianceOut != "" {
		if err := os.WriteFile(complianceOut, out, 0644); err != nil {
			return fmt.Errorf("write compliance report: %w", err)
		}
		if rt.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote compliance report: %s\n", complianceOut)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(append(out, '\n'))
	return err
}
