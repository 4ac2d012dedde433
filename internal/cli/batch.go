package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ppiankov/legalyze/internal/pipeline"
	"github.com/ppiankov/legalyze/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple documents from a list file in parallel",
	Long: `Batch analyzes many documents concurrently:
- Read sources from the input file (one file path or URL per line, # for comments)
- Analyze them in parallel with a configurable worker count
- Rate-limit URL fetches per host
- Write a JSON and a Markdown report for each document

Example:
  legalyze batch contracts.txt
  legalyze batch contracts.txt --concurrency 8 --output-dir ./reports
  legalyze batch urls.txt --concurrency 4 --batch-timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./legalyze-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 10*time.Minute, "total timeout for batch processing")
	addAnalysisFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	rt, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	if cmd.Flags().Changed("concurrency") || rt.cfg.Concurrency.Workers <= 0 {
		rt.cfg.Concurrency.Workers = concurrency
	}
	workers := rt.cfg.Concurrency.Workers

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Legalyze Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if rt.cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", rt.cfg.LLM.Provider, rt.cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(rt.cfg, rt.logger, rt.metrics)
	processor := worker.NewBatchProcessor(p, workers, rt.cfg.RateLimiting.RequestsPerSecond, rt.cfg.RateLimiting.BurstSize, rt.logger)
	p.WithCrawlDelays(processor.Limiter())

	fmt.Fprintf(os.Stderr, "⚙️  Analyzing sources with %d workers...\n\n", workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(rt.cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for i, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}
		if result.Report.Error != "" {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", result.Source, result.Report.Error)
			continue
		}

		// Index prefix keeps reports for identically titled documents apart
		slug := fmt.Sprintf("%03d-%s", i+1, sanitizeFilename(result.Report.Subject))
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Source, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Source, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (risk: %d/100, %v)\n", result.Report.Subject, result.Report.Analysis.Risk.Index, result.Duration.Round(time.Millisecond))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d sources\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename turns a report subject into a safe file name
func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	s = filenameReplacer.Replace(s)
	s = strings.Trim(s, ".-_")
	if s == "" {
		return "document"
	}

	// Limit length without splitting a rune
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}
	return s
}
