package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjustkit/claimlens/internal/pipeline"
	"github.com/adjustkit/claimlens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Assess multiple claims from a manifest in parallel",
	Long: `Batch assesses every claim listed in a YAML manifest:
- Read claim entries (narrative, attachments, claimant) from the manifest
- Run the full intake pipeline for each claim in parallel
- Remote extractors share a per-provider rate limit across workers
- Write one JSON and one Markdown report per claim

A failed claim never aborts the batch; it is reported and skipped.

Example:
  claimlens batch claims.yaml
  claimlens batch claims.yaml --concurrency 8 --output-dir ./reports
  claimlens batch claims.yaml --extractor openai --route`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared with the assess command
	batchCmd.Flags().StringVar(&extractorName, "extractor", "heuristic", "text extractor (heuristic, openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&extractorModel, "model", "", "extractor model name (provider default when empty)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction caching")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().BoolVar(&routeClaim, "route", false, "run the routing workflow after each quality check")
	batchCmd.Flags().StringVar(&fraudProvider, "fraud-provider", "heuristic", "fraud analyst for routing (heuristic, openai)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	// Build configuration: file config first, then flags on top
	cfg := loadConfig()
	if cmd.Flags().Changed("extractor") || cfg.Extractor.Provider == "" {
		cfg.Extractor.Provider = extractorName
	}
	if cmd.Flags().Changed("model") {
		cfg.Extractor.Model = extractorModel
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if httpProxy != "" {
		cfg.Extractor.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.Extractor.HTTPSProxy = httpsProxy
	}
	if routeClaim {
		cfg.Routing.Enabled = true
	}
	if cmd.Flags().Changed("fraud-provider") {
		cfg.Routing.FraudProvider = fraudProvider
	}

	if err := resolveAPIKeys(cfg); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  ClaimLens Batch Intake\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", manifestPath)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Extractor:    %s\n", extractorLabel(cfg))
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	// Create batch processor
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers,
		cfg.Concurrency.RateLimit, cfg.Concurrency.RateBurst, cfg.Extractor.Provider)

	fmt.Fprintf(os.Stderr, "⚙️  Assessing claims with %d workers...\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	results, err := processor.ProcessManifest(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	renderer := p.Renderer()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Label, result.Error)
			continue
		}

		successCount++

		// One JSON and one Markdown report per claim, named by claim ID
		slug := sanitizeFilename(result.Assessment.Claim.ClaimID)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Assessment, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Label, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Assessment, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Label, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (completeness: %.2f)\n",
			result.Assessment.Claim.ClaimID, result.Assessment.Report.CompletenessScore)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d claims\n", len(results))
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

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
