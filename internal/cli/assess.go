package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjustkit/claimlens/internal/model"
	"github.com/adjustkit/claimlens/internal/pipeline"
)

var (
	textFlag       string
	textFile       string
	imagePaths     []string
	claimantName   string
	policyNumber   string
	contactPhone   string
	contactEmail   string
	outJSON        string
	outMD          string
	pretty         bool
	noCache        bool
	assessTimeout  time.Duration
	extractorName  string
	extractorModel string
	routeClaim     bool
	fraudProvider  string
	httpProxy      string
	httpsProxy     string
)

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess [narrative-file]",
	Short: "Assess a single claim submission",
	Long: `Assess runs the full intake pipeline for one claim:
- Extract structured fields from the claimant narrative
- Classify uploaded attachments (damage photos, receipts, reports)
- Fuse everything into one canonical claim with per-field provenance
- Score completeness, detect contradictions, recommend questions
- Optionally route the claim through the intake workflow

The narrative comes from a file argument, --text, or --text-file.
The assessment document is printed to stdout as JSON unless --pretty
is set.

Example:
  claimlens assess narrative.txt --images photo1.jpg --images receipt.pdf
  claimlens assess --text "Pipe burst in the kitchen ceiling" --pretty
  claimlens assess narrative.txt --extractor openai --json claim.json
  claimlens assess narrative.txt --route --pretty`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	// Input flags
	assessCmd.Flags().StringVar(&textFlag, "text", "", "claim narrative text (inline)")
	assessCmd.Flags().StringVar(&textFile, "text-file", "", "file containing the claim narrative")
	assessCmd.Flags().StringSliceVar(&imagePaths, "images", nil, "attachment paths (repeatable)")
	assessCmd.Flags().StringVar(&claimantName, "claimant-name", "", "policyholder name")
	assessCmd.Flags().StringVar(&policyNumber, "policy-number", "", "policy identifier")
	assessCmd.Flags().StringVar(&contactPhone, "phone", "", "claimant callback number")
	assessCmd.Flags().StringVar(&contactEmail, "email", "", "claimant email")

	// Extraction flags
	assessCmd.Flags().StringVar(&extractorName, "extractor", "heuristic", "text extractor (heuristic, openai, anthropic, ollama)")
	assessCmd.Flags().StringVar(&extractorModel, "model", "", "extractor model name (provider default when empty)")
	assessCmd.Flags().DurationVar(&assessTimeout, "timeout", 2*time.Minute, "overall assessment timeout")
	assessCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction caching")
	assessCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	assessCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Routing flags
	assessCmd.Flags().BoolVar(&routeClaim, "route", false, "run the routing workflow after the quality check")
	assessCmd.Flags().StringVar(&fraudProvider, "fraud-provider", "heuristic", "fraud analyst for routing (heuristic, openai)")

	// Output flags
	assessCmd.Flags().StringVar(&outJSON, "json", "", "also write the assessment JSON to this path")
	assessCmd.Flags().StringVar(&outMD, "md", "", "also write a Markdown report to this path")
	assessCmd.Flags().BoolVar(&pretty, "pretty", false, "print a human-readable summary instead of JSON")
}

func runAssess(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), assessTimeout)
	defer cancel()

	// Build configuration: file config first, then flags on top
	cfg := loadConfig()
	if cmd.Flags().Changed("extractor") || cfg.Extractor.Provider == "" {
		cfg.Extractor.Provider = extractorName
	}
	if cmd.Flags().Changed("model") {
		cfg.Extractor.Model = extractorModel
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
	if pretty {
		cfg.Output.Pretty = true
	}

	if err := resolveAPIKeys(cfg); err != nil {
		return err
	}

	sub := pipeline.Submission{
		Text:     textFlag,
		TextFile: textFile,
		Images:   imagePaths,
		Claimant: model.ClaimantInfo{
			Name:         claimantName,
			PolicyNumber: policyNumber,
			ContactPhone: contactPhone,
			ContactEmail: contactEmail,
		},
	}
	if len(args) == 1 && sub.Text == "" && sub.TextFile == "" {
		sub.TextFile = args[0]
	}
	if sub.Text == "" && sub.TextFile == "" {
		return fmt.Errorf("no narrative given: pass a file argument, --text, or --text-file")
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Assessing: %s\n", sub.Label())
		fmt.Fprintf(os.Stderr, "Extractor: %s\n", extractorLabel(cfg))
		fmt.Fprintf(os.Stderr, "Attachments: %d\n", len(sub.Images))
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	assessment, err := p.Assess(ctx, sub)
	if err != nil {
		return fmt.Errorf("assess failed: %w", err)
	}

	if err := p.RenderAssessment(assessment, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return p.Renderer().RenderStdout(assessment)
}

// resolveAPIKeys pulls provider credentials from the environment. Only
// the providers that actually need a key hard-fail without one.
func resolveAPIKeys(cfg *model.Config) error {
	switch cfg.Extractor.Provider {
	case "openai":
		cfg.Extractor.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Extractor.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.Extractor.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Extractor.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Extractor.BaseURL = baseURL
		}
	}

	if cfg.Routing.Enabled && cfg.Routing.FraudProvider == "openai" {
		cfg.Routing.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Routing.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set (needed by the openai fraud analyst)")
		}
	}

	return nil
}
