package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjustkit/claimlens/internal/check"
	"github.com/adjustkit/claimlens/internal/model"
	"github.com/adjustkit/claimlens/internal/pipeline"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run canned claim scenarios through the full pipeline",
	Long: `Demo assesses five canned claim scenarios using the offline
heuristic extractor and the baseline image analyzer, with routing
enabled. No API keys or network access required.

The scenarios show the range of intake outcomes:
- A well-documented water damage claim
- A vague first call with almost no detail
- A severity/cost mismatch that trips the contradiction detector
- A damage description with no supporting photos
- A saved claim document whose incident date lies in the future

Example:
  claimlens demo`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

type demoScenario struct {
	title     string
	narrative string
	images    []string // created as placeholder files in a temp dir
	claimant  model.ClaimantInfo
}

var demoScenarios = []demoScenario{
	{
		title: "Well-documented water damage",
		narrative: "Hi, my pipe burst in the ceiling three days ago and there is " +
			"water damage all over the kitchen. A contractor quoted $2,500 to " +
			"repair it. The damage looks moderate to me.",
		images: []string{"IMG_20260115_093012.jpg", "repair_estimate.pdf", "police_report.pdf"},
		claimant: model.ClaimantInfo{
			Name:         "Jane Smith",
			PolicyNumber: "POL-778901",
			ContactPhone: "555-867-5309",
			ContactEmail: "jane.smith@example.com",
		},
	},
	{
		title:     "Vague first call",
		narrative: "Something happened at my house. There is damage. Please help.",
		claimant: model.ClaimantInfo{
			Name: "Bob Jones",
		},
	},
	{
		title: "Severity and cost disagree",
		narrative: "A minor scratch on the living room wall, really small, but the " +
			"contractor says it will cost $15,000 to fix everything properly.",
		images: []string{"IMG_4412.jpg"},
		claimant: model.ClaimantInfo{
			Name:         "Alice Chen",
			PolicyNumber: "POL-102233",
			ContactPhone: "555-014-2231",
		},
	},
	{
		title: "Damage described but never photographed",
		narrative: "The fire last week destroyed most of the garage. Severe damage " +
			"to the walls and roof. I have not taken pictures yet.",
		claimant: model.ClaimantInfo{
			Name:         "Marcus Webb",
			PolicyNumber: "POL-445019",
		},
	},
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Offline configuration: heuristic extraction, routing on, no cache
	cfg := model.DefaultConfig()
	cfg.Extractor.Provider = "heuristic"
	cfg.Cache.Enabled = false
	cfg.Routing.Enabled = true
	cfg.Output.Pretty = true
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	// Placeholder attachments live in a temp dir for the run
	dir, err := os.MkdirTemp("", "claimlens-demo-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	total := len(demoScenarios) + 1
	for i, sc := range demoScenarios {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "  Scenario %d/%d: %s\n", i+1, total, sc.title)
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")

		sub := pipeline.Submission{
			Text:     sc.narrative,
			Claimant: sc.claimant,
		}
		for _, name := range sc.images {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte("placeholder"), 0644); err != nil {
				return fmt.Errorf("write attachment %s: %w", name, err)
			}
			sub.Images = append(sub.Images, path)
		}

		assessment, err := p.Assess(ctx, sub)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ scenario failed: %v\n", err)
			continue
		}

		if err := p.Renderer().RenderStdout(assessment); err != nil {
			return err
		}
	}

	// The last scenario skips intake entirely: a hand-built claim goes
	// straight to the checker, the same path `claimlens check` takes on
	// a saved document. The heuristic extractor never produces dates,
	// so the future-date contradiction only shows up this way.
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Scenario %d/%d: Saved claim dated in the future\n", total, total)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")

	saved := futureDatedClaim()
	if err := p.Renderer().RenderStdout(&pipeline.Assessment{
		Claim:       saved,
		Report:      check.CheckClaim(saved),
		GeneratedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n✓ Demo complete\n")
	return nil
}

// futureDatedClaim builds a claim as it would arrive from a saved
// document. Its incident date lies five days ahead, which no extractor
// path can produce.
func futureDatedClaim() *model.PropertyDamageClaim {
	futureDate := time.Now().UTC().Add(5 * 24 * time.Hour)
	cost := 15000.0
	return &model.PropertyDamageClaim{
		ClaimID: "CLM-DEMO-FUTURE",
		Claimant: model.ClaimantInfo{
			Name:         "Dana Ortiz",
			PolicyNumber: "POL-990117",
		},
		Incident: model.IncidentInfo{
			Date:       &futureDate,
			DamageType: model.DamageUnknown,
		},
		PropertyDamage: model.PropertyDamageInfo{
			PropertyType:        model.PropertyUnknown,
			Severity:            model.SeverityMinor,
			EstimatedRepairCost: &cost,
		},
		Evidence:      model.EvidenceChecklist{},
		CreatedAt:     time.Now().UTC(),
		SchemaVersion: model.SchemaVersion,
	}
}
