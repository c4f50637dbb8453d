package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjustkit/claimlens/internal/check"
	"github.com/adjustkit/claimlens/internal/model"
	"github.com/adjustkit/claimlens/internal/pipeline"
)

var checkPretty bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim.json>",
	Short: "Re-run the quality check on a saved claim",
	Long: `Check loads a claim JSON file and recomputes its quality report:
completeness score, missing fields, contradictions, and recommended
follow-up questions.

The file may be a full assessment document (as written by "claimlens
assess --json") or a bare claim object. The claim itself is not
modified; only the report is rebuilt against the current clock, which
matters for date plausibility checks.

Example:
  claimlens check claim.json
  claimlens check claim.json --pretty`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkPretty, "pretty", false, "print a human-readable summary instead of JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read claim: %w", err)
	}

	claim, err := decodeClaim(data)
	if err != nil {
		return err
	}

	assessment := &pipeline.Assessment{
		Claim:       claim,
		Report:      check.CheckClaim(claim),
		GeneratedAt: time.Now().UTC(),
	}
	return pipeline.NewRenderer(checkPretty).RenderStdout(assessment)
}

// decodeClaim accepts either a full assessment document or a bare
// claim object.
func decodeClaim(data []byte) (*model.PropertyDamageClaim, error) {
	var doc struct {
		Claim *model.PropertyDamageClaim `json:"claim"`
	}
	if err := json.Unmarshal(data, &doc); err == nil && doc.Claim != nil && doc.Claim.ClaimID != "" {
		return doc.Claim, nil
	}

	var claim model.PropertyDamageClaim
	if err := json.Unmarshal(data, &claim); err != nil {
		return nil, fmt.Errorf("parse claim JSON: %w", err)
	}
	if claim.ClaimID == "" {
		return nil, fmt.Errorf("document contains no claim")
	}
	return &claim, nil
}
