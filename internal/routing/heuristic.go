package routing

import (
	"context"
	"strings"

	"github.com/adjustkit/claimlens/internal/model"
)

// HeuristicAnalyst scores fraud risk from red flags visible in the
// claim itself: evidence gaps, cost outliers, and vague narratives.
// Deterministic and offline; the default when no LLM is configured.
type HeuristicAnalyst struct{}

// NewHeuristicAnalyst creates the rule-based fraud analyst
func NewHeuristicAnalyst() *HeuristicAnalyst {
	return &HeuristicAnalyst{}
}

// Name returns the analyst name
func (a *HeuristicAnalyst) Name() string {
	return "heuristic"
}

// Assess scores one claim. Each rule contributes a fixed amount; the
// total is capped at 1.0. Never errors.
func (a *HeuristicAnalyst) Assess(_ context.Context, claim *model.PropertyDamageClaim) (*model.FraudAssessment, error) {
	score := 0.0
	indicators := []string{}

	if claim.PropertyDamage.Severity == model.SeveritySevere && !claim.Evidence.HasDamagePhotos {
		score += 0.25
		indicators = append(indicators, "Severe damage claimed without photos")
	}

	if cost := claim.PropertyDamage.EstimatedRepairCost; cost != nil {
		if *cost > 15000 && !claim.Evidence.HasRepairEstimate {
			score += 0.25
			indicators = append(indicators, "High repair estimate without documentation")
		}
		if claim.PropertyDamage.Severity == model.SeverityMinor && *cost > 10000 {
			score += 0.2
			indicators = append(indicators, "Cost inconsistent with claimed minor severity")
		}
	}

	if desc := claim.Incident.Description; desc != nil {
		if len(strings.TrimSpace(*desc)) < 30 {
			score += 0.1
			indicators = append(indicators, "Vague incident description")
		}
	}

	if claim.Incident.Date == nil {
		score += 0.1
		indicators = append(indicators, "No incident date provided")
	}

	if claim.Consistency.HasConflicts {
		score += 0.15
		indicators = append(indicators, "Cross-modal evidence conflicts detected")
	}

	if score > 1.0 {
		score = 1.0
	}

	return &model.FraudAssessment{
		Score:      score,
		Indicators: indicators,
	}, nil
}
