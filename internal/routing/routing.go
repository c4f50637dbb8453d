// Package routing turns a checked claim into a workflow decision: how
// urgent it is, whether it smells fraudulent, and which queue it lands
// in. Routing never blocks a claim outright; the worst outcome is a
// human review or an SIU referral.
package routing

import (
	"context"
	"fmt"
	"strings"

	"github.com/adjustkit/claimlens/internal/model"
)

// fraudReferralThreshold sends a claim to the Special Investigation
// Unit regardless of any other factor
const fraudReferralThreshold = 0.7

// autoApproveFraudCeiling is the most suspicion an auto-approved claim
// may carry
const autoApproveFraudCeiling = 0.2

// fraudSkipMissingFields skips fraud analysis entirely when the claim
// is missing more evidence than this; scoring a near-empty claim wastes
// an API call and the answer would be noise anyway
const fraudSkipMissingFields = 3

// FraudAnalyst scores a claim for fraud risk. Implementations degrade
// to a neutral assessment on their own failures; a returned error means
// the analysis could not run at all (e.g., canceled context).
type FraudAnalyst interface {
	Name() string
	Assess(ctx context.Context, claim *model.PropertyDamageClaim) (*model.FraudAssessment, error)
}

// Engine routes checked claims
type Engine struct {
	analyst FraudAnalyst
}

// NewEngine creates a routing engine. A nil analyst means the built-in
// heuristic one.
func NewEngine(analyst FraudAnalyst) *Engine {
	if analyst == nil {
		analyst = NewHeuristicAnalyst()
	}
	return &Engine{analyst: analyst}
}

// Process runs a claim and its check report through validation, fraud
// analysis, priority assignment, and routing.
func (e *Engine) Process(ctx context.Context, claim *model.PropertyDamageClaim, report *model.CheckReport) (*model.ProcessingResult, error) {
	result := &model.ProcessingResult{
		ClaimID:         claim.ClaimID,
		FraudIndicators: []string{},
	}

	result.IsComplete, result.MissingFields, result.ValidationErrors = e.validate(claim, report)

	// Fraud analysis is skipped for very incomplete claims
	if len(result.MissingFields) <= fraudSkipMissingFields {
		assessment, err := e.analyst.Assess(ctx, claim)
		if err != nil {
			return nil, fmt.Errorf("fraud analysis: %w", err)
		}
		result.FraudScore = assessment.Score
		if assessment.Indicators != nil {
			result.FraudIndicators = assessment.Indicators
		}
	}

	result.Priority = determinePriority(claim)
	result.Decision, result.RoutingReason = route(result.IsComplete, result.MissingFields, result.FraudScore, result.Priority)
	result.FinalStatus, result.NextActions = nextActions(result.Decision)

	return result, nil
}

// validate runs the data-quality checks the completeness scorer does
// not cover, and folds in the checker's contradictions as errors.
func (e *Engine) validate(claim *model.PropertyDamageClaim, report *model.CheckReport) (bool, []string, []string) {
	errors := []string{}

	if policy := claim.Claimant.PolicyNumber; policy != "" && len(policy) < 4 {
		errors = append(errors, "Policy number appears invalid (too short)")
	}

	if phone := claim.Claimant.ContactPhone; phone != "" {
		digits := strings.NewReplacer("-", "", " ", "").Replace(phone)
		if len(digits) < 10 {
			errors = append(errors, "Phone number appears incomplete")
		}
	}

	if cost := claim.PropertyDamage.EstimatedRepairCost; cost != nil && *cost < 0 {
		errors = append(errors, "Estimated repair cost cannot be negative")
	}

	errors = append(errors, report.Contradictions...)

	missing := report.MissingRequiredEvidence
	if missing == nil {
		missing = []string{}
	}

	isComplete := report.Complete() && len(errors) == 0
	return isComplete, missing, errors
}

// determinePriority ranks the claim by severity, damage type, and cost
func determinePriority(claim *model.PropertyDamageClaim) model.ClaimPriority {
	severity := claim.PropertyDamage.Severity
	damageType := claim.Incident.DamageType
	cost := claim.PropertyDamage.EstimatedRepairCost

	if severity == model.SeveritySevere || damageType == model.DamageFire {
		return model.PriorityUrgent
	}

	if cost != nil {
		if *cost > 10000 {
			return model.PriorityHigh
		}
		if *cost < 1000 {
			return model.PriorityLow
		}
	}

	switch severity {
	case model.SeverityModerate:
		return model.PriorityNormal
	case model.SeverityMinor:
		return model.PriorityLow
	}

	return model.PriorityNormal
}

// route makes the queue decision from all the factors, in strict
// precedence order: fraud beats everything, completeness beats urgency.
func route(isComplete bool, missing []string, fraudScore float64, priority model.ClaimPriority) (model.RoutingDecision, string) {
	if fraudScore >= fraudReferralThreshold {
		return model.RouteSIU, fmt.Sprintf("High fraud risk score (%.2f)", fraudScore)
	}

	if !isComplete {
		return model.RouteHumanReview, fmt.Sprintf("Missing required information: %s", strings.Join(missing, ", "))
	}

	if priority == model.PriorityUrgent {
		return model.RouteSeniorAdjuster, "Urgent claim with severe damage"
	}

	if priority == model.PriorityLow && fraudScore < autoApproveFraudCeiling {
		return model.RouteAutoApprove, "Low-risk, minor damage claim"
	}

	return model.RouteStandardQueue, "Standard processing"
}

// nextActions maps a routing decision to its status and worklist
func nextActions(decision model.RoutingDecision) (string, []string) {
	switch decision {
	case model.RouteAutoApprove:
		return "approved", []string{
			"Generate claim number",
			"Send confirmation to policyholder",
			"Schedule direct payment for minor repairs",
		}

	case model.RouteSIU:
		return "under_investigation", []string{
			"Create SIU case file",
			"Flag for investigation",
			"Request additional documentation",
			"Hold all payments pending review",
		}

	case model.RouteHumanReview:
		return "pending_review", []string{
			"Create review task",
			"Assign to available adjuster",
			"Request missing information from claimant",
		}

	case model.RouteSeniorAdjuster:
		return "in_progress", []string{
			"Assign to senior adjuster",
			"Schedule property inspection",
			"Request contractor estimates",
			"Send acknowledgment to claimant",
		}

	default: // Standard queue
		return "in_progress", []string{
			"Assign to adjuster queue",
			"Send acknowledgment to policyholder",
			"Request damage photos if not provided",
			"Schedule follow-up call if needed",
		}
	}
}
