// Package check grades fused property damage claims: how complete the
// evidence is, where the story contradicts itself, and what to ask the
// claimant next. Checking is pure analysis; it never rejects a claim
// and never modifies one.
package check

import (
	"github.com/adjustkit/claimlens/internal/model"
)

// Checker runs the full quality pass over a claim
type Checker struct {
	scorer   *Scorer
	detector *Detector
}

// NewChecker creates a checker. A nil clock means the system clock;
// tests pin it to exercise the date rules.
func NewChecker(clock model.Clock) *Checker {
	return &Checker{
		scorer:   NewScorer(),
		detector: NewDetector(clock),
	}
}

// Check produces a fresh report for the claim: completeness score,
// missing evidence in tier order, contradictions in rule order, and at
// most three recommended questions. Safe for concurrent use.
func (c *Checker) Check(claim *model.PropertyDamageClaim) *model.CheckReport {
	score, missing := c.scorer.Score(claim)
	contradictions := c.detector.Detect(claim)
	questions := RecommendQuestions(claim, missing)

	return &model.CheckReport{
		CompletenessScore:       score,
		MissingRequiredEvidence: missing,
		Contradictions:          contradictions,
		RecommendedQuestions:    questions,
	}
}

// CheckClaim checks a claim against the current wall clock
func CheckClaim(claim *model.PropertyDamageClaim) *model.CheckReport {
	return NewChecker(nil).Check(claim)
}
