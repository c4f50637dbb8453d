package model

// CheckReport is the output of a quality check over one canonical claim.
// Flat and JSON-serializable so it can ride alongside the claim document
// or drive a follow-up conversation with the claimant.
type CheckReport struct {
	CompletenessScore       float64  `json:"completeness_score"`        // 0.0-1.0, tier-weighted
	MissingRequiredEvidence []string `json:"missing_required_evidence"` // Item names, tier order
	Contradictions          []string `json:"contradictions"`            // Human-readable findings, rule order
	RecommendedQuestions    []string `json:"recommended_questions"`     // At most three, priority order
}

// Complete reports whether the claim cleared the completeness bar used
// by the intake workflow
func (r *CheckReport) Complete() bool {
	return r.CompletenessScore >= 0.6
}
