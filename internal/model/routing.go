package model

// ClaimPriority ranks how quickly a claim needs attention
type ClaimPriority string

const (
	PriorityUrgent ClaimPriority = "urgent" // Severe damage, ongoing issues
	PriorityHigh   ClaimPriority = "high"   // Large losses, complex claims
	PriorityNormal ClaimPriority = "normal" // Standard claims
	PriorityLow    ClaimPriority = "low"    // Minor damage, simple cases
)

// RoutingDecision names the queue a claim lands in
type RoutingDecision string

const (
	RouteAutoApprove    RoutingDecision = "auto_approve"    // Straight-through processing
	RouteStandardQueue  RoutingDecision = "standard_queue"  // Normal adjuster queue
	RouteSeniorAdjuster RoutingDecision = "senior_adjuster" // Complex or high-value
	RouteSIU            RoutingDecision = "siu"             // Special Investigation Unit
	RouteHumanReview    RoutingDecision = "human_review"    // Needs a human decision
)

// FraudAssessment is what a fraud analyst returns for one claim. The
// JSON shape doubles as the wire contract for LLM-backed analysts.
type FraudAssessment struct {
	Score      float64  `json:"fraud_score"` // 0.0-1.0, higher is more suspicious
	Indicators []string `json:"indicators"`  // Specific concerns, human-readable
	Reasoning  string   `json:"reasoning,omitempty"`
}

// ProcessingResult is the outcome of running a checked claim through
// validation, fraud analysis, and routing.
type ProcessingResult struct {
	ClaimID string `json:"claim_id"`

	IsComplete       bool     `json:"is_complete"`
	MissingFields    []string `json:"missing_fields"`
	ValidationErrors []string `json:"validation_errors"`

	FraudScore      float64  `json:"fraud_score"`
	FraudIndicators []string `json:"fraud_indicators"`

	Priority      ClaimPriority   `json:"priority"`
	Decision      RoutingDecision `json:"routing_decision"`
	RoutingReason string          `json:"routing_reason"`

	FinalStatus string   `json:"final_status"`
	NextActions []string `json:"next_actions"`
}
