package check

import "github.com/adjustkit/claimlens/internal/model"

// maxQuestions caps how many follow-ups a claimant sees at once.
// Everything beyond the cap is lower priority by construction.
const maxQuestions = 3

// Question texts, ordered by how much each answer improves the claim.
// Critical evidence first, then important, then clarifications.
const (
	questionPhotos      = "Can you upload photos showing the damage?"
	questionDescription = "Can you describe what happened and how the damage occurred?"
	questionDamageType  = "Can you clarify what caused the damage? (water, fire, impact, weather, etc.)"
	questionProperty    = "What part of the property was damaged? (window, roof, ceiling, wall, etc.)"
	questionLocation    = "Can you provide the exact address where the damage occurred?"
	questionDate        = "When did the damage occur?"
	questionCost        = "Do you have a repair estimate or expected cost range?"
	questionSeverity    = "How would you describe the severity of the damage? (minor, moderate, or severe)"
)

// RecommendQuestions picks at most three follow-up questions, in
// priority order, from the claim and the scorer's missing item list.
// Deterministic: the same claim always yields the same questions.
func RecommendQuestions(claim *model.PropertyDamageClaim, missing []string) []string {
	missingSet := make(map[string]bool, len(missing))
	for _, item := range missing {
		missingSet[item] = true
	}

	questions := []string{}

	// Critical gaps first. The damage type question covers three cases:
	// never extracted, unknown, or extracted with too little confidence
	// to trust.
	if missingSet["damage_photos"] {
		questions = append(questions, questionPhotos)
	}
	if missingSet["incident_description"] {
		questions = append(questions, questionDescription)
	}
	damageTypeUncertain := claim.Incident.DamageTypeProvenance != nil &&
		claim.Incident.DamageTypeProvenance.Confidence < lowConfidence
	if missingSet["damage_type"] || !claim.Incident.DamageType.Known() || damageTypeUncertain {
		questions = append(questions, questionDamageType)
	}
	if missingSet["property_type"] {
		questions = append(questions, questionProperty)
	}

	// Then important gaps
	if missingSet["incident_location"] {
		questions = append(questions, questionLocation)
	}
	if missingSet["incident_date"] {
		questions = append(questions, questionDate)
	}
	if missingSet["estimated_repair_cost"] {
		questions = append(questions, questionCost)
	}

	// Severity clarification last
	if !claim.PropertyDamage.Severity.Known() {
		questions = append(questions, questionSeverity)
	}

	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}
