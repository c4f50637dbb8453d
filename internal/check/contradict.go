package check

import (
	"fmt"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

// lowConfidence is the threshold below which an extraction is treated as
// too uncertain to rely on
const lowConfidence = 0.3

// staleClaimAge is how far back an incident date may reach before it is
// flagged
const staleClaimAge = 730 * 24 * time.Hour

// Detector finds internal contradictions in a fused claim. All rules
// run on every claim, in a fixed order, and report human-readable
// findings; detection never mutates the claim and never turns a finding
// into an error.
type Detector struct {
	clock model.Clock
}

// NewDetector creates a detector. A nil clock means the system clock.
func NewDetector(clock model.Clock) *Detector {
	if clock == nil {
		clock = model.SystemClock{}
	}
	return &Detector{clock: clock}
}

// Detect runs every rule and returns the findings in rule order
func (d *Detector) Detect(claim *model.PropertyDamageClaim) []string {
	contradictions := []string{}

	contradictions = append(contradictions, d.lowConfidenceCriticalFields(claim)...)
	contradictions = append(contradictions, d.severityCostMismatch(claim)...)
	contradictions = append(contradictions, d.descriptionWithoutPhotos(claim)...)
	contradictions = append(contradictions, d.highCostWithoutEstimate(claim)...)
	contradictions = append(contradictions, d.implausibleIncidentDate(claim)...)
	contradictions = append(contradictions, d.uncertainLocation(claim)...)

	return contradictions
}

// Rule 1: critical fields extracted with confidence below the threshold
func (d *Detector) lowConfidenceCriticalFields(claim *model.PropertyDamageClaim) []string {
	var findings []string

	if p := claim.Incident.DamageTypeProvenance; p != nil && p.Confidence < lowConfidence {
		findings = append(findings, "Low confidence on damage type classification (confidence < 0.3)")
	}
	if p := claim.PropertyDamage.PropertyTypeProvenance; p != nil && p.Confidence < lowConfidence {
		findings = append(findings, "Low confidence on property type classification (confidence < 0.3)")
	}
	if p := claim.Incident.DescriptionProvenance; p != nil && p.Confidence < lowConfidence {
		findings = append(findings, "Low confidence on incident description extraction (confidence < 0.3)")
	}

	return findings
}

// Rule 2: claimed severity at odds with the estimated cost
func (d *Detector) severityCostMismatch(claim *model.PropertyDamageClaim) []string {
	cost := claim.PropertyDamage.EstimatedRepairCost
	if cost == nil {
		return nil
	}

	var findings []string
	switch claim.PropertyDamage.Severity {
	case model.SeveritySevere:
		if *cost < 1000 {
			findings = append(findings, fmt.Sprintf(
				"Severity marked as SEVERE but estimated cost is only $%.2f (expected >$1000)", *cost))
		}
	case model.SeverityMinor:
		if *cost > 10000 {
			findings = append(findings, fmt.Sprintf(
				"Severity marked as MINOR but estimated cost is $%.2f (expected <$10000)", *cost))
		}
	}
	return findings
}

// Rule 3: a narrative describes damage nobody photographed
func (d *Detector) descriptionWithoutPhotos(claim *model.PropertyDamageClaim) []string {
	if !claim.Evidence.HasDamagePhotos && claim.Incident.Description != nil && *claim.Incident.Description != "" {
		return []string{"Incident description provided but no damage photos uploaded"}
	}
	return nil
}

// Rule 4: a big number with nothing behind it
func (d *Detector) highCostWithoutEstimate(claim *model.PropertyDamageClaim) []string {
	cost := claim.PropertyDamage.EstimatedRepairCost
	if cost != nil && *cost > 5000 && !claim.Evidence.HasRepairEstimate {
		return []string{fmt.Sprintf(
			"High estimated cost ($%.2f) but no repair estimate document provided", *cost)}
	}
	return nil
}

// Rule 5: incident date in the future or more than two years back.
// Bounds are strict: a date equal to "now", or exactly two years old,
// passes.
func (d *Detector) implausibleIncidentDate(claim *model.PropertyDamageClaim) []string {
	date := claim.Incident.Date
	if date == nil {
		return nil
	}

	now := d.clock.Now().UTC()
	switch {
	case date.After(now):
		return []string{fmt.Sprintf("Incident date is in the future: %s", date.Format("2006-01-02T15:04:05"))}
	case date.Before(now.Add(-staleClaimAge)):
		return []string{fmt.Sprintf("Incident date is more than 2 years old: %s", date.Format("2006-01-02T15:04:05"))}
	}
	return nil
}

// Rule 6: a location that is probably a guess
func (d *Detector) uncertainLocation(claim *model.PropertyDamageClaim) []string {
	if claim.Incident.Location == nil || *claim.Incident.Location == "" {
		return nil
	}
	if p := claim.Incident.LocationProvenance; p != nil && p.Confidence < lowConfidence {
		return []string{"Incident location provided but with very low confidence (confidence < 0.3)"}
	}
	return nil
}
