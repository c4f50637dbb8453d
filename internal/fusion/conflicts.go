package fusion

import (
	"fmt"
	"math"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

// amountTolerance is the relative disagreement allowed between a
// document total and the narrative estimate before it counts as a
// conflict
const amountTolerance = 0.25

// detectConflicts compares signals across modalities while they are
// still side by side. Each check runs only when both of its inputs are
// present; silence means nothing comparable disagreed, not that the
// claim was verified. These flags are independent of the quality
// checker's findings over the fused record.
func detectConflicts(claim *model.PropertyDamageClaim, images []model.ImageAnalysis) model.ConsistencyFlags {
	var conflicts []string

	conflicts = append(conflicts, captureDateConflicts(claim, images)...)
	conflicts = append(conflicts, severityConflicts(claim, images)...)
	conflicts = append(conflicts, documentAmountConflicts(claim, images)...)

	return model.ConsistencyFlags{
		HasConflicts:    len(conflicts) > 0,
		ConflictDetails: conflicts,
	}
}

// captureDateConflicts flags photos taken more than a day before the
// incident the claimant reported
func captureDateConflicts(claim *model.PropertyDamageClaim, images []model.ImageAnalysis) []string {
	if claim.Incident.Date == nil {
		return nil
	}
	incident := *claim.Incident.Date

	var conflicts []string
	for _, img := range images {
		if img.CapturedAt == nil {
			continue
		}
		if img.CapturedAt.Before(incident.Add(-24 * time.Hour)) {
			conflicts = append(conflicts, fmt.Sprintf(
				"Photo %s was captured on %s, before the reported incident date %s",
				img.ImagePath,
				img.CapturedAt.Format("2006-01-02"),
				incident.Format("2006-01-02"),
			))
		}
	}
	return conflicts
}

// severityConflicts flags photos whose observed severity is at the
// opposite end of the scale from what the estimated cost implies
func severityConflicts(claim *model.PropertyDamageClaim, images []model.ImageAnalysis) []string {
	if claim.PropertyDamage.EstimatedRepairCost == nil {
		return nil
	}
	cost := *claim.PropertyDamage.EstimatedRepairCost
	implied := costImpliedSeverity(cost)

	var conflicts []string
	for _, img := range images {
		if !img.ObservedSeverity.Known() {
			continue
		}
		opposed := (img.ObservedSeverity == model.SeveritySevere && implied == model.SeverityMinor) ||
			(img.ObservedSeverity == model.SeverityMinor && implied == model.SeveritySevere)
		if opposed {
			conflicts = append(conflicts, fmt.Sprintf(
				"Photo %s shows %s damage but the estimated cost $%.2f implies %s damage",
				img.ImagePath, img.ObservedSeverity, cost, implied,
			))
		}
	}
	return conflicts
}

// documentAmountConflicts flags repair estimate documents whose total
// disagrees with the narrative estimate by more than the tolerance
func documentAmountConflicts(claim *model.PropertyDamageClaim, images []model.ImageAnalysis) []string {
	if claim.PropertyDamage.EstimatedRepairCost == nil {
		return nil
	}
	narrative := *claim.PropertyDamage.EstimatedRepairCost

	var conflicts []string
	for _, img := range images {
		if img.ImageType != model.ImageReceipt || img.DocumentAmount == nil {
			continue
		}
		document := *img.DocumentAmount
		base := math.Max(document, narrative)
		if base <= 0 {
			continue
		}
		if math.Abs(document-narrative)/base > amountTolerance {
			conflicts = append(conflicts, fmt.Sprintf(
				"Repair estimate document %s totals $%.2f but the narrative estimates $%.2f",
				img.ImagePath, document, narrative,
			))
		}
	}
	return conflicts
}

// costImpliedSeverity maps an estimated repair cost onto the severity
// scale used for cross-checking
func costImpliedSeverity(cost float64) model.DamageSeverity {
	switch {
	case cost < 1000:
		return model.SeverityMinor
	case cost <= 10000:
		return model.SeverityModerate
	default:
		return model.SeveritySevere
	}
}
