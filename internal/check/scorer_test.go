package check

import (
	"testing"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

var testNow = time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func datePtr(t time.Time) *time.Time { return &t }

// completeClaim builds a claim with every tier item satisfied
func completeClaim() *model.PropertyDamageClaim {
	return &model.PropertyDamageClaim{
		ClaimID: "TEST-001",
		Claimant: model.ClaimantInfo{
			Name:         "John Doe",
			PolicyNumber: "POL-123456",
		},
		Incident: model.IncidentInfo{
			Date:                  datePtr(testNow.AddDate(0, 0, -5)),
			DateProvenance:        model.TextProvenance(0.9, "text_span:0-20"),
			Location:              strPtr("123 Main St, San Francisco, CA"),
			LocationProvenance:    model.TextProvenance(0.85, "text_span:21-50"),
			Description:           strPtr("Pipe burst in ceiling causing water damage to living room"),
			DescriptionProvenance: model.TextProvenance(0.95, "text_span:51-100"),
			DamageType:            model.DamageWater,
			DamageTypeProvenance:  model.TextProvenance(0.9, "text_span:60-65"),
		},
		PropertyDamage: model.PropertyDamageInfo{
			PropertyType:           model.PropertyCeiling,
			PropertyTypeProvenance: model.TextProvenance(0.9, "text_span:55-62"),
			RoomLocation:           strPtr("living room"),
			EstimatedRepairCost:    floatPtr(2500.0),
			Severity:               model.SeverityModerate,
		},
		Evidence: model.EvidenceChecklist{
			HasDamagePhotos:   true,
			DamagePhotoCount:  3,
			DamagePhotoIDs:    []string{"img_001.jpg", "img_002.jpg", "img_003.jpg"},
			HasRepairEstimate: true,
			HasIncidentReport: true,
		},
		CreatedAt:     testNow,
		SchemaVersion: model.SchemaVersion,
	}
}

// emptyClaim builds a claim with no tier item satisfied
func emptyClaim() *model.PropertyDamageClaim {
	return &model.PropertyDamageClaim{
		ClaimID: "TEST-EMPTY",
		Incident: model.IncidentInfo{
			DamageType: model.DamageUnknown,
		},
		PropertyDamage: model.PropertyDamageInfo{
			PropertyType: model.PropertyUnknown,
			Severity:     model.SeverityUnknown,
		},
		CreatedAt:     testNow,
		SchemaVersion: model.SchemaVersion,
	}
}

func TestScorer_Score_CompleteClaim(t *testing.T) {
	score, missing := NewScorer().Score(completeClaim())

	if score != 1.0 {
		t.Errorf("expected exactly 1.0, got %v", score)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing evidence, got %v", missing)
	}
}

func TestScorer_Score_EmptyClaim(t *testing.T) {
	score, missing := NewScorer().Score(emptyClaim())

	if score != 0.0 {
		t.Errorf("expected exactly 0.0, got %v", score)
	}

	expected := []string{
		"damage_photos", "incident_description", "damage_type", "property_type",
		"incident_location", "estimated_repair_cost", "incident_date",
		"repair_estimate_document", "room_location", "multiple_photos",
	}
	if len(missing) != len(expected) {
		t.Fatalf("expected %d missing items, got %d: %v", len(expected), len(missing), missing)
	}
	for i, name := range expected {
		if missing[i] != name {
			t.Errorf("expected missing[%d]=%s, got %s", i, name, missing[i])
		}
	}
}

func TestScorer_Score_MissingImportantTier(t *testing.T) {
	claim := completeClaim()
	claim.Incident.Location = nil
	claim.Incident.LocationProvenance = nil
	claim.Incident.Date = nil
	claim.Incident.DateProvenance = nil
	claim.PropertyDamage.EstimatedRepairCost = nil

	score, missing := NewScorer().Score(claim)

	// 0.6 + 0 + 0.1
	if score != 0.7 {
		t.Errorf("expected 0.7, got %v", score)
	}
	for _, want := range []string{"incident_location", "estimated_repair_cost", "incident_date"} {
		if !contains(missing, want) {
			t.Errorf("expected %s in missing list, got %v", want, missing)
		}
	}
}

func TestScorer_Score_MissingSupportingTier(t *testing.T) {
	claim := completeClaim()
	claim.Evidence.HasRepairEstimate = false
	claim.PropertyDamage.RoomLocation = nil
	claim.Evidence.DamagePhotoCount = 1

	score, missing := NewScorer().Score(claim)

	// 0.6 + 0.3 + 0
	if score != 0.9 {
		t.Errorf("expected 0.9, got %v", score)
	}
	for _, want := range []string{"repair_estimate_document", "room_location", "multiple_photos"} {
		if !contains(missing, want) {
			t.Errorf("expected %s in missing list, got %v", want, missing)
		}
	}
}

func TestScorer_Score_MissingCriticalTier(t *testing.T) {
	claim := completeClaim()
	claim.Evidence.HasDamagePhotos = false
	claim.Evidence.DamagePhotoCount = 0
	claim.Incident.Description = nil
	claim.Incident.DescriptionProvenance = nil
	claim.Incident.DamageType = model.DamageUnknown
	claim.Incident.DamageTypeProvenance = nil
	claim.PropertyDamage.PropertyType = model.PropertyUnknown
	claim.PropertyDamage.PropertyTypeProvenance = nil

	score, missing := NewScorer().Score(claim)

	// 0 + 0.3 + (2/3 * 0.1): multiple_photos also lost with the photos
	if score > 0.4 {
		t.Errorf("expected score <= 0.4 with all critical items missing, got %v", score)
	}
	for _, want := range []string{"damage_photos", "incident_description", "damage_type", "property_type"} {
		if !contains(missing, want) {
			t.Errorf("expected %s in missing list, got %v", want, missing)
		}
	}
}

func TestScorer_Score_Bounds(t *testing.T) {
	claims := []*model.PropertyDamageClaim{
		completeClaim(),
		emptyClaim(),
	}
	partial := completeClaim()
	partial.Incident.Date = nil
	partial.Incident.DateProvenance = nil
	claims = append(claims, partial)

	scorer := NewScorer()
	for i, claim := range claims {
		score, _ := scorer.Score(claim)
		if score < 0.0 || score > 1.0 {
			t.Errorf("claim %d: score %v out of [0,1]", i, score)
		}
	}
}

func TestScorer_Score_MonotonicInEvidence(t *testing.T) {
	scorer := NewScorer()
	claim := emptyClaim()
	prev, _ := scorer.Score(claim)

	// Add evidence one item at a time; the score must never drop
	steps := []func(){
		func() { claim.Evidence.HasDamagePhotos = true; claim.Evidence.DamagePhotoCount = 1 },
		func() { claim.Incident.Description = strPtr("water damage in the kitchen") },
		func() { claim.Incident.DamageType = model.DamageWater },
		func() { claim.PropertyDamage.PropertyType = model.PropertyCeiling },
		func() { claim.Incident.Location = strPtr("123 Main St") },
		func() { claim.PropertyDamage.EstimatedRepairCost = floatPtr(2000) },
		func() { claim.Incident.Date = datePtr(testNow.AddDate(0, 0, -3)) },
		func() { claim.Evidence.HasRepairEstimate = true },
		func() { claim.PropertyDamage.RoomLocation = strPtr("kitchen") },
		func() { claim.Evidence.DamagePhotoCount = 2 },
	}

	for i, step := range steps {
		step()
		score, _ := scorer.Score(claim)
		if score < prev {
			t.Errorf("step %d: score dropped from %v to %v", i, prev, score)
		}
		prev = score
	}

	if prev != 1.0 {
		t.Errorf("expected 1.0 after all items added, got %v", prev)
	}
}

func TestScorer_Score_BlankStringsNotPresent(t *testing.T) {
	claim := completeClaim()
	claim.Incident.Description = strPtr("   ")
	claim.Incident.DescriptionProvenance = nil

	_, missing := NewScorer().Score(claim)
	if !contains(missing, "incident_description") {
		t.Errorf("expected blank description to count as missing, got %v", missing)
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
