package model

import (
	"encoding/json"
	"testing"
	"time"
)

func validClaim() *PropertyDamageClaim {
	desc := "Pipe burst in the kitchen"
	cost := 2500.0
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &PropertyDamageClaim{
		ClaimID: "CLM-20260312-ABCD1234",
		Claimant: ClaimantInfo{
			Name:         "Dana Reyes",
			PolicyNumber: "POL-99201",
		},
		Incident: IncidentInfo{
			Date:                  &date,
			DateProvenance:        TextProvenance(0.9, "text_span:full"),
			Description:           &desc,
			DescriptionProvenance: TextProvenance(0.95, "text_span:full"),
			DamageType:            DamageWater,
			DamageTypeProvenance:  TextProvenance(0.8, "text_span:full"),
		},
		PropertyDamage: PropertyDamageInfo{
			PropertyType:           PropertyCeiling,
			PropertyTypeProvenance: TextProvenance(0.7, "text_span:full"),
			EstimatedRepairCost:    &cost,
			RepairCostProvenance:   TextProvenance(0.6, "text_span:full"),
			Severity:               SeverityModerate,
			SeverityProvenance:     TextProvenance(0.5, "text_span:full"),
		},
		Evidence: EvidenceChecklist{
			HasDamagePhotos:  true,
			DamagePhotoCount: 2,
			DamagePhotoIDs:   []string{"kitchen1.jpg", "kitchen2.jpg"},
		},
		CreatedAt:     time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		SchemaVersion: SchemaVersion,
	}
}

func TestPropertyDamageClaim_Validate_Valid(t *testing.T) {
	if err := validClaim().Validate(); err != nil {
		t.Errorf("expected valid claim, got %v", err)
	}
}

func TestPropertyDamageClaim_Validate_EmptyClaimID(t *testing.T) {
	c := validClaim()
	c.ClaimID = "   "
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for blank claim ID, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != "claim_id" {
		t.Errorf("expected field claim_id, got %s", ve.Field)
	}
}

func TestPropertyDamageClaim_Validate_NegativeCost(t *testing.T) {
	c := validClaim()
	bad := -10.0
	c.PropertyDamage.EstimatedRepairCost = &bad
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for negative cost, got nil")
	}
	ve := err.(*ValidationError)
	if ve.Field != "property_damage.estimated_repair_cost" {
		t.Errorf("expected cost field in error, got %s", ve.Field)
	}
}

func TestPropertyDamageClaim_Validate_ConfidenceOutOfRange(t *testing.T) {
	c := validClaim()
	c.Incident.DateProvenance.Confidence = 1.5
	if err := c.Validate(); err == nil {
		t.Error("expected error for confidence > 1.0, got nil")
	}

	c = validClaim()
	c.Incident.DateProvenance.Confidence = -0.1
	if err := c.Validate(); err == nil {
		t.Error("expected error for confidence < 0.0, got nil")
	}
}

func TestPropertyDamageClaim_Validate_ProvenanceWithoutValue(t *testing.T) {
	c := validClaim()
	c.Incident.Date = nil // provenance left behind
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for provenance on absent value, got nil")
	}
	ve := err.(*ValidationError)
	if ve.Field != "incident.incident_date" {
		t.Errorf("expected incident.incident_date, got %s", ve.Field)
	}
}

func TestPropertyDamageClaim_Validate_UnknownEnumWithProvenance(t *testing.T) {
	c := validClaim()
	c.Incident.DamageType = DamageUnknown // provenance still attached
	if err := c.Validate(); err == nil {
		t.Error("expected error for provenance on unknown damage type, got nil")
	}
}

func TestPropertyDamageClaim_Validate_SourceModality(t *testing.T) {
	// Saved documents may carry provenance from any intake channel, not
	// just the narrative extractor.
	c := validClaim()
	c.PropertyDamage.RepairCostProvenance.SourceModality = ModalityDocument
	if err := c.Validate(); err != nil {
		t.Errorf("expected document modality to validate, got %v", err)
	}

	c = validClaim()
	c.PropertyDamage.RepairCostProvenance.SourceModality = "telepathy"
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error for unrecognized modality, got nil")
	}
	ve := err.(*ValidationError)
	if ve.Field != "property_damage.estimated_repair_cost" {
		t.Errorf("expected estimated_repair_cost field in error, got %s", ve.Field)
	}
}

func TestPropertyDamageClaim_JSONRoundTrip(t *testing.T) {
	c := validClaim()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back PropertyDamageClaim
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.ClaimID != c.ClaimID {
		t.Errorf("expected claim ID %s, got %s", c.ClaimID, back.ClaimID)
	}
	if back.Incident.DamageType != DamageWater {
		t.Errorf("expected damage type water, got %s", back.Incident.DamageType)
	}
	if back.Incident.DateProvenance == nil || back.Incident.DateProvenance.SourceModality != ModalityText {
		t.Error("expected incident date provenance to survive round trip")
	}
	if back.PropertyDamage.EstimatedRepairCost == nil || *back.PropertyDamage.EstimatedRepairCost != 2500.0 {
		t.Error("expected estimated repair cost to survive round trip")
	}
	if back.SchemaVersion != SchemaVersion {
		t.Errorf("expected schema version %s, got %s", SchemaVersion, back.SchemaVersion)
	}
}

func TestParseDamageType(t *testing.T) {
	tests := []struct {
		input    string
		expected DamageType
	}{
		{"water", DamageWater},
		{"FIRE", DamageFire},
		{" weather ", DamageWeather},
		{"vandalism", DamageVandalism},
		{"impact", DamageImpact},
		{"other", DamageOther},
		{"unknown", DamageUnknown},
		{"asteroid", DamageUnknown},
		{"", DamageUnknown},
	}
	for _, tt := range tests {
		if got := ParseDamageType(tt.input); got != tt.expected {
			t.Errorf("ParseDamageType(%q): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestParseDamageSeverity(t *testing.T) {
	if got := ParseDamageSeverity("Severe"); got != SeveritySevere {
		t.Errorf("expected severe, got %s", got)
	}
	if got := ParseDamageSeverity("catastrophic"); got != SeverityUnknown {
		t.Errorf("expected unknown for unrecognized severity, got %s", got)
	}
}

func TestParsePropertyType(t *testing.T) {
	if got := ParsePropertyType("Roof"); got != PropertyRoof {
		t.Errorf("expected roof, got %s", got)
	}
	if got := ParsePropertyType("chimney"); got != PropertyUnknown {
		t.Errorf("expected unknown for unrecognized property, got %s", got)
	}
}
