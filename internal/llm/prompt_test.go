package llm

import (
	"strings"
	"testing"
)

// sampleExtractionJSON is a well-formed extractor answer used across the
// provider tests
const sampleExtractionJSON = `{
  "incident_date": "2026-03-10T14:30:00",
  "incident_date_confidence": 0.9,
  "incident_location": "428 Oakmont Drive, Austin, TX",
  "incident_location_confidence": 0.85,
  "incident_description": "Burst pipe flooded the kitchen ceiling",
  "incident_description_confidence": 0.95,
  "damage_type": "water",
  "damage_type_confidence": 0.9,
  "property_type": "ceiling",
  "property_type_confidence": 0.85,
  "room_location": "kitchen",
  "room_location_confidence": 0.8,
  "estimated_repair_cost": 2500,
  "estimated_repair_cost_confidence": 0.6,
  "damage_severity": "moderate",
  "damage_severity_confidence": 0.7
}`

func TestBuildExtractionPrompt_ContainsNarrativeAndContract(t *testing.T) {
	narrative := "A pipe burst above the kitchen last Tuesday."
	prompt := buildExtractionPrompt(narrative)

	if !strings.Contains(prompt, narrative) {
		t.Error("Expected prompt to contain the narrative")
	}
	for _, field := range []string{"incident_date", "damage_type", "property_type", "estimated_repair_cost", "damage_severity"} {
		if !strings.Contains(prompt, field) {
			t.Errorf("Expected prompt to name field %s", field)
		}
	}
	if !strings.Contains(prompt, "Return ONLY the JSON") {
		t.Error("Expected prompt to demand bare JSON output")
	}
}

func TestParseExtraction_CleanJSON(t *testing.T) {
	result, err := parseExtraction(sampleExtractionJSON)
	if err != nil {
		t.Fatalf("parseExtraction failed: %v", err)
	}

	if result.DamageType != "water" {
		t.Errorf("Expected damage_type water, got %s", result.DamageType)
	}
	if result.PropertyType != "ceiling" {
		t.Errorf("Expected property_type ceiling, got %s", result.PropertyType)
	}
	if result.IncidentDescription == nil || *result.IncidentDescription != "Burst pipe flooded the kitchen ceiling" {
		t.Errorf("Unexpected description: %v", result.IncidentDescription)
	}
	if result.EstimatedRepairCost == nil || *result.EstimatedRepairCost != 2500 {
		t.Errorf("Unexpected repair cost: %v", result.EstimatedRepairCost)
	}
	if result.DamageSeverityConfidence != 0.7 {
		t.Errorf("Expected severity confidence 0.7, got %v", result.DamageSeverityConfidence)
	}
}

func TestParseExtraction_ProseWrappedJSON(t *testing.T) {
	response := "Here is the extracted information:\n```json\n" + sampleExtractionJSON + "\n```\nLet me know if you need anything else."

	result, err := parseExtraction(response)
	if err != nil {
		t.Fatalf("parseExtraction failed on wrapped JSON: %v", err)
	}
	if result.DamageType != "water" {
		t.Errorf("Expected damage_type water, got %s", result.DamageType)
	}
}

func TestParseExtraction_NoJSON(t *testing.T) {
	_, err := parseExtraction("I could not process this claim description.")
	if err == nil {
		t.Fatal("Expected error for response without JSON, got nil")
	}
}

func TestParseExtraction_MalformedJSON(t *testing.T) {
	_, err := parseExtraction(`{"damage_type": "water", "property_type":`)
	if err == nil {
		t.Fatal("Expected error for malformed JSON, got nil")
	}
}

func TestParseExtraction_PartialFieldsKeepDefaults(t *testing.T) {
	result, err := parseExtraction(`{"damage_type": "fire", "damage_type_confidence": 0.8}`)
	if err != nil {
		t.Fatalf("parseExtraction failed: %v", err)
	}

	if result.DamageType != "fire" {
		t.Errorf("Expected damage_type fire, got %s", result.DamageType)
	}
	if result.PropertyType != "unknown" {
		t.Errorf("Expected property_type to default to unknown, got %s", result.PropertyType)
	}
	if result.DamageSeverity != "unknown" {
		t.Errorf("Expected damage_severity to default to unknown, got %s", result.DamageSeverity)
	}
	if result.IncidentDate != nil {
		t.Errorf("Expected nil incident_date, got %v", *result.IncidentDate)
	}
}

func TestParseExtraction_NullsKeepDefaults(t *testing.T) {
	result, err := parseExtraction(`{"damage_type": null, "incident_date": null, "estimated_repair_cost": null}`)
	if err != nil {
		t.Fatalf("parseExtraction failed: %v", err)
	}

	if result.DamageType != "unknown" {
		t.Errorf("Expected null damage_type to stay unknown, got %s", result.DamageType)
	}
	if result.EstimatedRepairCost != nil {
		t.Errorf("Expected nil repair cost, got %v", *result.EstimatedRepairCost)
	}
}
