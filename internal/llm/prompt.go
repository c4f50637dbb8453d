package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adjustkit/claimlens/internal/model"
)

// buildExtractionPrompt constructs the field extraction prompt. The JSON
// skeleton mirrors model.TextExtraction exactly; a compliant answer
// unmarshals without any mapping layer.
func buildExtractionPrompt(narrative string) string {
	return fmt.Sprintf(`You are an expert insurance claims analyst. Extract structured information from the following property damage claim description.

CLAIM DESCRIPTION:
%s

Extract the following information. If a field is not mentioned or unclear, set it to null and use low confidence (<0.5).

Return ONLY a valid JSON object with this structure:
{
  "incident_date": "ISO datetime string or null",
  "incident_date_confidence": 0.0-1.0,
  "incident_location": "address or location or null",
  "incident_location_confidence": 0.0-1.0,
  "incident_description": "what happened or null",
  "incident_description_confidence": 0.0-1.0,
  "damage_type": "water|fire|impact|weather|vandalism|other|unknown",
  "damage_type_confidence": 0.0-1.0,
  "property_type": "window|roof|ceiling|wall|door|floor|appliance|furniture|other|unknown",
  "property_type_confidence": 0.0-1.0,
  "room_location": "specific room/area or null",
  "room_location_confidence": 0.0-1.0,
  "estimated_repair_cost": number or null,
  "estimated_repair_cost_confidence": 0.0-1.0,
  "damage_severity": "minor|moderate|severe|unknown",
  "damage_severity_confidence": 0.0-1.0
}

IMPORTANT:
- incident_date must be ISO 8601 format if present (e.g., "2024-01-15T14:30:00")
- Use "unknown" for enums when uncertain
- Be conservative with confidence scores
- Return ONLY the JSON, no explanations`, narrative)
}

// parseExtraction pulls the JSON object out of a model response. Models
// occasionally wrap the JSON in prose or code fences despite the
// instructions; everything outside the outermost braces is discarded.
func parseExtraction(response string) (*model.TextExtraction, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON found in LLM response: %s", response)
	}

	result := model.DefaultTextExtraction()
	if err := json.Unmarshal([]byte(response[start:end+1]), result); err != nil {
		return nil, fmt.Errorf("parse extraction JSON: %w", err)
	}
	return result, nil
}
