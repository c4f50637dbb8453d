package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
)

// costPattern matches dollar amounts like $1,200.50 or $ 800
var costPattern = regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)

// damageRule maps trigger keywords to a damage type classification
type damageRule struct {
	keywords   []string
	damageType model.DamageType
	confidence float64
}

// propertyRule maps trigger keywords to a property type classification
type propertyRule struct {
	keywords     []string
	propertyType model.PropertyType
	confidence   float64
}

// HeuristicExtractor classifies narratives with keyword rules. It is
// deterministic, needs no network, and is the default extractor: the
// intake flow must keep working when no LLM is configured.
type HeuristicExtractor struct {
	damageRules   []damageRule
	propertyRules []propertyRule
	rooms         []string
}

// NewHeuristicExtractor creates a heuristic extractor with the built-in
// rule tables
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{
		damageRules: []damageRule{
			{[]string{"water", "leak", "flood", "pipe"}, model.DamageWater, 0.8},
			{[]string{"fire", "burn", "smoke"}, model.DamageFire, 0.8},
			{[]string{"storm", "wind", "hail", "weather"}, model.DamageWeather, 0.8},
			{[]string{"break", "broken", "crash", "impact"}, model.DamageImpact, 0.7},
			{[]string{"vandal"}, model.DamageVandalism, 0.8},
		},
		propertyRules: []propertyRule{
			{[]string{"window"}, model.PropertyWindow, 0.8},
			{[]string{"roof"}, model.PropertyRoof, 0.8},
			{[]string{"ceiling"}, model.PropertyCeiling, 0.8},
			{[]string{"wall"}, model.PropertyWall, 0.7},
			{[]string{"door"}, model.PropertyDoor, 0.8},
			{[]string{"floor"}, model.PropertyFloor, 0.8},
			{[]string{"appliance", "stove", "dishwasher"}, model.PropertyAppliance, 0.7},
		},
		rooms: []string{
			"kitchen", "bathroom", "bedroom", "living room",
			"dining room", "basement", "attic", "garage",
		},
	}
}

// Name returns the extractor name
func (e *HeuristicExtractor) Name() string {
	return "heuristic"
}

// Extract classifies the narrative with the rule tables. It never
// returns an error.
func (e *HeuristicExtractor) Extract(_ context.Context, narrative string) (*model.TextExtraction, error) {
	start := time.Now()

	result := &model.TextExtraction{
		IncidentDateConfidence:     0.3,
		IncidentLocationConfidence: 0.3,
		DamageType:                 string(model.DamageUnknown),
		DamageTypeConfidence:       0.5,
		PropertyType:               string(model.PropertyUnknown),
		PropertyTypeConfidence:     0.5,
		RoomLocationConfidence:     0.3,
		DamageSeverity:             string(model.SeverityUnknown),
		DamageSeverityConfidence:   0.4,
	}

	if narrative != "" {
		desc := narrative
		result.IncidentDescription = &desc
		result.IncidentDescriptionConfidence = 0.9
	}

	lower := strings.ToLower(narrative)

	for _, rule := range e.damageRules {
		if containsAny(lower, rule.keywords) {
			result.DamageType = string(rule.damageType)
			result.DamageTypeConfidence = rule.confidence
			break
		}
	}

	for _, rule := range e.propertyRules {
		if containsAny(lower, rule.keywords) {
			result.PropertyType = string(rule.propertyType)
			result.PropertyTypeConfidence = rule.confidence
			break
		}
	}

	switch {
	case containsAny(lower, []string{"severe", "major", "extensive"}):
		result.DamageSeverity = string(model.SeveritySevere)
		result.DamageSeverityConfidence = 0.7
	case containsAny(lower, []string{"moderate", "medium"}):
		result.DamageSeverity = string(model.SeverityModerate)
		result.DamageSeverityConfidence = 0.7
	case containsAny(lower, []string{"minor", "small", "slight"}):
		result.DamageSeverity = string(model.SeverityMinor)
		result.DamageSeverityConfidence = 0.7
	}

	for _, room := range e.rooms {
		if strings.Contains(lower, room) {
			r := room
			result.RoomLocation = &r
			result.RoomLocationConfidence = 0.8
			break
		}
	}

	if m := costPattern.FindStringSubmatch(narrative); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if cost, err := strconv.ParseFloat(raw, 64); err == nil {
			result.EstimatedRepairCost = &cost
			result.EstimatedRepairCostConfidence = 0.6
		}
	}

	result.ExtractionTimeMS = time.Since(start).Milliseconds()
	return result, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
