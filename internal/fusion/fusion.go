package fusion

import (
	"fmt"
	"strings"
	"time"

	"github.com/adjustkit/claimlens/internal/model"
	"github.com/google/uuid"
)

// textPointer locates values extracted from the narrative. The v1
// extractors classify over the whole text, so the span is always "full".
const textPointer = "text_span:full"

// Checklist item names a submission can be required to include
const (
	evidenceDamagePhotos   = "damage_photos"
	evidenceRepairEstimate = "repair_estimate"
	evidenceIncidentReport = "incident_report"
)

// Engine assembles extractor and analyzer outputs into one canonical
// claim. It attaches provenance as it copies values and never mutates
// its inputs.
type Engine struct {
	prefix            string
	defaultConfidence float64
	required          []string
	clock             model.Clock
}

// NewEngine creates a fusion engine. A nil clock means the system clock.
// Unrecognized required-evidence names are ignored and at most three are
// honored.
func NewEngine(cfg model.FusionConfig, clock model.Clock) *Engine {
	prefix := cfg.ClaimIDPrefix
	if prefix == "" {
		prefix = "CLM"
	}
	defaultConfidence := cfg.DefaultConfidence
	if defaultConfidence <= 0 {
		defaultConfidence = 0.5
	}
	if clock == nil {
		clock = model.SystemClock{}
	}
	return &Engine{
		prefix:            prefix,
		defaultConfidence: defaultConfidence,
		required:          requiredEvidence(cfg.RequiredEvidence),
		clock:             clock,
	}
}

// requiredEvidence normalizes the configured checklist requirements
func requiredEvidence(configured []string) []string {
	if len(configured) == 0 {
		return []string{evidenceDamagePhotos, evidenceRepairEstimate, evidenceIncidentReport}
	}
	known := map[string]bool{
		evidenceDamagePhotos:   true,
		evidenceRepairEstimate: true,
		evidenceIncidentReport: true,
	}
	var required []string
	for _, name := range configured {
		if known[name] && len(required) < 3 {
			required = append(required, name)
		}
	}
	return required
}

// Fuse combines one text extraction, the image analyses, and the
// structured claimant details into a canonical claim. A field is
// populated, and gets provenance, only when an extractor produced a
// concrete value for it; nothing is invented for gaps. The returned
// claim has passed Validate.
func (e *Engine) Fuse(text *model.TextExtraction, images []model.ImageAnalysis, claimant model.ClaimantInfo) (*model.PropertyDamageClaim, error) {
	if text == nil {
		text = model.DefaultTextExtraction()
	}

	claim := &model.PropertyDamageClaim{
		ClaimID:        e.generateClaimID(),
		Claimant:       claimant,
		Incident:       e.buildIncident(text),
		PropertyDamage: e.buildPropertyDamage(text, images),
		Evidence:       e.buildEvidenceChecklist(images),
		CreatedAt:      e.clock.Now().UTC(),
		SchemaVersion:  model.SchemaVersion,
	}
	claim.Consistency = detectConflicts(claim, images)

	if err := claim.Validate(); err != nil {
		return nil, fmt.Errorf("fuse claim: %w", err)
	}
	return claim, nil
}

// generateClaimID builds IDs like CLM-20260312-9F86D081
func (e *Engine) generateClaimID() string {
	timestamp := e.clock.Now().UTC().Format("20060102")
	unique := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("%s-%s-%s", e.prefix, timestamp, unique)
}

// buildIncident copies the incident fields the extractor actually found
func (e *Engine) buildIncident(text *model.TextExtraction) model.IncidentInfo {
	incident := model.IncidentInfo{
		DamageType: model.DamageUnknown,
	}

	if text.IncidentDate != nil {
		if date, ok := parseIncidentDate(*text.IncidentDate); ok {
			incident.Date = &date
			incident.DateProvenance = model.TextProvenance(
				e.confidenceOr(text.IncidentDateConfidence), textPointer)
		}
	}

	if text.IncidentLocation != nil && *text.IncidentLocation != "" {
		loc := *text.IncidentLocation
		incident.Location = &loc
		incident.LocationProvenance = model.TextProvenance(
			e.confidenceOr(text.IncidentLocationConfidence), textPointer)
	}

	if text.IncidentDescription != nil && *text.IncidentDescription != "" {
		desc := *text.IncidentDescription
		incident.Description = &desc
		incident.DescriptionProvenance = model.TextProvenance(
			e.confidenceOr(text.IncidentDescriptionConfidence), textPointer)
	}

	if dt := model.ParseDamageType(text.DamageType); dt.Known() {
		incident.DamageType = dt
		incident.DamageTypeProvenance = model.TextProvenance(
			e.confidenceOr(text.DamageTypeConfidence), textPointer)
	}

	return incident
}

// buildPropertyDamage copies the damage fields the extractor actually
// found. Severity confidence gets a small boost when damage photos back
// it up; the boost adjusts confidence only, never the value.
func (e *Engine) buildPropertyDamage(text *model.TextExtraction, images []model.ImageAnalysis) model.PropertyDamageInfo {
	damage := model.PropertyDamageInfo{
		PropertyType: model.PropertyUnknown,
		Severity:     model.SeverityUnknown,
	}

	if pt := model.ParsePropertyType(text.PropertyType); pt.Known() {
		damage.PropertyType = pt
		damage.PropertyTypeProvenance = model.TextProvenance(
			e.confidenceOr(text.PropertyTypeConfidence), textPointer)
	}

	if text.RoomLocation != nil && *text.RoomLocation != "" {
		room := *text.RoomLocation
		damage.RoomLocation = &room
		damage.RoomLocationProvenance = model.TextProvenance(
			e.confidenceOr(text.RoomLocationConfidence), textPointer)
	}

	if text.EstimatedRepairCost != nil {
		cost := *text.EstimatedRepairCost
		damage.EstimatedRepairCost = &cost
		damage.RepairCostProvenance = model.TextProvenance(
			e.confidenceOr(text.EstimatedRepairCostConfidence), textPointer)
	}

	if sev := model.ParseDamageSeverity(text.DamageSeverity); sev.Known() {
		damage.Severity = sev
		confidence := e.confidenceOr(text.DamageSeverityConfidence)
		if countDamagePhotos(images) > 0 {
			confidence = min(confidence+0.1, 1.0)
		}
		damage.SeverityProvenance = model.TextProvenance(confidence, textPointer)
	}

	return damage
}

// buildEvidenceChecklist tallies what arrived with the submission. The
// missing list is derived fresh from the counts and flags against the
// required set; it is never stored independently.
func (e *Engine) buildEvidenceChecklist(images []model.ImageAnalysis) model.EvidenceChecklist {
	var photoIDs []string
	hasReceipt := false
	hasDocument := false

	for _, img := range images {
		if img.ContainsDamage {
			photoIDs = append(photoIDs, img.ImagePath)
		}
		if img.ImageType == model.ImageReceipt {
			hasReceipt = true
		}
		if img.ImageType == model.ImageDocument {
			hasDocument = true
		}
	}

	satisfied := map[string]bool{
		evidenceDamagePhotos:   len(photoIDs) > 0,
		evidenceRepairEstimate: hasReceipt,
		evidenceIncidentReport: hasDocument,
	}
	var missing []string
	for _, name := range e.required {
		if !satisfied[name] {
			missing = append(missing, name)
		}
	}

	return model.EvidenceChecklist{
		HasDamagePhotos:   len(photoIDs) > 0,
		DamagePhotoCount:  len(photoIDs),
		DamagePhotoIDs:    photoIDs,
		HasRepairEstimate: hasReceipt,
		HasIncidentReport: hasDocument,
		MissingEvidence:   missing,
	}
}

// countDamagePhotos counts images the analyzer flagged as showing damage
func countDamagePhotos(images []model.ImageAnalysis) int {
	n := 0
	for _, img := range images {
		if img.ContainsDamage {
			n++
		}
	}
	return n
}

// confidenceOr substitutes the default when an extractor reported a
// value without a usable confidence
func (e *Engine) confidenceOr(confidence float64) float64 {
	if confidence <= 0 {
		return e.defaultConfidence
	}
	if confidence > 1 {
		return 1.0
	}
	return confidence
}

// parseIncidentDate accepts the ISO-8601 shapes extractors emit
func parseIncidentDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
