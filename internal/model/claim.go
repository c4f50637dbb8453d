package model

import (
	"strings"
	"time"
)

// SchemaVersion is the wire version stamped on every canonical claim
const SchemaVersion = "1.0.0"

// DamageType categorizes the cause of the reported damage
type DamageType string

const (
	DamageWater     DamageType = "water"     // Leaks, floods, burst pipes
	DamageFire      DamageType = "fire"      // Fire and smoke
	DamageImpact    DamageType = "impact"    // Something struck the property
	DamageWeather   DamageType = "weather"   // Storm, wind, hail
	DamageVandalism DamageType = "vandalism" // Deliberate damage
	DamageOther     DamageType = "other"     // Recognized but uncategorized
	DamageUnknown   DamageType = "unknown"   // Not yet determined
)

// ParseDamageType maps free-form extractor output onto the enum.
// Anything unrecognized becomes unknown rather than a guess.
func ParseDamageType(s string) DamageType {
	switch DamageType(strings.ToLower(strings.TrimSpace(s))) {
	case DamageWater:
		return DamageWater
	case DamageFire:
		return DamageFire
	case DamageImpact:
		return DamageImpact
	case DamageWeather:
		return DamageWeather
	case DamageVandalism:
		return DamageVandalism
	case DamageOther:
		return DamageOther
	}
	return DamageUnknown
}

// Known reports whether the damage type carries information
func (d DamageType) Known() bool {
	return d != "" && d != DamageUnknown
}

// PropertyType categorizes what part of the property was damaged
type PropertyType string

const (
	PropertyWindow    PropertyType = "window"
	PropertyRoof      PropertyType = "roof"
	PropertyCeiling   PropertyType = "ceiling"
	PropertyWall      PropertyType = "wall"
	PropertyDoor      PropertyType = "door"
	PropertyFloor     PropertyType = "floor"
	PropertyAppliance PropertyType = "appliance"
	PropertyFurniture PropertyType = "furniture"
	PropertyOther     PropertyType = "other"
	PropertyUnknown   PropertyType = "unknown"
)

// ParsePropertyType maps free-form extractor output onto the enum
func ParsePropertyType(s string) PropertyType {
	switch PropertyType(strings.ToLower(strings.TrimSpace(s))) {
	case PropertyWindow:
		return PropertyWindow
	case PropertyRoof:
		return PropertyRoof
	case PropertyCeiling:
		return PropertyCeiling
	case PropertyWall:
		return PropertyWall
	case PropertyDoor:
		return PropertyDoor
	case PropertyFloor:
		return PropertyFloor
	case PropertyAppliance:
		return PropertyAppliance
	case PropertyFurniture:
		return PropertyFurniture
	case PropertyOther:
		return PropertyOther
	}
	return PropertyUnknown
}

// Known reports whether the property type carries information
func (p PropertyType) Known() bool {
	return p != "" && p != PropertyUnknown
}

// DamageSeverity grades how bad the damage appears to be
type DamageSeverity string

const (
	SeverityMinor    DamageSeverity = "minor"
	SeverityModerate DamageSeverity = "moderate"
	SeveritySevere   DamageSeverity = "severe"
	SeverityUnknown  DamageSeverity = "unknown"
)

// ParseDamageSeverity maps free-form extractor output onto the enum
func ParseDamageSeverity(s string) DamageSeverity {
	switch DamageSeverity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityMinor:
		return SeverityMinor
	case SeverityModerate:
		return SeverityModerate
	case SeveritySevere:
		return SeveritySevere
	}
	return SeverityUnknown
}

// Known reports whether the severity carries information
func (s DamageSeverity) Known() bool {
	return s != "" && s != SeverityUnknown
}

// ClaimantInfo holds policyholder details taken from the structured
// submission form. These arrive verbatim, so they carry no provenance.
type ClaimantInfo struct {
	Name         string `json:"name,omitempty"`          // Policyholder name
	PolicyNumber string `json:"policy_number,omitempty"` // Policy identifier
	ContactPhone string `json:"contact_phone,omitempty"` // Callback number
	ContactEmail string `json:"contact_email,omitempty"` // Contact email
}

// IncidentInfo describes when, where, and what happened. Every field is
// optional; a field is populated only when some extractor produced it,
// and then its provenance entry says which one and how confidently.
type IncidentInfo struct {
	Date                  *time.Time  `json:"incident_date,omitempty"`
	DateProvenance        *Provenance `json:"incident_date_provenance,omitempty"`
	Location              *string     `json:"incident_location,omitempty"`
	LocationProvenance    *Provenance `json:"incident_location_provenance,omitempty"`
	Description           *string     `json:"incident_description,omitempty"`
	DescriptionProvenance *Provenance `json:"incident_description_provenance,omitempty"`
	DamageType            DamageType  `json:"damage_type"` // unknown when not extracted
	DamageTypeProvenance  *Provenance `json:"damage_type_provenance,omitempty"`
}

// PropertyDamageInfo describes what was damaged and what repair may cost
type PropertyDamageInfo struct {
	PropertyType           PropertyType   `json:"property_type"` // unknown when not extracted
	PropertyTypeProvenance *Provenance    `json:"property_type_provenance,omitempty"`
	RoomLocation           *string        `json:"room_location,omitempty"`
	RoomLocationProvenance *Provenance    `json:"room_location_provenance,omitempty"`
	EstimatedRepairCost    *float64       `json:"estimated_repair_cost,omitempty"` // USD, >= 0
	RepairCostProvenance   *Provenance    `json:"estimated_repair_cost_provenance,omitempty"`
	Severity               DamageSeverity `json:"damage_severity"` // unknown when not extracted
	SeverityProvenance     *Provenance    `json:"damage_severity_provenance,omitempty"`
}

// EvidenceChecklist tallies what supporting material arrived with the
// claim. Tallies are derived counts, not extractions, so no provenance.
type EvidenceChecklist struct {
	HasDamagePhotos   bool     `json:"has_damage_photos"`
	DamagePhotoCount  int      `json:"damage_photo_count"`
	DamagePhotoIDs    []string `json:"damage_photo_ids,omitempty"` // Paths/IDs of images classified as damage photos
	HasRepairEstimate bool     `json:"has_repair_estimate"`        // A receipt/estimate document was recognized
	HasIncidentReport bool     `json:"has_incident_report"`        // A report-style document was recognized
	MissingEvidence   []string `json:"missing_evidence,omitempty"` // Names of absent evidence kinds
}

// ConsistencyFlags records cross-modal disagreements observed while the
// claim was being assembled. Best-effort: absence of a flag means no
// comparable signals disagreed, not that everything was verified.
type ConsistencyFlags struct {
	HasConflicts    bool     `json:"has_conflicts"`
	ConflictDetails []string `json:"conflict_details,omitempty"`
}

// PropertyDamageClaim is the canonical fused record for one first notice
// of loss. It is the single structure every downstream consumer reads.
type PropertyDamageClaim struct {
	ClaimID        string             `json:"claim_id"`
	Claimant       ClaimantInfo       `json:"claimant"`
	Incident       IncidentInfo       `json:"incident"`
	PropertyDamage PropertyDamageInfo `json:"property_damage"`
	Evidence       EvidenceChecklist  `json:"evidence"`
	Consistency    ConsistencyFlags   `json:"consistency"`
	CreatedAt      time.Time          `json:"created_at"`
	SchemaVersion  string             `json:"schema_version"`
}

// Validate checks the structural invariants of the record. It reports
// the first violation as a *ValidationError naming the offending field;
// it never repairs or clamps values.
func (c *PropertyDamageClaim) Validate() error {
	if strings.TrimSpace(c.ClaimID) == "" {
		return &ValidationError{Field: "claim_id", Message: "must be non-empty"}
	}
	if c.PropertyDamage.EstimatedRepairCost != nil && *c.PropertyDamage.EstimatedRepairCost < 0 {
		return &ValidationError{Field: "property_damage.estimated_repair_cost", Message: "must be >= 0"}
	}
	if c.Evidence.DamagePhotoCount < 0 {
		return &ValidationError{Field: "evidence.damage_photo_count", Message: "must be >= 0"}
	}

	// Provenance entries must be well-formed and must only annotate
	// fields that actually hold a value.
	provs := []struct {
		field   string
		prov    *Provenance
		present bool
	}{
		{"incident.incident_date", c.Incident.DateProvenance, c.Incident.Date != nil},
		{"incident.incident_location", c.Incident.LocationProvenance, c.Incident.Location != nil},
		{"incident.incident_description", c.Incident.DescriptionProvenance, c.Incident.Description != nil},
		{"incident.damage_type", c.Incident.DamageTypeProvenance, c.Incident.DamageType.Known()},
		{"property_damage.property_type", c.PropertyDamage.PropertyTypeProvenance, c.PropertyDamage.PropertyType.Known()},
		{"property_damage.room_location", c.PropertyDamage.RoomLocationProvenance, c.PropertyDamage.RoomLocation != nil},
		{"property_damage.estimated_repair_cost", c.PropertyDamage.RepairCostProvenance, c.PropertyDamage.EstimatedRepairCost != nil},
		{"property_damage.damage_severity", c.PropertyDamage.SeverityProvenance, c.PropertyDamage.Severity.Known()},
	}
	for _, p := range provs {
		if p.prov == nil {
			continue
		}
		if !p.present {
			return &ValidationError{Field: p.field, Message: "provenance attached to absent value"}
		}
		if !p.prov.SourceModality.Valid() {
			return &ValidationError{Field: p.field, Message: "provenance has invalid source modality"}
		}
		if p.prov.Confidence < 0 || p.prov.Confidence > 1 {
			return &ValidationError{Field: p.field, Message: "provenance confidence must be within [0.0, 1.0]"}
		}
	}
	return nil
}
