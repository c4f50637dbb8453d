package model

import "time"

// TextExtraction is the wire contract between a text extractor and the
// fusion engine: one value plus one confidence per extractable field.
// The JSON shape below is exactly what model-backed extractors ask the
// LLM to return, so a well-formed response unmarshals straight into it.
//
// A nil pointer (or an unrecognized enum string) means the extractor
// found nothing; confidences for absent fields are meaningless and
// ignored downstream.
type TextExtraction struct {
	IncidentDate                  *string  `json:"incident_date"` // ISO-8601 date or null
	IncidentDateConfidence        float64  `json:"incident_date_confidence"`
	IncidentLocation              *string  `json:"incident_location"`
	IncidentLocationConfidence    float64  `json:"incident_location_confidence"`
	IncidentDescription           *string  `json:"incident_description"`
	IncidentDescriptionConfidence float64  `json:"incident_description_confidence"`
	DamageType                    string   `json:"damage_type"` // water|fire|impact|weather|vandalism|other|unknown
	DamageTypeConfidence          float64  `json:"damage_type_confidence"`
	PropertyType                  string   `json:"property_type"` // window|roof|ceiling|wall|door|floor|appliance|furniture|other|unknown
	PropertyTypeConfidence        float64  `json:"property_type_confidence"`
	RoomLocation                  *string  `json:"room_location"`
	RoomLocationConfidence        float64  `json:"room_location_confidence"`
	EstimatedRepairCost           *float64 `json:"estimated_repair_cost"` // USD
	EstimatedRepairCostConfidence float64  `json:"estimated_repair_cost_confidence"`
	DamageSeverity                string   `json:"damage_severity"` // minor|moderate|severe|unknown
	DamageSeverityConfidence      float64  `json:"damage_severity_confidence"`

	ExtractionTimeMS int64  `json:"extraction_time_ms"`
	Error            string `json:"error,omitempty"` // Set when the extractor degraded to defaults
}

// DefaultTextExtraction returns the safe empty extraction used when an
// extractor fails: everything unknown, zero confidence, nothing invented
func DefaultTextExtraction() *TextExtraction {
	return &TextExtraction{
		DamageType:     string(DamageUnknown),
		PropertyType:   string(PropertyUnknown),
		DamageSeverity: string(SeverityUnknown),
	}
}

// ImageType classifies what kind of attachment an image is
type ImageType string

const (
	ImageDamagePhoto ImageType = "damage_photo" // Photo of the damage itself
	ImageReceipt     ImageType = "receipt"      // Receipt, invoice, or repair estimate
	ImageDocument    ImageType = "document"     // Report, form, or other paperwork
	ImageOther       ImageType = "other"        // Unclassifiable
)

// ImageAnalysis is the wire contract between an image analyzer and the
// fusion engine: classification plus whatever best-effort signals the
// analyzer could derive. Optional signals stay nil/unknown when the
// analyzer has nothing to say, and fusion skips the related cross-checks.
type ImageAnalysis struct {
	ImagePath           string    `json:"image_path"`
	ImageType           ImageType `json:"image_type"`
	ImageTypeConfidence float64   `json:"image_type_confidence"`
	ContainsDamage      bool      `json:"contains_damage"`
	DamageConfidence    float64   `json:"damage_confidence"`

	CapturedAt       *time.Time     `json:"captured_at,omitempty"`       // Capture date, when derivable
	ObservedSeverity DamageSeverity `json:"observed_severity,omitempty"` // Analyzer's severity read, unknown if not assessed
	DocumentAmount   *float64       `json:"document_amount,omitempty"`   // Total read off a receipt/estimate

	Metadata map[string]string `json:"metadata,omitempty"` // Analyzer-specific extras
}
