package model

// SourceModality identifies which intake channel produced a value
type SourceModality string

const (
	ModalityText     SourceModality = "text"     // Claimant narrative (typed or transcribed)
	ModalityImage    SourceModality = "image"    // Uploaded photo
	ModalityDocument SourceModality = "document" // Uploaded document (estimate, report)
)

// Valid reports whether the modality is one of the known channels
func (m SourceModality) Valid() bool {
	switch m {
	case ModalityText, ModalityImage, ModalityDocument:
		return true
	}
	return false
}

// Provenance records where a fused value came from and how sure the
// producing extractor was. Attached at fusion time and never updated;
// downstream consumers treat it as read-only.
type Provenance struct {
	SourceModality SourceModality `json:"source_modality"` // Channel that produced the value
	Confidence     float64        `json:"confidence"`      // Extractor confidence, 0.0-1.0
	Pointer        string         `json:"pointer"`         // Locator within the source (e.g., "text_span:full", image path)
}

// TextProvenance builds a provenance entry for a value extracted from
// the claimant narrative
func TextProvenance(confidence float64, pointer string) *Provenance {
	return &Provenance{
		SourceModality: ModalityText,
		Confidence:     confidence,
		Pointer:        pointer,
	}
}
