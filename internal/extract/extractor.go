package extract

import (
	"context"

	"github.com/adjustkit/claimlens/internal/model"
)

// TextExtractor turns a claimant narrative into structured field
// candidates. Implementations must be safe for concurrent use and must
// never invent values: a field the narrative does not support stays
// nil/unknown with a low confidence.
type TextExtractor interface {
	// Name identifies the extractor (used for cache keys and provenance
	// diagnostics)
	Name() string

	// Extract processes one narrative. A non-nil error means the
	// extractor could not run at all; degraded results (e.g., an LLM
	// that answered garbage) come back as a default extraction with the
	// Error field set instead.
	Extract(ctx context.Context, narrative string) (*model.TextExtraction, error)
}
