package imaging

import (
	"context"

	"github.com/adjustkit/claimlens/internal/model"
)

// Analyzer classifies claim attachments and derives whatever best-effort
// signals it can (capture date, observed severity, document totals).
// Implementations must be safe for concurrent use.
type Analyzer interface {
	// Name identifies the analyzer
	Name() string

	// Analyze classifies a single attachment. Unreadable or missing
	// files produce a low-confidence "other" result, not an error; a
	// non-nil error means the analyzer itself could not run.
	Analyze(ctx context.Context, imagePath string) (*model.ImageAnalysis, error)

	// AnalyzeBatch classifies attachments in submission order
	AnalyzeBatch(ctx context.Context, imagePaths []string) ([]model.ImageAnalysis, error)
}
