package imaging

import (
	"fmt"
	"strings"
)

// NewAnalyzer creates an image analyzer by name. The vision analyzer is
// a reserved slot: the contract supports it, but intake ships with the
// baseline only.
func NewAnalyzer(name string) (Analyzer, error) {
	switch strings.ToLower(name) {
	case "baseline", "":
		return NewBaselineAnalyzer(), nil

	case "vision":
		return nil, fmt.Errorf("vision analyzer not implemented: use baseline")

	default:
		return nil, fmt.Errorf("unknown image analyzer: %s (supported: baseline)", name)
	}
}
