package model

import "fmt"

// ValidationError reports a structural invariant violation on a fused
// claim. Field uses dotted JSON-style paths (e.g.,
// "property_damage.estimated_repair_cost") so callers can surface
// exactly what to fix.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid claim field %s: %s", e.Field, e.Message)
}
