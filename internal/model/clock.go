package model

import "time"

// Clock abstracts "now" so components that reason about time (claim
// stamps, date sanity rules) stay testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock
type SystemClock struct{}

// Now returns the current UTC time
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Test helper.
type FixedClock struct {
	Time time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.Time
}
