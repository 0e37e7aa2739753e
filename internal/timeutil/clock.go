package timeutil

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Store actions and derived views use it to determine "today".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock returns a constant instant. Useful for tests and reproducible
// exports.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
