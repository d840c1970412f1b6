// Package clock provides an abstraction over the current time.
// The timeline engine never reads the clock itself; the shells read it here
// and pass the instant in, which keeps every computation reproducible.
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. It backs the --now override.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At
}

var (
	_ Clock = RealClock{}
	_ Clock = FixedClock{}
)
