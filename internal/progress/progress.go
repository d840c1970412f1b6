// Package progress places events on a 0..1 scale and measures how far the
// reference instant has travelled from the first event to the last.
//
// Every function takes epoch milliseconds. Callers must pass at least two
// events with the last strictly after the first; breaking that precondition
// is a programming error and panics.
package progress

import (
	"cantwait/internal/errors"
	"cantwait/internal/round"
)

// Ratio returns the fractional progress of now between the first and the
// last event. The elapsed time is rounded to the nearest second first so the
// value does not flicker between renders. The result is not clamped: it is
// negative before the first event and >= 1 once the last one is reached.
func Ratio(events []int64, now int64) float64 {
	first, span := bounds(events)
	return round.To(float64(now-first), -3) / float64(span)
}

// Markers returns the relative position of every event, 0 for the first and
// 1 for the last.
func Markers(events []int64) []float64 {
	first, span := bounds(events)
	positions := make([]float64, len(events))
	for i, ev := range events {
		positions[i] = float64(ev-first) / float64(span)
	}
	return positions
}

// Clamp limits a ratio to [0, 1] for display.
func Clamp(ratio float64) float64 {
	return min(max(ratio, 0), 1)
}

// Percent returns the clamped ratio as a percentage with two decimals.
func Percent(ratio float64) float64 {
	return round.To(100*Clamp(ratio), 2)
}

func bounds(events []int64) (first, span int64) {
	if len(events) < 2 {
		panic(errors.Wrapf(errors.ErrInsufficientEvents, "got %d", len(events)))
	}
	first = events[0]
	span = events[len(events)-1] - first
	if span <= 0 {
		panic(errors.Wrapf(errors.ErrZeroSpan, "span of %dms", span))
	}
	return first, span
}
