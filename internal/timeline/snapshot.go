package timeline

import (
	"fmt"
	"time"

	"cantwait/internal/progress"
)

// Phase summarises where now sits relative to the whole timeline.
type Phase int

const (
	// PhasePending means the first event has not happened yet.
	PhasePending Phase = iota
	// PhaseRunning means now is between the first and the last event.
	PhaseRunning
	// PhaseDone means the last event has happened.
	PhaseDone
)

// String returns the name used in JSON output.
func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseRunning:
		return "running"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// EventStatus is the per-event part of a Snapshot.
type EventStatus struct {
	// Number is the 1-based position shown on markers and messages.
	Number int       `json:"number"`
	At     time.Time `json:"at"`
	// Past is true once now has reached the event.
	Past bool `json:"past"`
	// Seconds is the distance to now, rounded to whole seconds.
	Seconds int64 `json:"seconds"`
	// Delta is Seconds formatted by the duration package.
	Delta string `json:"delta"`
	// Text is "happened <Delta> ago" or "will happen in <Delta>".
	Text string `json:"text"`
}

// Snapshot is the timeline as seen from one instant.
type Snapshot struct {
	Now time.Time `json:"now"`
	// Ratio is the unclamped progress from the first to the last event.
	Ratio float64 `json:"ratio"`
	// Markers holds one position in [0, 1] per event.
	Markers []float64     `json:"markers"`
	Events  []EventStatus `json:"events"`
}

// Clamped returns Ratio limited to [0, 1].
func (s Snapshot) Clamped() float64 {
	return progress.Clamp(s.Ratio)
}

// Percent returns the clamped ratio as a percentage with two decimals.
func (s Snapshot) Percent() float64 {
	return progress.Percent(s.Ratio)
}

// Phase classifies Ratio.
func (s Snapshot) Phase() Phase {
	switch {
	case s.Ratio < 0:
		return PhasePending
	case s.Ratio >= 1:
		return PhaseDone
	default:
		return PhaseRunning
	}
}
