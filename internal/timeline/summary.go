package timeline

import (
	"time"

	"cantwait/internal/event"
)

// Problem is a validation error together with its rendered message.
type Problem struct {
	event.ValidationError
	Message string `json:"message"`
}

// Summary is the serializable view of a timeline at one instant. Snapshot
// is only set for live timelines; Errors and Implicated only for invalid
// ones.
type Summary struct {
	State      Kind      `json:"state"`
	Errors     []Problem `json:"errors,omitempty"`
	Implicated []int     `json:"implicated,omitempty"`
	Percent    float64   `json:"percent"`
	Phase      *Phase    `json:"phase,omitempty"`
	Snapshot   *Snapshot `json:"snapshot,omitempty"`
}

// Summarize describes s as of now.
func Summarize(s State, now time.Time) Summary {
	sum := Summary{State: s.Kind()}

	res := s.Validation()
	for _, e := range res.Errors {
		sum.Errors = append(sum.Errors, Problem{ValidationError: e, Message: e.Message()})
	}
	sum.Implicated = append(sum.Implicated, res.Implicated...)

	if snap, err := s.Snapshot(now); err == nil {
		phase := snap.Phase()
		sum.Percent = snap.Percent()
		sum.Phase = &phase
		sum.Snapshot = &snap
	}
	return sum
}
