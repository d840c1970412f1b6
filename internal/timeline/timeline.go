// Package timeline ties parsing, validation and progress together.
//
// Build turns raw strings into a State once; Snapshot projects a live State
// onto any instant. Neither keeps anything between calls, so a caller can
// re-run Snapshot on every tick with a fresh "now".
package timeline

import (
	"fmt"
	"math"
	"time"

	"cantwait/internal/duration"
	"cantwait/internal/errors"
	"cantwait/internal/event"
	"cantwait/internal/progress"
	"cantwait/internal/round"
)

// Kind is the state a timeline is in after Build.
type Kind int

const (
	// Insufficient means fewer than two events were supplied. It is neither
	// an error nor a live timeline.
	Insufficient Kind = iota
	// Invalid means validation found at least one error.
	Invalid
	// Valid means the events validated and there are at least two of them.
	Valid
)

// String returns the name used in JSON output.
func (k Kind) String() string {
	switch k {
	case Insufficient:
		return "insufficient"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type options struct {
	loc      *time.Location
	ordering event.Ordering
}

// Option configures Build.
type Option func(*options)

// WithLocation sets the location used for date-times without an offset.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.loc = loc
	}
}

// WithOrdering selects whether equal adjacent timestamps are accepted.
func WithOrdering(ordering event.Ordering) Option {
	return func(o *options) {
		o.ordering = ordering
	}
}

// State is the result of Build. It is immutable.
type State struct {
	kind       Kind
	raw        []string
	events     []event.Parsed
	validation event.Result
}

// Build parses and validates raws. Validation errors win over the event
// count, so a single unparseable entry yields Invalid rather than
// Insufficient.
func Build(raws []string, opts ...Option) State {
	o := options{loc: time.Local, ordering: event.Strict}
	for _, opt := range opts {
		opt(&o)
	}

	s := State{raw: append([]string(nil), raws...)}
	s.events = event.ParseAll(s.raw, o.loc)
	s.validation = event.Validate(s.events, event.WithOrdering(o.ordering))

	switch {
	case !s.validation.Valid():
		s.kind = Invalid
	case len(s.events) < 2:
		s.kind = Insufficient
	case s.events[0].Millis() == s.events[len(s.events)-1].Millis():
		// Only reachable with event.AllowEqual: there is no span to measure.
		s.kind = Insufficient
	default:
		s.kind = Valid
	}
	return s
}

// Kind reports the state of the timeline.
func (s State) Kind() Kind {
	return s.kind
}

// Live reports whether Snapshot may be called.
func (s State) Live() bool {
	return s.kind == Valid
}

// Raw returns a copy of the inputs the state was built from.
func (s State) Raw() []string {
	return append([]string(nil), s.raw...)
}

// Events returns a copy of the parsed inputs.
func (s State) Events() []event.Parsed {
	return append([]event.Parsed(nil), s.events...)
}

// Validation returns the validation result. It is empty unless Kind is Invalid.
func (s State) Validation() event.Result {
	return s.validation
}

// Snapshot computes the progress of the timeline as of now. It returns
// errors.ErrTimelineNotLive unless the state is Valid.
func (s State) Snapshot(now time.Time) (Snapshot, error) {
	if s.kind != Valid {
		return Snapshot{}, errors.Wrapf(errors.ErrTimelineNotLive, "state is %s", s.kind)
	}

	millis := make([]int64, len(s.events))
	for i, ev := range s.events {
		millis[i] = ev.Millis()
	}
	nowMs := now.UnixMilli()

	snap := Snapshot{
		Now:     now,
		Ratio:   progress.Ratio(millis, nowMs),
		Markers: progress.Markers(millis),
		Events:  make([]EventStatus, len(s.events)),
	}
	for i, ev := range s.events {
		snap.Events[i] = status(i, ev, nowMs)
	}
	return snap, nil
}

func status(i int, ev event.Parsed, nowMs int64) EventStatus {
	diff := nowMs - ev.Millis()
	seconds := int64(round.To(math.Abs(float64(diff))/1000, 0))
	delta := duration.Format(seconds)

	st := EventStatus{
		Number:  i + 1,
		At:      ev.At,
		Past:    diff >= 0,
		Seconds: seconds,
		Delta:   delta,
	}
	if st.Past {
		st.Text = "happened " + delta + " ago"
	} else {
		st.Text = "will happen in " + delta
	}
	return st
}
