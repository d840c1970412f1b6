package event

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a ValidationError.
type Kind int

// Validation error kinds.
const (
	// InvalidDate means the entry failed to parse.
	InvalidDate Kind = iota + 1
	// OutOfOrder means the entry does not come before the next one.
	OutOfOrder
)

// String returns the snake_case name used in JSON output.
func (k Kind) String() string {
	switch k {
	case InvalidDate:
		return "invalid_date"
	case OutOfOrder:
		return "out_of_order"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ValidationError is one problem found in the event list. Indices are
// 0-based positions in the raw input; NextIndex is only set for OutOfOrder
// and is always Index+1.
type ValidationError struct {
	Kind      Kind `json:"kind"`
	Index     int  `json:"index"`
	NextIndex int  `json:"next_index,omitempty"`
}

// Indices returns the input positions implicated by the error.
func (e ValidationError) Indices() []int {
	if e.Kind == OutOfOrder {
		return []int{e.Index, e.NextIndex}
	}
	return []int{e.Index}
}

// Message renders the error for people, numbering events from 1.
func (e ValidationError) Message() string {
	if e.Kind == OutOfOrder {
		return fmt.Sprintf("Event %d must happen before event %d.", e.Index+1, e.NextIndex+1)
	}
	return fmt.Sprintf("Event %d must be a valid date.", e.Index+1)
}

// String implements fmt.Stringer.
func (e ValidationError) String() string {
	return e.Message()
}

// Result collects the errors of one validation pass. Implicated lists every
// index referenced by an error once, in order of first appearance.
type Result struct {
	Errors     []ValidationError `json:"errors"`
	Implicated []int             `json:"implicated"`
}

// Valid reports whether no error was found.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Messages returns the human-readable message of every error, in order.
func (r Result) Messages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message()
	}
	return msgs
}

// Summary joins the messages on one line.
func (r Result) Summary() string {
	return strings.Join(r.Messages(), " ")
}

// Ordering decides whether equal adjacent timestamps are accepted.
type Ordering int

const (
	// Strict requires every event to come strictly before the next one.
	Strict Ordering = iota
	// AllowEqual lets adjacent events share a timestamp.
	AllowEqual
)

// String implements fmt.Stringer.
func (o Ordering) String() string {
	if o == AllowEqual {
		return "allow-equal"
	}
	return "strict"
}

// InOrder reports whether a may precede b under the ordering rule.
func (o Ordering) InOrder(a, b int64) bool {
	if o == AllowEqual {
		return a <= b
	}
	return a < b
}

type options struct {
	ordering Ordering
}

// Option configures Validate.
type Option func(*options)

// WithOrdering selects the ordering rule. The default is Strict.
func WithOrdering(o Ordering) Option {
	return func(opts *options) {
		opts.ordering = o
	}
}

// Validate checks every event for parse failures and every adjacent pair of
// parsed events for ordering, in a single pass. Pairs where either side
// failed to parse are not compared. Sequences of zero or one event never
// produce ordering errors.
func Validate(events []Parsed, opts ...Option) Result {
	o := options{ordering: Strict}
	for _, opt := range opts {
		opt(&o)
	}

	var res Result
	seen := make(map[int]struct{})
	record := func(e ValidationError) {
		res.Errors = append(res.Errors, e)
		for _, idx := range e.Indices() {
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			res.Implicated = append(res.Implicated, idx)
		}
	}

	for i, ev := range events {
		if !ev.Valid {
			record(ValidationError{Kind: InvalidDate, Index: i})
		}
		if i == len(events)-1 {
			break
		}
		next := events[i+1]
		if ev.Valid && next.Valid && !o.ordering.InOrder(ev.Millis(), next.Millis()) {
			record(ValidationError{Kind: OutOfOrder, Index: i, NextIndex: i + 1})
		}
	}
	return res
}
