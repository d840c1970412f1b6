// Package event parses raw event strings and validates their chronology.
package event

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parsed is one raw input after parsing. Valid is false when the string did
// not match any accepted layout; At is the zero time in that case.
type Parsed struct {
	Raw   string
	At    time.Time
	Valid bool
}

// Millis returns the event as epoch milliseconds, the unit every timeline
// computation works in.
func (p Parsed) Millis() int64 {
	return p.At.UnixMilli()
}

// Date-only forms are read as UTC, the way browsers treat ISO dates.
var utcLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// Date-time forms without an offset are read in the caller's location.
// Forms with an offset or Z ignore it.
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse reads one raw event. ISO forms are tried first; anything else goes
// through dateparse, which accepts the looser shapes a browser Date does
// ("2015/01/01", "January 1, 2015", "01/02/2013" as month first). loc is
// used for date-times that carry no offset and for every non-ISO form; nil
// means time.Local. The result is truncated to the millisecond.
func Parse(raw string, loc *time.Location) Parsed {
	p := Parsed{Raw: raw}

	s := strings.TrimSpace(raw)
	if s == "" {
		return p
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range utcLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return valid(p, t)
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return valid(p, t)
		}
	}
	if t, ok := lenient(s, loc); ok {
		return valid(p, t)
	}
	return p
}

// lenient recovers because dateparse can panic on some malformed input.
func lenient(s string, loc *time.Location) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	t, err := dateparse.ParseIn(s, loc)
	return t, err == nil
}

// ParseAll parses every raw input, preserving order.
func ParseAll(raws []string, loc *time.Location) []Parsed {
	parsed := make([]Parsed, len(raws))
	for i, raw := range raws {
		parsed[i] = Parse(raw, loc)
	}
	return parsed
}

func valid(p Parsed, t time.Time) Parsed {
	p.At = time.UnixMilli(t.UnixMilli()).In(t.Location())
	p.Valid = true
	return p
}
