// Package duration turns a number of seconds into the English phrase shown
// next to each event, e.g. "2 weeks, 1 day, 0 hours, 0 minutes and 0 seconds".
package duration

import (
	"fmt"
	"strings"

	"cantwait/internal/errors"
)

// Unit sizes in seconds.
const (
	Minute int64 = 60
	Hour         = 60 * Minute
	Day          = 24 * Hour
	Week         = 7 * Day
)

// Format renders totalSeconds as weeks, days, hours, minutes and seconds.
// A unit is only emitted when totalSeconds is large enough to reach it, so the
// leading unit is never a zero; every smaller unit is emitted even when zero.
// The seconds phrase is always present and is joined with " and " when a
// larger unit precedes it.
//
// Format panics with errors.ErrNegativeDuration when totalSeconds < 0.
func Format(totalSeconds int64) string {
	if totalSeconds < 0 {
		panic(errors.Wrapf(errors.ErrNegativeDuration, "format %d seconds", totalSeconds))
	}

	weeks := totalSeconds / Week
	days := (totalSeconds / Day) % 7
	hours := (totalSeconds / Hour) % 24
	minutes := (totalSeconds / Minute) % 60
	seconds := totalSeconds % 60

	var b strings.Builder
	if totalSeconds >= Week {
		b.WriteString(pluralize(weeks, "week"))
		b.WriteString(", ")
	}
	if totalSeconds >= Day {
		b.WriteString(pluralize(days, "day"))
		b.WriteString(", ")
	}
	if totalSeconds >= Hour {
		b.WriteString(pluralize(hours, "hour"))
		b.WriteString(", ")
	}
	if totalSeconds >= Minute {
		b.WriteString(pluralize(minutes, "minute"))
		b.WriteString(" and ")
	}
	b.WriteString(pluralize(seconds, "second"))
	return b.String()
}

func pluralize(value int64, unit string) string {
	if value == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", value, unit)
}
