// Package errors provides the sentinel errors shared across cantwait.
//
// Every sentinel can be matched with errors.Is, including through the
// wrapping helpers in wrap.go. This package only imports the standard library.
package errors

import "errors"

// Sentinel errors for error categorization.
var (
	// ErrNegativeDuration indicates a negative number of seconds was handed
	// to the duration formatter. Callers take the absolute value first.
	ErrNegativeDuration = errors.New("negative duration")

	// ErrInsufficientEvents indicates a progress computation was asked for
	// with fewer than two events.
	ErrInsufficientEvents = errors.New("at least two events are required")

	// ErrZeroSpan indicates the first and last events share a timestamp,
	// leaving no span to measure progress against.
	ErrZeroSpan = errors.New("first and last events coincide")

	// ErrTimelineNotLive indicates a snapshot was requested from a timeline
	// that is invalid or has too few events.
	ErrTimelineNotLive = errors.New("timeline is not live")

	// ErrConfigInvalid indicates a configuration value failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrConfigNotFound indicates an explicitly requested config file is missing.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrEventFile indicates a timeline file could not be read or decoded.
	ErrEventFile = errors.New("invalid timeline file")

	// ErrInvalidOutputFormat indicates an unknown --output value.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidNow indicates the --now override could not be parsed.
	ErrInvalidNow = errors.New("invalid reference time")

	// ErrValidationFailed indicates the supplied events did not validate.
	ErrValidationFailed = errors.New("events failed validation")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
