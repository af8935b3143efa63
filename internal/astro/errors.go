package astro

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. Typed errors below unwrap to these,
// so callers can use errors.Is without depending on the concrete type.
var (
	ErrRangeViolation       = errors.New("angle out of range")
	ErrUnsupportedEpoch     = errors.New("unsupported epoch")
	ErrMalformedSexagesimal = errors.New("malformed sexagesimal")
)

// RangeError reports a constrained angle constructed outside its legal interval.
type RangeError struct {
	Quantity string  // e.g. "declination"
	Value    Angle   // offending input, as given
	Min, Max float64 // legal interval in radians
}

func (e *RangeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %v outside [%g, %g] rad", e.Quantity, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrRangeViolation }

// EpochError reports a civil date the Julian date algorithm does not cover.
type EpochError struct {
	Year int
}

func (e *EpochError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("year %d outside supported range %d-%d", e.Year, MinEpochYear, MaxEpochYear)
}

func (e *EpochError) Unwrap() error { return ErrUnsupportedEpoch }

// SexagesimalError reports text or fields that cannot form a sexagesimal triple.
type SexagesimalError struct {
	Input  string
	Reason string
}

func (e *SexagesimalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Input == "" {
		return "sexagesimal: " + e.Reason
	}
	return fmt.Sprintf("sexagesimal %q: %s", e.Input, e.Reason)
}

func (e *SexagesimalError) Unwrap() error { return ErrMalformedSexagesimal }
