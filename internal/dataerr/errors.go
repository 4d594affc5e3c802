// Package dataerr defines the typed errors raised by the normalization engine.
// Callers wrap them with context; use errors.As to recover the concrete type.
package dataerr

import (
	"errors"
	"fmt"
)

// DateFormatError is returned when text does not match the WCF date wire
// format and strict parsing was requested.
type DateFormatError struct {
	Text string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("could not parse as a WCF date string: %q", e.Text)
}

// SRFormatError is returned for a route identifier that cannot be parsed
// into SR, RRT and RRQ.
type SRFormatError struct {
	Value string
}

func (e *SRFormatError) Error() string {
	return fmt.Sprintf("invalid route ID: %s", e.Value)
}

// AmbiguousTypeError is returned when two observed values for one field share
// a type rank but are different kinds (e.g. GUID and DATE).
type AmbiguousTypeError struct {
	Field string
	Types [2]string
}

func (e *AmbiguousTypeError) Error() string {
	return fmt.Sprintf("incompatible types for field %q: %s & %s", e.Field, e.Types[0], e.Types[1])
}

// InvalidInputTypeError is returned when a codec or parser receives a value of
// the wrong kind.
type InvalidInputTypeError struct {
	Op       string
	Expected string
	Got      any
}

func (e *InvalidInputTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %T", e.Op, e.Expected, e.Got)
}

// IsDateFormat reports whether err (or any error in its chain) is a DateFormatError.
func IsDateFormat(err error) bool {
	var target *DateFormatError
	return errors.As(err, &target)
}

// IsSRFormat reports whether err (or any error in its chain) is an SRFormatError.
func IsSRFormat(err error) bool {
	var target *SRFormatError
	return errors.As(err, &target)
}

// IsAmbiguousType reports whether err (or any error in its chain) is an AmbiguousTypeError.
func IsAmbiguousType(err error) bool {
	var target *AmbiguousTypeError
	return errors.As(err, &target)
}

// IsInvalidInputType reports whether err (or any error in its chain) is an InvalidInputTypeError.
func IsInvalidInputType(err error) bool {
	var target *InvalidInputTypeError
	return errors.As(err, &target)
}
