// Package common holds pieces shared by the computational packages and the
// command line front end. Presently it is only the error taxonomy: both
// converters report failures with one of two error kinds, so callers can
// render a message without parsing error strings.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument matches any *InvalidArgumentError with errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedUnit matches any *UnsupportedUnitError with errors.Is.
	ErrUnsupportedUnit = errors.New("unsupported unit")
)

// InvalidArgumentError reports malformed or out of range numeric input.
type InvalidArgumentError struct {
	Name   string // argument name, e.g. "value" or "base font size"
	Value  any    // offending value as received
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s: %v", e.Name, e.Value)
	}
	return fmt.Sprintf("invalid %s (%v): %s", e.Name, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// UnsupportedUnitError reports a unit (or conversion) which cannot be served.
type UnsupportedUnitError struct {
	Unit   string
	Reason string
}

func (e *UnsupportedUnitError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unsupported unit: %s", e.Unit)
	}
	return fmt.Sprintf("unsupported unit: %s (%s)", e.Unit, e.Reason)
}

func (e *UnsupportedUnitError) Is(target error) bool {
	return target == ErrUnsupportedUnit
}

// InvalidArgument is a shortcut to build *InvalidArgumentError.
func InvalidArgument(name string, value any, reason string) error {
	return &InvalidArgumentError{Name: name, Value: value, Reason: reason}
}

// UnsupportedUnit is a shortcut to build *UnsupportedUnitError.
func UnsupportedUnit(unit, reason string) error {
	return &UnsupportedUnitError{Unit: unit, Reason: reason}
}
