package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every validation failure in RenoCalc wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrType   = errors.New("type error")   // wrong kind of value, or an abstract type
	ErrRange  = errors.New("range error")  // value outside its allowed bounds
	ErrFormat = errors.New("format error") // malformed text input
	ErrEmpty  = errors.New("empty input")  // nothing to work on
)

// TypeErrorf returns an error wrapping ErrType.
func TypeErrorf(format string, args ...any) error {
	return wrapKind(ErrType, format, args...)
}

// RangeErrorf returns an error wrapping ErrRange.
func RangeErrorf(format string, args ...any) error {
	return wrapKind(ErrRange, format, args...)
}

// FormatErrorf returns an error wrapping ErrFormat.
func FormatErrorf(format string, args ...any) error {
	return wrapKind(ErrFormat, format, args...)
}

// EmptyErrorf returns an error wrapping ErrEmpty.
func EmptyErrorf(format string, args ...any) error {
	return wrapKind(ErrEmpty, format, args...)
}

func wrapKind(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
