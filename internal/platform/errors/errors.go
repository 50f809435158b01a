// Package errors provides error types and utilities for VAJRA.
// It extends the standard errors package with context wrapping and the
// sentinels shared by the supervisor, the bridge and the aggregator.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// ErrTimeout indicates an invocation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrNotFound indicates a binary, file or registry entry was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid operator or configuration input
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled indicates the operator or a signal stopped the work
	ErrCanceled = errors.New("operation canceled")

	// ErrUnsupported indicates a capability missing on this platform
	ErrUnsupported = errors.New("unsupported on this platform")

	// ErrMalformed indicates tool output that could not be parsed
	ErrMalformed = errors.New("malformed data")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//
//	if err := layout.WriteLinesAtomic(name, lines); err != nil {
//	    return errors.Wrap(err, "write merged artifact")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   msg,
		cause: err,
	}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsTimeout reports whether the error is a timeout error
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout)
}

// IsNotFound reports whether the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, ErrNotFound)
}

// IsCanceled reports whether the error is a cancellation
func IsCanceled(err error) bool {
	return Is(err, ErrCanceled)
}

// IsUnsupported reports whether the error is a missing platform capability
func IsUnsupported(err error) bool {
	return Is(err, ErrUnsupported)
}
