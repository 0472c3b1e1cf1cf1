// Package errors provides error types and utilities for reconforge.
// It extends the standard errors package with additional context and wrapping capabilities.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// ErrTimeout indicates an operation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrConnectionFailed indicates a connection could not be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrLaunchFailed indicates an external executable could not be started
	ErrLaunchFailed = errors.New("launch failed")

	// ErrToolFailed indicates an external tool exited with a non-zero status
	ErrToolFailed = errors.New("tool failed")

	// ErrParse indicates tool output could not be parsed
	ErrParse = errors.New("parse error")

	// ErrDependencyUnavailable indicates a required service or credential is missing
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrInvalidResponse indicates a response could not be parsed or was malformed
	ErrInvalidResponse = errors.New("invalid response")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//   err := someOperation()
//   if err != nil {
//       return errors.Wrap(err, "failed to perform operation")
//   }
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
//
// Example:
//   err := someOperation(id)
//   if err != nil {
//       return errors.Wrapf(err, "failed to process item %d", id)
//   }
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
// This is a convenience wrapper around errors.Is from the standard library.
//
// Example:
//   if errors.Is(err, errors.ErrTimeout) {
//       // Handle timeout
//   }
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
// This is a convenience wrapper around errors.As from the standard library.
//
// Example:
//   var netErr *net.Error
//   if errors.As(err, &netErr) {
//       // Handle network error
//   }
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
// This is a convenience wrapper around errors.Unwrap from the standard library.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New from the standard library.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
// This is a convenience wrapper around fmt.Errorf from the standard library.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
// This is a convenience wrapper around errors.Join from the standard library.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsTimeout reports whether the error is a timeout error
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout)
}

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsConnectionFailed reports whether the error is a connection failed error
func IsConnectionFailed(err error) bool {
	return Is(err, ErrConnectionFailed)
}

// IsLaunchFailed reports whether the error is a launch failure
func IsLaunchFailed(err error) bool {
	return Is(err, ErrLaunchFailed)
}

// IsToolFailed reports whether the error is a non-zero tool exit
func IsToolFailed(err error) bool {
	return Is(err, ErrToolFailed)
}

// IsParse reports whether the error is a parse error
func IsParse(err error) bool {
	return Is(err, ErrParse)
}

// IsDependencyUnavailable reports whether the error is a missing dependency error
func IsDependencyUnavailable(err error) bool {
	return Is(err, ErrDependencyUnavailable)
}

// IsInvalidResponse reports whether the error is an invalid response error
func IsInvalidResponse(err error) bool {
	return Is(err, ErrInvalidResponse)
}
