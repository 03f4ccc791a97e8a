// Package errors provides standardized error types for the analytics core.
// It defines AnalyticsError for consistent error handling across the loader,
// join engine and aggregation pipeline, with operation context and error
// wrapping support.
package errors

import (
	"errors"
	"fmt"
)

// AnalyticsError represents standardized errors across loader and pipeline
// operations.
type AnalyticsError struct {
	Op      string // operation name (e.g. "Load", "ItemsSoldByDay")
	Source  string // dataset source or column name if applicable
	Message string // human-readable error description
	Cause   error  // underlying error cause
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s failed on %s: %s", e.Op, e.Source, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support.
func (e *AnalyticsError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
func (e *AnalyticsError) Is(target error) bool {
	if ae, ok := target.(*AnalyticsError); ok {
		return e.Op == ae.Op && e.Source == ae.Source && e.Message == ae.Message
	}
	return false
}

// NewSourceNotFoundError creates an error for a missing dataset source.
// Load-time and fatal: no view can render without its source.
func NewSourceNotFoundError(op, source string, cause error) *AnalyticsError {
	return &AnalyticsError{
		Op:      op,
		Source:  source,
		Message: "source not found",
		Cause:   cause,
	}
}

// NewSchemaMismatchError creates an error for a source missing required
// columns.
func NewSchemaMismatchError(op, source, message string) *AnalyticsError {
	return &AnalyticsError{
		Op:      op,
		Source:  source,
		Message: message,
	}
}

// NewInvalidRangeError creates an error for a date range whose start falls
// after its end. Recoverable: callers surface a warning and keep prior state.
func NewInvalidRangeError(op string) *AnalyticsError {
	return &AnalyticsError{
		Op:      op,
		Message: "start date must not be after end date",
	}
}

// NewInternalError creates an error for internal operation failures.
func NewInternalError(op string, cause error) *AnalyticsError {
	return &AnalyticsError{
		Op:      op,
		Message: "internal error occurred",
		Cause:   cause,
	}
}

// ErrNoData signals that an aggregation had no usable input rows and did not
// run. This is distinct from an aggregation that ran and produced an empty
// result, which returns a non-nil empty output and no error.
var ErrNoData = errors.New("no data available")

// IsInvalidRange reports whether err is an invalid-range error from any
// operation.
func IsInvalidRange(err error) bool {
	var ae *AnalyticsError
	if errors.As(err, &ae) {
		return ae.Message == "start date must not be after end date"
	}
	return false
}
