// Package errors provides a structured error type (InkwellError) with
// category-based classification used by the build pipeline, editor HTTP
// handlers, and CLI exit code mapping.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies an InkwellError for status/exit-code mapping.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryContent    ErrorCategory = "content"
	CategoryNotFound   ErrorCategory = "notfound"

	// Build pipeline errors
	CategoryBuild      ErrorCategory = "build"
	CategoryDeploy     ErrorCategory = "deploy"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// InkwellError is a structured error with category, severity, and context.
type InkwellError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for InkwellError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *InkwellError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap supports errors.Is/As chains.
func (e *InkwellError) Unwrap() error {
	return e.Cause
}

// WithContext adds a context key-value pair to the error.
func (e *InkwellError) WithContext(key string, value any) *InkwellError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new InkwellError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *InkwellError {
	return &InkwellError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new InkwellError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *InkwellError {
	return &InkwellError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// AsInkwell extracts an InkwellError from an error chain.
func AsInkwell(err error) (*InkwellError, bool) {
	var ie *InkwellError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// CategoryOf returns the category of a classified error, or CategoryInternal
// for unknown errors.
func CategoryOf(err error) ErrorCategory {
	if ie, ok := AsInkwell(err); ok {
		return ie.Category
	}
	return CategoryInternal
}
