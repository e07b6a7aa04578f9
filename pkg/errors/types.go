// Package errors provides typed errors for the shadow project.
//
// This package defines domain-specific error types that provide structured
// error information for different subsystems (validation, AI, meetings,
// storage). All error types implement the standard error interface and
// support errors.Is() and errors.As() from the standard library and
// cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ValidationError represents a local precondition failure. It blocks the
// attempted operation before any network call is issued.
type ValidationError struct {
	Field   string // Which input field has the issue
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AIError represents AI provider errors (transport or API level).
type AIError struct {
	Provider   string // e.g., "gemini", "anthropic"
	Operation  string // e.g., "Analyze", "Refine"
	StatusCode int    // HTTP status code if applicable
	Message    string
	Retryable  bool
	Cause      error
}

// Error implements the error interface.
func (e *AIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("ai %s %s failed (HTTP %d): %s", e.Provider, e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ai %s %s failed: %s", e.Provider, e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *AIError) Unwrap() error {
	return e.Cause
}

// NewAIError creates a new AIError.
func NewAIError(provider, operation, message string) *AIError {
	return &AIError{Provider: provider, Operation: operation, Message: message}
}

// NewAIErrorWithStatus creates a new AIError with HTTP status code.
func NewAIErrorWithStatus(provider, operation string, statusCode int, message string) *AIError {
	return &AIError{
		Provider:   provider,
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
		Retryable:  isRetryableHTTPStatus(statusCode),
	}
}

// NewAIErrorWithCause creates a new AIError with an underlying cause.
func NewAIErrorWithCause(provider, operation, message string, cause error) *AIError {
	return &AIError{
		Provider:  provider,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// FormatError represents a model response that did not parse as the expected
// JSON shape. The operation is aborted and no partial result is installed.
type FormatError struct {
	Operation string
	Snippet   string // truncated response text for diagnostics
	Cause     error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("%s returned malformed response: %s (payload: %s)", e.Operation, e.Cause, e.Snippet)
	}
	return fmt.Sprintf("%s returned malformed response: %s", e.Operation, e.Cause)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

const snippetLimit = 120

// NewFormatError creates a new FormatError, truncating the payload for display.
func NewFormatError(operation, payload string, cause error) *FormatError {
	if len(payload) > snippetLimit {
		payload = payload[:snippetLimit] + "..."
	}
	return &FormatError{Operation: operation, Snippet: payload, Cause: cause}
}

// MeetingsError represents meeting-log fetch failures. These are soft: the
// caller keeps its prior list and surfaces the message only.
type MeetingsError struct {
	Operation  string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *MeetingsError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("meetings %s failed (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("meetings %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *MeetingsError) Unwrap() error {
	return e.Cause
}

// NewMeetingsError creates a new MeetingsError.
func NewMeetingsError(operation, message string) *MeetingsError {
	return &MeetingsError{Operation: operation, Message: message}
}

// NewMeetingsErrorWithStatus creates a new MeetingsError with HTTP status code.
func NewMeetingsErrorWithStatus(operation string, statusCode int, message string) *MeetingsError {
	return &MeetingsError{Operation: operation, StatusCode: statusCode, Message: message}
}

// NewMeetingsErrorWithCause creates a new MeetingsError with an underlying cause.
func NewMeetingsErrorWithCause(operation, message string, cause error) *MeetingsError {
	return &MeetingsError{Operation: operation, Message: message, Cause: cause}
}

// StoreError represents session persistence errors.
type StoreError struct {
	Operation string // e.g., "Load", "Append", "Reset"
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("session store %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, message string) *StoreError {
	return &StoreError{Operation: operation, Message: message}
}

// NewStoreErrorWithCause creates a new StoreError with an underlying cause.
func NewStoreErrorWithCause(operation, message string, cause error) *StoreError {
	return &StoreError{Operation: operation, Message: message, Cause: cause}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// IsValidationError checks if an error or any error in its chain is a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsAIError checks if an error or any error in its chain is an AIError.
func IsAIError(err error) bool {
	var aiErr *AIError
	return errors.As(err, &aiErr)
}

// IsFormatError checks if an error or any error in its chain is a FormatError.
func IsFormatError(err error) bool {
	var fErr *FormatError
	return errors.As(err, &fErr)
}

// IsMeetingsError checks if an error or any error in its chain is a MeetingsError.
func IsMeetingsError(err error) bool {
	var mErr *MeetingsError
	return errors.As(err, &mErr)
}

// IsStoreError checks if an error or any error in its chain is a StoreError.
func IsStoreError(err error) bool {
	var sErr *StoreError
	return errors.As(err, &sErr)
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var cErr *ConfigError
	return errors.As(err, &cErr)
}

// isRetryableHTTPStatus returns true for HTTP status codes that are typically
// retryable. The system issues no automatic retries; the flag only informs
// the user-facing "retry" hint.
func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use shadowerrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As
)
