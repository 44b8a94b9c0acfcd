// Package errors defines the typed error taxonomy shared by the eigenangi
// library and CLI. Every failure that crosses the library boundary is one of
// the kinds below, so callers can branch on the kind instead of matching
// provider-specific strings.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ConfigErrorType represents malformed or unreadable configuration sources
	ConfigErrorType ErrorType = "CONFIG"
	// CredentialsErrorType represents missing credentials or region
	CredentialsErrorType ErrorType = "CREDENTIALS"
	// PermissionErrorType represents authenticated but unauthorized calls
	PermissionErrorType ErrorType = "PERMISSION"
	// ServiceErrorType represents transient or unexpected provider failures
	ServiceErrorType ErrorType = "SERVICE"
	// ValidationErrorType represents invalid caller-supplied input
	ValidationErrorType ErrorType = "VALIDATION"
)

// DiscoveryError is the base error type for all application errors
type DiscoveryError struct {
	Type        ErrorType
	Message     string
	Code        string // provider error code, when one was reported
	Cause       error
	Suggestions []string
}

// Error implements the error interface
func (e *DiscoveryError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s]", e.Type))
	parts = append(parts, e.Message)

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("(code: %s)", e.Code))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("caused by: %v", e.Cause))
	}

	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause error
func (e *DiscoveryError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *DiscoveryError) Is(target error) bool {
	if targetErr, ok := target.(*DiscoveryError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// WithCode records the provider-reported error code for diagnostics
func (e *DiscoveryError) WithCode(code string) *DiscoveryError {
	e.Code = code
	return e
}

// WithSuggestion adds a suggestion to help resolve the error
func (e *DiscoveryError) WithSuggestion(suggestion string) *DiscoveryError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// GetSuggestions returns formatted suggestions for resolving the error
func (e *DiscoveryError) GetSuggestions() string {
	if len(e.Suggestions) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString("Suggestions:\n")
	for i, suggestion := range e.Suggestions {
		result.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion))
	}
	return result.String()
}

// ConfigError creates a new configuration error
func ConfigError(message string) *DiscoveryError {
	return &DiscoveryError{
		Type:    ConfigErrorType,
		Message: message,
	}
}

// ConfigErrorf creates a new configuration error with formatting
func ConfigErrorf(format string, args ...interface{}) *DiscoveryError {
	return &DiscoveryError{
		Type:    ConfigErrorType,
		Message: fmt.Sprintf(format, args...),
	}
}

// ConfigErrorWithCause creates a new configuration error with a cause
func ConfigErrorWithCause(message string, cause error) *DiscoveryError {
	return &DiscoveryError{
		Type:    ConfigErrorType,
		Message: message,
		Cause:   cause,
	}
}

// CredentialsError creates a new credentials error
func CredentialsError(message string) *DiscoveryError {
	return &DiscoveryError{
		Type:    CredentialsErrorType,
		Message: message,
	}
}

// CredentialsErrorf creates a new credentials error with formatting
func CredentialsErrorf(format string, args ...interface{}) *DiscoveryError {
	return &DiscoveryError{
		Type:    CredentialsErrorType,
		Message: fmt.Sprintf(format, args...),
	}
}

// CredentialsErrorWithCause creates a new credentials error with a cause
func CredentialsErrorWithCause(message string, cause error) *DiscoveryError {
	return &DiscoveryError{
		Type:    CredentialsErrorType,
		Message: message,
		Cause:   cause,
	}
}

// PermissionError creates a new permission error
func PermissionError(message string) *DiscoveryError {
	return &DiscoveryError{
		Type:    PermissionErrorType,
		Message: message,
	}
}

// PermissionErrorf creates a new permission error with formatting
func PermissionErrorf(format string, args ...interface{}) *DiscoveryError {
	return &DiscoveryError{
		Type:    PermissionErrorType,
		Message: fmt.Sprintf(format, args...),
	}
}

// PermissionErrorWithCause creates a new permission error with a cause
func PermissionErrorWithCause(message string, cause error) *DiscoveryError {
	return &DiscoveryError{
		Type:    PermissionErrorType,
		Message: message,
		Cause:   cause,
	}
}

// ServiceError creates a new provider service error
func ServiceError(message string) *DiscoveryError {
	return &DiscoveryError{
		Type:    ServiceErrorType,
		Message: message,
	}
}

// ServiceErrorf creates a new provider service error with formatting
func ServiceErrorf(format string, args ...interface{}) *DiscoveryError {
	return &DiscoveryError{
		Type:    ServiceErrorType,
		Message: fmt.Sprintf(format, args...),
	}
}

// ServiceErrorWithCause creates a new provider service error with a cause
func ServiceErrorWithCause(message string, cause error) *DiscoveryError {
	return &DiscoveryError{
		Type:    ServiceErrorType,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError creates a new validation error
func ValidationError(message string) *DiscoveryError {
	return &DiscoveryError{
		Type:    ValidationErrorType,
		Message: message,
	}
}

// ValidationErrorf creates a new validation error with formatting
func ValidationErrorf(format string, args ...interface{}) *DiscoveryError {
	return &DiscoveryError{
		Type:    ValidationErrorType,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with additional context.
// When errorType is empty and err is already a DiscoveryError, the original
// type and code are preserved.
func WrapError(err error, errorType ErrorType, message string) *DiscoveryError {
	if err == nil {
		return nil
	}

	if discoveryErr, ok := err.(*DiscoveryError); ok && errorType == "" {
		return &DiscoveryError{
			Type:        discoveryErr.Type,
			Message:     message,
			Code:        discoveryErr.Code,
			Cause:       discoveryErr,
			Suggestions: discoveryErr.Suggestions,
		}
	}

	return &DiscoveryError{
		Type:    errorType,
		Message: message,
		Cause:   err,
	}
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if discoveryErr, ok := err.(*DiscoveryError); ok {
		return discoveryErr.Type == errorType
	}
	return false
}

// GetErrorType returns the error type of an error, or empty string if not a DiscoveryError
func GetErrorType(err error) ErrorType {
	if discoveryErr, ok := err.(*DiscoveryError); ok {
		return discoveryErr.Type
	}
	return ""
}

// FormatErrorForUser formats an error in a user-friendly way
func FormatErrorForUser(err error) string {
	if err == nil {
		return ""
	}

	discoveryErr, ok := err.(*DiscoveryError)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Error: %s\n", discoveryErr.Message))

	if discoveryErr.Code != "" {
		result.WriteString(fmt.Sprintf("Provider code: %s\n", discoveryErr.Code))
	}

	if len(discoveryErr.Suggestions) > 0 {
		result.WriteString("\n")
		result.WriteString(discoveryErr.GetSuggestions())
	}

	return result.String()
}

// GetExitCode returns an appropriate exit code based on error type
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	discoveryErr, ok := err.(*DiscoveryError)
	if !ok {
		return 1 // Generic error
	}

	switch discoveryErr.Type {
	case ConfigErrorType:
		return 2
	case CredentialsErrorType:
		return 3
	case PermissionErrorType:
		return 4
	case ServiceErrorType:
		return 5
	case ValidationErrorType:
		return 6
	default:
		return 1
	}
}
