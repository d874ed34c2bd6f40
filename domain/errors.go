package domain

import "fmt"

// Error codes for the domain error taxonomy
const (
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeDiscoveryError    = "DISCOVERY_ERROR"
	ErrCodeAdapterError      = "ADAPTER_ERROR"
	ErrCodeTimeout           = "TIMEOUT"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// DomainError is the common error type across the run pipeline
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a DomainError with an arbitrary code
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a fatal configuration error. Config errors abort
// the run before any checker is invoked.
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewDiscoveryError creates a fatal file discovery error
func NewDiscoveryError(root string, cause error) error {
	return NewDomainError(ErrCodeDiscoveryError, fmt.Sprintf("cannot read root: %s", root), cause)
}

// NewAdapterError creates a non-fatal per-checker adapter error
func NewAdapterError(checker CheckerName, message string, cause error) error {
	return NewDomainError(ErrCodeAdapterError, fmt.Sprintf("%s: %s", checker, message), cause)
}

// NewTimeoutError marks an adapter that was still outstanding at the deadline
func NewTimeoutError(checker CheckerName) error {
	return NewDomainError(ErrCodeTimeout, fmt.Sprintf("%s: run deadline exceeded", checker), nil)
}

// NewOutputError creates an output writing error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewValidationError creates a validation error without a cause
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// NewUnsupportedFormatError creates an error for unknown output formats
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// IsTimeout reports whether err is a run-deadline timeout
func IsTimeout(err error) bool {
	if de, ok := err.(DomainError); ok {
		return de.Code == ErrCodeTimeout
	}
	return false
}
