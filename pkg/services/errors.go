// Package services provides the application services and the error taxonomy
// the web layer maps to HTTP responses.
package services

import (
	"errors"
	"fmt"
)

// Error categories. Every error crossing the service boundary belongs to
// exactly one family; the web layer maps families to status codes and never
// lets any of them crash a request.
var (
	// ErrValidation covers malformed or incomplete input (400).
	ErrValidation = errors.New("validation error")

	// ErrConfiguration covers well-formed requests against an unusable
	// configuration (422).
	ErrConfiguration = errors.New("configuration error")

	// ErrConnectivity covers reachability failures of external systems (502).
	ErrConnectivity = errors.New("connectivity error")

	// ErrApplication covers internal failures (500).
	ErrApplication = errors.New("application error")
)

// ServiceError wraps service-level errors with additional context. The
// Category anchors it into one of the error families.
type ServiceError struct {
	Op       string // Operation name
	Message  string // Human-readable message
	Category error  // One of the family sentinels
	Err      error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Category, target) || errors.Is(e.Err, target)
}

// NewValidationError creates a validation-family error.
func NewValidationError(op, message string, err error) *ServiceError {
	return &ServiceError{Op: op, Message: message, Category: ErrValidation, Err: err}
}

// NewConfigurationError creates a configuration-family error.
func NewConfigurationError(op, message string, err error) *ServiceError {
	return &ServiceError{Op: op, Message: message, Category: ErrConfiguration, Err: err}
}

// NewConnectivityError creates a connectivity-family error.
func NewConnectivityError(op, message string, err error) *ServiceError {
	return &ServiceError{Op: op, Message: message, Category: ErrConnectivity, Err: err}
}

// NewApplicationError creates an application-family error.
func NewApplicationError(op, message string, err error) *ServiceError {
	return &ServiceError{Op: op, Message: message, Category: ErrApplication, Err: err}
}

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConfigurationError checks if an error should map to HTTP 422.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsConnectivityError checks if an error should map to HTTP 502.
func IsConnectivityError(err error) bool {
	return errors.Is(err, ErrConnectivity)
}

// IsApplicationError checks if an error should map to HTTP 500.
func IsApplicationError(err error) bool {
	return errors.Is(err, ErrApplication)
}
