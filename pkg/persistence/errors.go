// Package persistence provides standardized error types for storage operations.
package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrAutomationNotFound indicates no automation exists with the given id.
	ErrAutomationNotFound = errors.New("automation not found")

	// ErrConfigNotFound indicates no runtime configuration exists for the
	// given (user, automation) pair.
	ErrConfigNotFound = errors.New("configuration not found")
)

// ConfigError wraps configuration storage errors with operation context.
type ConfigError struct {
	Op           string
	UserID       string
	AutomationID string
	Err          error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s operation failed for config %s/%s: %v",
		e.Op, e.UserID, e.AutomationID, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewConfigError creates a configuration error with context.
func NewConfigError(op, userID, automationID string, err error) *ConfigError {
	return &ConfigError{
		Op:           op,
		UserID:       userID,
		AutomationID: automationID,
		Err:          err,
	}
}

// IsAutomationNotFound checks if an error indicates a missing automation.
func IsAutomationNotFound(err error) bool {
	return errors.Is(err, ErrAutomationNotFound)
}

// IsConfigNotFound checks if an error indicates a missing configuration.
func IsConfigNotFound(err error) bool {
	return errors.Is(err, ErrConfigNotFound)
}
