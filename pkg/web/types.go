// Package web provides HTTP request and response types for the automation API.
package web

import (
	"time"

	"github.com/readyreserve/readyflow/pkg/models"
)

// ExecuteRequest is the body of an execute call. Engine callbacks POST the
// trigger payload under input.
type ExecuteRequest struct {
	UserID string         `json:"user_id" validate:"required"`
	Input  map[string]any `json:"input,omitempty"`
}

// SaveConfigRequest is the body for upserting a runtime configuration.
type SaveConfigRequest struct {
	UserID       string            `json:"user_id"                 validate:"required"`
	SecretKey    string            `json:"secret_key,omitempty"`
	WebhookURL   string            `json:"webhook_url,omitempty"   validate:"omitempty,url"`
	CustomPrompt string            `json:"custom_prompt,omitempty"`
	Enabled      bool              `json:"enabled"`
	Schedule     models.Schedule   `json:"schedule"                validate:"required,oneof=manual hourly daily weekly"`
	Values       models.UserConfig `json:"values,omitempty"`
}

// PackageRequest identifies whose configuration to package with.
type PackageRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// EngineSessionRequest carries the engine credentials for connection
// management endpoints.
type EngineSessionRequest struct {
	BaseURL string `json:"base_url" validate:"required,url"`
	APIKey  string `json:"api_key"  validate:"required"`
}

// EngineDeployRequest imports a packaged automation into the engine.
type EngineDeployRequest struct {
	EngineSessionRequest

	UserID       string `json:"user_id"       validate:"required"`
	AutomationID string `json:"automation_id" validate:"required"`
}

// AutomationResponse is the marketplace detail view: metadata plus the
// template's configuration surface when one exists.
type AutomationResponse struct {
	*models.Automation

	ConfigFields []models.ConfigField `json:"config_fields,omitempty"`
	Instructions []string             `json:"deployment_instructions,omitempty"`
}

// PackageFailureResponse lists everything that prevented packaging.
type PackageFailureResponse struct {
	AutomationID  string    `json:"automation_id"`
	MissingFields []string  `json:"missing_fields,omitempty"`
	Problems      []string  `json:"problems,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
