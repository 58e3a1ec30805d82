package models

import "time"

// ExecutionStatus classifies the outcome of one dispatch attempt.
type ExecutionStatus string

const (
	ExecutionStatusSuccess   ExecutionStatus = "success"
	ExecutionStatusError     ExecutionStatus = "error"
	ExecutionStatusTriggered ExecutionStatus = "triggered"
)

// ExecutionLogEntry is one durable record of a single automation dispatch
// attempt. Entries are append-only; this core never mutates or deletes them.
type ExecutionLogEntry struct {
	ID           string          `json:"id"`
	AutomationID string          `json:"automation_id" validate:"required"`
	UserID       string          `json:"user_id"       validate:"required"`
	Status       ExecutionStatus `json:"status"        validate:"required,oneof=success error triggered"`
	Message      string          `json:"message,omitempty"`
	InputData    map[string]any  `json:"input_data,omitempty"`
	OutputData   map[string]any  `json:"output_data,omitempty"`
	DurationMS   int64           `json:"duration_ms"`
	CreatedAt    time.Time       `json:"created_at"`
}
