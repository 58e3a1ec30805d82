// Package events defines event types and structures for automation
// lifecycle notifications.
package events

import (
	"errors"
	"time"

	"github.com/readyreserve/readyflow/pkg/models"
)

type EventType string

// Topic is the single stream all automation events are published to.
const Topic = "readyflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	ExecutionCompletedEvent EventType = "automation.execution.completed"
	ExecutionFailedEvent    EventType = "automation.execution.failed"
	ConfigUpdatedEvent      EventType = "automation.config.updated"
	PackageGeneratedEvent   EventType = "automation.package.generated"
)

var ErrMissingAutomationID = errors.New("event requires an automation id")

type BaseEvent struct {
	ID           string         `json:"id"`
	Type         EventType      `json:"type"`
	Timestamp    time.Time      `json:"timestamp"`
	AutomationID string         `json:"automation_id"`
	UserID       string         `json:"user_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func (e BaseEvent) Validate() error {
	if e.AutomationID == "" {
		return ErrMissingAutomationID
	}

	return nil
}

// ExecutionCompleted is published after a successful dispatch, once the log
// entry is durable.
type ExecutionCompleted struct {
	BaseEvent

	LogEntryID string `json:"log_entry_id"`
	DurationMS int64  `json:"duration_ms"`
}

func (e ExecutionCompleted) GetType() EventType {
	return ExecutionCompletedEvent
}

// ExecutionFailed is published after a failed dispatch, once the log entry
// is durable.
type ExecutionFailed struct {
	BaseEvent

	LogEntryID string `json:"log_entry_id"`
	Error      string `json:"error"`
	DurationMS int64  `json:"duration_ms"`
}

func (e ExecutionFailed) GetType() EventType {
	return ExecutionFailedEvent
}

// ConfigUpdated is published after a runtime configuration upsert.
type ConfigUpdated struct {
	BaseEvent

	Schedule models.Schedule `json:"schedule"`
	Enabled  bool            `json:"enabled"`
}

func (e ConfigUpdated) GetType() EventType {
	return ConfigUpdatedEvent
}

// PackageGenerated is published after a deployment package is emitted.
type PackageGenerated struct {
	BaseEvent

	WebhookURL string `json:"webhook_url"`
}

func (e PackageGenerated) GetType() EventType {
	return PackageGeneratedEvent
}
