package models

import (
	"errors"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule is the execution cadence a user picked for an automation.
// Scheduling itself happens inside the external workflow engine; this core
// only translates the choice into the cron expression carried by the
// packaged schedule-trigger node.
type Schedule string

const (
	ScheduleManual Schedule = "manual"
	ScheduleHourly Schedule = "hourly"
	ScheduleDaily  Schedule = "daily"
	ScheduleWeekly Schedule = "weekly"
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// CronExpression maps the schedule to a standard 5-field cron expression.
// Manual has no expression.
func (s Schedule) CronExpression() string {
	switch s {
	case ScheduleHourly:
		return "0 * * * *"
	case ScheduleDaily:
		return "0 9 * * *"
	case ScheduleWeekly:
		return "0 9 * * 1"
	default:
		return ""
	}
}

// Validate checks the schedule value and, for non-manual schedules, that the
// derived cron expression parses.
func (s Schedule) Validate() error {
	switch s {
	case ScheduleManual:
		return nil
	case ScheduleHourly, ScheduleDaily, ScheduleWeekly:
	default:
		return ErrInvalidSchedule
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	_, err := parser.Parse(s.CronExpression())
	if err != nil {
		return errors.Join(ErrInvalidSchedule, err)
	}

	return nil
}

// RuntimeConfig is the single live configuration row per (user, automation).
// It carries both the deployment-time config field values and the
// execution-time overrides; saves upsert the whole row, last write wins.
type RuntimeConfig struct {
	UserID       string `json:"user_id"       validate:"required"`
	AutomationID string `json:"automation_id" validate:"required"`

	SecretKey    string   `json:"secret_key,omitempty"`
	WebhookURL   string   `json:"webhook_url,omitempty"   validate:"omitempty,url"`
	CustomPrompt string   `json:"custom_prompt,omitempty"`
	Enabled      bool     `json:"enabled"`
	Schedule     Schedule `json:"schedule" validate:"required,oneof=manual hourly daily weekly"`

	// Values holds the template config-field values keyed by field id.
	Values UserConfig `json:"values,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
