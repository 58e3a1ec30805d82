package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/readyreserve/readyflow/pkg/configschema"
	"github.com/readyreserve/readyflow/pkg/eventbus"
	"github.com/readyreserve/readyflow/pkg/events"
	"github.com/readyreserve/readyflow/pkg/log"
	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/persistence"
	"github.com/readyreserve/readyflow/pkg/templates"
)

// Config manages per-user runtime configurations.
type Config struct {
	persistence persistence.Persistence
	templates   templates.Store
	bus         eventbus.EventPublisher
	validate    *validator.Validate
	logger      *slog.Logger
	now         func() time.Time
}

// NewConfig creates the configuration service. The event bus may be nil;
// publishing is best-effort either way.
func NewConfig(p persistence.Persistence, store templates.Store, bus eventbus.EventPublisher) *Config {
	return &Config{
		persistence: p,
		templates:   store,
		bus:         bus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      log.WithModule("config-service"),
		now:         time.Now,
	}
}

// SaveConfig validates and upserts the single live configuration for the
// (user, automation) pair. Values may be incomplete; value formats and the
// schedule must be valid. Last write wins.
func (s *Config) SaveConfig(ctx context.Context, config *models.RuntimeConfig) (*models.RuntimeConfig, error) {
	if err := s.validate.Struct(config); err != nil {
		return nil, NewValidationError("SaveConfig", "invalid configuration payload", err)
	}

	if err := config.Schedule.Validate(); err != nil {
		return nil, NewValidationError("SaveConfig", "invalid schedule", err)
	}

	tpl, err := s.templates.ByID(config.AutomationID)
	if err != nil {
		return nil, NewValidationError("SaveConfig", "unknown automation", err)
	}

	if err := configschema.Validate(tpl, config.Values); err != nil {
		return nil, NewValidationError("SaveConfig", "invalid configuration values", err)
	}

	config.UpdatedAt = s.now().UTC()

	if err := s.persistence.SaveConfig(ctx, config); err != nil {
		return nil, NewApplicationError("SaveConfig", "failed to store configuration", err)
	}

	s.publishConfigUpdated(ctx, config)

	return config, nil
}

// GetConfig returns the live configuration for the pair.
func (s *Config) GetConfig(ctx context.Context, userID, automationID string) (*models.RuntimeConfig, error) {
	config, err := s.persistence.ConfigByUserAndAutomation(ctx, userID, automationID)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// ListLogs returns the newest execution log entries for the pair.
func (s *Config) ListLogs(ctx context.Context, userID, automationID string, limit int) ([]*models.ExecutionLogEntry, error) {
	entries, err := s.persistence.LogsByUserAndAutomation(ctx, userID, automationID, limit)
	if err != nil {
		return nil, NewApplicationError("ListLogs", "failed to read execution logs", err)
	}

	return entries, nil
}

func (s *Config) publishConfigUpdated(ctx context.Context, config *models.RuntimeConfig) {
	if s.bus == nil {
		return
	}

	event := events.ConfigUpdated{
		BaseEvent: events.BaseEvent{
			Type:         events.ConfigUpdatedEvent,
			Timestamp:    s.now().UTC(),
			AutomationID: config.AutomationID,
			UserID:       config.UserID,
		},
		Schedule: config.Schedule,
		Enabled:  config.Enabled,
	}

	if err := s.bus.Publish(ctx, config.AutomationID, event); err != nil {
		s.logger.Warn("failed to publish config updated event",
			"automation_id", config.AutomationID, "error", err)
	}
}
