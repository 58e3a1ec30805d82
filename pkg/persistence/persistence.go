// Package persistence provides the storage abstraction for automations,
// runtime configurations, and execution logs.
package persistence

import (
	"context"

	"github.com/readyreserve/readyflow/pkg/models"
)

// AutomationRepository reads marketplace automation metadata.
type AutomationRepository interface {
	Automations(ctx context.Context) ([]*models.Automation, error)
	AutomationByID(ctx context.Context, id string) (*models.Automation, error)
	SaveAutomation(ctx context.Context, automation *models.Automation) error
}

// ConfigRepository stores the single live runtime configuration per
// (user, automation) pair. SaveConfig upserts; last write wins.
type ConfigRepository interface {
	ConfigByUserAndAutomation(ctx context.Context, userID, automationID string) (*models.RuntimeConfig, error)
	SaveConfig(ctx context.Context, config *models.RuntimeConfig) error
}

// ExecutionLogRepository is the append-only execution history. Entries are
// never updated or deleted.
type ExecutionLogRepository interface {
	AppendLog(ctx context.Context, entry *models.ExecutionLogEntry) error
	LogsByUserAndAutomation(ctx context.Context, userID, automationID string, limit int) ([]*models.ExecutionLogEntry, error)
}

// Persistence bundles the repositories behind one lifecycle.
type Persistence interface {
	AutomationRepository
	ConfigRepository
	ExecutionLogRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
