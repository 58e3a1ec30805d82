package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/readyreserve/readyflow/pkg/deploy"
	"github.com/readyreserve/readyflow/pkg/eventbus"
	"github.com/readyreserve/readyflow/pkg/events"
	"github.com/readyreserve/readyflow/pkg/log"
	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/persistence"
	"github.com/readyreserve/readyflow/pkg/templates"
)

// Packaging builds deployment packages from templates and the user's saved
// configuration.
type Packaging struct {
	templates   templates.Store
	packager    *deploy.Packager
	persistence persistence.ConfigRepository
	bus         eventbus.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewPackaging creates the packaging service. The event bus may be nil.
func NewPackaging(store templates.Store, packager *deploy.Packager, configs persistence.ConfigRepository, bus eventbus.EventPublisher) *Packaging {
	return &Packaging{
		templates:   store,
		packager:    packager,
		persistence: configs,
		bus:         bus,
		logger:      log.WithModule("packaging-service"),
		now:         time.Now,
	}
}

// BuildPackage resolves the automation's template against the user's saved
// configuration and emits a deployment package. A missing configuration is
// treated as empty, so templates without required fields still package. An
// incomplete or invalid configuration fails with a configuration error
// wrapping the full *deploy.PackageError.
func (s *Packaging) BuildPackage(ctx context.Context, userID, automationID string) (*models.DeploymentPackage, error) {
	tpl, err := s.templates.ByID(automationID)
	if err != nil {
		return nil, NewValidationError("BuildPackage", "unknown automation", err)
	}

	values, schedule, err := s.loadConfig(ctx, userID, automationID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.packager.Package(tpl, values, schedule)
	if err != nil {
		var pkgErr *deploy.PackageError
		if errors.As(err, &pkgErr) {
			return nil, NewConfigurationError("BuildPackage", "configuration is incomplete or invalid", err)
		}

		return nil, NewApplicationError("BuildPackage", "failed to build deployment package", err)
	}

	s.publishPackageGenerated(ctx, userID, pkg)

	return pkg, nil
}

// BuildArtifact packages the automation and serializes the result into the
// engine's import format.
func (s *Packaging) BuildArtifact(ctx context.Context, userID, automationID string) ([]byte, error) {
	pkg, err := s.BuildPackage(ctx, userID, automationID)
	if err != nil {
		return nil, err
	}

	artifact, err := deploy.Artifact(pkg)
	if err != nil {
		return nil, NewApplicationError("BuildArtifact", "failed to serialize workflow artifact", err)
	}

	return artifact, nil
}

func (s *Packaging) loadConfig(ctx context.Context, userID, automationID string) (models.UserConfig, models.Schedule, error) {
	config, err := s.persistence.ConfigByUserAndAutomation(ctx, userID, automationID)
	if err != nil {
		if persistence.IsConfigNotFound(err) {
			return models.UserConfig{}, models.ScheduleManual, nil
		}

		return nil, "", NewApplicationError("BuildPackage", "failed to load configuration", err)
	}

	return config.Values, config.Schedule, nil
}

func (s *Packaging) publishPackageGenerated(ctx context.Context, userID string, pkg *models.DeploymentPackage) {
	if s.bus == nil {
		return
	}

	event := events.PackageGenerated{
		BaseEvent: events.BaseEvent{
			Type:         events.PackageGeneratedEvent,
			Timestamp:    s.now().UTC(),
			AutomationID: pkg.AutomationID,
			UserID:       userID,
		},
		WebhookURL: pkg.WebhookURL,
	}

	if err := s.bus.Publish(ctx, pkg.AutomationID, event); err != nil {
		s.logger.Warn("failed to publish package generated event",
			"automation_id", pkg.AutomationID, "error", err)
	}
}
