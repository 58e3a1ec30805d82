package services

import (
	"context"

	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/persistence"
)

// Catalog exposes the marketplace automation listing.
type Catalog struct {
	persistence persistence.Persistence
}

func NewCatalog(p persistence.Persistence) *Catalog {
	return &Catalog{persistence: p}
}

func (c *Catalog) Automations(ctx context.Context) ([]*models.Automation, error) {
	automations, err := c.persistence.Automations(ctx)
	if err != nil {
		return nil, NewApplicationError("Automations", "failed to list automations", err)
	}

	return automations, nil
}

func (c *Catalog) AutomationByID(ctx context.Context, id string) (*models.Automation, error) {
	automation, err := c.persistence.AutomationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return automation, nil
}

// HealthCheck reports whether the backing store is reachable.
func (c *Catalog) HealthCheck(ctx context.Context) (string, bool) {
	if err := c.persistence.HealthCheck(ctx); err != nil {
		return err.Error(), false
	}

	return "healthy", true
}
