package models

import "time"

// DeploymentPackage is the exportable artifact produced from a validated,
// resolved graph plus the callback endpoint the packaged graph reports back
// to. Regenerating a package for the same automation yields the same webhook
// URL; superseding a package has no effect on already-exported artifacts.
type DeploymentPackage struct {
	AutomationID string         `json:"automation_id"`
	Name         string         `json:"name"`
	Graph        *ResolvedGraph `json:"graph"`
	WebhookURL   string         `json:"webhook_url"`
	Instructions []string       `json:"instructions,omitempty"`
	GeneratedAt  time.Time      `json:"generated_at"`
}
