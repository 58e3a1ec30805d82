// Package models defines the core domain models for the automation marketplace.
package models

// Automation is the marketplace metadata for one packaged AI task. It is
// read-only from this core's point of view; authoring happens elsewhere.
type Automation struct {
	ID          string   `json:"id"          validate:"required"`
	Title       string   `json:"title"       validate:"required,min=3"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category"`
	Features    []string `json:"features,omitempty"`
}
