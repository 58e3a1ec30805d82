// Package templates holds the built-in workflow template catalog. Templates
// are authored in code, published with the binary, and never mutated at
// runtime; the store hands out deep copies so callers cannot corrupt the
// catalog.
package templates

import (
	"errors"
	"fmt"
	"maps"

	"github.com/readyreserve/readyflow/pkg/models"
)

var ErrTemplateNotFound = errors.New("template not found")

// DispatchNodeID is the node every built-in template uses to call back into
// the platform's execute endpoint. The deployment packager injects the
// deployment-specific URL into this node.
const DispatchNodeID = "readyreserve-ai"

// Store provides read access to the template catalog.
type Store interface {
	ByID(id string) (*models.WorkflowTemplate, error)
	All() []*models.WorkflowTemplate
	ByCategory(category string) []*models.WorkflowTemplate
}

type builtinStore struct {
	templates []*models.WorkflowTemplate
	byID      map[string]*models.WorkflowTemplate
}

// NewStore returns the built-in catalog.
func NewStore() Store {
	catalog := builtinTemplates()
	byID := make(map[string]*models.WorkflowTemplate, len(catalog))

	for _, tpl := range catalog {
		byID[tpl.ID] = tpl
	}

	return &builtinStore{templates: catalog, byID: byID}
}

func (s *builtinStore) ByID(id string) (*models.WorkflowTemplate, error) {
	tpl, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}

	return cloneTemplate(tpl), nil
}

func (s *builtinStore) All() []*models.WorkflowTemplate {
	out := make([]*models.WorkflowTemplate, 0, len(s.templates))

	for _, tpl := range s.templates {
		out = append(out, cloneTemplate(tpl))
	}

	return out
}

func (s *builtinStore) ByCategory(category string) []*models.WorkflowTemplate {
	out := make([]*models.WorkflowTemplate, 0)

	for _, tpl := range s.templates {
		if tpl.Category == category {
			out = append(out, cloneTemplate(tpl))
		}
	}

	return out
}

func cloneTemplate(tpl *models.WorkflowTemplate) *models.WorkflowTemplate {
	clone := *tpl

	clone.Tags = append([]string(nil), tpl.Tags...)
	clone.ConfigFields = append([]models.ConfigField(nil), tpl.ConfigFields...)
	clone.DeploymentInstructions = append([]string(nil), tpl.DeploymentInstructions...)

	clone.Nodes = make([]*models.TemplateNode, 0, len(tpl.Nodes))
	for _, n := range tpl.Nodes {
		node := *n
		node.Parameters = maps.Clone(n.Parameters)
		clone.Nodes = append(clone.Nodes, &node)
	}

	clone.Connections = make(map[string][]models.Connection, len(tpl.Connections))
	for source, targets := range tpl.Connections {
		clone.Connections[source] = append([]models.Connection(nil), targets...)
	}

	return &clone
}
