package models

import "sort"

// ResolvedParameter is a template parameter after resolution: a concrete
// value, a verbatim-preserved engine expression, or an unresolved marker
// naming the missing config field.
type ResolvedParameter struct {
	Value           any    `json:"value,omitempty"`
	Expression      string `json:"expression,omitempty"`
	UnresolvedField string `json:"unresolved_field,omitempty"`
}

// ResolvedValue wraps a concrete substituted value.
func ResolvedValue(v any) ResolvedParameter {
	return ResolvedParameter{Value: v}
}

// PreservedExpression keeps a node-output expression for engine-side
// evaluation.
func PreservedExpression(expr string) ResolvedParameter {
	return ResolvedParameter{Expression: expr}
}

// Unresolved marks a parameter whose required config field was absent or
// invalid.
func Unresolved(fieldID string) ResolvedParameter {
	return ResolvedParameter{UnresolvedField: fieldID}
}

// IsUnresolved reports whether the parameter still needs a config value.
func (p ResolvedParameter) IsUnresolved() bool {
	return p.UnresolvedField != ""
}

// ResolvedNode mirrors a TemplateNode with its parameters resolved.
type ResolvedNode struct {
	ID         string                       `json:"id"`
	Name       string                       `json:"name"`
	Kind       NodeKind                     `json:"kind"`
	Parameters map[string]ResolvedParameter `json:"parameters,omitempty"`
}

// ResolvedGraph is a template merged with one user's configuration. It is
// ephemeral: produced per packaging request, never persisted on its own.
type ResolvedGraph struct {
	AutomationID string                  `json:"automation_id"`
	Nodes        []*ResolvedNode         `json:"nodes"`
	Connections  map[string][]Connection `json:"connections"`
}

// Node returns the resolved node with the given id, or nil.
func (g *ResolvedGraph) Node(id string) *ResolvedNode {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}

	return nil
}

// UnresolvedFields returns the distinct config field ids still unresolved
// anywhere in the graph, sorted for stable reporting.
func (g *ResolvedGraph) UnresolvedFields() []string {
	seen := make(map[string]bool)
	fields := make([]string, 0)

	for _, n := range g.Nodes {
		for _, p := range n.Parameters {
			if p.IsUnresolved() && !seen[p.UnresolvedField] {
				seen[p.UnresolvedField] = true
				fields = append(fields, p.UnresolvedField)
			}
		}
	}

	sort.Strings(fields)

	return fields
}
