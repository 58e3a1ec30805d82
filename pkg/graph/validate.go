// Package graph validates resolved workflow graphs before packaging.
package graph

import (
	"fmt"
	"sort"

	"github.com/readyreserve/readyflow/pkg/models"
)

// ErrorKind classifies a structural problem in a resolved graph.
type ErrorKind string

const (
	ErrorKindDanglingSource  ErrorKind = "dangling-source"
	ErrorKindDanglingTarget  ErrorKind = "dangling-target"
	ErrorKindCycle           ErrorKind = "cycle"
	ErrorKindNoTrigger       ErrorKind = "no-trigger"
	ErrorKindMultipleTrigger ErrorKind = "multiple-trigger"
	ErrorKindUnresolved      ErrorKind = "unresolved-parameter"
)

// GraphError is one validation failure. NodeID and FieldID are populated
// where they apply.
type GraphError struct {
	Kind    ErrorKind `json:"kind"`
	NodeID  string    `json:"node_id,omitempty"`
	FieldID string    `json:"field_id,omitempty"`
	Detail  string    `json:"detail"`
}

func (e GraphError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Validate checks a resolved graph for structural soundness: every
// connection endpoint exists, the connection relation is acyclic, exactly
// one trigger node is present, and no parameter is left unresolved. It never
// mutates the graph. The returned slice is empty for a deployable graph.
func Validate(g *models.ResolvedGraph) []GraphError {
	var errs []GraphError

	nodes := make(map[string]*models.ResolvedNode, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}

	errs = append(errs, validateConnections(g, nodes)...)
	errs = append(errs, validateTriggers(g)...)
	errs = append(errs, validateResolution(g)...)

	if cycle := findCycle(g, nodes); cycle != "" {
		errs = append(errs, GraphError{
			Kind:   ErrorKindCycle,
			NodeID: cycle,
			Detail: fmt.Sprintf("connection cycle through node %q", cycle),
		})
	}

	return errs
}

func validateConnections(g *models.ResolvedGraph, nodes map[string]*models.ResolvedNode) []GraphError {
	var errs []GraphError

	sources := make([]string, 0, len(g.Connections))
	for source := range g.Connections {
		sources = append(sources, source)
	}

	sort.Strings(sources)

	for _, source := range sources {
		if _, ok := nodes[source]; !ok {
			errs = append(errs, GraphError{
				Kind:   ErrorKindDanglingSource,
				NodeID: source,
				Detail: fmt.Sprintf("connection source %q is not a node in the graph", source),
			})
		}

		for _, conn := range g.Connections[source] {
			if _, ok := nodes[conn.TargetNodeID]; !ok {
				errs = append(errs, GraphError{
					Kind:   ErrorKindDanglingTarget,
					NodeID: conn.TargetNodeID,
					Detail: fmt.Sprintf("connection from %q targets unknown node %q", source, conn.TargetNodeID),
				})
			}
		}
	}

	return errs
}

func validateTriggers(g *models.ResolvedGraph) []GraphError {
	var triggers []string

	for _, n := range g.Nodes {
		if n.Kind.IsTrigger() {
			triggers = append(triggers, n.ID)
		}
	}

	switch len(triggers) {
	case 1:
		return nil
	case 0:
		return []GraphError{{
			Kind:   ErrorKindNoTrigger,
			Detail: "graph has no trigger node",
		}}
	default:
		errs := make([]GraphError, 0, len(triggers)-1)
		for _, id := range triggers[1:] {
			errs = append(errs, GraphError{
				Kind:   ErrorKindMultipleTrigger,
				NodeID: id,
				Detail: fmt.Sprintf("extra trigger node %q; a graph has exactly one entry point", id),
			})
		}

		return errs
	}
}

func validateResolution(g *models.ResolvedGraph) []GraphError {
	var errs []GraphError

	for _, n := range g.Nodes {
		params := make([]string, 0, len(n.Parameters))
		for name := range n.Parameters {
			params = append(params, name)
		}

		sort.Strings(params)

		for _, name := range params {
			p := n.Parameters[name]
			if p.IsUnresolved() {
				errs = append(errs, GraphError{
					Kind:    ErrorKindUnresolved,
					NodeID:  n.ID,
					FieldID: p.UnresolvedField,
					Detail: fmt.Sprintf("node %q parameter %q needs config field %q",
						n.ID, name, p.UnresolvedField),
				})
			}
		}
	}

	return errs
}

// findCycle runs a three-color DFS over the connection relation and returns
// a node on the first back edge found, or "".
func findCycle(g *models.ResolvedGraph, nodes map[string]*models.ResolvedNode) string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int, len(nodes))

	var visit func(id string) string

	visit = func(id string) string {
		color[id] = gray

		for _, conn := range g.Connections[id] {
			target := conn.TargetNodeID
			if _, ok := nodes[target]; !ok {
				continue // dangling targets reported separately
			}

			switch color[target] {
			case gray:
				return target
			case white:
				if found := visit(target); found != "" {
					return found
				}
			}
		}

		color[id] = black

		return ""
	}

	for _, n := range g.Nodes {
		if color[n.ID] == white {
			if found := visit(n.ID); found != "" {
				return found
			}
		}
	}

	return ""
}
