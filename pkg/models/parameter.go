package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ParameterKind discriminates the ParameterValue variant.
type ParameterKind string

const (
	// ParameterKindLiteral is a plain value copied into the graph as-is.
	ParameterKindLiteral ParameterKind = "literal"
	// ParameterKindConfigRef references a ConfigField by id; the Parameter
	// Resolver substitutes the user's value at packaging time.
	ParameterKindConfigRef ParameterKind = "config-ref"
	// ParameterKindNodeOutputRef references an upstream node's output path.
	// It is never resolved here; the external engine evaluates it at run
	// time, so the expression survives packaging verbatim.
	ParameterKindNodeOutputRef ParameterKind = "node-output-ref"
)

// ParameterValue is a tagged variant: exactly one of a literal, a
// config-field reference, or a node-output reference. Building values only
// through the constructors keeps malformed expressions unrepresentable.
type ParameterValue struct {
	Kind    ParameterKind `json:"kind"`
	Literal any           `json:"literal,omitempty"`
	FieldID string        `json:"field_id,omitempty"`
	NodeID  string        `json:"node_id,omitempty"`
	Path    string        `json:"path,omitempty"`
}

var ErrInvalidParameter = errors.New("invalid parameter value")

// Literal builds a literal parameter value.
func Literal(v any) ParameterValue {
	return ParameterValue{Kind: ParameterKindLiteral, Literal: v}
}

// ConfigRef builds a reference to a config field.
func ConfigRef(fieldID string) ParameterValue {
	return ParameterValue{Kind: ParameterKindConfigRef, FieldID: fieldID}
}

// NodeOutputRef builds a reference to an upstream node's output path.
// nodeID may be empty, meaning the immediately preceding node's output.
func NodeOutputRef(nodeID, path string) ParameterValue {
	return ParameterValue{Kind: ParameterKindNodeOutputRef, NodeID: nodeID, Path: path}
}

// Validate checks the variant invariant.
func (p ParameterValue) Validate() error {
	switch p.Kind {
	case ParameterKindLiteral:
		return nil
	case ParameterKindConfigRef:
		if p.FieldID == "" {
			return fmt.Errorf("%w: config-ref without field id", ErrInvalidParameter)
		}

		return nil
	case ParameterKindNodeOutputRef:
		if p.Path == "" {
			return fmt.Errorf("%w: node-output-ref without path", ErrInvalidParameter)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidParameter, p.Kind)
	}
}

// Expression renders a node-output reference in the engine's interpolation
// syntax. It is only meaningful for ParameterKindNodeOutputRef.
func (p ParameterValue) Expression() string {
	if p.Kind != ParameterKindNodeOutputRef {
		return ""
	}

	if p.NodeID == "" {
		return "={{ $json." + p.Path + " }}"
	}

	return "={{ $('" + p.NodeID + "').item.json." + p.Path + " }}"
}

// UnmarshalJSON validates the variant on decode so stored templates cannot
// smuggle malformed expressions back into the catalog.
func (p *ParameterValue) UnmarshalJSON(data []byte) error {
	type alias ParameterValue

	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = ParameterValue(raw)

	return p.Validate()
}
