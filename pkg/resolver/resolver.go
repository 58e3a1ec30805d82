// Package resolver merges a workflow template with one user's configuration,
// producing a resolved graph ready for validation and packaging.
package resolver

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/readyreserve/readyflow/pkg/models"
)

// FieldError reports a config field that could not be substituted into a
// node parameter.
type FieldError struct {
	FieldID   string `json:"field_id"`
	NodeID    string `json:"node_id"`
	Parameter string `json:"parameter"`
	Reason    string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %q on node %q (parameter %q): %s",
		e.FieldID, e.NodeID, e.Parameter, e.Reason)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Resolve substitutes config values into every config-bound node parameter.
// It is pure: same template and config always yield the same graph. Node
// order follows template order. Missing required fields and format failures
// are reported per occurrence; the corresponding parameters stay unresolved
// so the graph validator can aggregate them.
func Resolve(tpl *models.WorkflowTemplate, cfg models.UserConfig) (*models.ResolvedGraph, []FieldError) {
	graph := &models.ResolvedGraph{
		AutomationID: tpl.ID,
		Nodes:        make([]*models.ResolvedNode, 0, len(tpl.Nodes)),
		Connections:  make(map[string][]models.Connection, len(tpl.Connections)),
	}

	for source, targets := range tpl.Connections {
		graph.Connections[source] = append([]models.Connection(nil), targets...)
	}

	var errs []FieldError

	for _, node := range tpl.Nodes {
		resolved := &models.ResolvedNode{
			ID:   node.ID,
			Name: node.Name,
			Kind: node.Kind,
		}

		if len(node.Parameters) > 0 {
			resolved.Parameters = make(map[string]models.ResolvedParameter, len(node.Parameters))
		}

		for name, param := range node.Parameters {
			value, fieldErr := resolveParameter(tpl, node, name, param, cfg)
			if fieldErr != nil {
				errs = append(errs, *fieldErr)
			}

			resolved.Parameters[name] = value
		}

		graph.Nodes = append(graph.Nodes, resolved)
	}

	return graph, errs
}

func resolveParameter(
	tpl *models.WorkflowTemplate,
	node *models.TemplateNode,
	name string,
	param models.ParameterValue,
	cfg models.UserConfig,
) (models.ResolvedParameter, *FieldError) {
	switch param.Kind {
	case models.ParameterKindLiteral:
		return models.ResolvedValue(param.Literal), nil

	case models.ParameterKindNodeOutputRef:
		// Evaluated by the external engine at run time; keep verbatim.
		return models.PreservedExpression(param.Expression()), nil

	case models.ParameterKindConfigRef:
		return resolveConfigRef(tpl, node, name, param.FieldID, cfg)

	default:
		return models.Unresolved(param.FieldID), &FieldError{
			FieldID:   param.FieldID,
			NodeID:    node.ID,
			Parameter: name,
			Reason:    fmt.Sprintf("unknown parameter kind %q", param.Kind),
		}
	}
}

func resolveConfigRef(
	tpl *models.WorkflowTemplate,
	node *models.TemplateNode,
	name, fieldID string,
	cfg models.UserConfig,
) (models.ResolvedParameter, *FieldError) {
	field := tpl.Field(fieldID)
	if field == nil {
		return models.Unresolved(fieldID), &FieldError{
			FieldID:   fieldID,
			NodeID:    node.ID,
			Parameter: name,
			Reason:    "template declares no such config field",
		}
	}

	value, present := cfg[fieldID]
	if !present || value == "" {
		if field.Required {
			return models.Unresolved(fieldID), &FieldError{
				FieldID:   fieldID,
				NodeID:    node.ID,
				Parameter: name,
				Reason:    "required config field is missing",
			}
		}

		return models.ResolvedValue(""), nil
	}

	if err := checkFormat(field.Type, value); err != nil {
		return models.Unresolved(fieldID), &FieldError{
			FieldID:   fieldID,
			NodeID:    node.ID,
			Parameter: name,
			Reason:    err.Error(),
		}
	}

	return models.ResolvedValue(value), nil
}

func checkFormat(fieldType models.FieldType, value string) error {
	switch fieldType {
	case models.FieldTypeEmail:
		if err := validate.Var(value, "email"); err != nil {
			return fmt.Errorf("value is not a valid email address")
		}
	case models.FieldTypeURL:
		if err := validate.Var(value, "url"); err != nil {
			return fmt.Errorf("value is not a valid URL")
		}
	}

	return nil
}
