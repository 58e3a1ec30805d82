// Package configschema derives a JSON schema from a template's config
// fields and validates user-supplied values against it. Saving a
// configuration is permissive about absent fields (users fill forms
// incrementally) but strict about the format of values that are present.
package configschema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/readyreserve/readyflow/pkg/models"
)

// Schema builds the JSON schema describing a template's user configuration.
// Required fields are not marked required in the schema; completeness is
// enforced at packaging time, not at save time.
func Schema(tpl *models.WorkflowTemplate) map[string]any {
	properties := make(map[string]any, len(tpl.ConfigFields))

	for _, field := range tpl.ConfigFields {
		property := map[string]any{
			"type":        "string",
			"description": field.Description,
		}

		switch field.Type {
		case models.FieldTypeEmail:
			property["format"] = "email"
		case models.FieldTypeURL:
			property["format"] = "uri"
		}

		properties[field.ID] = property
	}

	return map[string]any{
		"type":                 "object",
		"title":                tpl.Name,
		"properties":           properties,
		"additionalProperties": false,
	}
}

// Validate checks user-supplied values against the template's schema.
// Unknown field ids and format violations are errors; missing fields are
// not.
func Validate(tpl *models.WorkflowTemplate, cfg models.UserConfig) error {
	document := make(map[string]any, len(cfg))
	for id, value := range cfg {
		document[id] = value
	}

	schemaLoader := gojsonschema.NewGoLoader(Schema(tpl))
	dataLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("validating config schema: %w", err)
	}

	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}

		return fmt.Errorf("validation errors: %s", strings.Join(descriptions, "; "))
	}

	return nil
}
