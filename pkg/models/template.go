package models

// FieldType constrains how a config field's value is validated and rendered.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeSecret    FieldType = "secret"
	FieldTypeEmail     FieldType = "email"
	FieldTypeURL       FieldType = "url"
	FieldTypeMultiline FieldType = "multiline"
)

// FieldCategory groups config fields in the configuration surface.
type FieldCategory string

const (
	FieldCategoryCredentials  FieldCategory = "credentials"
	FieldCategoryBusinessInfo FieldCategory = "business-info"
	FieldCategoryEndpoints    FieldCategory = "endpoints"
	FieldCategoryCustom       FieldCategory = "custom"
)

// ConfigField declares one user-supplied value a template needs. The set of
// fields on a template is the contract a UserConfig must satisfy.
type ConfigField struct {
	ID          string        `json:"id"    validate:"required"`
	Label       string        `json:"label" validate:"required"`
	Type        FieldType     `json:"type"  validate:"required,oneof=text secret email url multiline"`
	Required    bool          `json:"required"`
	Placeholder string        `json:"placeholder,omitempty"`
	Description string        `json:"description,omitempty"`
	Category    FieldCategory `json:"category" validate:"required,oneof=credentials business-info endpoints custom"`
}

// UserConfig maps config field ids to the values one user supplied for one
// automation. At most one live config exists per (user, automation) pair.
type UserConfig map[string]string

// WorkflowTemplate is the immutable, parameterized workflow graph definition
// for one automation. Published at authoring time, never mutated at runtime.
type WorkflowTemplate struct {
	ID          string   `json:"id"          validate:"required"`
	Name        string   `json:"name"        validate:"required,min=3"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`

	Nodes []*TemplateNode `json:"nodes"`
	// Connections maps a source node id to the targets its output feeds.
	Connections map[string][]Connection `json:"connections"`

	ConfigFields           []ConfigField `json:"config_fields,omitempty"`
	DeploymentInstructions []string      `json:"deployment_instructions,omitempty"`
}

// Node returns the node with the given id, or nil.
func (t *WorkflowTemplate) Node(id string) *TemplateNode {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n
		}
	}

	return nil
}

// Field returns the config field with the given id, or nil.
func (t *WorkflowTemplate) Field(id string) *ConfigField {
	for i := range t.ConfigFields {
		if t.ConfigFields[i].ID == id {
			return &t.ConfigFields[i]
		}
	}

	return nil
}

// RequiredFields returns the ids of all required config fields, in
// declaration order.
func (t *WorkflowTemplate) RequiredFields() []string {
	ids := make([]string, 0, len(t.ConfigFields))

	for _, f := range t.ConfigFields {
		if f.Required {
			ids = append(ids, f.ID)
		}
	}

	return ids
}
