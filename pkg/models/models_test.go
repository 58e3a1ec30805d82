package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requiredTag = "required"

// Automation Model Tests

func TestAutomation_Validation_ValidAutomation(t *testing.T) {
	automation := &Automation{
		ID:          "customer-support-chatbot",
		Title:       "Customer Support Chatbot",
		Description: "AI assistant that answers customer questions",
		Category:    "support",
		Features:    []string{"24/7 responses", "escalation"},
	}

	validate := validator.New()
	err := validate.Struct(automation)
	assert.NoError(t, err)
}

func TestAutomation_Validation_MissingTitle(t *testing.T) {
	automation := &Automation{
		ID:          "customer-support-chatbot",
		Title:       "",
		Description: "AI assistant",
	}

	validate := validator.New()
	err := validate.Struct(automation)
	assert.Error(t, err)

	var validationErrors validator.ValidationErrors

	require.True(t, errors.As(err, &validationErrors))

	found := false

	for _, fieldErr := range validationErrors {
		if fieldErr.Field() == "Title" && fieldErr.Tag() == requiredTag {
			found = true

			break
		}
	}

	assert.True(t, found, "Should have validation error for required Title field")
}

// ParameterValue Tests

func TestParameterValue_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		value   ParameterValue
		wantErr bool
	}{
		{
			name:  "literal string",
			value: Literal("hello"),
		},
		{
			name:  "literal nil is still a literal",
			value: Literal(nil),
		},
		{
			name:  "config ref",
			value: ConfigRef("api_key"),
		},
		{
			name:    "config ref without field id",
			value:   ParameterValue{Kind: ParameterKindConfigRef},
			wantErr: true,
		},
		{
			name:  "node output ref with node",
			value: NodeOutputRef("fetch-leads", "body.items"),
		},
		{
			name:  "node output ref without node",
			value: NodeOutputRef("", "body.message"),
		},
		{
			name:    "node output ref without path",
			value:   ParameterValue{Kind: ParameterKindNodeOutputRef, NodeID: "fetch-leads"},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			value:   ParameterValue{Kind: "mystery"},
			wantErr: true,
		},
		{
			name:    "zero value",
			value:   ParameterValue{},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.value.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParameterValue_Expression(t *testing.T) {
	testCases := []struct {
		name  string
		value ParameterValue
		want  string
	}{
		{
			name:  "immediate upstream output",
			value: NodeOutputRef("", "body.message"),
			want:  "={{ $json.body.message }}",
		},
		{
			name:  "named node output",
			value: NodeOutputRef("fetch-leads", "items"),
			want:  "={{ $('fetch-leads').item.json.items }}",
		},
		{
			name:  "literal has no expression",
			value: Literal("plain"),
			want:  "",
		},
		{
			name:  "config ref has no expression",
			value: ConfigRef("api_key"),
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.Expression())
		})
	}
}

func TestParameterValue_UnmarshalJSON_RejectsMalformed(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "valid literal",
			payload: `{"kind":"literal","literal":42}`,
		},
		{
			name:    "valid config ref",
			payload: `{"kind":"config-ref","field_id":"api_key"}`,
		},
		{
			name:    "config ref missing field id",
			payload: `{"kind":"config-ref"}`,
			wantErr: true,
		},
		{
			name:    "node output ref missing path",
			payload: `{"kind":"node-output-ref","node_id":"a"}`,
			wantErr: true,
		},
		{
			name:    "unknown kind",
			payload: `{"kind":"surprise"}`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p ParameterValue

			err := json.Unmarshal([]byte(tc.payload), &p)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParameterValue_JSONRoundTrip(t *testing.T) {
	original := ConfigRef("webhook_url")

	jsonData, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"kind":"config-ref"`)
	assert.Contains(t, string(jsonData), `"field_id":"webhook_url"`)

	var decoded ParameterValue

	err = json.Unmarshal(jsonData, &decoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

// Schedule Tests

func TestSchedule_CronExpression(t *testing.T) {
	testCases := []struct {
		schedule Schedule
		want     string
	}{
		{schedule: ScheduleManual, want: ""},
		{schedule: ScheduleHourly, want: "0 * * * *"},
		{schedule: ScheduleDaily, want: "0 9 * * *"},
		{schedule: ScheduleWeekly, want: "0 9 * * 1"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.schedule), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.schedule.CronExpression())
		})
	}
}

func TestSchedule_Validate(t *testing.T) {
	for _, s := range []Schedule{ScheduleManual, ScheduleHourly, ScheduleDaily, ScheduleWeekly} {
		t.Run(string(s), func(t *testing.T) {
			assert.NoError(t, s.Validate())
		})
	}

	assert.ErrorIs(t, Schedule("fortnightly").Validate(), ErrInvalidSchedule)
	assert.ErrorIs(t, Schedule("").Validate(), ErrInvalidSchedule)
}

// NodeKind Tests

func TestNodeKind_IsTrigger(t *testing.T) {
	assert.True(t, NodeKindTriggerWebhook.IsTrigger())
	assert.True(t, NodeKindTriggerSchedule.IsTrigger())
	assert.False(t, NodeKindActionHTTP.IsTrigger())
	assert.False(t, NodeKindActionTransform.IsTrigger())
	assert.False(t, NodeKindResponder.IsTrigger())
}

// WorkflowTemplate Tests

func testTemplate() *WorkflowTemplate {
	return &WorkflowTemplate{
		ID:          "lead-qualification",
		Name:        "Lead Qualification",
		Description: "Scores inbound leads",
		Category:    "sales",
		Nodes: []*TemplateNode{
			{
				ID:   "webhook-in",
				Name: "Incoming Lead",
				Kind: NodeKindTriggerWebhook,
			},
			{
				ID:   "score",
				Name: "Score Lead",
				Kind: NodeKindActionTransform,
				Parameters: map[string]ParameterValue{
					"crm_key": ConfigRef("crm_api_key"),
					"payload": NodeOutputRef("", "body"),
				},
			},
		},
		Connections: map[string][]Connection{
			"webhook-in": {{TargetNodeID: "score"}},
		},
		ConfigFields: []ConfigField{
			{
				ID:       "crm_api_key",
				Label:    "CRM API Key",
				Type:     FieldTypeSecret,
				Required: true,
				Category: FieldCategoryCredentials,
			},
			{
				ID:       "notify_email",
				Label:    "Notification Email",
				Type:     FieldTypeEmail,
				Category: FieldCategoryBusinessInfo,
			},
		},
	}
}

func TestWorkflowTemplate_Node(t *testing.T) {
	tpl := testTemplate()

	node := tpl.Node("score")
	require.NotNil(t, node)
	assert.Equal(t, NodeKindActionTransform, node.Kind)

	assert.Nil(t, tpl.Node("missing"))
}

func TestWorkflowTemplate_Field(t *testing.T) {
	tpl := testTemplate()

	field := tpl.Field("crm_api_key")
	require.NotNil(t, field)
	assert.Equal(t, FieldTypeSecret, field.Type)
	assert.True(t, field.Required)

	assert.Nil(t, tpl.Field("missing"))
}

func TestWorkflowTemplate_RequiredFields(t *testing.T) {
	tpl := testTemplate()

	assert.Equal(t, []string{"crm_api_key"}, tpl.RequiredFields())
}

func TestWorkflowTemplate_Validation(t *testing.T) {
	validate := validator.New()

	tpl := testTemplate()
	assert.NoError(t, validate.Struct(tpl))

	tpl.Name = "ab" // below min=3
	assert.Error(t, validate.Struct(tpl))
}

func TestConfigField_Validation_InvalidType(t *testing.T) {
	field := ConfigField{
		ID:       "api_key",
		Label:    "API Key",
		Type:     FieldType("checkbox"),
		Category: FieldCategoryCredentials,
	}

	validate := validator.New()
	assert.Error(t, validate.Struct(field))
}

// ResolvedGraph Tests

func TestResolvedGraph_UnresolvedFields(t *testing.T) {
	graph := &ResolvedGraph{
		AutomationID: "lead-qualification",
		Nodes: []*ResolvedNode{
			{
				ID:   "score",
				Kind: NodeKindActionTransform,
				Parameters: map[string]ResolvedParameter{
					"crm_key": Unresolved("crm_api_key"),
					"payload": PreservedExpression("={{ $json.body }}"),
				},
			},
			{
				ID:   "notify",
				Kind: NodeKindActionHTTP,
				Parameters: map[string]ResolvedParameter{
					"to":  Unresolved("notify_email"),
					"key": Unresolved("crm_api_key"), // duplicate field
				},
			},
		},
	}

	assert.Equal(t, []string{"crm_api_key", "notify_email"}, graph.UnresolvedFields())
}

func TestResolvedGraph_UnresolvedFields_Empty(t *testing.T) {
	graph := &ResolvedGraph{
		Nodes: []*ResolvedNode{
			{
				ID: "done",
				Parameters: map[string]ResolvedParameter{
					"value": ResolvedValue("all set"),
				},
			},
		},
	}

	assert.Empty(t, graph.UnresolvedFields())
}

func TestResolvedParameter_IsUnresolved(t *testing.T) {
	assert.True(t, Unresolved("api_key").IsUnresolved())
	assert.False(t, ResolvedValue("x").IsUnresolved())
	assert.False(t, PreservedExpression("={{ $json.a }}").IsUnresolved())
}

// RuntimeConfig Tests

func TestRuntimeConfig_Validation(t *testing.T) {
	validate := validator.New()

	cfg := &RuntimeConfig{
		UserID:       "user-123",
		AutomationID: "lead-qualification",
		Schedule:     ScheduleDaily,
		WebhookURL:   "https://example.com/hook",
		Values:       UserConfig{"crm_api_key": "sk-test"},
	}
	assert.NoError(t, validate.Struct(cfg))

	cfg.WebhookURL = "not a url"
	assert.Error(t, validate.Struct(cfg))

	cfg.WebhookURL = ""
	cfg.Schedule = "sometimes"
	assert.Error(t, validate.Struct(cfg))
}
