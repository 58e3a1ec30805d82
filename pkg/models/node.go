package models

// NodeKind identifies what a workflow node does when the external engine
// runs the deployed graph.
type NodeKind string

const (
	NodeKindTriggerWebhook  NodeKind = "trigger-webhook"
	NodeKindTriggerSchedule NodeKind = "trigger-schedule"
	NodeKindActionHTTP      NodeKind = "action-http"
	NodeKindActionTransform NodeKind = "action-transform"
	NodeKindResponder       NodeKind = "responder"
)

// IsTrigger reports whether the kind is a graph entry point.
func (k NodeKind) IsTrigger() bool {
	return k == NodeKindTriggerWebhook || k == NodeKindTriggerSchedule
}

// TemplateNode is a single step in a workflow template. Parameters may be
// literals or interpolation expressions; see ParameterValue.
type TemplateNode struct {
	ID         string                    `json:"id"   validate:"required"`
	Name       string                    `json:"name" validate:"required,min=1"`
	Kind       NodeKind                  `json:"kind" validate:"required"`
	Parameters map[string]ParameterValue `json:"parameters,omitempty"`
}

// Connection points from a source node (the key in
// WorkflowTemplate.Connections) to a target node's input port.
type Connection struct {
	TargetNodeID string `json:"target_node_id" validate:"required"`
	PortIndex    int    `json:"port_index"`
}
