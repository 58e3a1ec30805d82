package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readyreserve/readyflow/pkg/models"
)

func linearGraph() *models.ResolvedGraph {
	return &models.ResolvedGraph{
		AutomationID: "linear",
		Nodes: []*models.ResolvedNode{
			{ID: "trigger", Kind: models.NodeKindTriggerWebhook},
			{ID: "action", Kind: models.NodeKindActionHTTP, Parameters: map[string]models.ResolvedParameter{
				"url": models.ResolvedValue("https://example.com"),
			}},
			{ID: "respond", Kind: models.NodeKindResponder},
		},
		Connections: map[string][]models.Connection{
			"trigger": {{TargetNodeID: "action"}},
			"action":  {{TargetNodeID: "respond"}},
		},
	}
}

func TestValidate_ValidGraph(t *testing.T) {
	assert.Empty(t, Validate(linearGraph()))
}

func TestValidate_DanglingTarget(t *testing.T) {
	g := linearGraph()
	g.Connections["action"] = append(g.Connections["action"], models.Connection{TargetNodeID: "ghost"})

	errs := Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindDanglingTarget, errs[0].Kind)
	assert.Equal(t, "ghost", errs[0].NodeID)
}

func TestValidate_DanglingSource(t *testing.T) {
	g := linearGraph()
	g.Connections["ghost"] = []models.Connection{{TargetNodeID: "respond"}}

	errs := Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindDanglingSource, errs[0].Kind)
	assert.Equal(t, "ghost", errs[0].NodeID)
}

func TestValidate_Cycle(t *testing.T) {
	g := linearGraph()
	g.Connections["respond"] = []models.Connection{{TargetNodeID: "action"}}

	errs := Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindCycle, errs[0].Kind)
}

func TestValidate_SelfLoop(t *testing.T) {
	g := linearGraph()
	g.Connections["action"] = append(g.Connections["action"], models.Connection{TargetNodeID: "action"})

	errs := Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindCycle, errs[0].Kind)
	assert.Equal(t, "action", errs[0].NodeID)
}

func TestValidate_NoTrigger(t *testing.T) {
	g := linearGraph()
	g.Nodes[0].Kind = models.NodeKindActionTransform

	errs := Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindNoTrigger, errs[0].Kind)
}

func TestValidate_MultipleTriggers(t *testing.T) {
	g := linearGraph()
	g.Nodes = append(g.Nodes, &models.ResolvedNode{
		ID: "second-trigger", Kind: models.NodeKindTriggerSchedule,
	})

	errs := Validate(g)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorKindMultipleTrigger, errs[0].Kind)
	assert.Equal(t, "second-trigger", errs[0].NodeID)
}

func TestValidate_UnresolvedParameters(t *testing.T) {
	g := linearGraph()
	g.Nodes[1].Parameters["api_key"] = models.Unresolved("apiKey")
	g.Nodes[1].Parameters["endpoint"] = models.Unresolved("crmEndpoint")

	errs := Validate(g)
	require.Len(t, errs, 2)

	// Sorted by parameter name within the node.
	assert.Equal(t, ErrorKindUnresolved, errs[0].Kind)
	assert.Equal(t, "apiKey", errs[0].FieldID)
	assert.Equal(t, "crmEndpoint", errs[1].FieldID)
	assert.Contains(t, errs[0].Detail, "api_key")
}

func TestValidate_AggregatesAllProblems(t *testing.T) {
	g := linearGraph()
	g.Nodes[0].Kind = models.NodeKindActionTransform // no trigger
	g.Nodes[1].Parameters["api_key"] = models.Unresolved("apiKey")
	g.Connections["respond"] = []models.Connection{{TargetNodeID: "ghost"}}

	errs := Validate(g)

	kinds := make(map[ErrorKind]int)
	for _, e := range errs {
		kinds[e.Kind]++
	}

	assert.Equal(t, 1, kinds[ErrorKindNoTrigger])
	assert.Equal(t, 1, kinds[ErrorKindUnresolved])
	assert.Equal(t, 1, kinds[ErrorKindDanglingTarget])
}

func TestValidate_DoesNotMutate(t *testing.T) {
	g := linearGraph()
	_ = Validate(g)

	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Connections, 2)
}
