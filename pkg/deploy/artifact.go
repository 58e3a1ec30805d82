package deploy

import (
	"encoding/json"
	"fmt"

	"github.com/readyreserve/readyflow/pkg/models"
)

// engineNodeTypes maps graph node kinds to the engine's node type names.
var engineNodeTypes = map[models.NodeKind]string{
	models.NodeKindTriggerWebhook:  "n8n-nodes-base.webhook",
	models.NodeKindTriggerSchedule: "n8n-nodes-base.scheduleTrigger",
	models.NodeKindActionHTTP:      "n8n-nodes-base.httpRequest",
	models.NodeKindActionTransform: "n8n-nodes-base.function",
	models.NodeKindResponder:       "n8n-nodes-base.respondToWebhook",
}

type artifactNode struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	TypeVersion float64        `json:"typeVersion"`
	Position    [2]int         `json:"position"`
	Parameters  map[string]any `json:"parameters"`
}

type artifactConnection struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

type artifactSettings struct {
	ExecutionOrder string `json:"executionOrder"`
}

type artifact struct {
	Name        string                                       `json:"name"`
	Nodes       []artifactNode                               `json:"nodes"`
	Connections map[string]map[string][][]artifactConnection `json:"connections"`
	Settings    artifactSettings                             `json:"settings"`
}

// Artifact serializes a deployment package into the engine's importable
// workflow JSON. Preserved node-output expressions are emitted in the
// engine's `={{ ... }}` interpolation syntax; everything else is emitted as
// its concrete value. Serialization is deterministic for a given package.
func Artifact(pkg *models.DeploymentPackage) ([]byte, error) {
	doc := artifact{
		Name:        pkg.Name,
		Nodes:       make([]artifactNode, 0, len(pkg.Graph.Nodes)),
		Connections: make(map[string]map[string][][]artifactConnection, len(pkg.Graph.Connections)),
		Settings:    artifactSettings{ExecutionOrder: "v1"},
	}

	for i, node := range pkg.Graph.Nodes {
		engineType, ok := engineNodeTypes[node.Kind]
		if !ok {
			return nil, fmt.Errorf("node %q has unknown kind %q", node.ID, node.Kind)
		}

		params := make(map[string]any, len(node.Parameters))

		for name, p := range node.Parameters {
			if p.Expression != "" {
				params[name] = p.Expression
			} else {
				params[name] = p.Value
			}
		}

		doc.Nodes = append(doc.Nodes, artifactNode{
			ID:          node.ID,
			Name:        node.Name,
			Type:        engineType,
			TypeVersion: 1,
			Position:    [2]int{100 + 300*i, 100},
			Parameters:  params,
		})
	}

	for source, targets := range pkg.Graph.Connections {
		conns := make([]artifactConnection, 0, len(targets))
		for _, conn := range targets {
			conns = append(conns, artifactConnection{
				Node:  conn.TargetNodeID,
				Type:  "main",
				Index: conn.PortIndex,
			})
		}

		doc.Connections[source] = map[string][][]artifactConnection{
			"main": {conns},
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}
