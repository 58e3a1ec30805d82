// Package engine is the HTTP client for the external node-based workflow
// engine: connection probing, workflow listing and creation, and manual
// execution.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/readyreserve/readyflow/pkg/log"
)

const (
	apiKeyHeader   = "X-N8N-API-KEY"
	apiPathPrefix  = "/api/v1"
	probeTimeout   = 5 * time.Second
	requestTimeout = 30 * time.Second
)

// ConnectionState is where a session sits in its probe lifecycle.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
)

// ConnectionSession is a plain value describing one engine connection. It
// carries no hidden state: callers hold it, pass it in, and receive an
// updated copy back from TestConnection. A connected session stays connected
// until the next probe says otherwise.
type ConnectionSession struct {
	BaseURL string          `json:"base_url"`
	APIKey  string          `json:"-"`
	State   ConnectionState `json:"state"`
	Version string          `json:"version,omitempty"`
}

// NewSession returns a disconnected session for the given engine.
func NewSession(baseURL, apiKey string) ConnectionSession {
	return ConnectionSession{
		BaseURL: baseURL,
		APIKey:  apiKey,
		State:   StateDisconnected,
	}
}

// EngineWorkflow is a workflow as the engine reports it.
type EngineWorkflow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Execution is the engine's record of one workflow run.
type Execution struct {
	ID        string         `json:"id"`
	Finished  bool           `json:"finished"`
	Mode      string         `json:"mode"`
	StartedAt time.Time      `json:"startedAt"`
	Data      map[string]any `json:"data,omitempty"`
}

// Client talks to one workflow engine instance.
type Client struct {
	http *http.Client
}

// NewClient returns a Client with sane timeouts.
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: requestTimeout},
	}
}

// TestConnection probes the engine's status endpoint. Connectivity failures
// are a normal outcome, not an error: the returned session carries
// State=disconnected and the caller renders that. The session passes through
// connecting while the probe is in flight.
func (c *Client) TestConnection(ctx context.Context, session ConnectionSession) ConnectionSession {
	session.State = StateConnecting
	session.Version = ""

	logger := log.WithModule("engine")

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var status struct {
		Version string `json:"version"`
	}

	if err := c.request(ctx, session, http.MethodGet, "/active", nil, &status); err != nil {
		logger.Warn("engine connection probe failed", "base_url", session.BaseURL, "error", err)

		session.State = StateDisconnected

		return session
	}

	session.State = StateConnected
	session.Version = status.Version

	return session
}

// ListWorkflows fetches all workflows known to the engine.
func (c *Client) ListWorkflows(ctx context.Context, session ConnectionSession) ([]EngineWorkflow, error) {
	var workflows []EngineWorkflow

	if err := c.request(ctx, session, http.MethodGet, "/workflows", nil, &workflows); err != nil {
		return nil, fmt.Errorf("listing workflows: %w", err)
	}

	return workflows, nil
}

// CreateWorkflow imports a serialized workflow artifact into the engine and
// returns the created workflow.
func (c *Client) CreateWorkflow(ctx context.Context, session ConnectionSession, artifact []byte) (*EngineWorkflow, error) {
	var created EngineWorkflow

	if err := c.request(ctx, session, http.MethodPost, "/workflows", artifact, &created); err != nil {
		return nil, fmt.Errorf("creating workflow: %w", err)
	}

	return &created, nil
}

// ExecuteWorkflow triggers a manual run of an engine workflow.
func (c *Client) ExecuteWorkflow(ctx context.Context, session ConnectionSession, workflowID string, payload map[string]any) (*Execution, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding execution payload: %w", err)
	}

	var execution Execution

	path := "/workflows/" + workflowID + "/execute"
	if err := c.request(ctx, session, http.MethodPost, path, body, &execution); err != nil {
		return nil, fmt.Errorf("executing workflow %s: %w", workflowID, err)
	}

	return &execution, nil
}

func (c *Client) request(ctx context.Context, session ConnectionSession, method, path string, body []byte, out any) error {
	url := session.BaseURL + apiPathPrefix + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if session.APIKey != "" {
		req.Header.Set(apiKeyHeader, session.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("engine returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding engine response: %w", err)
	}

	return nil
}
