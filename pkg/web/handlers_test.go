package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readyreserve/readyflow/pkg/deploy"
	"github.com/readyreserve/readyflow/pkg/engine"
	"github.com/readyreserve/readyflow/pkg/execution"
	"github.com/readyreserve/readyflow/pkg/llm"
	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/notifier"
	"github.com/readyreserve/readyflow/pkg/persistence/file"
	"github.com/readyreserve/readyflow/pkg/services"
	"github.com/readyreserve/readyflow/pkg/templates"
	"github.com/readyreserve/readyflow/pkg/web"
)

type stubProvider struct {
	response *llm.Response
	err      error
}

func (p *stubProvider) Generate(_ context.Context, _ llm.Request) (*llm.Response, error) {
	if p.err != nil {
		return nil, p.err
	}

	return p.response, nil
}

func setupTestApp(t *testing.T) (*fiber.App, *file.Persistence) {
	t.Helper()

	p := file.NewPersistence(t.TempDir())
	store := templates.NewStore()
	validate := validator.New(validator.WithRequiredStructEnabled())

	catalog := services.NewCatalog(p)
	config := services.NewConfig(p, store, nil)
	packaging := services.NewPackaging(store, deploy.New("https://app.readyreserve.test"), p, nil)

	provider := &stubProvider{response: &llm.Response{Content: "Handled.", Model: "gpt-3.5-turbo"}}
	dispatcher := execution.NewDispatcher(p, provider, notifier.New(), nil, nil)

	handlers := web.NewAPIHandlers(catalog, config, packaging, dispatcher, store, engine.NewClient(), validate)

	app := fiber.New()
	handlers.RegisterRoutes(app)

	err := p.SaveAutomation(context.Background(), &models.Automation{
		ID:          "customer-support-chatbot",
		Title:       "Customer Support Chatbot",
		Description: "Responds to customer questions around the clock.",
		Category:    "Customer Engagement",
	})
	require.NoError(t, err)

	return app, p
}

func jsonRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	return decoded
}

func saveSupportConfig(t *testing.T, app *fiber.App) {
	t.Helper()

	req := jsonRequest(t, http.MethodPut, "/api/automations/customer-support-chatbot/config", web.SaveConfigRequest{
		UserID:   "user-1",
		Schedule: models.ScheduleManual,
		Values: models.UserConfig{
			"openaiApiKey": "sk-test",
			"businessName": "Acme Corp",
			"supportEmail": "help@acme.test",
		},
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetAutomations(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/automations/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["total_count"])
}

func TestGetAutomation(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/automations/customer-support-chatbot", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Customer Support Chatbot", body["title"])
	assert.NotEmpty(t, body["config_fields"])
	assert.NotEmpty(t, body["deployment_instructions"])
}

func TestGetAutomation_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/automations/ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExecuteAutomation(t *testing.T) {
	app, p := setupTestApp(t)

	req := jsonRequest(t, http.MethodPost, "/api/automations/customer-support-chatbot/execute", web.ExecuteRequest{
		UserID: "user-1",
		Input:  map[string]any{"prompt": "Where is my order?"},
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Handled.", body["result"])
	assert.Contains(t, body, "duration")

	entries, err := p.LogsByUserAndAutomation(context.Background(), "user-1", "customer-support-chatbot", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExecuteAutomation_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		payload        any
		expectedStatus int
	}{
		{
			name:           "missing user id",
			path:           "/api/automations/customer-support-chatbot/execute",
			payload:        web.ExecuteRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown automation",
			path:           "/api/automations/ghost/execute",
			payload:        web.ExecuteRequest{UserID: "user-1"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)

			resp, err := app.Test(jsonRequest(t, http.MethodPost, tt.path, tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestConfigRoundtrip(t *testing.T) {
	app, _ := setupTestApp(t)

	saveSupportConfig(t, app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/automations/customer-support-chatbot/config?user_id=user-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	values, ok := body["values"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", values["businessName"])
}

func TestSaveConfig_InvalidValues(t *testing.T) {
	app, _ := setupTestApp(t)

	req := jsonRequest(t, http.MethodPut, "/api/automations/customer-support-chatbot/config", web.SaveConfigRequest{
		UserID:   "user-1",
		Schedule: models.ScheduleManual,
		Values:   models.UserConfig{"supportEmail": "not-an-email"},
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetConfig_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/automations/customer-support-chatbot/config?user_id=nobody", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetLogs(t *testing.T) {
	app, p := setupTestApp(t)
	ctx := context.Background()

	for range 3 {
		err := p.AppendLog(ctx, &models.ExecutionLogEntry{
			AutomationID: "customer-support-chatbot",
			UserID:       "user-1",
			Status:       models.ExecutionStatusSuccess,
		})
		require.NoError(t, err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/automations/customer-support-chatbot/logs?user_id=user-1&limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 2, body["total_count"])
}

func TestPackageAutomation(t *testing.T) {
	app, _ := setupTestApp(t)

	saveSupportConfig(t, app)

	req := jsonRequest(t, http.MethodPost, "/api/automations/customer-support-chatbot/package",
		web.PackageRequest{UserID: "user-1"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t,
		"https://app.readyreserve.test/api/automations/customer-support-chatbot/execute",
		body["webhook_url"])
}

func TestPackageAutomation_IncompleteConfig(t *testing.T) {
	app, _ := setupTestApp(t)

	req := jsonRequest(t, http.MethodPost, "/api/automations/customer-support-chatbot/package",
		web.PackageRequest{UserID: "user-1"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	missing, ok := body["missing_fields"].([]any)
	require.True(t, ok)
	assert.Contains(t, missing, "openaiApiKey")
}

func TestPackageArtifact(t *testing.T) {
	app, _ := setupTestApp(t)

	saveSupportConfig(t, app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/automations/customer-support-chatbot/package/artifact?user_id=user-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "customer-support-chatbot-workflow.json")

	body := decodeBody(t, resp)
	assert.Equal(t, "ReadyReserve AI Customer Support", body["name"])
}

func TestEngineTest(t *testing.T) {
	engineServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-N8N-API-KEY"))
		_ = json.NewEncoder(w).Encode(map[string]string{"version": "1.50.0"})
	}))
	defer engineServer.Close()

	app, _ := setupTestApp(t)

	req := jsonRequest(t, http.MethodPost, "/api/engine/test", web.EngineSessionRequest{
		BaseURL: engineServer.URL,
		APIKey:  "test-key",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "connected", body["state"])
	assert.Equal(t, "1.50.0", body["version"])
}

func TestEngineTest_UnreachableEngine(t *testing.T) {
	engineServer := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	engineServer.Close()

	app, _ := setupTestApp(t)

	req := jsonRequest(t, http.MethodPost, "/api/engine/test", web.EngineSessionRequest{
		BaseURL: engineServer.URL,
		APIKey:  "test-key",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "disconnected", body["state"])
}

func TestEngineDeploy(t *testing.T) {
	engineServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/workflows", r.URL.Path)

		var workflow map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&workflow))
		assert.Equal(t, "ReadyReserve AI Customer Support", workflow["name"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "wf-1", "name": workflow["name"], "active": false})
	}))
	defer engineServer.Close()

	app, _ := setupTestApp(t)

	saveSupportConfig(t, app)

	req := jsonRequest(t, http.MethodPost, "/api/engine/deploy", web.EngineDeployRequest{
		EngineSessionRequest: web.EngineSessionRequest{BaseURL: engineServer.URL, APIKey: "test-key"},
		UserID:               "user-1",
		AutomationID:         "customer-support-chatbot",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "wf-1", body["id"])
}

func TestEngineDeploy_UnreachableEngine(t *testing.T) {
	engineServer := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	engineServer.Close()

	app, _ := setupTestApp(t)

	saveSupportConfig(t, app)

	req := jsonRequest(t, http.MethodPost, "/api/engine/deploy", web.EngineDeployRequest{
		EngineSessionRequest: web.EngineSessionRequest{BaseURL: engineServer.URL, APIKey: "test-key"},
		UserID:               "user-1",
		AutomationID:         "customer-support-chatbot",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
}
