package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/readyreserve/readyflow/pkg/engine"
	"github.com/readyreserve/readyflow/pkg/execution"
	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/services"
	"github.com/readyreserve/readyflow/pkg/templates"
)

type APIHandlers struct {
	catalog    *services.Catalog
	config     *services.Config
	packaging  *services.Packaging
	dispatcher *execution.Dispatcher
	templates  templates.Store
	engine     *engine.Client
	validator  *validator.Validate
}

func NewAPIHandlers(
	catalog *services.Catalog,
	config *services.Config,
	packaging *services.Packaging,
	dispatcher *execution.Dispatcher,
	store templates.Store,
	engineClient *engine.Client,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		catalog:    catalog,
		config:     config,
		packaging:  packaging,
		dispatcher: dispatcher,
		templates:  store,
		engine:     engineClient,
		validator:  validator,
	}
}

// RegisterRoutes mounts every endpoint on the app. Automation routes live
// under /api so the packaged callback URLs resolve against this server.
func (h *APIHandlers) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	a := api.Group("/automations")
	a.Get("/", h.GetAutomations)
	a.Get("/:id", h.GetAutomation)
	a.Post("/:id/execute", h.ExecuteAutomation)
	a.Get("/:id/config", h.GetConfig)
	a.Put("/:id/config", h.SaveConfig)
	a.Get("/:id/logs", h.GetLogs)
	a.Post("/:id/package", h.PackageAutomation)
	a.Get("/:id/package/artifact", h.PackageArtifact)

	e := api.Group("/engine")
	e.Post("/test", h.EngineTest)
	e.Post("/workflows", h.EngineWorkflows)
	e.Post("/deploy", h.EngineDeploy)

	app.Get("/health", h.HealthCheck)
}

func (h *APIHandlers) GetAutomations(c fiber.Ctx) error {
	automations, err := h.catalog.Automations(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"automations": automations,
		"total_count": len(automations),
	})
}

func (h *APIHandlers) GetAutomation(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Automation ID is required")
	}

	automation, err := h.catalog.AutomationByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	response := AutomationResponse{Automation: automation}

	// Not every marketplace entry ships a deployable template.
	if tpl, err := h.templates.ByID(id); err == nil {
		response.ConfigFields = tpl.ConfigFields
		response.Instructions = tpl.DeploymentInstructions
	}

	return c.JSON(response)
}

func (h *APIHandlers) ExecuteAutomation(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Automation ID is required")
	}

	var req ExecuteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.dispatcher.Dispatch(c.Context(), execution.Request{
		AutomationID: id,
		UserID:       req.UserID,
		Input:        req.Input,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) GetConfig(c fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Query("user_id")

	if id == "" || userID == "" {
		return badRequest(c, "Automation ID and user_id are required")
	}

	config, err := h.config.GetConfig(c.Context(), userID, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(config)
}

func (h *APIHandlers) SaveConfig(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Automation ID is required")
	}

	var req SaveConfigRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	config := &models.RuntimeConfig{
		UserID:       req.UserID,
		AutomationID: id,
		SecretKey:    req.SecretKey,
		WebhookURL:   req.WebhookURL,
		CustomPrompt: req.CustomPrompt,
		Enabled:      req.Enabled,
		Schedule:     req.Schedule,
		Values:       req.Values,
	}

	saved, err := h.config.SaveConfig(c.Context(), config)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(saved)
}

func (h *APIHandlers) GetLogs(c fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Query("user_id")

	if id == "" || userID == "" {
		return badRequest(c, "Automation ID and user_id are required")
	}

	limit := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return badRequest(c, "Invalid limit parameter")
		}

		limit = parsed
	}

	entries, err := h.config.ListLogs(c.Context(), userID, id, limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"logs":        entries,
		"total_count": len(entries),
	})
}

func (h *APIHandlers) PackageAutomation(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Automation ID is required")
	}

	var req PackageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	pkg, err := h.packaging.BuildPackage(c.Context(), req.UserID, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(pkg)
}

func (h *APIHandlers) PackageArtifact(c fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Query("user_id")

	if id == "" || userID == "" {
		return badRequest(c, "Automation ID and user_id are required")
	}

	artifact, err := h.packaging.BuildArtifact(c.Context(), userID, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+id+`-workflow.json"`)

	return c.Send(artifact)
}

func (h *APIHandlers) EngineTest(c fiber.Ctx) error {
	var req EngineSessionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	session := h.engine.TestConnection(c.Context(), engine.NewSession(req.BaseURL, req.APIKey))

	return c.JSON(session)
}

func (h *APIHandlers) EngineWorkflows(c fiber.Ctx) error {
	var req EngineSessionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	workflows, err := h.engine.ListWorkflows(c.Context(), engine.NewSession(req.BaseURL, req.APIKey))
	if err != nil {
		return handleServiceError(c,
			services.NewConnectivityError("EngineWorkflows", "failed to list engine workflows", err))
	}

	return c.JSON(fiber.Map{
		"workflows":   workflows,
		"total_count": len(workflows),
	})
}

func (h *APIHandlers) EngineDeploy(c fiber.Ctx) error {
	var req EngineDeployRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	artifact, err := h.packaging.BuildArtifact(c.Context(), req.UserID, req.AutomationID)
	if err != nil {
		return handleServiceError(c, err)
	}

	workflow, err := h.engine.CreateWorkflow(c.Context(), engine.NewSession(req.BaseURL, req.APIKey), artifact)
	if err != nil {
		return handleServiceError(c,
			services.NewConnectivityError("EngineDeploy", "failed to import workflow into the engine", err))
	}

	return c.Status(fiber.StatusCreated).JSON(workflow)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.catalog.HealthCheck(c.Context())

	status := "unhealthy"
	message := "ReadyFlow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "ReadyFlow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
