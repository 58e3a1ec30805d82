// Package main provides the ReadyFlow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"

	"github.com/readyreserve/readyflow/pkg/deploy"
	"github.com/readyreserve/readyflow/pkg/engine"
	"github.com/readyreserve/readyflow/pkg/eventbus"
	"github.com/readyreserve/readyflow/pkg/execution"
	"github.com/readyreserve/readyflow/pkg/llm"
	"github.com/readyreserve/readyflow/pkg/notifier"
	"github.com/readyreserve/readyflow/pkg/persistence"
	"github.com/readyreserve/readyflow/pkg/services"
	"github.com/readyreserve/readyflow/pkg/templates"
	"github.com/readyreserve/readyflow/pkg/web"
)

type API struct {
	logger       *slog.Logger
	persistence  persistence.Persistence
	eventBus     eventbus.EventBus
	provider     llm.Provider
	tracer       trace.Tracer
	publicOrigin string
	validate     *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
	provider llm.Provider,
	tracer trace.Tracer,
	publicOrigin string,
) *API {
	return &API{
		logger:       logger,
		persistence:  persistence,
		eventBus:     eventBus,
		provider:     provider,
		tracer:       tracer,
		publicOrigin: publicOrigin,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	store := templates.NewStore()
	packager := deploy.New(a.publicOrigin)

	catalogService := services.NewCatalog(a.persistence)
	configService := services.NewConfig(a.persistence, store, a.eventBus)
	packagingService := services.NewPackaging(store, packager, a.persistence, a.eventBus)
	dispatcher := execution.NewDispatcher(a.persistence, a.provider, notifier.New(), a.eventBus, a.tracer)

	handlers := web.NewAPIHandlers(
		catalogService,
		configService,
		packagingService,
		dispatcher,
		store,
		engine.NewClient(),
		a.validate,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ReadyFlow API")
	})

	handlers.RegisterRoutes(app)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
