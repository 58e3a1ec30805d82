package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/readyreserve/readyflow/pkg/cmd"
	"github.com/readyreserve/readyflow/pkg/llm"
	"github.com/readyreserve/readyflow/pkg/log"
	"github.com/readyreserve/readyflow/pkg/otelhelper"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "readyflow-api",
		Usage:                 "Serve the automation marketplace API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "public-origin",
				Usage:   "Public origin used in generated webhook callback URLs",
				Value:   "http://localhost:9091",
				Sources: cli.EnvVars("PUBLIC_ORIGIN"),
			},
			&cli.StringFlag{
				Name:    "llm-provider",
				Usage:   "Language model provider (openai, anthropic)",
				Value:   "openai",
				Sources: cli.EnvVars("LLM_PROVIDER"),
			},
			&cli.StringFlag{
				Name:    "llm-model",
				Usage:   "Language model to use (empty selects the provider default)",
				Sources: cli.EnvVars("LLM_MODEL"),
			},
			&cli.StringFlag{
				Name:     "llm-api-key",
				Usage:    "API key for the language model provider",
				Required: true,
				Sources:  cli.EnvVars("LLM_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing ReadyFlow API")

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				err := persistence.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			provider, err := llm.New(
				command.String("llm-provider"),
				command.String("llm-api-key"),
				command.String("llm-model"),
			)
			if err != nil {
				return err
			}

			tracer, err := otelhelper.NewTracer(ctx, "readyflow-api")
			if err != nil {
				logger.WarnContext(ctx, "Tracing disabled", "error", err)

				tracer = nil
			}

			api := NewAPI(
				logger,
				persistence,
				eventBus,
				provider,
				tracer,
				command.String("public-origin"),
			)

			return api.Start(command.Int("port"))
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
