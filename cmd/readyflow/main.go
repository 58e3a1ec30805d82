// Package main provides the readyflow command line tool for working with
// workflow templates offline.
package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "readyflow",
		Usage:                 "Inspect and package automation templates",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			{
				Name:    "templates",
				Aliases: []string{"t"},
				Usage:   "Work with the built-in template catalog",
				Commands: []*cli.Command{
					{
						Name:    "list",
						Aliases: []string{"ls"},
						Usage:   "List the built-in templates",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return listTemplates(cmd)
						},
					},
				},
			},
			{
				Name:    "package",
				Aliases: []string{"p"},
				Usage:   "Generate a deployable workflow artifact from a template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "automation-id",
						Aliases:  []string{"a"},
						Usage:    "Template to package",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a JSON file with config field values",
					},
					&cli.StringFlag{
						Name:  "schedule",
						Usage: "Execution schedule (manual, hourly, daily, weekly)",
						Value: "manual",
					},
					&cli.StringFlag{
						Name:    "public-origin",
						Usage:   "Public origin used in the callback URL",
						Value:   "http://localhost:9091",
						Sources: cli.EnvVars("PUBLIC_ORIGIN"),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Artifact file to write (defaults to <automation-id>-workflow.json)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return packageTemplate(cmd)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
