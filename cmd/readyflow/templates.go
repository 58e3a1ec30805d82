package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/readyreserve/readyflow/pkg/deploy"
	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/templates"
)

func listTemplates(_ *cli.Command) error {
	store := templates.NewStore()

	for _, tpl := range store.All() {
		required := tpl.RequiredFields()

		fmt.Printf("%s\n", tpl.ID)
		fmt.Printf("  Name:     %s\n", tpl.Name)
		fmt.Printf("  Category: %s\n", tpl.Category)

		if len(required) > 0 {
			fmt.Printf("  Required: %s\n", strings.Join(required, ", "))
		}

		fmt.Println()
	}

	return nil
}

func packageTemplate(cmd *cli.Command) error {
	automationID := cmd.String("automation-id")

	store := templates.NewStore()

	tpl, err := store.ByID(automationID)
	if err != nil {
		return err
	}

	values, err := loadConfigValues(cmd.String("config"))
	if err != nil {
		return err
	}

	schedule := models.Schedule(cmd.String("schedule"))
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("schedule %q: %w", schedule, err)
	}

	packager := deploy.New(cmd.String("public-origin"))

	pkg, err := packager.Package(tpl, values, schedule)
	if err != nil {
		return err
	}

	artifact, err := deploy.Artifact(pkg)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = automationID + "-workflow.json"
	}

	if err := os.WriteFile(output, artifact, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}

	fmt.Printf("Wrote %s\n", output)
	fmt.Printf("Callback URL: %s\n", pkg.WebhookURL)

	for _, instruction := range pkg.Instructions {
		fmt.Printf("  - %s\n", instruction)
	}

	return nil
}

func loadConfigValues(path string) (models.UserConfig, error) {
	if path == "" {
		return models.UserConfig{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var values models.UserConfig
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return values, nil
}
