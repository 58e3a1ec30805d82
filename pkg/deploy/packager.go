// Package deploy turns templates plus user configuration into exportable
// deployment packages for the external workflow engine.
package deploy

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/readyreserve/readyflow/pkg/graph"
	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/resolver"
	"github.com/readyreserve/readyflow/pkg/templates"
)

// ErrorKindInvalidCron marks a schedule-trigger node whose cron parameter
// does not parse.
const ErrorKindInvalidCron graph.ErrorKind = "invalid-cron"

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// PackageError aggregates everything that prevented packaging. Nothing
// partial is emitted alongside it.
type PackageError struct {
	AutomationID string                `json:"automation_id"`
	FieldErrors  []resolver.FieldError `json:"field_errors,omitempty"`
	GraphErrors  []graph.GraphError    `json:"graph_errors,omitempty"`
}

func (e *PackageError) Error() string {
	return fmt.Sprintf("cannot package automation %q: %d field error(s), %d graph error(s)",
		e.AutomationID, len(e.FieldErrors), len(e.GraphErrors))
}

// MissingFields returns the distinct config field ids named by the field
// errors, in first-occurrence order.
func (e *PackageError) MissingFields() []string {
	seen := make(map[string]bool)
	fields := make([]string, 0, len(e.FieldErrors))

	for _, fe := range e.FieldErrors {
		if fe.FieldID != "" && !seen[fe.FieldID] {
			seen[fe.FieldID] = true
			fields = append(fields, fe.FieldID)
		}
	}

	return fields
}

// Packager builds deployment packages rooted at one public origin.
type Packager struct {
	origin string
	now    func() time.Time
}

// New returns a Packager whose webhook URLs are rooted at origin.
func New(origin string) *Packager {
	return &Packager{origin: origin, now: time.Now}
}

// WebhookURL derives the callback endpoint for an automation. Pure: the
// same origin and id always produce the same URL, so regenerating a package
// never breaks an already-deployed workflow.
func WebhookURL(origin, automationID string) string {
	return origin + "/api/automations/" + automationID + "/execute"
}

// Package resolves the template against the user's configuration, validates
// the graph, and emits a deployment package. Any resolution or validation
// failure aborts with a *PackageError carrying the complete error list. A
// non-manual schedule overrides the cron parameter of schedule-trigger
// nodes.
func (p *Packager) Package(
	tpl *models.WorkflowTemplate,
	cfg models.UserConfig,
	schedule models.Schedule,
) (*models.DeploymentPackage, error) {
	resolved, fieldErrs := resolver.Resolve(tpl, cfg)

	webhookURL := WebhookURL(p.origin, tpl.ID)
	applyDeploymentParameters(resolved, webhookURL, schedule)

	graphErrs := graph.Validate(resolved)
	graphErrs = append(graphErrs, validateCronParameters(resolved)...)

	if len(fieldErrs) > 0 || len(graphErrs) > 0 {
		return nil, &PackageError{
			AutomationID: tpl.ID,
			FieldErrors:  fieldErrs,
			GraphErrors:  graphErrs,
		}
	}

	return &models.DeploymentPackage{
		AutomationID: tpl.ID,
		Name:         tpl.Name,
		Graph:        resolved,
		WebhookURL:   webhookURL,
		Instructions: append([]string(nil), tpl.DeploymentInstructions...),
		GeneratedAt:  p.now().UTC(),
	}, nil
}

// applyDeploymentParameters injects the deployment-specific values the
// template cannot know at authoring time: the platform callback URL on the
// dispatch node, and the user's chosen cadence on schedule triggers.
func applyDeploymentParameters(g *models.ResolvedGraph, webhookURL string, schedule models.Schedule) {
	for _, node := range g.Nodes {
		if node.ID == templates.DispatchNodeID {
			if node.Parameters == nil {
				node.Parameters = make(map[string]models.ResolvedParameter, 1)
			}

			node.Parameters["url"] = models.ResolvedValue(webhookURL)
		}

		if node.Kind == models.NodeKindTriggerSchedule && schedule != "" && schedule != models.ScheduleManual {
			if expr := schedule.CronExpression(); expr != "" {
				if node.Parameters == nil {
					node.Parameters = make(map[string]models.ResolvedParameter, 1)
				}

				node.Parameters["cron"] = models.ResolvedValue(expr)
			}
		}
	}
}

func validateCronParameters(g *models.ResolvedGraph) []graph.GraphError {
	var errs []graph.GraphError

	for _, node := range g.Nodes {
		if node.Kind != models.NodeKindTriggerSchedule {
			continue
		}

		expr, ok := node.Parameters["cron"].Value.(string)
		if !ok || expr == "" {
			errs = append(errs, graph.GraphError{
				Kind:   ErrorKindInvalidCron,
				NodeID: node.ID,
				Detail: fmt.Sprintf("schedule trigger %q has no cron expression", node.ID),
			})

			continue
		}

		if _, err := cronParser.Parse(expr); err != nil {
			errs = append(errs, graph.GraphError{
				Kind:   ErrorKindInvalidCron,
				NodeID: node.ID,
				Detail: fmt.Sprintf("schedule trigger %q: invalid cron expression %q", node.ID, expr),
			})
		}
	}

	return errs
}
