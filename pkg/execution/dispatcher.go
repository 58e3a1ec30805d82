// Package execution runs automations on demand: it invokes the configured
// language model, records a durable execution log entry, and notifies the
// user's webhook.
package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/readyreserve/readyflow/pkg/eventbus"
	"github.com/readyreserve/readyflow/pkg/events"
	"github.com/readyreserve/readyflow/pkg/llm"
	"github.com/readyreserve/readyflow/pkg/log"
	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/notifier"
	"github.com/readyreserve/readyflow/pkg/otelhelper"
	"github.com/readyreserve/readyflow/pkg/persistence"
	"github.com/readyreserve/readyflow/pkg/services"
)

const defaultPrompt = "Run a test execution and summarize what this automation would do."

// Request identifies one dispatch: which automation, for which user, with
// what trigger payload.
type Request struct {
	AutomationID string
	UserID       string
	Input        map[string]any
}

// Result is the synchronous outcome returned to the caller. A provider
// failure is a Result with Success false, not a dispatch error.
type Result struct {
	Success    bool   `json:"success"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration"`
}

// Dispatcher executes automations.
type Dispatcher struct {
	persistence persistence.Persistence
	provider    llm.Provider
	notifier    *notifier.Notifier
	bus         eventbus.EventPublisher
	tracer      trace.Tracer
	logger      *slog.Logger
	now         func() time.Time
}

// NewDispatcher wires the dispatcher. The event bus and tracer may be nil;
// a nil tracer is replaced with a no-op one.
func NewDispatcher(p persistence.Persistence, provider llm.Provider, n *notifier.Notifier, bus eventbus.EventPublisher, tracer trace.Tracer) *Dispatcher {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("execution")
	}

	return &Dispatcher{
		persistence: p,
		provider:    provider,
		notifier:    n,
		bus:         bus,
		tracer:      tracer,
		logger:      log.WithModule("dispatcher"),
		now:         time.Now,
	}
}

// Dispatch runs the automation once. Exactly one log entry is appended per
// call, before the result is returned and before any webhook notification
// goes out. A failed model call yields an error-status entry and a Result
// with Success false.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	ctx, span := otelhelper.StartSpan(ctx, d.tracer, "automation.dispatch",
		attribute.String(otelhelper.AutomationIDKey, req.AutomationID),
		attribute.String(otelhelper.UserIDKey, req.UserID),
	)
	defer span.End()

	automation, err := d.persistence.AutomationByID(ctx, req.AutomationID)
	if err != nil {
		if persistence.IsAutomationNotFound(err) {
			return nil, services.NewValidationError("Dispatch", "unknown automation", err)
		}

		return nil, services.NewApplicationError("Dispatch", "failed to load automation", err)
	}

	config := d.loadConfig(ctx, req.UserID, req.AutomationID)

	started := d.now()
	resp, genErr := d.provider.Generate(ctx, llm.Request{
		System: systemPrompt(automation, config),
		Prompt: userPrompt(req.Input),
	})
	durationMS := d.now().Sub(started).Milliseconds()

	entry := &models.ExecutionLogEntry{
		AutomationID: req.AutomationID,
		UserID:       req.UserID,
		InputData:    req.Input,
		DurationMS:   durationMS,
		CreatedAt:    d.now().UTC(),
	}

	result := &Result{DurationMS: durationMS}

	if genErr != nil {
		entry.Status = models.ExecutionStatusError
		entry.Message = genErr.Error()
		result.Error = genErr.Error()

		otelhelper.SetError(span, genErr,
			attribute.String(otelhelper.AutomationIDKey, req.AutomationID))
		d.logger.Error("automation execution failed",
			"automation_id", req.AutomationID, "user_id", req.UserID, "error", genErr)
	} else {
		entry.Status = models.ExecutionStatusSuccess
		entry.Message = "execution completed"
		entry.OutputData = map[string]any{"result": resp.Content, "model": resp.Model}
		result.Success = true
		result.Result = resp.Content
	}

	span.SetAttributes(attribute.String(otelhelper.StatusKey, string(entry.Status)))

	if err := d.persistence.AppendLog(ctx, entry); err != nil {
		return nil, services.NewApplicationError("Dispatch", "failed to record execution log", err)
	}

	span.SetAttributes(attribute.String(otelhelper.LogEntryIDKey, entry.ID))

	d.publishOutcome(ctx, entry)
	d.notifyWebhook(ctx, config, entry, result)

	return result, nil
}

// loadConfig tolerates having no saved configuration; executions then run
// with defaults.
func (d *Dispatcher) loadConfig(ctx context.Context, userID, automationID string) *models.RuntimeConfig {
	config, err := d.persistence.ConfigByUserAndAutomation(ctx, userID, automationID)
	if err != nil {
		if !persistence.IsConfigNotFound(err) {
			d.logger.Warn("failed to load runtime config, using defaults",
				"automation_id", automationID, "user_id", userID, "error", err)
		}

		return &models.RuntimeConfig{UserID: userID, AutomationID: automationID}
	}

	return config
}

func systemPrompt(automation *models.Automation, config *models.RuntimeConfig) string {
	if config.CustomPrompt != "" {
		return config.CustomPrompt
	}

	return fmt.Sprintf("You are a Ready Assistant helping with the %q automation. %s",
		automation.Title, automation.Description)
}

func userPrompt(input map[string]any) string {
	if prompt, ok := input["prompt"].(string); ok && prompt != "" {
		return prompt
	}

	if len(input) == 0 {
		return defaultPrompt
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return defaultPrompt
	}

	return fmt.Sprintf("Process this input data: %s", raw)
}

func (d *Dispatcher) publishOutcome(ctx context.Context, entry *models.ExecutionLogEntry) {
	if d.bus == nil {
		return
	}

	base := events.BaseEvent{
		Timestamp:    entry.CreatedAt,
		AutomationID: entry.AutomationID,
		UserID:       entry.UserID,
	}

	var event eventbus.Event
	if entry.Status == models.ExecutionStatusSuccess {
		base.Type = events.ExecutionCompletedEvent
		event = events.ExecutionCompleted{BaseEvent: base, LogEntryID: entry.ID, DurationMS: entry.DurationMS}
	} else {
		base.Type = events.ExecutionFailedEvent
		event = events.ExecutionFailed{BaseEvent: base, LogEntryID: entry.ID, Error: entry.Message, DurationMS: entry.DurationMS}
	}

	if err := d.bus.Publish(ctx, entry.AutomationID, event); err != nil {
		d.logger.Warn("failed to publish execution event",
			"automation_id", entry.AutomationID, "error", err)
	}
}

// notifyWebhook fires the user notification without blocking the response.
// The log entry is already durable at this point; delivery failures are
// logged inside the notifier and otherwise dropped.
func (d *Dispatcher) notifyWebhook(ctx context.Context, config *models.RuntimeConfig, entry *models.ExecutionLogEntry, result *Result) {
	if config.WebhookURL == "" {
		return
	}

	notification := notifier.Notification{
		AutomationID: entry.AutomationID,
		Status:       string(entry.Status),
		Test:         len(entry.InputData) == 0,
		Timestamp:    entry.CreatedAt,
	}

	if result.Success {
		notification.Result = result.Result
	} else {
		notification.Result = result.Error
	}

	go func(ctx context.Context) {
		//nolint:errcheck // delivery is best-effort and already logged
		_ = d.notifier.Notify(ctx, config.WebhookURL, notification)
	}(context.WithoutCancel(ctx))
}
