// Package notifier delivers best-effort execution notifications to
// user-configured webhook URLs.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/readyreserve/readyflow/pkg/log"
)

const deliveryTimeout = 10 * time.Second

// Notification is the payload POSTed to the user's webhook after an
// execution. Test marks executions run without a real trigger payload.
type Notification struct {
	AutomationID string    `json:"automation_id"`
	Status       string    `json:"status"`
	Test         bool      `json:"test"`
	Result       any       `json:"result,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Notifier delivers notifications at-most-once: a single POST, no retry.
type Notifier struct {
	http *http.Client
}

// New returns a Notifier with the delivery timeout applied.
func New() *Notifier {
	return &Notifier{
		http: &http.Client{Timeout: deliveryTimeout},
	}
}

// Notify POSTs the notification to url. Failures are logged and returned so
// callers deciding to ignore them do so explicitly; delivery is never
// retried.
func (n *Notifier) Notify(ctx context.Context, url string, notification Notification) error {
	logger := log.WithModule("notifier")

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		logger.Warn("webhook notification failed",
			"automation_id", notification.AutomationID, "error", err)

		return fmt.Errorf("delivering notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("webhook notification rejected",
			"automation_id", notification.AutomationID, "status", resp.StatusCode)

		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
