package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_Delivers(t *testing.T) {
	var received Notification

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer server.Close()

	n := New()

	err := n.Notify(context.Background(), server.URL, Notification{
		AutomationID: "customer-support-chatbot",
		Status:       "success",
		Result:       "All done",
		Timestamp:    time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "customer-support-chatbot", received.AutomationID)
	assert.Equal(t, "success", received.Status)
}

func TestNotify_UnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	n := New()

	err := n.Notify(context.Background(), server.URL, Notification{
		AutomationID: "customer-support-chatbot",
		Status:       "error",
	})
	assert.Error(t, err)
}

func TestNotify_RejectedStatus(t *testing.T) {
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := New()

	err := n.Notify(context.Background(), server.URL, Notification{
		AutomationID: "customer-support-chatbot",
		Status:       "success",
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "delivery is never retried")
}
