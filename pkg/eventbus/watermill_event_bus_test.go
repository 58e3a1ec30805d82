package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readyreserve/readyflow/pkg/channels/gochannel"
	"github.com/readyreserve/readyflow/pkg/events"
)

func newTestBus(t *testing.T) EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus := newTestBus(t)

	received := make(chan *events.ExecutionCompleted, 1)

	err := bus.Handle(events.ExecutionCompletedEvent, func(_ context.Context, event any) error {
		completed, ok := event.(*events.ExecutionCompleted)
		require.True(t, ok)

		received <- completed

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, bus.Subscribe(ctx))

	err = bus.Publish(ctx, "customer-support-chatbot", events.ExecutionCompleted{
		BaseEvent: events.BaseEvent{
			ID:           bus.GenerateID(),
			Type:         events.ExecutionCompletedEvent,
			Timestamp:    time.Now().UTC(),
			AutomationID: "customer-support-chatbot",
			UserID:       "user-1",
		},
		LogEntryID: "log-1",
		DurationMS: 420,
	})
	require.NoError(t, err)

	select {
	case completed := <-received:
		assert.Equal(t, "customer-support-chatbot", completed.AutomationID)
		assert.Equal(t, "log-1", completed.LogEntryID)
		assert.Equal(t, int64(420), completed.DurationMS)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledTypeIsAcked(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus := newTestBus(t)

	received := make(chan any, 1)

	err := bus.Handle(events.ConfigUpdatedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for package events; the bus drops them.
	err = bus.Publish(ctx, "lead-qualification", events.PackageGenerated{
		BaseEvent: events.BaseEvent{AutomationID: "lead-qualification"},
	})
	require.NoError(t, err)

	err = bus.Publish(ctx, "lead-qualification", events.ConfigUpdated{
		BaseEvent: events.BaseEvent{AutomationID: "lead-qualification"},
	})
	require.NoError(t, err)

	select {
	case event := <-received:
		updated, ok := event.(*events.ConfigUpdated)
		require.True(t, ok)
		assert.Equal(t, "lead-qualification", updated.AutomationID)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
