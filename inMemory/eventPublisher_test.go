package inMemory

import (
	"context"
	"io"
	"testing"
	"time"

	admin "github.com/paulvitic/members-admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEventPayload struct {
	Name string
}

func newEvent(name string) admin.Event {
	return admin.NewEventProducer().
		RegisterEvent("members", admin.NewID("ID123"), testEventPayload{Name: name}).
		Events()[0]
}

func testLogger() *admin.Logger {
	logger := admin.NewLogger("test")
	logger.SetOutput(io.Discard)
	return logger
}

func TestInMemoryEventPublisher(t *testing.T) {
	publisher := NewEventPublisher(1)
	t.Cleanup(func() {
		_ = publisher.Close()
	})

	event := newEvent("value")
	require.NoError(t, publisher.Publish(context.Background(), event))

	expected, err := event.ToJsonString()
	require.NoError(t, err)
	assert.Equal(t, expected, <-publisher.Queue())
}

func TestInMemoryEventPublisher_FullQueue(t *testing.T) {
	publisher := NewEventPublisher(1)
	require.NoError(t, publisher.Publish(context.Background(), newEvent("first")))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, publisher.Publish(ctx, newEvent("second")), context.DeadlineExceeded)
}

func TestInMemoryEventPublisher_Closed(t *testing.T) {
	publisher := NewEventPublisher(1)
	require.NoError(t, publisher.Close())
	require.NoError(t, publisher.Close())

	assert.ErrorIs(t, publisher.Publish(context.Background(), newEvent("late")), ErrPublisherClosed)
	_, open := <-publisher.Queue()
	assert.False(t, open)
}

func TestMessageConsumer_FeedsEventLog(t *testing.T) {
	publisher := NewEventPublisher(4)
	log := NewEventLog(10)
	consumer := NewMessageConsumer(publisher.Queue(), log.ProcessMessage, testLogger())

	done := make(chan error)
	go func() { done <- consumer.Run(context.Background()) }()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, publisher.Publish(context.Background(), newEvent(name)))
	}
	require.NoError(t, publisher.Close())
	require.NoError(t, <-done)

	events := log.Recent(0)
	require.Len(t, events, 3)
	payload, err := admin.MapEventPayload(events[2], testEventPayload{})
	require.NoError(t, err)
	assert.Equal(t, "c", payload.Name)
}

func TestMessageConsumer_StopsWithContext(t *testing.T) {
	queue := make(chan string)
	consumer := NewMessageConsumer(queue, func([]byte) error { return nil }, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, consumer.Run(ctx))
}

func TestMessageConsumer_SkipsBadMessages(t *testing.T) {
	queue := make(chan string, 2)
	log := NewEventLog(10)
	queue <- `{"not":"an event"}`
	queue <- mustJSON(t, newEvent("good"))
	close(queue)

	require.NoError(t, NewMessageConsumer(queue, log.ProcessMessage, testLogger()).Run(context.Background()))
	assert.Len(t, log.Recent(0), 1)
}

func mustJSON(t *testing.T, event admin.Event) string {
	t.Helper()
	s, err := event.ToJsonString()
	require.NoError(t, err)
	return s
}
