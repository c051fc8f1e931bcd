package feed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"yearbook/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroker() *memoryBroker {
	return newMemoryBroker(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func receive(t *testing.T, ch <-chan entity.ChangeEvent) entity.ChangeEvent {
	t.Helper()

	select {
	case event, ok := <-ch:
		require.True(t, ok, "channel closed")

		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")

		return entity.ChangeEvent{}
	}
}

func TestMemoryBroker_DeliversToTopicSubscribers(t *testing.T) {
	broker := newTestBroker()
	ctx := context.Background()

	roster, cancelRoster, err := broker.Subscribe(ctx, "roster:s:2024")
	require.NoError(t, err)
	defer cancelRoster()

	orders, cancelOrders, err := broker.Subscribe(ctx, entity.TopicOrders)
	require.NoError(t, err)
	defer cancelOrders()

	require.NoError(t, broker.Publish(ctx, entity.ChangeEvent{Topic: "roster:s:2024", Kind: entity.ChangeCreated, ID: "u1"}))

	event := receive(t, roster)
	assert.Equal(t, "u1", event.ID)
	assert.Equal(t, entity.ChangeCreated, event.Kind)

	select {
	case event := <-orders:
		t.Fatalf("unexpected event on orders topic: %+v", event)
	default:
	}
}

func TestMemoryBroker_CancelClosesChannel(t *testing.T) {
	broker := newTestBroker()

	ch, cancel, err := broker.Subscribe(context.Background(), entity.TopicOrders)
	require.NoError(t, err)
	assert.Equal(t, 1, broker.subscriberCount(entity.TopicOrders))

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, broker.subscriberCount(entity.TopicOrders))
}

func TestMemoryBroker_CancelReleasesContextWatcher(t *testing.T) {
	broker := newTestBroker()
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	_, cancelOrders, err := broker.Subscribe(ctx, entity.TopicOrders)
	require.NoError(t, err)
	_, _, err = broker.Subscribe(ctx, entity.TopicContactRequests)
	require.NoError(t, err)

	cancelOrders()
	require.NoError(t, broker.Close())

	// The request context is still alive; the watchers must return anyway.
	released := make(chan struct{})
	go func() {
		broker.waitWatchers()
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("context watchers still running after unsubscribe")
	}
	assert.NoError(t, ctx.Err())
}

func TestMemoryBroker_ContextCancellationUnsubscribes(t *testing.T) {
	broker := newTestBroker()
	ctx, cancelCtx := context.WithCancel(context.Background())

	ch, _, err := broker.Subscribe(ctx, entity.TopicContactRequests)
	require.NoError(t, err)

	cancelCtx()

	assert.Eventually(t, func() bool {
		return broker.subscriberCount(entity.TopicContactRequests) == 0
	}, time.Second, 10*time.Millisecond)

	_, ok := <-ch
	assert.False(t, ok)
}

func TestMemoryBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	broker := newTestBroker()
	ctx := context.Background()

	_, cancel, err := broker.Subscribe(ctx, entity.TopicOrders)
	require.NoError(t, err)
	defer cancel()

	for i := 0; i < subscriberBuffer*2; i++ {
		require.NoError(t, broker.Publish(ctx, entity.ChangeEvent{Topic: entity.TopicOrders}))
	}
}

func TestMemoryBroker_Close(t *testing.T) {
	broker := newTestBroker()

	ch, cancel, err := broker.Subscribe(context.Background(), entity.TopicOrders)
	require.NoError(t, err)

	require.NoError(t, broker.Close())
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	_, _, err = broker.Subscribe(context.Background(), entity.TopicOrders)
	assert.ErrorIs(t, err, ErrFeedClosed)
}

func TestDecodeChangeEvent(t *testing.T) {
	event, err := decodeChangeEvent(`{"topic":"orders","kind":"updated","id":"o1","at":"2024-01-01T00:00:00Z"}`)
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeUpdated, event.Kind)

	_, err = decodeChangeEvent(`{"kind":"updated"}`)
	assert.Error(t, err)

	_, err = decodeChangeEvent(`not json`)
	assert.Error(t, err)
}
