// Package feed implements the live change feed behind the SSE endpoints.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/service"

	"github.com/pkg/errors"
)

// subscriberBuffer is how many undelivered events a slow subscriber may queue
// before further events are dropped for it.
const subscriberBuffer = 16

// ErrFeedClosed is returned when subscribing to a closed feed.
var ErrFeedClosed = errors.New("change feed is closed")

type subscriber struct {
	ch chan entity.ChangeEvent
	// done is closed together with ch and releases the context watcher.
	done chan struct{}
}

func (s *subscriber) close() {
	close(s.ch)
	close(s.done)
}

// memoryBroker fans events out to subscribers inside this process.
type memoryBroker struct {
	mu       sync.RWMutex
	topics   map[string]map[*subscriber]struct{}
	closed   bool
	watchers sync.WaitGroup
	logger   *slog.Logger
}

// NewMemoryBroker creates an in-process ChangeFeed.
func NewMemoryBroker(logger *slog.Logger) service.ChangeFeed {
	return newMemoryBroker(logger)
}

func newMemoryBroker(logger *slog.Logger) *memoryBroker {
	return &memoryBroker{
		topics: make(map[string]map[*subscriber]struct{}),
		logger: logger,
	}
}

// Publish never blocks: a subscriber with a full buffer misses the event.
func (b *memoryBroker) Publish(_ context.Context, event entity.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.topics[event.Topic] {
		select {
		case sub.ch <- event:
		default:
			b.logger.Warn("Dropping change event for slow subscriber",
				slog.String("topic", event.Topic),
				slog.String("id", event.ID),
			)
		}
	}

	return nil
}

func (b *memoryBroker) Subscribe(ctx context.Context, topic string) (<-chan entity.ChangeEvent, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, ErrFeedClosed
	}

	sub := &subscriber{ch: make(chan entity.ChangeEvent, subscriberBuffer), done: make(chan struct{})}
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*subscriber]struct{})
	}
	b.topics[topic][sub] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() { b.unsubscribe(topic, sub) })
	}

	b.watchers.Go(func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-sub.done:
		}
	})

	return sub.ch, cancel, nil
}

func (b *memoryBroker) unsubscribe(topic string, sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, topic)
	}
	sub.close()
}

// Close closes every subscriber channel.
func (b *memoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, subs := range b.topics {
		for sub := range subs {
			sub.close()
		}
		delete(b.topics, topic)
	}
	b.closed = true

	return nil
}

// waitWatchers blocks until every context watcher has returned. It is used by tests.
func (b *memoryBroker) waitWatchers() {
	b.watchers.Wait()
}

// subscriberCount is used by tests.
func (b *memoryBroker) subscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.topics[topic])
}
