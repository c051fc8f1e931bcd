package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// channelPrefix namespaces the redis channels used by the feed.
const channelPrefix = "yearbook:changes:"

// redisBroker fans events out through redis pub/sub so every API instance sees them.
type redisBroker struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisBroker creates a ChangeFeed on top of a redis client.
func NewRedisBroker(client *redis.Client, logger *slog.Logger) service.ChangeFeed {
	return &redisBroker{
		client: client,
		logger: logger,
	}
}

func (b *redisBroker) Publish(ctx context.Context, event entity.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := b.client.Publish(ctx, channelPrefix+event.Topic, payload).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish change event on %s", event.Topic)
	}

	return nil
}

func (b *redisBroker) Subscribe(ctx context.Context, topic string) (<-chan entity.ChangeEvent, func(), error) {
	pubsub := b.client.Subscribe(ctx, channelPrefix+topic)

	// Wait for the subscription to be confirmed so no event published afterwards is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return nil, nil, errors.Wrapf(err, "failed to subscribe to %s", topic)
	}

	out := make(chan entity.ChangeEvent, subscriberBuffer)
	done := make(chan struct{})

	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				event, err := decodeChangeEvent(msg.Payload)
				if err != nil {
					b.logger.Warn("Discarding malformed change event",
						slog.String("channel", msg.Channel),
						slog.Any("error", err),
					)

					continue
				}

				select {
				case out <- event:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() { close(done) })
	}

	return out, cancel, nil
}

func (b *redisBroker) Close() error {
	return errors.WithStack(b.client.Close())
}

func decodeChangeEvent(payload string) (entity.ChangeEvent, error) {
	var event entity.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return entity.ChangeEvent{}, errors.WithStack(err)
	}

	if event.Topic == "" {
		return entity.ChangeEvent{}, errors.New("change event has no topic")
	}

	return event, nil
}
