package service

import (
	"context"

	"yearbook/internal/domain/entity"
)

// ChangeFeed fans change notifications out to live subscribers.
type ChangeFeed interface {
	// Publish delivers the event to current subscribers of its topic.
	Publish(ctx context.Context, event entity.ChangeEvent) error

	// Subscribe returns a channel of events for the topic. The channel is closed
	// when ctx is done or the returned cancel function is called.
	Subscribe(ctx context.Context, topic string) (<-chan entity.ChangeEvent, func(), error)

	// Close stops delivery to every subscriber.
	Close() error
}
