// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/service"

	"github.com/google/uuid"
)

// notifier fans committed writes out to live subscribers and the event bus.
// Both are best effort: the write has already committed, so failures are only logged.
type notifier struct {
	feed      service.ChangeFeed
	publisher service.EventPublisher
	logger    *slog.Logger
}

func newNotifier(feed service.ChangeFeed, publisher service.EventPublisher, logger *slog.Logger) *notifier {
	return &notifier{feed: feed, publisher: publisher, logger: logger}
}

func (n *notifier) changed(ctx context.Context, topic string, kind entity.ChangeKind, id string) {
	if n.feed == nil {
		return
	}

	event := entity.ChangeEvent{Topic: topic, Kind: kind, ID: id, At: time.Now().UTC()}
	if err := n.feed.Publish(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, n.logger).Warn("Failed to publish change event",
			slog.String("topic", topic),
			slog.String("kind", string(kind)),
			slog.Any("error", err))
	}
}

func (n *notifier) emit(ctx context.Context, eventType entity.DomainEventType, scope entity.ScopeID, subject string, attributes map[string]string) {
	if n.publisher == nil {
		return
	}

	event := &entity.DomainEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Type:       eventType,
		Scope:      scope,
		Subject:    subject,
		Attributes: attributes,
		OccurredAt: time.Now().UTC(),
	}

	if err := n.publisher.PublishDomainEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, n.logger).Error("Failed to publish domain event",
			slog.String("event_type", string(eventType)),
			slog.String("subject", subject),
			slog.Any("error", err))
	}
}
