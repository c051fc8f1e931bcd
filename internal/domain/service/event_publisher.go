package service

import (
	"context"

	"yearbook/internal/domain/entity"
)

// EventPublisher defines the interface for publishing domain events to a message queue
type EventPublisher interface {
	// PublishDomainEvent publishes an event for downstream consumers such as the invitation mailer
	PublishDomainEvent(ctx context.Context, event *entity.DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
