package usecase

import (
	"context"

	"yearbook/internal/domain/entity"
)

// NotificationUsecase reacts to domain events delivered by the event bus.
type NotificationUsecase interface {
	// HandleEvent sends the mail an event calls for. Events of other types are ignored.
	HandleEvent(ctx context.Context, event *entity.DomainEvent) error
}
