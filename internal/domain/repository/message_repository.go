package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
)

// MessageRepository persists direct messages, partitioned by scope.
type MessageRepository interface {
	// FindConversation returns the messages exchanged between two users, oldest first.
	FindConversation(ctx context.Context, scope entity.ScopeID, userA, userB uuid.UUID) ([]*entity.Message, error)

	// FindLatestPerConversation returns the newest message of every conversation
	// the user takes part in.
	FindLatestPerConversation(ctx context.Context, scope entity.ScopeID, userID uuid.UUID) ([]*entity.Message, error)

	// Create persists a new message.
	Create(ctx context.Context, message *entity.Message) error
}
