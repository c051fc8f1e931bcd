package usecase

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactRequestInput defines a demo request from a prospective school.
type ContactRequestInput struct {
	SchoolName string
	Name       string
	Email      string
	Phone      string
}

// MessageUsecase exchanges direct messages inside one scope.
type MessageUsecase interface {
	// Conversation returns the messages between the caller and a classmate, oldest first.
	Conversation(ctx context.Context, email string, friendID uuid.UUID) ([]*entity.Message, error)
	Send(ctx context.Context, email string, friendID uuid.UUID, text string) (*entity.Message, error)
	// UnreadConversations counts the caller's conversations whose newest message came from the other side.
	UnreadConversations(ctx context.Context, email string) (int, error)
	// ConversationTopic resolves the change feed topic of the conversation after checking membership.
	ConversationTopic(ctx context.Context, email string, friendID uuid.UUID) (string, error)
}

// ContactUsecase manages contact requests.
type ContactUsecase interface {
	ListContactRequests(ctx context.Context) ([]*entity.ContactRequest, error)
	CreateContactRequest(ctx context.Context, input ContactRequestInput) (*entity.ContactRequest, error)
	DeleteContactRequest(ctx context.Context, id uuid.UUID) error
}
