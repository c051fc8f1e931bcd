package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrContactRequestNotFound is returned when a contact request does not exist.
var ErrContactRequestNotFound = errors.New("contact request not found")

// ContactRequestRepository persists contact requests.
type ContactRequestRepository interface {
	// FindAll returns every request, newest first.
	FindAll(ctx context.Context) ([]*entity.ContactRequest, error)

	// Create persists a new request.
	Create(ctx context.Context, request *entity.ContactRequest) error

	// Delete removes a request.
	Delete(ctx context.Context, id uuid.UUID) error
}
