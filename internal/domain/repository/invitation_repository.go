package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrInvitationNotFound is returned when an email is not invited to any scope.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrDuplicateInvitation is returned when the email is already indexed to a scope.
	ErrDuplicateInvitation = errors.New("invitation already exists")
)

// InvitationRepository is the email to scope index maintained alongside invitations,
// letting registration resolve a scope from an email alone.
type InvitationRepository interface {
	// FindScope returns the scope the email was invited to.
	FindScope(ctx context.Context, email string) (entity.ScopeID, error)

	// Create indexes the email under the scope.
	Create(ctx context.Context, email string, scope entity.ScopeID) error

	// Delete removes the index entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, email string) error
}
