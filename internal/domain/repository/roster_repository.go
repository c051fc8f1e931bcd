// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrUserNotFound is returned when a roster entry does not exist in the scope.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when the email is already on the scope's roster.
	ErrDuplicateUser = errors.New("user already exists in roster")
)

// RosterRepository persists the users of each scope. Every query is confined to one scope.
type RosterRepository interface {
	// FindByScope returns the roster ordered by insertion position.
	FindByScope(ctx context.Context, scope entity.ScopeID) ([]*entity.User, error)

	// FindByID retrieves a roster entry by ID.
	FindByID(ctx context.Context, scope entity.ScopeID, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a roster entry by its normalized email.
	FindByEmail(ctx context.Context, scope entity.ScopeID, email string) (*entity.User, error)

	// NextPosition returns the position the next invited user receives.
	NextPosition(ctx context.Context, scope entity.ScopeID) (int, error)

	// Create adds a roster entry.
	Create(ctx context.Context, user *entity.User) error

	// Update overwrites a roster entry.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a roster entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, scope entity.ScopeID, id uuid.UUID) error
}
