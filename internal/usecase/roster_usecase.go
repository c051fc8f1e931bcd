// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CompleteRegistrationInput carries the profile fields supplied by an invitee.
type CompleteRegistrationInput struct {
	Name         string
	Phone        string
	PhotoURL     string
	PasswordHash string // Empty when an external identity provider owns the credential.
}

// UpdateUserInput is an admin patch of a roster entry. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name          *string `json:"name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	PhotoURL      *string `json:"photo_url,omitempty"`
	PageSubmitted *bool   `json:"page_submitted,omitempty"`
}

// --- Output DTOs ---

// InviteResult reports what a batch invitation did with each candidate.
// Skipped counts addresses already on this roster. Conflicts lists addresses
// that are invited to another scope and were left there.
type InviteResult struct {
	Added     int            `json:"added"`
	Skipped   int            `json:"skipped"`
	Invalid   []string       `json:"invalid"`
	Conflicts []string       `json:"conflicts"`
	Users     []*entity.User `json:"-"`
}

// RosterUsecase manages the invited users of each scope.
type RosterUsecase interface {
	// InviteUsers adds every new, syntactically valid address to the scope's roster.
	// Partial failures are reported in the result, never returned as an error.
	InviteUsers(ctx context.Context, scope entity.ScopeID, emails []string) (*InviteResult, error)
	ListUsers(ctx context.Context, scope entity.ScopeID) ([]*entity.User, error)
	FindUserByEmail(ctx context.Context, scope entity.ScopeID, email string) (*entity.User, error)
	// FindUserScope resolves the scope an email was invited to.
	FindUserScope(ctx context.Context, email string) (entity.ScopeID, error)
	// CompleteRegistration is the only path that marks a roster entry registered.
	CompleteRegistration(ctx context.Context, scope entity.ScopeID, email string, input CompleteRegistrationInput) (*entity.User, error)
	UpdateUser(ctx context.Context, scope entity.ScopeID, userID uuid.UUID, input UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, scope entity.ScopeID, userID uuid.UUID) error
}
