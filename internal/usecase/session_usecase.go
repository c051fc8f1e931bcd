package usecase

import (
	"context"

	"yearbook/internal/domain/entity"
)

// SetupAdminInput defines the credentials of the first administrator.
type SetupAdminInput struct {
	Email    string
	Password string
}

// RegisterInput defines the data an invitee submits to complete registration.
type RegisterInput struct {
	Email           string
	Name            string
	Phone           string
	PhotoURL        string
	Password        string
	ConfirmPassword string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ChangeAdminPasswordInput defines a password change of a signed-in administrator.
type ChangeAdminPasswordInput struct {
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// InvitationStatus reports where an email was invited.
type InvitationStatus struct {
	Email      string         `json:"email"`
	Scope      entity.ScopeID `json:"scope_id"`
	Registered bool           `json:"registered"`
}

// AuthOutput returns the issued access token and the authenticated principal.
type AuthOutput struct {
	AccessToken string
	ExpiresIn   int64 // Seconds.
	Principal   entity.Principal
	User        *entity.User // Nil for administrators.
}

// SessionUsecase issues local sessions for administrators and registered students.
type SessionUsecase interface {
	SetupAdmin(ctx context.Context, input SetupAdminInput) (*AuthOutput, error)
	CheckInvitation(ctx context.Context, email string) (*InvitationStatus, error)
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	// ChangeAdminPassword replaces an administrator's password after checking the current one.
	ChangeAdminPassword(ctx context.Context, input ChangeAdminPasswordInput) error
}
