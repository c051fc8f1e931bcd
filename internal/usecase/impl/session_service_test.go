package impl

import (
	"context"
	"testing"

	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_SetupAdmin_OnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.sessions.SetupAdmin(ctx, usecase.SetupAdminInput{Email: "Admin@School.org", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Principal.Role)
	assert.Equal(t, "admin@school.org", out.Principal.Email)
	assert.Equal(t, int64(3600), out.ExpiresIn)

	claims, err := env.tokens.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	_, err = env.sessions.SetupAdmin(ctx, usecase.SetupAdminInput{Email: "other@school.org", Password: testPassword})
	assert.ErrorIs(t, err, domainerrors.ErrSetupCompleted)
}

func TestSessionService_SetupAdmin_RejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sessions.SetupAdmin(context.Background(), usecase.SetupAdminInput{Email: "admin@school.org", Password: "short"})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestSessionService_Login_Admin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.sessions.SetupAdmin(ctx, usecase.SetupAdminInput{Email: "admin@school.org", Password: testPassword})
	require.NoError(t, err)

	out, err := env.sessions.Login(ctx, usecase.LoginInput{Email: "ADMIN@school.org", Password: testPassword})
	require.NoError(t, err)
	assert.True(t, out.Principal.IsAdmin())
	assert.Nil(t, out.User)

	_, err = env.sessions.Login(ctx, usecase.LoginInput{Email: "admin@school.org", Password: "Wrong1234"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSessionService_ChangeAdminPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.sessions.SetupAdmin(ctx, usecase.SetupAdminInput{Email: "admin@school.org", Password: testPassword})
	require.NoError(t, err)

	change := func(current, next, confirm string) error {
		return env.sessions.ChangeAdminPassword(ctx, usecase.ChangeAdminPasswordInput{
			Email:           "Admin@school.org",
			CurrentPassword: current,
			NewPassword:     next,
			ConfirmPassword: confirm,
		})
	}

	assert.ErrorIs(t, change("Wrong1234", "Changed456", "Changed456"), domainerrors.ErrCurrentPasswordIncorrect)
	assert.ErrorIs(t, change(testPassword, "Changed456", "Changed789"), domainerrors.ErrPasswordMismatch)
	assert.ErrorIs(t, change(testPassword, "short", "short"), domainerrors.ErrPasswordStrength)

	_, err = env.sessions.Login(ctx, usecase.LoginInput{Email: "admin@school.org", Password: testPassword})
	require.NoError(t, err, "rejected changes keep the old password")

	require.NoError(t, change(testPassword, "Changed456", "Changed456"))

	_, err = env.sessions.Login(ctx, usecase.LoginInput{Email: "admin@school.org", Password: testPassword})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	out, err := env.sessions.Login(ctx, usecase.LoginInput{Email: "admin@school.org", Password: "Changed456"})
	require.NoError(t, err)
	assert.True(t, out.Principal.IsAdmin())

	err = env.sessions.ChangeAdminPassword(ctx, usecase.ChangeAdminPasswordInput{
		Email:           "student@school.org",
		CurrentPassword: testPassword,
		NewPassword:     "Changed456",
		ConfirmPassword: "Changed456",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestSessionService_CheckInvitation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.invite(t, testScope, "a@x.com")

	status, err := env.sessions.CheckInvitation(ctx, "A@x.com")
	require.NoError(t, err)
	assert.Equal(t, testScope, status.Scope)
	assert.False(t, status.Registered)

	_, err = env.sessions.CheckInvitation(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotInvited)

	_, err = env.sessions.CheckInvitation(ctx, "nonsense")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidEmail)
}

func TestSessionService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.invite(t, testScope, "a@x.com")

	tests := []struct {
		name    string
		input   usecase.RegisterInput
		wantErr error
	}{
		{
			name:    "not invited",
			input:   usecase.RegisterInput{Email: "z@x.com", Name: "Z", Password: testPassword, ConfirmPassword: testPassword},
			wantErr: domainerrors.ErrNotInvited,
		},
		{
			name:    "passwords differ",
			input:   usecase.RegisterInput{Email: "a@x.com", Name: "Ada", Password: testPassword, ConfirmPassword: "Secret124"},
			wantErr: domainerrors.ErrPasswordMismatch,
		},
		{
			name:    "weak password",
			input:   usecase.RegisterInput{Email: "a@x.com", Name: "Ada", Password: "secret", ConfirmPassword: "secret"},
			wantErr: domainerrors.ErrPasswordStrength,
		},
		{
			name:    "missing name",
			input:   usecase.RegisterInput{Email: "a@x.com", Password: testPassword, ConfirmPassword: testPassword},
			wantErr: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.sessions.Register(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	out, err := env.sessions.Register(ctx, usecase.RegisterInput{
		Email:           "A@x.com",
		Name:            "Ada",
		Phone:           "555",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.True(t, out.User.Registered)
	assert.Equal(t, entity.RoleStudent, out.Principal.Role)
	assert.NotEmpty(t, out.User.PasswordHash)

	_, err = env.sessions.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Name: "Ada", Password: testPassword, ConfirmPassword: testPassword})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyRegistered)
}

func TestSessionService_Login_Student(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.invite(t, testScope, "pending@x.com")
	env.register(t, testScope, "a@x.com", "Ada")

	out, err := env.sessions.Login(ctx, usecase.LoginInput{Email: "a@x.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", out.Principal.Email)
	assert.Equal(t, entity.RoleStudent, out.Principal.Role)

	_, err = env.sessions.Login(ctx, usecase.LoginInput{Email: "pending@x.com", Password: testPassword})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials, "unregistered invitees cannot log in")

	_, err = env.sessions.Login(ctx, usecase.LoginInput{Email: "ghost@x.com", Password: testPassword})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
