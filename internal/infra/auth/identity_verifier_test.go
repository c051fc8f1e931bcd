package auth

import (
	"context"
	"testing"
	"time"

	"yearbook/config"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalVerifier_Verify(t *testing.T) {
	tokens := newTestJWTService(t, time.Hour)
	verifier := NewLocalVerifier(tokens)

	token, err := tokens.GenerateAccessToken(entity.Principal{Subject: "u1", Email: "Ada@Example.com", Role: entity.RoleStudent})
	require.NoError(t, err)

	principal, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", principal.Email)
	assert.Equal(t, entity.RoleStudent, principal.Role)
	assert.False(t, principal.IsAdmin())

	_, err = verifier.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

type fakeIDTokenVerifier struct {
	token *fbauth.Token
	err   error
}

func (f *fakeIDTokenVerifier) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier_Verify(t *testing.T) {
	tests := []struct {
		name     string
		token    *fbauth.Token
		err      error
		wantRole entity.Role
		wantErr  bool
	}{
		{
			name:     "student",
			token:    &fbauth.Token{UID: "uid-1", Claims: map[string]any{"email": "a@x.com"}},
			wantRole: entity.RoleStudent,
		},
		{
			name:     "admin claim",
			token:    &fbauth.Token{UID: "uid-2", Claims: map[string]any{"email": "b@x.com", "admin": true}},
			wantRole: entity.RoleAdmin,
		},
		{
			name:    "no email",
			token:   &fbauth.Token{UID: "uid-3", Claims: map[string]any{}},
			wantErr: true,
		},
		{
			name:    "rejected by firebase",
			err:     errors.New("ID token has expired"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := newFirebaseVerifier(&fakeIDTokenVerifier{token: tt.token, err: tt.err})

			principal, err := verifier.Verify(context.Background(), "token")
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, principal.Role)
			assert.Equal(t, tt.token.UID, principal.Subject)
		})
	}
}

func TestNewIdentityVerifier_UnknownProvider(t *testing.T) {
	cfg := &config.Config{Identity: &config.IdentityConfig{Provider: "ldap"}}

	_, err := NewIdentityVerifier(context.Background(), cfg, nil)
	assert.Error(t, err)
}
