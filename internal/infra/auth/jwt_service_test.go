package auth

import (
	"testing"
	"time"

	"yearbook/config"
	"yearbook/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, ttl time.Duration) *jwtService {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: ttl}}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	principal := entity.Principal{Subject: "user-1", Email: "ada@example.com", Role: entity.RoleAdmin}

	token, err := svc.GenerateAccessToken(principal)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, time.Hour, svc.AccessTokenTTL())
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t, time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.GenerateAccessToken(entity.Principal{Email: "a@x.com", Role: entity.RoleStudent})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := newTestJWTService(t, time.Hour)
	token, err := issuer.GenerateAccessToken(entity.Principal{Email: "a@x.com", Role: entity.RoleStudent})
	require.NoError(t, err)

	other := newTestJWTService(t, time.Hour)
	other.accessSecret = []byte("another_secret")

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsOtherSigningMethods(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "a@x.com",
		"role":  "admin",
		"type":  "access",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongType(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
		"role":  "student",
		"type":  "refresh",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(svc.accessSecret)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}
