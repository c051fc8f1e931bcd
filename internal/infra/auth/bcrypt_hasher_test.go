package auth

import (
	"testing"

	"yearbook/config"
	domainerrors "yearbook/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, defaultPasswordPolicy)
	password := "StrongPass123"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPass123", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	hash, err := hasher.Hash("StrongPass123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasherWithCost(99, defaultPasswordPolicy).(*bcryptHasher)

	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestBcryptHasher_ValidatePasswordStrength_DefaultPolicy(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, defaultPasswordPolicy)

	for _, password := range []string{"StrongPass1", "Abcdefg1", "Çok1güzelŞifre"} {
		assert.NoError(t, hasher.ValidatePasswordStrength(password), password)
	}

	weak := []string{
		"Ab1",         // too short
		"PASSWORD123", // no lower case
		"password123", // no upper case
		"PasswordABC", // no digit
		"",
	}
	for _, password := range weak {
		err := hasher.ValidatePasswordStrength(password)
		assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength, password)
	}
}

func TestBcryptHasher_ValidatePasswordStrength_CustomPolicy(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, config.PasswordStrengthConfig{
		MinLength:      4,
		MaxLength:      10,
		RequireSpecial: true,
	})

	assert.NoError(t, hasher.ValidatePasswordStrength("abc!"))
	assert.Error(t, hasher.ValidatePasswordStrength("abcd"))
	assert.Error(t, hasher.ValidatePasswordStrength("abcdefghij!"))
}
