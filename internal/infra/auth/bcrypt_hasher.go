package auth

import (
	"strings"
	"unicode"

	"yearbook/config"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// defaultPasswordPolicy requires eight characters mixing lower case, upper case and digits.
var defaultPasswordPolicy = config.PasswordStrengthConfig{
	MinLength:        8,
	RequireUppercase: true,
	RequireLowercase: true,
	RequireNumbers:   true,
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	policy := defaultPasswordPolicy
	if cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}

	return NewBcryptHasherWithCost(cost, policy)
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost and policy.
// Out of range costs fall back to bcrypt.DefaultCost.
func NewBcryptHasherWithCost(cost int, policy config.PasswordStrengthConfig) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{
		cost:   cost,
		policy: policy,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength reports every policy rule the password breaks.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	var problems []string
	length := len([]rune(password))
	if h.policy.MinLength > 0 && length < h.policy.MinLength {
		problems = append(problems, "too short")
	}
	if h.policy.MaxLength > 0 && length > h.policy.MaxLength {
		problems = append(problems, "too long")
	}
	if h.policy.RequireUppercase && !hasUpper {
		problems = append(problems, "missing an upper case letter")
	}
	if h.policy.RequireLowercase && !hasLower {
		problems = append(problems, "missing a lower case letter")
	}
	if h.policy.RequireNumbers && !hasNumber {
		problems = append(problems, "missing a digit")
	}
	if h.policy.RequireSpecial && !hasSpecial {
		problems = append(problems, "missing a special character")
	}

	if len(problems) > 0 {
		return domainerrors.ErrPasswordStrength.WithDetails("password is " + strings.Join(problems, ", "))
	}

	return nil
}
