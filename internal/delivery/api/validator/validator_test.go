package validator

import (
	"testing"

	domainerrors "yearbook/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required,min=8"`
	Method   string `json:"payment_method" validate:"omitempty,oneof=creditCard bankTransfer"`
	Internal string `json:"-" validate:"max=3"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&signupRequest{Email: "ada@x.com", Password: "long enough"}))

	err := v.Validate(&signupRequest{Email: "nope", Method: "cash", Internal: "toolong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "email must be a valid email address")
	assert.Contains(t, appErr.Details(), "password is required")
	assert.Contains(t, appErr.Details(), "payment_method must be one of: creditCard bankTransfer")
	assert.Contains(t, appErr.Details(), "must be at most 3")
}
