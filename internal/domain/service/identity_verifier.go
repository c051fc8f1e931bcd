package service

import (
	"context"

	"yearbook/internal/domain/entity"
)

// IdentityVerifier turns a bearer token into the authenticated principal.
// Implementations delegate to the local token service or an external identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*entity.Principal, error)
}
