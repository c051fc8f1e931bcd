package auth

import (
	"context"

	"yearbook/config"
	"yearbook/internal/domain/constants"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"

	"github.com/pkg/errors"
)

// localVerifier accepts access tokens issued by this service.
type localVerifier struct {
	tokens service.TokenService
}

// NewLocalVerifier creates an IdentityVerifier backed by the local token service.
func NewLocalVerifier(tokens service.TokenService) service.IdentityVerifier {
	return &localVerifier{tokens: tokens}
}

// Verify validates the token and maps its claims to a principal.
func (v *localVerifier) Verify(_ context.Context, token string) (*entity.Principal, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	if !claims.Role.IsValid() || claims.Email == "" {
		return nil, domainerrors.ErrInvalidToken.WithDetails("token is missing identity claims")
	}

	return &entity.Principal{
		Subject: claims.Subject,
		Email:   entity.NormalizeEmail(claims.Email),
		Role:    claims.Role,
	}, nil
}

// NewIdentityVerifier returns the verifier selected by identity.provider.
func NewIdentityVerifier(ctx context.Context, cfg *config.Config, tokens service.TokenService) (service.IdentityVerifier, error) {
	switch cfg.Identity.Provider {
	case constants.IdentityProviderLocal:
		return NewLocalVerifier(tokens), nil
	case constants.IdentityProviderFirebase:
		if cfg.Firebase == nil {
			return nil, errors.New("firebase identity provider requires firebase configuration")
		}

		return NewFirebaseVerifier(ctx, cfg.Firebase)
	default:
		return nil, errors.Errorf("unsupported identity provider %q", cfg.Identity.Provider)
	}
}
