package auth

import (
	"context"

	"yearbook/config"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// adminClaim is the Firebase custom claim that grants the admin role.
const adminClaim = "admin"

// idTokenVerifier is the part of the Firebase auth client the verifier uses.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type firebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier creates an IdentityVerifier that accepts Firebase ID tokens.
func NewFirebaseVerifier(ctx context.Context, cfg *config.FirebaseConfig) (service.IdentityVerifier, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return newFirebaseVerifier(client), nil
}

func newFirebaseVerifier(client idTokenVerifier) *firebaseVerifier {
	return &firebaseVerifier{client: client}
}

// Verify checks the ID token with Firebase and maps it to a principal.
func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*entity.Principal, error) {
	idToken, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	email, _ := idToken.Claims["email"].(string)
	if email == "" {
		return nil, domainerrors.ErrInvalidToken.WithDetails("token has no email claim")
	}

	role := entity.RoleStudent
	if isAdmin, _ := idToken.Claims[adminClaim].(bool); isAdmin {
		role = entity.RoleAdmin
	}

	return &entity.Principal{
		Subject: idToken.UID,
		Email:   entity.NormalizeEmail(email),
		Role:    role,
	}, nil
}
