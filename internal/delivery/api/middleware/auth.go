// Package middleware contains the echo middleware of the API server.
package middleware

import (
	"log/slog"
	"strings"

	"yearbook/internal/delivery/api/response"
	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	bearerPrefix = "Bearer "

	// AccessTokenQueryParam carries the token for EventSource clients, which cannot set headers.
	AccessTokenQueryParam = "access_token"
)

// AuthMiddleware authenticates bearer tokens through the configured identity provider.
type AuthMiddleware struct {
	verifier service.IdentityVerifier
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.IdentityVerifier, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// Authenticate resolves the caller and stores the principal on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Authorization header is missing or malformed")
		}

		ctx := c.Request().Context()
		principal, err := m.verifier.Verify(ctx, token)
		if err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
				deliverycontext.GetLoggerOrDefault(ctx, m.logger).Debug("Rejected token", slog.Any("error", err))

				return response.AppError(c, appErr)
			}

			return errors.WithStack(err)
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c)
			if !ok {
				return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), domainerrors.ErrUnauthorized.Message())
			}

			if principal.Role != requiredRole {
				return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// GetPrincipal returns the caller stored by Authenticate.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	return deliverycontext.GetPrincipal(c)
}

func bearerToken(c echo.Context) (string, bool) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if !strings.HasPrefix(header, bearerPrefix) {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

		return token, token != ""
	}

	if c.Request().Header.Get(echo.HeaderAccept) == "text/event-stream" {
		token := c.QueryParam(AccessTokenQueryParam)

		return token, token != ""
	}

	return "", false
}
