// Package handler contains the HTTP handlers of the API server.
package handler

import (
	"net/http"
	"net/url"

	"yearbook/internal/delivery/api/middleware"
	"yearbook/internal/delivery/api/response"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// scopeParam decodes and validates the :scopeId path parameter.
func scopeParam(c echo.Context) (entity.ScopeID, error) {
	raw, err := url.PathUnescape(c.Param("scopeId"))
	if err != nil {
		return "", domainerrors.ErrInvalidScope.WithDetails("scope is not properly escaped")
	}

	scope := entity.ScopeID(raw)
	if _, err := entity.ParseScopeID(scope); err != nil {
		return "", err
	}

	return scope, nil
}

// idParam parses a UUID path parameter.
func idParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a UUID")
	}

	return id, nil
}

// callerEmail returns the email of the authenticated caller.
func callerEmail(c echo.Context) (string, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.Email == "" {
		return "", false
	}

	return principal.Email, true
}

func unauthorized(c echo.Context) error {
	return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), domainerrors.ErrUnauthorized.Message())
}

// bindAndValidate decodes the request body into req and checks its tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body could not be decoded")
	}

	return c.Validate(req)
}
