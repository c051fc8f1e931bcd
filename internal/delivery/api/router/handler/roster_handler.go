package handler

import (
	"log/slog"
	"net/http"

	"yearbook/internal/delivery/api/response"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RosterHandlerParams holds dependencies for RosterHandler, injected by Fx.
type RosterHandlerParams struct {
	fx.In

	RosterUC usecase.RosterUsecase
	Feed     service.ChangeFeed
	Logger   *slog.Logger
}

// RosterHandler serves the admin view of a scope's roster.
type RosterHandler struct {
	rosterUC usecase.RosterUsecase
	feed     service.ChangeFeed
	logger   *slog.Logger
}

// NewRosterHandler is the constructor for RosterHandler
func NewRosterHandler(params RosterHandlerParams) *RosterHandler {
	return &RosterHandler{
		rosterUC: params.RosterUC,
		feed:     params.Feed,
		logger:   params.Logger,
	}
}

// InviteRequest carries the addresses to invite, either as a list or as pasted text
type InviteRequest struct {
	Emails []string `json:"emails" validate:"max=2000"`
	Raw    string   `json:"raw"`
}

// UpdateUserRequest represents the request body of an admin patch
type UpdateUserRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=120"`
	Phone         *string `json:"phone" validate:"omitempty,max=40"`
	PhotoURL      *string `json:"photo_url" validate:"omitempty,max=2048"`
	PageSubmitted *bool   `json:"page_submitted"`
}

// ListUsers returns the roster in insertion order
func (h *RosterHandler) ListUsers(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	users, err := h.rosterUC.ListUsers(c.Request().Context(), scope)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users)
}

// InviteUsers adds the given addresses to the roster
func (h *RosterHandler) InviteUsers(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req InviteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	emails := append(req.Emails, entity.SplitEmailList(req.Raw)...)
	if len(emails) == 0 {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("emails or raw is required"))
	}

	result, err := h.rosterUC.InviteUsers(c.Request().Context(), scope, emails)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// UpdateUser patches a roster entry
func (h *RosterHandler) UpdateUser(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	userID, err := idParam(c, "userId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.rosterUC.UpdateUser(c.Request().Context(), scope, userID, usecase.UpdateUserInput{
		Name:          req.Name,
		Phone:         req.Phone,
		PhotoURL:      req.PhotoURL,
		PageSubmitted: req.PageSubmitted,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// DeleteUser removes a roster entry
func (h *RosterHandler) DeleteUser(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	userID, err := idParam(c, "userId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.rosterUC.DeleteUser(c.Request().Context(), scope, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Events streams roster changes of the scope
func (h *RosterHandler) Events(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return streamTopic(c, h.feed, entity.RosterTopic(scope), h.logger)
}
