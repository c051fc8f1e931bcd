package handler

import (
	"log/slog"
	"net/http"

	"yearbook/internal/delivery/api/response"
	"yearbook/internal/domain/entity"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ContactHandlerParams holds dependencies for ContactHandler, injected by Fx.
type ContactHandlerParams struct {
	fx.In

	ContactUC usecase.ContactUsecase
	Feed      service.ChangeFeed
	Logger    *slog.Logger
}

// ContactHandler serves contact requests from prospective schools.
type ContactHandler struct {
	contactUC usecase.ContactUsecase
	feed      service.ChangeFeed
	logger    *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler
func NewContactHandler(params ContactHandlerParams) *ContactHandler {
	return &ContactHandler{
		contactUC: params.ContactUC,
		feed:      params.Feed,
		logger:    params.Logger,
	}
}

// ContactRequestRequest represents the public contact form
type ContactRequestRequest struct {
	SchoolName string `json:"school_name" validate:"required,max=200"`
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"max=40"`
}

// Create stores a contact request
func (h *ContactHandler) Create(c echo.Context) error {
	var req ContactRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	request, err := h.contactUC.CreateContactRequest(c.Request().Context(), usecase.ContactRequestInput{
		SchoolName: req.SchoolName,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, request)
}

// List returns every contact request, newest first
func (h *ContactHandler) List(c echo.Context) error {
	requests, err := h.contactUC.ListContactRequests(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, requests)
}

// Delete removes a contact request
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.contactUC.DeleteContactRequest(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Events streams contact request changes
func (h *ContactHandler) Events(c echo.Context) error {
	return streamTopic(c, h.feed, entity.TopicContactRequests, h.logger)
}
