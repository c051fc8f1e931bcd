package handler

import (
	"log/slog"
	"net/http"

	"yearbook/internal/delivery/api/response"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SchoolHandlerParams holds dependencies for SchoolHandler, injected by Fx.
type SchoolHandlerParams struct {
	fx.In

	SchoolUC usecase.SchoolUsecase
	Logger   *slog.Logger
}

// SchoolHandler serves tenant management.
type SchoolHandler struct {
	schoolUC usecase.SchoolUsecase
	logger   *slog.Logger
}

// NewSchoolHandler is the constructor for SchoolHandler
func NewSchoolHandler(params SchoolHandlerParams) *SchoolHandler {
	return &SchoolHandler{
		schoolUC: params.SchoolUC,
		logger:   params.Logger,
	}
}

// CreateSchoolRequest represents the request body for creating a school
type CreateSchoolRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// ListSchools returns every school, newest first
func (h *SchoolHandler) ListSchools(c echo.Context) error {
	schools, err := h.schoolUC.ListSchools(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, schools)
}

// CreateSchool registers a new school
func (h *SchoolHandler) CreateSchool(c echo.Context) error {
	var req CreateSchoolRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	school, err := h.schoolUC.CreateSchool(c.Request().Context(), req.Name)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, school)
}

// GetSchool returns one school
func (h *SchoolHandler) GetSchool(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	school, err := h.schoolUC.GetSchool(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, school)
}
