package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"yearbook/internal/delivery/api/middleware"
	"yearbook/internal/delivery/api/response"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const mimeImagePNG = "image/png"

// DesignHandlerParams holds dependencies for DesignHandler, injected by Fx.
type DesignHandlerParams struct {
	fx.In

	DesignUC  usecase.DesignUsecase
	PreviewUC usecase.PreviewUsecase
	PageUC    usecase.PageUsecase
	Logger    *slog.Logger
}

// DesignHandler serves design settings, the rendered preview and QR codes.
type DesignHandler struct {
	designUC  usecase.DesignUsecase
	previewUC usecase.PreviewUsecase
	pageUC    usecase.PageUsecase
	logger    *slog.Logger
}

// NewDesignHandler is the constructor for DesignHandler
func NewDesignHandler(params DesignHandlerParams) *DesignHandler {
	return &DesignHandler{
		designUC:  params.DesignUC,
		previewUC: params.PreviewUC,
		pageUC:    params.PageUC,
		logger:    params.Logger,
	}
}

// GetDesign returns the scope's design, or the defaults
func (h *DesignHandler) GetDesign(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	design, err := h.designUC.GetDesign(c.Request().Context(), scope)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, design)
}

// SaveDesign overwrites the scope's design with the JSON body
func (h *DesignHandler) SaveDesign(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errors.Wrap(err, "failed to read design body")
	}

	design, err := h.designUC.SaveDesign(c.Request().Context(), scope, raw)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, design)
}

// InvitationQR returns a PNG linking to the registration page of the scope
func (h *DesignHandler) InvitationQR(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.previewUC.InvitationQR(c.Request().Context(), scope)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, mimeImagePNG, png)
}

// Preview renders the scope's yearbook
func (h *DesignHandler) Preview(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authorizeScope(c, scope); err != nil {
		return response.HandleAppError(c, err)
	}

	book, err := h.previewUC.Render(c.Request().Context(), scope)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, book)
}

// PreviewQR returns a PNG linking to the scope's preview
func (h *DesignHandler) PreviewQR(c echo.Context) error {
	scope, err := scopeParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authorizeScope(c, scope); err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.previewUC.PreviewQR(c.Request().Context(), scope)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, mimeImagePNG, png)
}

// authorizeScope lets administrators preview any scope and students only their own.
func (h *DesignHandler) authorizeScope(c echo.Context, scope entity.ScopeID) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}
	if principal.IsAdmin() {
		return nil
	}

	return h.memberOf(c.Request().Context(), principal.Email, scope)
}

func (h *DesignHandler) memberOf(ctx context.Context, email string, scope entity.ScopeID) error {
	member, err := h.pageUC.Me(ctx, email)
	if err != nil {
		return err
	}
	if member.User.Scope != scope {
		return domainerrors.ErrForbidden.WithDetails("preview is limited to your own scope")
	}

	return nil
}
