package handler

import (
	"log/slog"
	"net/http"

	"yearbook/internal/delivery/api/response"
	"yearbook/internal/domain/entity"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// AuthHandler serves admin setup, invitee registration and login.
type AuthHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// SetupRequest represents the request body for creating the first administrator
type SetupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CheckInvitationRequest represents the request body for checking an invitation
type CheckInvitationRequest struct {
	Email string `json:"email" validate:"required"`
}

// RegisterRequest represents the request body for completing a registration
type RegisterRequest struct {
	Email           string `json:"email" validate:"required"`
	Name            string `json:"name" validate:"required,max=120"`
	Phone           string `json:"phone" validate:"max=40"`
	PhotoURL        string `json:"photo_url" validate:"max=2048"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents the request body for an administrator password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// AuthResponse is returned for every issued session
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	Email       string       `json:"email"`
	Role        entity.Role  `json:"role"`
	User        *entity.User `json:"user,omitempty"`
}

func newAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   output.ExpiresIn,
		Email:       output.Principal.Email,
		Role:        output.Principal.Role,
		User:        output.User,
	}
}

// Setup creates the first administrator account
func (h *AuthHandler) Setup(c echo.Context) error {
	var req SetupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.sessionUC.SetupAdmin(c.Request().Context(), usecase.SetupAdminInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAuthResponse(output))
}

// CheckInvitation reports whether an email was invited and where
func (h *AuthHandler) CheckInvitation(c echo.Context) error {
	var req CheckInvitationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	status, err := h.sessionUC.CheckInvitation(c.Request().Context(), req.Email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, status)
}

// Register completes the registration of an invitee and logs them in
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.sessionUC.Register(c.Request().Context(), usecase.RegisterInput{
		Email:           req.Email,
		Name:            req.Name,
		Phone:           req.Phone,
		PhotoURL:        req.PhotoURL,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAuthResponse(output))
}

// Login issues an access token for an administrator or a registered student
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.sessionUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}

// ChangePassword replaces the signed-in administrator's password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	err := h.sessionUC.ChangeAdminPassword(c.Request().Context(), usecase.ChangeAdminPasswordInput{
		Email:           email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
