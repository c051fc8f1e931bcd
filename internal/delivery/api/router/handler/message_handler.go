package handler

import (
	"log/slog"
	"net/http"

	"yearbook/internal/delivery/api/response"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MessageHandlerParams holds dependencies for MessageHandler, injected by Fx.
type MessageHandlerParams struct {
	fx.In

	MessageUC usecase.MessageUsecase
	Feed      service.ChangeFeed
	Logger    *slog.Logger
}

// MessageHandler serves direct messages between classmates.
type MessageHandler struct {
	messageUC usecase.MessageUsecase
	feed      service.ChangeFeed
	logger    *slog.Logger
}

// NewMessageHandler is the constructor for MessageHandler
func NewMessageHandler(params MessageHandlerParams) *MessageHandler {
	return &MessageHandler{
		messageUC: params.MessageUC,
		feed:      params.Feed,
		logger:    params.Logger,
	}
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// Conversation returns the messages exchanged with a classmate
func (h *MessageHandler) Conversation(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	friendID, err := idParam(c, "friendId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	messages, err := h.messageUC.Conversation(c.Request().Context(), email, friendID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, messages)
}

// Send delivers a message to a classmate
func (h *MessageHandler) Send(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	friendID, err := idParam(c, "friendId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	message, err := h.messageUC.Send(c.Request().Context(), email, friendID, req.Text)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, message)
}

// Events streams new-message notifications of a conversation
func (h *MessageHandler) Events(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	friendID, err := idParam(c, "friendId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	topic, err := h.messageUC.ConversationTopic(c.Request().Context(), email, friendID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return streamTopic(c, h.feed, topic, h.logger)
}
