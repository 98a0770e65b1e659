package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sizefit/business/chat"
	"sizefit/domain"
	"sizefit/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ChatService interface {
	HandleMessage(ctx context.Context, sessionID, message string) (chat.ChatReply, error)
	GetSession(ctx context.Context, sessionID string) (*domain.ConversationSession, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type ChatHandler struct {
	chatService ChatService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator.New(),
		// LLM round trips can be slow, so chat gets a longer budget
		timeout: 30 * time.Second,
	}
}

type ChatMessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message" validate:"required"`
}

func (h *ChatHandler) PostMessage(c echo.Context) error {
	var req ChatMessageRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate chat request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reply, err := h.chatService.HandleMessage(ctx, req.SessionID, req.Message)
	if err != nil {
		logger.Error("Failed to handle chat message", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reply))
}

func (h *ChatHandler) GetSession(c echo.Context) error {
	sessionID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.chatService.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get chat session", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(session))
}

func (h *ChatHandler) DeleteSession(c echo.Context) error {
	sessionID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.chatService.ClearSession(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to clear chat session", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "session cleared",
		"session_id": sessionID,
	})
}
