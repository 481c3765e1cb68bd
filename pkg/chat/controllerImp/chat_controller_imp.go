package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"docpal/pkg/assistant"
	"docpal/pkg/chat/service"
	"docpal/pkg/identity"
)

type ChatCtrl struct {
	s   service.ChatService
	log *zap.Logger
}

func New(s service.ChatService, log *zap.Logger) *ChatCtrl {
	return &ChatCtrl{s: s, log: log}
}

func (h *ChatCtrl) Send(c echo.Context) error {
	email := c.FormValue("email")
	if email == "" {
		email, _ = c.Get("email").(string)
	}
	// the authenticated id always wins: a form value must not let one
	// caller write into or read another user's history
	userID, _ := c.Get("uid").(string)
	if userID == "" {
		userID = c.FormValue("userId")
	}
	content := c.FormValue("content")

	tenant, err := identity.Resolve(email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}

	reply, err := h.s.Converse(c.Request().Context(), tenant, userID, content)
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User ID is required"})
	case errors.Is(err, service.ErrEmptyMessage):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "content is required"})
	case errors.Is(err, service.ErrNoResponse):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Assistant did not provide a response."})
	case errors.Is(err, assistant.ErrUnavailable):
		h.log.Error("chat upstream failure", zap.String("tenant", tenant), zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": map[string]string{"role": "assistant", "content": reply},
	})
}

func (h *ChatCtrl) History(c echo.Context) error {
	userID, _ := c.Get("uid").(string)
	if userID == "" {
		userID = c.QueryParam("userId")
	}
	turns, err := h.s.History(userID)
	if errors.Is(err, service.ErrUnauthenticated) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User ID is required"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"turns": turns})
}
