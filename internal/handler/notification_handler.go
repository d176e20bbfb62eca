package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/authz"
	"github.com/MarcsonSantos/lu-estilo/internal/middleware"
	"github.com/MarcsonSantos/lu-estilo/pkg/logger"
	"github.com/MarcsonSantos/lu-estilo/prometheus"
)

// Notifier delivers an outbound message and reports its delivery id.
type Notifier interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// NotificationHandler serves admin-only outbound messaging.
type NotificationHandler struct {
	notifier Notifier
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(notifier Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// SendNotificationRequest is the payload for outbound messaging.
type SendNotificationRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send delivers a WhatsApp message to the given number. Admin only. Upstream
// failures are reported to the caller, never swallowed.
func (h *NotificationHandler) Send(c echo.Context) error {
	log := logger.FromContext(c)

	if err := authz.Authorize(middleware.CurrentUser(c), authz.ActionSendNotification, 0); err != nil {
		return respondError(c, err)
	}

	var req SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.InvalidInput("invalid request body"))
	}
	if req.To == "" || req.Message == "" {
		return respondError(c, apperr.InvalidInput("to and message are required"))
	}

	sid, err := h.notifier.Send(c.Request().Context(), req.To, req.Message)
	if err != nil {
		prometheus.NotificationErrorsCounter.Inc()
		return respondError(c, apperr.Upstream("failed to deliver notification", err))
	}

	prometheus.NotificationsSentCounter.Inc()
	log.Info("Notification sent", zap.String("sid", sid))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "notification sent successfully",
		"sid":     sid,
	})
}
