package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
	"github.com/proximahr/proximahr-backend/internal/websocket"
)

// NotificationController exposes the notification inbox and the
// websocket stream.
type NotificationController struct {
	notificationService service.NotificationService
	hub                 *websocket.Hub
}

// NewNotificationController creates a notification controller.
func NewNotificationController(notificationService service.NotificationService, hub *websocket.Hub) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
	}
}

// List handles GET /notifications?unread=true&limit=.
func (ctrl *NotificationController) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	limit := parseIntQuery(c, "limit", 50)

	notifications, err := ctrl.notificationService.List(middleware.GetUserID(c), unreadOnly, limit)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to list notifications", err)
		apperrors.InternalError(c, "failed to list notifications")
		return
	}

	unread, err := ctrl.notificationService.CountUnread(middleware.GetUserID(c))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to count notifications", err)
		apperrors.InternalError(c, "failed to count notifications")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkRead handles POST /notifications/:id/read.
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	notificationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := ctrl.notificationService.MarkAsRead(middleware.GetUserID(c), notificationID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			apperrors.NotFound(c, apperrors.NotificationNotFound, "notification not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("failed to mark notification read", err)
		apperrors.InternalError(c, "failed to mark notification read")
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "notification marked read")
}

// MarkAllRead handles POST /notifications/read-all.
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	if err := ctrl.notificationService.MarkAllAsRead(middleware.GetUserID(c)); err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to mark notifications read", err)
		apperrors.InternalError(c, "failed to mark notifications read")
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "all notifications marked read")
}

// Delete handles DELETE /notifications/:id.
func (ctrl *NotificationController) Delete(c *gin.Context) {
	notificationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := ctrl.notificationService.Delete(middleware.GetUserID(c), notificationID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			apperrors.NotFound(c, apperrors.NotificationNotFound, "notification not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("failed to delete notification", err)
		apperrors.InternalError(c, "failed to delete notification")
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "notification deleted")
}

// Stream handles GET /notifications/stream, upgrading to a websocket
// that receives new notifications as they are created.
func (ctrl *NotificationController) Stream(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := websocket.ServeWS(ctrl.hub, c.Writer, c.Request, userID); err != nil {
		middleware.GetLoggerFromContext(c).Error("websocket upgrade failed", err)
	}
}
