package handlers

import (
	"net/http"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: repository.NewNotificationRepository(db),
	}
}

// GetNotifications godoc
// @Summary List the caller's notifications
// @Description List notifications addressed to the authenticated user, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Notification
// @Failure 500 {object} map[string]interface{}
// @Router /api/notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	notifications, err := h.notificationRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkAllRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/notifications/mark_all_read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if _, err := h.notificationRepo.MarkAllRead(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_all_read": true})
}

// SetRead godoc
// @Summary Mark a single notification as read or unread
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Param request body models.UpdateNotificationRequest false "Read flag"
// @Success 200 {object} models.Notification
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/notifications/{id}/read [post]
func (h *NotificationHandler) SetRead(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	notification, err := h.notificationRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	if notification.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own notifications"})
		return
	}

	var req models.UpdateNotificationRequest
	read := true
	if err := c.ShouldBindJSON(&req); err == nil && req.Read != nil {
		read = *req.Read
	}

	if err := h.notificationRepo.SetRead(notification.ID, read); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification", "details": err.Error()})
		return
	}

	notification.Read = read
	c.JSON(http.StatusOK, notification)
}
