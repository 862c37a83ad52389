package handlers

import (
	"net/http"
	"strings"

	"github.com/mediawatch/report-tracking-backend/internal/models"
	"github.com/mediawatch/report-tracking-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(db *gorm.DB, notifications *services.NotificationService) *MessageHandler {
	return &MessageHandler{
		messageService: services.NewMessageService(db, notifications),
	}
}

// SendMessage godoc
// @Summary Send a message
// @Description Send a message to another user. The recipient receives a notification with a preview.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMessageRequest true "Create message request"
// @Success 201 {object} models.Message
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	message, err := h.messageService.Send(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages godoc
// @Summary List messages
// @Description List messages involving the caller. Supports filtering to a conversation between two users, to messages exchanged with one user, to the inbox view, or to a single context.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param context query string false "Filter by context ID"
// @Param user_messages query string false "Messages between the caller and this user"
// @Param participants_filter query string false "Comma-separated pair of user IDs"
// @Param view_type query string false "Set to inbox for received messages only"
// @Success 200 {array} models.Message
// @Failure 500 {object} map[string]interface{}
// @Router /api/messages [get]
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	filter := services.MessageFilter{
		ContextID:          c.Query("context"),
		UserMessages:       c.Query("user_messages"),
		ParticipantsFilter: c.Query("participants_filter"),
		ViewType:           c.Query("view_type"),
	}

	messages, err := h.messageService.List(userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get messages", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetThreads godoc
// @Summary List the caller's conversation threads
// @Description Group the caller's messages into threads by the other participant and context, newest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MessageThread
// @Failure 500 {object} map[string]interface{}
// @Router /api/messages/threads [get]
func (h *MessageHandler) GetThreads(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	threads, err := h.messageService.Threads(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get threads", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, threads)
}
