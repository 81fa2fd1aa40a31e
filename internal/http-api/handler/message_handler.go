package handler

import (
	"net/http"
	"strconv"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService  service.MessageService
	defaultPageSize int
	maxPageSize     int
}

func NewMessageHandler(messageService service.MessageService, defaultPageSize, maxPageSize int) *MessageHandler {
	return &MessageHandler{
		messageService:  messageService,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// RegisterRoutes registers message routes under the rooms group
// (already authenticated by parent middleware). The send path carries
// the per-client rate limiter.
func (h *MessageHandler) RegisterRoutes(router *gin.RouterGroup, sendLimiter gin.HandlerFunc) {
	messages := router.Group("/rooms/:id/messages")
	{
		messages.GET("", h.List)
		messages.POST("", sendLimiter, h.Send)
	}
}

// Send appends a message to a room
// POST /api/rooms/:id/messages
func (h *MessageHandler) Send(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.SendMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.SendMessage(roomID, userID.(string), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// List retrieves a page of room messages, newest first, and advances
// the caller's read cursor
// GET /api/rooms/:id/messages?page=1&page_size=20
func (h *MessageHandler) List(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > h.maxPageSize {
		pageSize = h.defaultPageSize
	}

	messages, err := h.messageService.ListMessages(roomID, userID.(string), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
