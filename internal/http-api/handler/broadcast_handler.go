package handler

import (
	"net/http"

	"chathub/internal/http-api/broadcast"

	"github.com/gin-gonic/gin"
)

// BroadcastHandler exposes the subscribe-authorization callback the
// real-time transport invokes before admitting a subscriber to a
// private room channel.
type BroadcastHandler struct {
	authorizer *broadcast.Authorizer
}

func NewBroadcastHandler(authorizer *broadcast.Authorizer) *BroadcastHandler {
	return &BroadcastHandler{authorizer: authorizer}
}

// RegisterRoutes registers broadcasting routes (already authenticated
// by parent middleware)
func (h *BroadcastHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/broadcasting/auth", h.Authorize)
}

type broadcastAuthRequest struct {
	ChannelName string `json:"channel_name" binding:"required"`
}

// Authorize answers whether the caller may subscribe to a channel.
// Membership is required even for public rooms: subscribing grants
// ongoing message receipt.
// POST /api/broadcasting/auth
func (h *BroadcastHandler) Authorize(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req broadcastAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed, err := h.authorizer.AuthorizeSubscribe(userID.(string), req.ChannelName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to subscribe to this channel"})
		return
	}

	username, _ := c.Get("username")
	c.JSON(http.StatusOK, gin.H{
		"channel_name": req.ChannelName,
		"user": gin.H{
			"id":   userID,
			"name": username,
		},
	})
}
