package handler

import (
	"errors"
	"net/http"

	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer sentinel errors to HTTP
// statuses. The distinctions matter to callers: 404 for missing
// rooms, 403 for policy violations, 409 for membership conflicts,
// 422 for invalid input.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthorized), errors.Is(err, service.ErrNotAMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyMember), errors.Is(err, service.ErrCreatorCannotLeave):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateSlug),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrMessageTooLong):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
