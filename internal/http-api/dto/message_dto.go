package dto

import (
	"time"

	"chathub/internal/http-api/models"
)

// SendMessageDTO for sending a message to a room. The binding max is
// a coarse transport-level cap; the configured limit is enforced by
// the message service.
type SendMessageDTO struct {
	Content  string         `json:"content" binding:"required"`
	Type     string         `json:"type" binding:"omitempty,max=50"`
	Metadata map[string]any `json:"metadata"`
}

// MessageSenderResponse is the resolved sender profile carried on a message
type MessageSenderResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// MessageResponse for returning message information
type MessageResponse struct {
	ID        int64                  `json:"id"`
	RoomID    int64                  `json:"room_id"`
	SenderID  string                 `json:"sender_id"`
	Content   string                 `json:"content"`
	Type      string                 `json:"type"`
	Metadata  map[string]any         `json:"metadata,omitempty"`
	Sender    *MessageSenderResponse `json:"sender,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// FromModelToMessageResponse converts a Message model to MessageResponse DTO
func FromModelToMessageResponse(message *models.Message) *MessageResponse {
	resp := &MessageResponse{
		ID:        message.ID,
		RoomID:    message.RoomID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		Type:      message.Type,
		Metadata:  message.Metadata,
		CreatedAt: message.CreatedAt,
	}
	if message.Sender != nil {
		resp.Sender = &MessageSenderResponse{
			ID:       message.Sender.ID,
			Username: message.Sender.Username,
		}
	}
	return resp
}

// PaginatedMessageResponse for returning paginated messages, newest first
type PaginatedMessageResponse struct {
	Data       []MessageResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedMessageResponse creates a paginated message response
func NewPaginatedMessageResponse(data []MessageResponse, total, page, pageSize int) *PaginatedMessageResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedMessageResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
