package dto

import (
	"time"

	"chathub/internal/http-api/models"
)

// CreateRoomDTO for creating a room. Slug is optional and generated
// from the name when absent.
type CreateRoomDTO struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Slug        string `json:"slug" binding:"omitempty,max=100"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=public private"`
}

// RoomResponse for returning room information
type RoomResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	Visibility  string    `json:"visibility"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromModelToRoomResponse converts a Room model to RoomResponse DTO
func FromModelToRoomResponse(room *models.Room) *RoomResponse {
	return &RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		Slug:        room.Slug,
		Visibility:  room.Visibility,
		CreatedBy:   room.CreatedByID,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
}

// RoomMemberResponse for returning a room member with profile fields
type RoomMemberResponse struct {
	UserID     string     `json:"user_id"`
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	JoinedAt   time.Time  `json:"joined_at"`
	LastReadAt *time.Time `json:"last_read_at,omitempty"`
}

// FromModelToRoomMemberResponse converts a RoomMember model to RoomMemberResponse DTO
func FromModelToRoomMemberResponse(member *models.RoomMember) *RoomMemberResponse {
	resp := &RoomMemberResponse{
		UserID:     member.UserID,
		Role:       member.Role,
		JoinedAt:   member.JoinedAt,
		LastReadAt: member.LastReadAt,
	}
	if member.User != nil {
		resp.Username = member.User.Username
	}
	return resp
}

// PaginatedRoomResponse for returning paginated rooms
type PaginatedRoomResponse struct {
	Data       []RoomResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedRoomResponse creates a paginated room response
func NewPaginatedRoomResponse(data []RoomResponse, total, page, pageSize int) *PaginatedRoomResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedRoomResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
