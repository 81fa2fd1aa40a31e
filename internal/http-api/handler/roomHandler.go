package handler

import (
	"net/http"
	"strconv"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService     service.RoomService
	defaultPageSize int
	maxPageSize     int
}

func NewRoomHandler(roomService service.RoomService, defaultPageSize, maxPageSize int) *RoomHandler {
	return &RoomHandler{
		roomService:     roomService,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// RegisterRoutes registers room-related routes (already authenticated
// by parent middleware)
func (h *RoomHandler) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.GET("", h.List)
		rooms.POST("", h.Create)
		rooms.GET("/:id", h.GetByID)
		rooms.DELETE("/:id", h.Delete)
		rooms.POST("/:id/join", h.Join)
		rooms.POST("/:id/leave", h.Leave)
		rooms.GET("/:id/members", h.ListMembers)
	}
}

// Create creates a new room with the caller admitted as admin
// POST /api/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateRoomDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.CreateRoom(userID.(string), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// List retrieves rooms visible to the caller with pagination
// GET /api/rooms?member_rooms=false&page=1&page_size=20
func (h *RoomHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberOnly := c.DefaultQuery("member_rooms", "false") == "true"
	page, pageSize := h.pagination(c)

	rooms, err := h.roomService.ListRooms(userID.(string), memberOnly, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// GetByID retrieves a room by ID
// GET /api/rooms/:id
func (h *RoomHandler) GetByID(c *gin.Context) {
	roomID, userID, ok := h.roomAndUser(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(roomID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// Delete deletes a room (creator only), cascading members and messages
// DELETE /api/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	roomID, userID, ok := h.roomAndUser(c)
	if !ok {
		return
	}

	if err := h.roomService.DeleteRoom(roomID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// Join adds the caller as a member of a public room
// POST /api/rooms/:id/join
func (h *RoomHandler) Join(c *gin.Context) {
	roomID, userID, ok := h.roomAndUser(c)
	if !ok {
		return
	}

	room, err := h.roomService.JoinRoom(roomID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// Leave removes the caller's membership
// POST /api/rooms/:id/leave
func (h *RoomHandler) Leave(c *gin.Context) {
	roomID, userID, ok := h.roomAndUser(c)
	if !ok {
		return
	}

	if err := h.roomService.LeaveRoom(roomID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully left the room"})
}

// ListMembers retrieves the room's members with profiles
// GET /api/rooms/:id/members
func (h *RoomHandler) ListMembers(c *gin.Context) {
	roomID, userID, ok := h.roomAndUser(c)
	if !ok {
		return
	}

	members, err := h.roomService.ListMembers(roomID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": members})
}

func (h *RoomHandler) roomAndUser(c *gin.Context) (int64, string, bool) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return 0, "", false
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, "", false
	}

	return roomID, userID.(string), true
}

func (h *RoomHandler) pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > h.maxPageSize {
		pageSize = h.defaultPageSize
	}
	return page, pageSize
}
