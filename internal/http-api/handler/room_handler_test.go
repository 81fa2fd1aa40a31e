package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRoomService mocks the RoomService interface
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) CreateRoom(creatorID string, input *dto.CreateRoomDTO) (*dto.RoomResponse, error) {
	args := m.Called(creatorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RoomResponse), args.Error(1)
}

func (m *MockRoomService) GetRoom(roomID int64, requesterID string) (*dto.RoomResponse, error) {
	args := m.Called(roomID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RoomResponse), args.Error(1)
}

func (m *MockRoomService) ListRooms(requesterID string, memberOnly bool, page, pageSize int) (*dto.PaginatedRoomResponse, error) {
	args := m.Called(requesterID, memberOnly, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedRoomResponse), args.Error(1)
}

func (m *MockRoomService) JoinRoom(roomID int64, userID string) (*dto.RoomResponse, error) {
	args := m.Called(roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RoomResponse), args.Error(1)
}

func (m *MockRoomService) LeaveRoom(roomID int64, userID string) error {
	args := m.Called(roomID, userID)
	return args.Error(0)
}

func (m *MockRoomService) DeleteRoom(roomID int64, requesterID string) error {
	args := m.Called(roomID, requesterID)
	return args.Error(0)
}

func (m *MockRoomService) ListMembers(roomID int64, requesterID string) ([]dto.RoomMemberResponse, error) {
	args := m.Called(roomID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RoomMemberResponse), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// authenticatedAs stands in for the auth middleware in tests.
func authenticatedAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func newRoomRouter(mockService *MockRoomService, userID string) *gin.Engine {
	router := setupRouter()
	handler := NewRoomHandler(mockService, 20, 100)
	group := router.Group("/api", authenticatedAs(userID))
	handler.RegisterRoutes(group)
	return router
}

func TestCreateRoom_Success(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	created := &dto.RoomResponse{
		ID:         1,
		Name:       "General",
		Slug:       "general",
		Visibility: "public",
		CreatedBy:  "user-123",
	}
	mockService.On("CreateRoom", "user-123", mock.AnythingOfType("*dto.CreateRoomDTO")).Return(created, nil)

	body, _ := json.Marshal(dto.CreateRoomDTO{Name: "General"})
	req, _ := http.NewRequest(http.MethodPost, "/api/rooms", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.RoomResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "general", resp.Slug)
	mockService.AssertExpectations(t)
}

func TestCreateRoom_MissingName(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	req, _ := http.NewRequest(http.MethodPost, "/api/rooms", bytes.NewBufferString(`{"description":"no name"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything)
}

func TestCreateRoom_DuplicateSlug(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	mockService.On("CreateRoom", "user-123", mock.AnythingOfType("*dto.CreateRoomDTO")).
		Return(nil, service.ErrDuplicateSlug)

	body, _ := json.Marshal(dto.CreateRoomDTO{Name: "General"})
	req, _ := http.NewRequest(http.MethodPost, "/api/rooms", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetRoom_NotFound(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	mockService.On("GetRoom", int64(42), "user-123").Return(nil, service.ErrRoomNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/rooms/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRoom_PrivateHiddenAsNotFound(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "outsider")

	// Private rooms are reported as missing to non-members, identical
	// to a room that does not exist.
	mockService.On("GetRoom", int64(7), "outsider").Return(nil, service.ErrRoomNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/rooms/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRoom_InvalidID(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	req, _ := http.NewRequest(http.MethodGet, "/api/rooms/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetRoom", mock.Anything, mock.Anything)
}

func TestListRooms_PassesPagination(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	page := dto.NewPaginatedRoomResponse([]dto.RoomResponse{{ID: 1, Name: "General"}}, 1, 2, 10)
	mockService.On("ListRooms", "user-123", false, 2, 10).Return(page, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/rooms?page=2&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListRooms_ClampsOversizedPage(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	page := dto.NewPaginatedRoomResponse(nil, 0, 1, 20)
	mockService.On("ListRooms", "user-123", false, 1, 20).Return(page, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/rooms?page_size=5000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListRooms_MemberRoomsFlag(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	page := dto.NewPaginatedRoomResponse(nil, 0, 1, 20)
	mockService.On("ListRooms", "user-123", true, 1, 20).Return(page, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/rooms?member_rooms=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestJoinRoom_AlreadyMember(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	mockService.On("JoinRoom", int64(1), "user-123").Return(nil, service.ErrAlreadyMember)

	req, _ := http.NewRequest(http.MethodPost, "/api/rooms/1/join", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJoinRoom_PrivateRoomForbidden(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	mockService.On("JoinRoom", int64(1), "user-123").Return(nil, service.ErrNotAuthorized)

	req, _ := http.NewRequest(http.MethodPost, "/api/rooms/1/join", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLeaveRoom_CreatorConflict(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	mockService.On("LeaveRoom", int64(1), "user-123").Return(service.ErrCreatorCannotLeave)

	req, _ := http.NewRequest(http.MethodPost, "/api/rooms/1/leave", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteRoom_NonCreatorForbidden(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	mockService.On("DeleteRoom", int64(1), "user-123").Return(service.ErrNotAuthorized)

	req, _ := http.NewRequest(http.MethodDelete, "/api/rooms/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListMembers_Success(t *testing.T) {
	mockService := new(MockRoomService)
	router := newRoomRouter(mockService, "user-123")

	members := []dto.RoomMemberResponse{
		{UserID: "user-123", Username: "alice", Role: "admin"},
		{UserID: "user-456", Username: "bob", Role: "member"},
	}
	mockService.On("ListMembers", int64(1), "user-123").Return(members, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/rooms/1/members", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []dto.RoomMemberResponse `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "admin", resp.Data[0].Role)
}
