package service

import (
	"errors"
	"strings"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/models"
	"chathub/internal/http-api/policy"
	"chathub/internal/http-api/repository"

	"gorm.io/gorm"
)

type RoomService interface {
	CreateRoom(creatorID string, input *dto.CreateRoomDTO) (*dto.RoomResponse, error)
	GetRoom(roomID int64, requesterID string) (*dto.RoomResponse, error)
	ListRooms(requesterID string, memberOnly bool, page, pageSize int) (*dto.PaginatedRoomResponse, error)
	JoinRoom(roomID int64, userID string) (*dto.RoomResponse, error)
	LeaveRoom(roomID int64, userID string) error
	DeleteRoom(roomID int64, requesterID string) error
	ListMembers(roomID int64, requesterID string) ([]dto.RoomMemberResponse, error)
}

type roomService struct {
	roomRepo repository.RoomRepository
}

func NewRoomService(roomRepo repository.RoomRepository) RoomService {
	return &roomService{roomRepo: roomRepo}
}

// CreateRoom creates a room and admits the creator as admin in the
// same transaction.
func (s *roomService) CreateRoom(creatorID string, input *dto.CreateRoomDTO) (*dto.RoomResponse, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEmptyContent
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(name)
	}

	// Pre-check for a friendlier error; the unique index is still the
	// authority under concurrency.
	exists, err := s.roomRepo.SlugExists(slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSlug
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	room := &models.Room{
		Name:        name,
		Description: input.Description,
		Slug:        slug,
		Visibility:  visibility,
		CreatedByID: creatorID,
	}

	if err := s.roomRepo.CreateWithAdmin(room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	return dto.FromModelToRoomResponse(room), nil
}

// GetRoom returns the room if the requester may view it
func (s *roomService) GetRoom(roomID int64, requesterID string) (*dto.RoomResponse, error) {
	room, membership, err := s.loadRoomAndMembership(roomID, requesterID)
	if err != nil {
		return nil, err
	}

	if !policy.CanView(requesterID, room, membership) {
		return nil, ErrNotAuthorized
	}

	return dto.FromModelToRoomResponse(room), nil
}

// ListRooms returns a page of rooms visible to the requester, newest
// first. With memberOnly set, only rooms the requester belongs to.
func (s *roomService) ListRooms(requesterID string, memberOnly bool, page, pageSize int) (*dto.PaginatedRoomResponse, error) {
	var rooms []models.Room
	var total int64
	var err error

	if memberOnly {
		rooms, total, err = s.roomRepo.ListMemberOf(requesterID, page, pageSize)
	} else {
		rooms, total, err = s.roomRepo.ListVisible(requesterID, page, pageSize)
	}
	if err != nil {
		return nil, err
	}

	roomResponses := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		roomResponses = append(roomResponses, *dto.FromModelToRoomResponse(&room))
	}

	return dto.NewPaginatedRoomResponse(roomResponses, int(total), page, pageSize), nil
}

// JoinRoom admits the user as a regular member. Duplicate joins are a
// conflict, not a no-op; private rooms reject non-invited joiners.
func (s *roomService) JoinRoom(roomID int64, userID string) (*dto.RoomResponse, error) {
	room, membership, err := s.loadRoomAndMembership(roomID, userID)
	if err != nil {
		return nil, err
	}

	if membership != nil {
		return nil, ErrAlreadyMember
	}
	if !policy.CanJoin(userID, room, membership) {
		return nil, ErrNotAuthorized
	}

	if _, err := s.roomRepo.AddMember(roomID, userID, models.RoleMember); err != nil {
		// A concurrent join lost the race on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	return dto.FromModelToRoomResponse(room), nil
}

// LeaveRoom removes the user's membership. The creator can never
// leave; they must delete the room instead.
func (s *roomService) LeaveRoom(roomID int64, userID string) error {
	room, membership, err := s.loadRoomAndMembership(roomID, userID)
	if err != nil {
		return err
	}

	if membership == nil {
		return ErrNotAMember
	}
	if !policy.CanLeave(userID, room, membership) {
		return ErrCreatorCannotLeave
	}

	if err := s.roomRepo.RemoveMember(roomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAMember
		}
		return err
	}
	return nil
}

// DeleteRoom deletes the room with cascading membership and message
// deletion. Creator only.
func (s *roomService) DeleteRoom(roomID int64, requesterID string) error {
	room, membership, err := s.loadRoomAndMembership(roomID, requesterID)
	if err != nil {
		return err
	}

	if !policy.CanDelete(requesterID, room, membership) {
		return ErrNotAuthorized
	}

	if err := s.roomRepo.Delete(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}

// ListMembers returns the room's memberships with user profiles,
// ordered by join time. Requires view access.
func (s *roomService) ListMembers(roomID int64, requesterID string) ([]dto.RoomMemberResponse, error) {
	room, membership, err := s.loadRoomAndMembership(roomID, requesterID)
	if err != nil {
		return nil, err
	}

	if !policy.CanView(requesterID, room, membership) {
		return nil, ErrNotAuthorized
	}

	members, err := s.roomRepo.ListMembers(roomID)
	if err != nil {
		return nil, err
	}

	memberResponses := make([]dto.RoomMemberResponse, 0, len(members))
	for _, member := range members {
		memberResponses = append(memberResponses, *dto.FromModelToRoomMemberResponse(&member))
	}
	return memberResponses, nil
}

// loadRoomAndMembership resolves the room and the user's membership
// edge; a missing edge comes back as nil, not an error.
func (s *roomService) loadRoomAndMembership(roomID int64, userID string) (*models.Room, *models.RoomMember, error) {
	room, err := s.roomRepo.GetByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, err
	}

	membership, err := s.roomRepo.GetMembership(roomID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, nil, nil
		}
		return nil, nil, err
	}
	return room, membership, nil
}

// Slugify derives a URL-safe slug from a room name: lowercase, runs
// of non-alphanumerics collapsed to single dashes.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	return b.String()
}
