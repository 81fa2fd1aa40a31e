package repository

import (
	"time"

	"chathub/internal/http-api/models"

	"gorm.io/gorm"
)

// RoomRepository is the persistence interface for rooms and their
// membership edges. Multi-step mutations (room creation with the
// creator's admin membership, cascade deletion) run inside a single
// transaction: either both effects are visible or neither is.
type RoomRepository interface {
	CreateWithAdmin(room *models.Room) error
	GetByID(roomID int64) (*models.Room, error)
	SlugExists(slug string) (bool, error)
	Delete(roomID int64) error

	AddMember(roomID int64, userID, role string) (*models.RoomMember, error)
	RemoveMember(roomID int64, userID string) error
	GetMembership(roomID int64, userID string) (*models.RoomMember, error)
	IsMember(roomID int64, userID string) (bool, error)
	ListMembers(roomID int64) ([]models.RoomMember, error)
	MarkRead(roomID int64, userID string, at time.Time) error

	ListVisible(userID string, page, pageSize int) ([]models.Room, int64, error)
	ListMemberOf(userID string, page, pageSize int) ([]models.Room, int64, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// CreateWithAdmin inserts the room and the creator's admin membership
// in one transaction. A duplicate slug surfaces as gorm.ErrDuplicatedKey.
func (r *roomRepository) CreateWithAdmin(room *models.Room) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		member := &models.RoomMember{
			RoomID:   room.ID,
			UserID:   room.CreatedByID,
			Role:     models.RoleAdmin,
			JoinedAt: time.Now(),
		}
		return tx.Create(member).Error
	})
}

// GetByID retrieves a room by its ID
func (r *roomRepository) GetByID(roomID int64) (*models.Room, error) {
	var room models.Room
	if err := r.db.Preload("Creator").First(&room, "id = ?", roomID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Room{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete cascades through messages and memberships before removing
// the room itself, all in one transaction.
func (r *roomRepository) Delete(roomID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&models.RoomMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Room{}, "id = ?", roomID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddMember inserts a membership edge. The unique index on
// (room_id, user_id) is the enforcement point for concurrent joins:
// the second writer gets gorm.ErrDuplicatedKey.
func (r *roomRepository) AddMember(roomID int64, userID, role string) (*models.RoomMember, error) {
	member := &models.RoomMember{
		RoomID:   roomID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := r.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *roomRepository) RemoveMember(roomID int64, userID string) error {
	result := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&models.RoomMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetMembership returns the membership edge, or gorm.ErrRecordNotFound
// if the user is not a member.
func (r *roomRepository) GetMembership(roomID int64, userID string) (*models.RoomMember, error) {
	var member models.RoomMember
	if err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *roomRepository) IsMember(roomID int64, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListMembers retrieves all memberships of a room with user profiles,
// ordered by join time.
func (r *roomRepository) ListMembers(roomID int64) ([]models.RoomMember, error) {
	var members []models.RoomMember
	err := r.db.Where("room_id = ?", roomID).
		Preload("User").
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// MarkRead advances the member's read cursor. A missing membership
// row is a no-op, not an error.
func (r *roomRepository) MarkRead(roomID int64, userID string, at time.Time) error {
	return r.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("last_read_at", at).Error
}

// ListVisible retrieves public rooms plus private rooms the user is a
// member of, newest first, with pagination.
func (r *roomRepository) ListVisible(userID string, page, pageSize int) ([]models.Room, int64, error) {
	query := r.db.Model(&models.Room{}).
		Where("visibility = ? OR id IN (?)",
			models.VisibilityPublic,
			r.db.Model(&models.RoomMember{}).Select("room_id").Where("user_id = ?", userID),
		)
	return r.paginateRooms(query, page, pageSize)
}

// ListMemberOf retrieves only rooms the user is a member of.
func (r *roomRepository) ListMemberOf(userID string, page, pageSize int) ([]models.Room, int64, error) {
	query := r.db.Model(&models.Room{}).
		Where("id IN (?)",
			r.db.Model(&models.RoomMember{}).Select("room_id").Where("user_id = ?", userID),
		)
	return r.paginateRooms(query, page, pageSize)
}

func (r *roomRepository) paginateRooms(query *gorm.DB, page, pageSize int) ([]models.Room, int64, error) {
	var rooms []models.Room
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}
