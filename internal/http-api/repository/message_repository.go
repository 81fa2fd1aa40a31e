package repository

import (
	"time"

	"chathub/internal/http-api/models"

	"gorm.io/gorm"
)

// MessageRepository persists messages. Messages are append-only;
// there is no update or delete path.
type MessageRepository interface {
	CreateWithReadCursor(message *models.Message) error
	GetByID(messageID int64) (*models.Message, error)
	GetByRoom(roomID int64, page, pageSize int) ([]models.Message, int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// CreateWithReadCursor inserts the message and advances the sender's
// read cursor in the same transaction, so a sender never sees their
// own message as unread.
func (r *messageRepository) CreateWithReadCursor(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.RoomMember{}).
			Where("room_id = ? AND user_id = ?", message.RoomID, message.SenderID).
			Update("last_read_at", time.Now()).Error
	})
}

// GetByID retrieves a message with its sender profile resolved
func (r *messageRepository) GetByID(messageID int64) (*models.Message, error) {
	var message models.Message
	err := r.db.Where("id = ?", messageID).
		Preload("Sender").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetByRoom retrieves a page of messages for a room, newest first.
// Ties on created_at are broken deterministically by insertion id.
func (r *messageRepository) GetByRoom(roomID int64, page, pageSize int) ([]models.Message, int64, error) {
	var messages []models.Message
	var total int64

	// Count total messages
	if err := r.db.Model(&models.Message{}).Where("room_id = ?", roomID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated messages
	offset := (page - 1) * pageSize
	err := r.db.Where("room_id = ?", roomID).
		Preload("Sender").
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&messages).Error

	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
