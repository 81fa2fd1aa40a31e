package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONMap stores an opaque key/value map as a JSONB column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	return json.Unmarshal(data, m)
}

// Message is immutable once created; there are no edit or delete
// operations. Ordering is by created_at with id as tie-break.
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    int64     `gorm:"not null;index:idx_messages_room_id" json:"room_id"`
	SenderID  string    `gorm:"type:uuid;not null;index" json:"sender_id"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	Type      string    `gorm:"not null;default:'text'" json:"type"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Room   *Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;" json:"room,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
