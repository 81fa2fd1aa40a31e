package models

import "time"

// Room visibility controls default viewability and joinability for non-members.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Room struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Visibility  string    `gorm:"not null;default:'public'" json:"visibility"`
	CreatedByID string    `gorm:"column:created_by;type:uuid;not null;index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Creator *User        `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	Members []RoomMember `gorm:"foreignKey:RoomID" json:"members,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r *Room) IsPublic() bool {
	return r.Visibility == VisibilityPublic
}
