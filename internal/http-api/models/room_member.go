package models

import "time"

// Membership roles, from most to least privileged.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

// RoomMember is the membership edge between a user and a room. The
// existence of a row is the sole definition of "is a member"; the
// composite unique index guarantees at most one row per (room, user)
// and is what serializes racing join attempts.
type RoomMember struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"-"`
	RoomID     int64      `gorm:"not null;uniqueIndex:idx_room_members_room_user" json:"room_id"`
	UserID     string     `gorm:"type:uuid;not null;uniqueIndex:idx_room_members_room_user;index" json:"user_id"`
	Role       string     `gorm:"not null;default:'member'" json:"role"`
	JoinedAt   time.Time  `gorm:"not null" json:"joined_at"`
	LastReadAt *time.Time `json:"last_read_at,omitempty"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (RoomMember) TableName() string {
	return "room_members"
}
