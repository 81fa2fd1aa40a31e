// Package policy holds the membership-policy predicates for rooms.
// Every predicate is a pure function over (user, room, membership);
// the caller loads the membership edge and passes it in, nil meaning
// the user is not a member. No predicate touches the store.
package policy

import "chathub/internal/http-api/models"

// CanView reports whether the user may read the room: public rooms
// are viewable by anyone, private rooms by members only.
func CanView(userID string, room *models.Room, membership *models.RoomMember) bool {
	return room.IsPublic() || membership != nil
}

// CanJoin reports whether the user may join: public rooms only, and
// never again once a membership row exists.
func CanJoin(userID string, room *models.Room, membership *models.RoomMember) bool {
	return room.IsPublic() && membership == nil
}

// CanLeave reports whether the user may leave. The creator can never
// leave their own room regardless of role; they must delete it.
// Creator-ness is determined by created_by, not by the admin role.
func CanLeave(userID string, room *models.Room, membership *models.RoomMember) bool {
	return membership != nil && userID != room.CreatedByID
}

// CanManage reports whether the user may rename the room or change
// its configuration. Only the admin role qualifies; moderators may be
// granted a narrower subset in extensions.
func CanManage(userID string, room *models.Room, membership *models.RoomMember) bool {
	return membership != nil && membership.Role == models.RoleAdmin
}

// CanDelete reports whether the user may delete the room. Creator
// only, independent of role.
func CanDelete(userID string, room *models.Room, membership *models.RoomMember) bool {
	return userID == room.CreatedByID
}
