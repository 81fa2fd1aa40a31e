package broadcast

// MembershipChecker is the slice of the room store the authorizer
// needs. RoomRepository satisfies it.
type MembershipChecker interface {
	IsMember(roomID int64, userID string) (bool, error)
}

// Authorizer decides whether a user may subscribe to a room channel.
// Subscription requires a recorded membership even for public rooms:
// it grants ongoing message receipt, not a one-off read.
type Authorizer struct {
	members MembershipChecker
}

func NewAuthorizer(members MembershipChecker) *Authorizer {
	return &Authorizer{members: members}
}

// AuthorizeSubscribe reports whether the user may subscribe to the
// named channel. Unknown channel shapes are denied, not errored.
func (a *Authorizer) AuthorizeSubscribe(userID, channel string) (bool, error) {
	roomID, ok := ParseChannelName(channel)
	if !ok {
		return false, nil
	}
	return a.members.IsMember(roomID, userID)
}
