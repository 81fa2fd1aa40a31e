package service

import "errors"

// Sentinel errors shared by the room and message services. Handlers
// match these with errors.Is and map them to HTTP statuses; the
// distinctions (not-found vs unauthorized vs conflict vs invalid
// input) are part of the caller-visible contract.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrNotAMember         = errors.New("user is not a member of this room")
	ErrAlreadyMember      = errors.New("user is already a member of this room")
	ErrCreatorCannotLeave = errors.New("room creator cannot leave the room; delete the room instead")
	ErrDuplicateSlug      = errors.New("room slug is already taken")
	ErrEmptyContent       = errors.New("message content must not be empty")
	ErrMessageTooLong     = errors.New("message content exceeds the maximum length")
)
