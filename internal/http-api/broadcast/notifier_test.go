package broadcast

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"chathub/internal/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// capturePublisher records the last publish instead of hitting redis.
type capturePublisher struct {
	channel string
	payload []byte
	err     error
}

func (p *capturePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.channel = channel
	p.payload = payload
	return p.err
}

type MockMembershipChecker struct {
	mock.Mock
}

func (m *MockMembershipChecker) IsMember(roomID int64, userID string) (bool, error) {
	args := m.Called(roomID, userID)
	return args.Bool(0), args.Error(1)
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "room.42", ChannelName(42))
}

func TestParseChannelName(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		roomID  int64
		ok      bool
	}{
		{"room channel", "room.42", 42, true},
		{"wrong prefix", "presence.42", 0, false},
		{"missing id", "room.", 0, false},
		{"non numeric id", "room.abc", 0, false},
		{"zero id", "room.0", 0, false},
		{"negative id", "room.-1", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roomID, ok := ParseChannelName(tt.channel)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.roomID, roomID)
		})
	}
}

func TestNotifier_MessageSent(t *testing.T) {
	pub := &capturePublisher{}
	n := NewNotifier(pub)

	message := &dto.MessageResponse{
		ID:       7,
		RoomID:   42,
		SenderID: "user-123",
		Content:  "hello",
		Type:     "text",
		Sender: &dto.MessageSenderResponse{
			ID:       "user-123",
			Username: "alice",
		},
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	err := n.MessageSent(context.Background(), message)
	assert.NoError(t, err)

	// Event lands on the message's room channel.
	assert.Equal(t, "room.42", pub.channel)

	var event struct {
		Event   string              `json:"event"`
		Payload dto.MessageResponse `json:"payload"`
	}
	err = json.Unmarshal(pub.payload, &event)
	assert.NoError(t, err)
	assert.Equal(t, EventMessageSent, event.Event)
	assert.Equal(t, int64(7), event.Payload.ID)
	assert.Equal(t, int64(42), event.Payload.RoomID)
	assert.Equal(t, "hello", event.Payload.Content)
	assert.Equal(t, "alice", event.Payload.Sender.Username)
}

func TestNotifier_MessageSent_PublishFails(t *testing.T) {
	pub := &capturePublisher{err: assert.AnError}
	n := NewNotifier(pub)

	err := n.MessageSent(context.Background(), &dto.MessageResponse{ID: 1, RoomID: 1})
	assert.Error(t, err)
}

func TestAuthorizeSubscribe_Member(t *testing.T) {
	members := new(MockMembershipChecker)
	members.On("IsMember", int64(42), "user-123").Return(true, nil)
	a := NewAuthorizer(members)

	allowed, err := a.AuthorizeSubscribe("user-123", "room.42")

	assert.NoError(t, err)
	assert.True(t, allowed)
	members.AssertExpectations(t)
}

func TestAuthorizeSubscribe_NonMember(t *testing.T) {
	members := new(MockMembershipChecker)
	members.On("IsMember", int64(42), "user-123").Return(false, nil)
	a := NewAuthorizer(members)

	allowed, err := a.AuthorizeSubscribe("user-123", "room.42")

	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestAuthorizeSubscribe_UnknownChannelDenied(t *testing.T) {
	members := new(MockMembershipChecker)
	a := NewAuthorizer(members)

	allowed, err := a.AuthorizeSubscribe("user-123", "presence.global")

	assert.NoError(t, err)
	assert.False(t, allowed)
	// Unknown channels never reach the membership store.
	members.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything)
}
