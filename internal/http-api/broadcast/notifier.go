// Package broadcast is the delivery side channel: it turns stored
// messages into fan-out events on per-room channels and authorizes
// channel subscriptions. Delivery is best-effort; persistence is the
// source of truth.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"chathub/internal/http-api/dto"
)

// EventMessageSent is the event name carried on message fan-out.
const EventMessageSent = "message.sent"

const channelPrefix = "room."

// ChannelName returns the deterministic fan-out channel for a room.
func ChannelName(roomID int64) string {
	return fmt.Sprintf("%s%d", channelPrefix, roomID)
}

// ParseChannelName extracts the room id from a channel name,
// reporting false for anything that is not a room channel.
func ParseChannelName(channel string) (int64, bool) {
	raw, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok {
		return 0, false
	}
	roomID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || roomID < 1 {
		return 0, false
	}
	return roomID, true
}

// Event is the wire shape published to subscribers.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Publisher is the external fan-out service boundary.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Notifier interface {
	MessageSent(ctx context.Context, message *dto.MessageResponse) error
}

type notifier struct {
	pub Publisher
}

func NewNotifier(pub Publisher) Notifier {
	return &notifier{pub: pub}
}

// MessageSent publishes the stored message, with its resolved sender
// profile, to the room's channel. Callers treat failures as
// best-effort: a failed publish never unwinds persistence.
func (n *notifier) MessageSent(ctx context.Context, message *dto.MessageResponse) error {
	payload, err := json.Marshal(Event{Event: EventMessageSent, Payload: message})
	if err != nil {
		return fmt.Errorf("failed to encode delivery event: %w", err)
	}
	return n.pub.Publish(ctx, ChannelName(message.RoomID), payload)
}
