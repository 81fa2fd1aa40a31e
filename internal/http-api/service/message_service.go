package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"chathub/internal/http-api/broadcast"
	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/models"
	"chathub/internal/http-api/repository"

	"gorm.io/gorm"
)

type MessageService interface {
	SendMessage(roomID int64, senderID string, input *dto.SendMessageDTO) (*dto.MessageResponse, error)
	ListMessages(roomID int64, requesterID string, page, pageSize int) (*dto.PaginatedMessageResponse, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	roomRepo    repository.RoomRepository
	notifier    broadcast.Notifier
	maxLength   int
	logger      *slog.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	roomRepo    repository.RoomRepository,
	notifier broadcast.Notifier,
	maxLength int,
	logger *slog.Logger,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
		notifier:    notifier,
		maxLength:   maxLength,
		logger:      logger,
	}
}

// SendMessage validates membership and content, persists the message
// together with the sender's read cursor, then hands it to the
// delivery notifier. Publishing is best-effort: once the transaction
// committed the message stands regardless of fan-out failures.
func (s *messageService) SendMessage(roomID int64, senderID string, input *dto.SendMessageDTO) (*dto.MessageResponse, error) {
	if _, err := s.roomRepo.GetByID(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	isMember, err := s.roomRepo.IsMember(roomID, senderID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotAMember
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(input.Content) > s.maxLength {
		return nil, ErrMessageTooLong
	}

	msgType := input.Type
	if msgType == "" {
		msgType = "text"
	}

	message := &models.Message{
		RoomID:   roomID,
		SenderID: senderID,
		Content:  input.Content,
		Type:     msgType,
		Metadata: input.Metadata,
	}

	if err := s.messageRepo.CreateWithReadCursor(message); err != nil {
		return nil, err
	}

	// Reload with the sender profile resolved
	message, err = s.messageRepo.GetByID(message.ID)
	if err != nil {
		return nil, err
	}

	response := dto.FromModelToMessageResponse(message)

	if err := s.notifier.MessageSent(context.Background(), response); err != nil {
		s.logger.Error("failed to publish message delivery event",
			"room_id", roomID, "message_id", message.ID, "error", err)
	}

	return response, nil
}

// ListMessages returns a page of messages, newest first, and advances
// the requester's read cursor whether or not the page was empty.
func (s *messageService) ListMessages(roomID int64, requesterID string, page, pageSize int) (*dto.PaginatedMessageResponse, error) {
	if _, err := s.roomRepo.GetByID(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	isMember, err := s.roomRepo.IsMember(roomID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotAMember
	}

	messages, total, err := s.messageRepo.GetByRoom(roomID, page, pageSize)
	if err != nil {
		return nil, err
	}

	// Read receipt, advanced even when the page is empty
	if err := s.roomRepo.MarkRead(roomID, requesterID, time.Now()); err != nil {
		return nil, err
	}

	messageResponses := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		messageResponses = append(messageResponses, *dto.FromModelToMessageResponse(&message))
	}

	return dto.NewPaginatedMessageResponse(messageResponses, int(total), page, pageSize), nil
}
