package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/usecase"
)

const defaultMessagePageSize = 50

type chatService struct {
	chats    repository.ChatRepository
	users    repository.UserRepository
	notifier service.NotificationService
	logger   *slog.Logger
	now      func() time.Time
}

// NewChatService creates a new chat service instance
func NewChatService(
	chats repository.ChatRepository,
	users repository.UserRepository,
	notifier service.NotificationService,
	logger *slog.Logger,
) usecase.ChatUsecase {
	return &chatService{
		chats:    chats,
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// OpenRoom ensures the conversation between two users exists and
// returns it.
func (s *chatService) OpenRoom(ctx context.Context, userA, userB, orderID string) (*entity.ChatRoom, error) {
	if userA == "" || userB == "" || userA == userB {
		return nil, errors.New("a chat room needs two distinct participants")
	}

	room := &entity.ChatRoom{
		ID:           entity.ChatRoomID(userA, userB),
		Participants: []string{userA, userB},
		OrderID:      orderID,
		CreatedAt:    s.now().UTC(),
	}

	ensured, err := s.chats.EnsureRoom(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat room: %w", err)
	}

	return ensured, nil
}

// ListRooms returns the user's conversations, most recently active
// first.
func (s *chatService) ListRooms(ctx context.Context, userID string) ([]*entity.ChatRoom, error) {
	return s.chats.FindRoomsByParticipant(ctx, userID)
}

// SendMessage appends a message and pushes a notification to the
// recipient.
func (s *chatService) SendMessage(ctx context.Context, input *usecase.SendMessageInput) (*entity.ChatMessage, error) {
	room, err := s.OpenRoom(ctx, input.SenderID, input.RecipientID, input.OrderID)
	if err != nil {
		return nil, err
	}

	msg := &entity.ChatMessage{
		RoomID:    room.ID,
		SenderID:  input.SenderID,
		Text:      input.Text,
		OrderID:   input.OrderID,
		Timestamp: s.now().UTC(),
	}

	if err := s.chats.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.notifyRecipient(ctx, input.RecipientID, msg)

	return msg, nil
}

// ListMessages returns a room's messages ordered by timestamp. Room
// ids are guessable (sorted participant ids), so the caller must be
// one of the participants.
func (s *chatService) ListMessages(ctx context.Context, roomID, callerID string, since time.Time, limit int) ([]*entity.ChatMessage, error) {
	if !entity.IsRoomParticipant(roomID, callerID) {
		return nil, repository.ErrRoomNotFound
	}
	if limit <= 0 {
		limit = defaultMessagePageSize
	}

	return s.chats.ListMessages(ctx, roomID, since, limit)
}

// MarkRead flags the other side's messages as read.
func (s *chatService) MarkRead(ctx context.Context, roomID, readerID string) error {
	if !entity.IsRoomParticipant(roomID, readerID) {
		return repository.ErrRoomNotFound
	}

	return s.chats.MarkMessagesRead(ctx, roomID, readerID)
}

// notifyRecipient fires a push for the new message. Delivery failures
// are logged and never fail the send.
func (s *chatService) notifyRecipient(ctx context.Context, recipientID string, msg *entity.ChatMessage) {
	profile, err := s.users.FindProfileByID(ctx, recipientID)
	if err != nil || profile.FCMToken == "" {
		return
	}

	sender, err := s.users.FindProfileByID(ctx, msg.SenderID)
	title := "New message"
	if err == nil && sender.Name != "" {
		title = sender.Name
	}

	data := map[string]string{
		"type":    "chat_message",
		"room_id": msg.RoomID,
	}
	if msg.OrderID != "" {
		data["order_id"] = msg.OrderID
	}

	if err := s.notifier.SendSingleNotification(ctx, profile.FCMToken, title, msg.Text, data); err != nil {
		s.logger.WarnContext(ctx, "chat push failed",
			slog.String("room_id", msg.RoomID),
			slog.Any("error", err))
	}
}
