package usecase

import (
	"context"
	"time"

	"parcel/internal/domain/entity"
)

// SendMessageInput represents the input for sending a chat message
type SendMessageInput struct {
	SenderID    string `json:"-"`
	RecipientID string `json:"recipient_id" validate:"required"`
	Text        string `json:"text" validate:"required,max=2000"`
	OrderID     string `json:"order_id,omitempty"`
}

// ChatUsecase defines the interface for chat use cases
type ChatUsecase interface {
	// OpenRoom ensures the conversation between two users exists and
	// returns it.
	OpenRoom(ctx context.Context, userA, userB, orderID string) (*entity.ChatRoom, error)

	// ListRooms returns the user's conversations, most recently active
	// first.
	ListRooms(ctx context.Context, userID string) ([]*entity.ChatRoom, error)

	// SendMessage appends a message and pushes a notification to the
	// recipient.
	SendMessage(ctx context.Context, input *SendMessageInput) (*entity.ChatMessage, error)

	// ListMessages returns a room's messages ordered by timestamp.
	// The caller must be a participant of the room.
	ListMessages(ctx context.Context, roomID, callerID string, since time.Time, limit int) ([]*entity.ChatMessage, error)

	// MarkRead flags the other side's messages as read. The reader
	// must be a participant of the room.
	MarkRead(ctx context.Context, roomID, readerID string) error
}
