package repository

import (
	"context"
	"time"

	"parcel/internal/domain/entity"
	"parcel/internal/errors"
)

// ErrRoomNotFound is returned when a chat room does not exist.
var ErrRoomNotFound = errors.New("chat room not found")

// ChatRepository defines operations for chat rooms (document store)
// and their append-only message streams (realtime store).
type ChatRepository interface {
	// EnsureRoom creates the room document if it does not exist and
	// returns the current room either way.
	EnsureRoom(ctx context.Context, room *entity.ChatRoom) (*entity.ChatRoom, error)

	// FindRoomsByParticipant retrieves rooms a user takes part in,
	// most recently active first.
	FindRoomsByParticipant(ctx context.Context, userID string) ([]*entity.ChatRoom, error)

	// AppendMessage appends a message under chats/{roomId}/messages and
	// bumps the room's last-message metadata.
	AppendMessage(ctx context.Context, msg *entity.ChatMessage) error

	// ListMessages retrieves messages for a room ordered by timestamp,
	// optionally bounded below by since.
	ListMessages(ctx context.Context, roomID string, since time.Time, limit int) ([]*entity.ChatMessage, error)

	// MarkMessagesRead flags every message in the room not sent by
	// readerID as read.
	MarkMessagesRead(ctx context.Context, roomID, readerID string) error
}

// LocationRepository defines realtime-store operations for live driver
// positions under driverLocations/{orderId}/{driverId}.
type LocationRepository interface {
	// SetDriverLocation overwrites the driver's current fix for an order.
	SetDriverLocation(ctx context.Context, loc *entity.DriverLocation) error

	// GetDriverLocation reads the driver's latest fix for an order.
	// Returns nil without error when no fix has been written yet.
	GetDriverLocation(ctx context.Context, orderID, driverID string) (*entity.DriverLocation, error)

	// ClearDriverLocation removes the fix once a delivery terminates.
	ClearDriverLocation(ctx context.Context, orderID, driverID string) error
}
