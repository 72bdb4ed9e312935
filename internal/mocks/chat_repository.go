package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"parcel/internal/domain/entity"
)

// ChatRepository is a mock of repository.ChatRepository.
type ChatRepository struct {
	mock.Mock
}

func (m *ChatRepository) EnsureRoom(ctx context.Context, room *entity.ChatRoom) (*entity.ChatRoom, error) {
	args := m.Called(ctx, room)
	if got, ok := args.Get(0).(*entity.ChatRoom); ok {
		return got, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ChatRepository) FindRoomsByParticipant(ctx context.Context, userID string) ([]*entity.ChatRoom, error) {
	args := m.Called(ctx, userID)
	if rooms, ok := args.Get(0).([]*entity.ChatRoom); ok {
		return rooms, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ChatRepository) AppendMessage(ctx context.Context, msg *entity.ChatMessage) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

func (m *ChatRepository) ListMessages(ctx context.Context, roomID string, since time.Time, limit int) ([]*entity.ChatMessage, error) {
	args := m.Called(ctx, roomID, since, limit)
	if messages, ok := args.Get(0).([]*entity.ChatMessage); ok {
		return messages, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ChatRepository) MarkMessagesRead(ctx context.Context, roomID, readerID string) error {
	args := m.Called(ctx, roomID, readerID)

	return args.Error(0)
}

// LocationRepository is a mock of repository.LocationRepository.
type LocationRepository struct {
	mock.Mock
}

func (m *LocationRepository) SetDriverLocation(ctx context.Context, loc *entity.DriverLocation) error {
	args := m.Called(ctx, loc)

	return args.Error(0)
}

func (m *LocationRepository) GetDriverLocation(ctx context.Context, orderID, driverID string) (*entity.DriverLocation, error) {
	args := m.Called(ctx, orderID, driverID)
	if loc, ok := args.Get(0).(*entity.DriverLocation); ok {
		return loc, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *LocationRepository) ClearDriverLocation(ctx context.Context, orderID, driverID string) error {
	args := m.Called(ctx, orderID, driverID)

	return args.Error(0)
}
