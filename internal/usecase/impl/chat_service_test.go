package impl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
	"parcel/internal/mocks"
	"parcel/internal/usecase"
)

type chatServiceMocks struct {
	chats    *mocks.ChatRepository
	users    *mocks.UserRepository
	notifier *mocks.NotificationService
}

func newChatService(t *testing.T) (usecase.ChatUsecase, *chatServiceMocks) {
	t.Helper()

	m := &chatServiceMocks{
		chats:    new(mocks.ChatRepository),
		users:    new(mocks.UserRepository),
		notifier: new(mocks.NotificationService),
	}

	return NewChatService(m.chats, m.users, m.notifier, discardLogger()), m
}

func TestOpenRoom_DeterministicID(t *testing.T) {
	svc, m := newChatService(t)

	m.chats.On("EnsureRoom", mock.Anything, mock.MatchedBy(func(r *entity.ChatRoom) bool {
		return r.ID == "cust-1_driver-1" && len(r.Participants) == 2
	})).Return(&entity.ChatRoom{ID: "cust-1_driver-1"}, nil)

	// Either participant order resolves to the same room.
	room, err := svc.OpenRoom(context.Background(), "driver-1", "cust-1", "")
	require.NoError(t, err)
	assert.Equal(t, "cust-1_driver-1", room.ID)
}

func TestOpenRoom_RejectsSelfChat(t *testing.T) {
	svc, _ := newChatService(t)

	_, err := svc.OpenRoom(context.Background(), "cust-1", "cust-1", "")
	assert.Error(t, err)
}

func TestSendMessage_NotifiesRecipient(t *testing.T) {
	svc, m := newChatService(t)

	m.chats.On("EnsureRoom", mock.Anything, mock.Anything).
		Return(&entity.ChatRoom{ID: "cust-1_driver-1"}, nil)
	m.chats.On("AppendMessage", mock.Anything, mock.MatchedBy(func(msg *entity.ChatMessage) bool {
		return msg.RoomID == "cust-1_driver-1" && msg.Text == "On my way"
	})).Return(nil)
	m.users.On("FindProfileByID", mock.Anything, "cust-1").
		Return(&entity.UserProfile{ID: "cust-1", FCMToken: "device-token"}, nil)
	m.users.On("FindProfileByID", mock.Anything, "driver-1").
		Return(&entity.UserProfile{ID: "driver-1", Name: "Nimal"}, nil)
	m.notifier.On("SendSingleNotification", mock.Anything, "device-token", "Nimal", "On my way", mock.Anything).
		Return(nil)

	msg, err := svc.SendMessage(context.Background(), &usecase.SendMessageInput{
		SenderID:    "driver-1",
		RecipientID: "cust-1",
		Text:        "On my way",
	})
	require.NoError(t, err)
	assert.Equal(t, "driver-1", msg.SenderID)
	m.notifier.AssertExpectations(t)
}

func TestSendMessage_PushFailureDoesNotFailSend(t *testing.T) {
	svc, m := newChatService(t)

	m.chats.On("EnsureRoom", mock.Anything, mock.Anything).
		Return(&entity.ChatRoom{ID: "cust-1_driver-1"}, nil)
	m.chats.On("AppendMessage", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindProfileByID", mock.Anything, "cust-1").
		Return(&entity.UserProfile{ID: "cust-1", FCMToken: "device-token"}, nil)
	m.users.On("FindProfileByID", mock.Anything, "driver-1").
		Return(nil, repository.ErrProfileNotFound)
	m.notifier.On("SendSingleNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	_, err := svc.SendMessage(context.Background(), &usecase.SendMessageInput{
		SenderID:    "driver-1",
		RecipientID: "cust-1",
		Text:        "hello",
	})
	assert.NoError(t, err)
}

func TestSendMessage_NoTokenSkipsPush(t *testing.T) {
	svc, m := newChatService(t)

	m.chats.On("EnsureRoom", mock.Anything, mock.Anything).
		Return(&entity.ChatRoom{ID: "cust-1_driver-1"}, nil)
	m.chats.On("AppendMessage", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindProfileByID", mock.Anything, "cust-1").
		Return(&entity.UserProfile{ID: "cust-1"}, nil)

	_, err := svc.SendMessage(context.Background(), &usecase.SendMessageInput{
		SenderID:    "driver-1",
		RecipientID: "cust-1",
		Text:        "hello",
	})
	assert.NoError(t, err)
	m.notifier.AssertNotCalled(t, "SendSingleNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListMessages_DefaultsPageSize(t *testing.T) {
	svc, m := newChatService(t)

	m.chats.On("ListMessages", mock.Anything, "cust-1_driver-1", mock.Anything, defaultMessagePageSize).
		Return([]*entity.ChatMessage{}, nil)

	_, err := svc.ListMessages(context.Background(), "cust-1_driver-1", "cust-1", time.Time{}, 0)
	assert.NoError(t, err)
	m.chats.AssertExpectations(t)
}

func TestListMessages_NonParticipantRejected(t *testing.T) {
	svc, m := newChatService(t)

	_, err := svc.ListMessages(context.Background(), "cust-1_driver-1", "cust-2", time.Time{}, 0)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
	m.chats.AssertNotCalled(t, "ListMessages",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkRead_NonParticipantRejected(t *testing.T) {
	svc, m := newChatService(t)

	err := svc.MarkRead(context.Background(), "cust-1_driver-1", "driver-2")
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
	m.chats.AssertNotCalled(t, "MarkMessagesRead", mock.Anything, mock.Anything, mock.Anything)
}
