// Package realtime implements repositories backed by the realtime
// database: live driver locations and chat message streams. Room
// metadata stays in the document store so the dashboard can query it.
package realtime

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
)

const chatRoomsCollection = "chatRooms"

// rtdbMessage is the wire form of a chat message in the realtime
// store. Timestamps are epoch milliseconds so RTDB range queries can
// order on them.
type rtdbMessage struct {
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	OrderID   string `json:"orderId,omitempty"`
	IsRead    bool   `json:"isRead"`
	Timestamp int64  `json:"timestamp"`
}

// chatRepository implements repository.ChatRepository across the
// document store (rooms) and the realtime store (messages).
type chatRepository struct {
	store    *firestore.Client
	realtime *db.Client
}

// NewChatRepository is the constructor for chatRepository.
func NewChatRepository(store *firestore.Client, realtime *db.Client) repository.ChatRepository {
	return &chatRepository{store: store, realtime: realtime}
}

func (repo *chatRepository) messagesRef(roomID string) *db.Ref {
	return repo.realtime.NewRef(fmt.Sprintf("chats/%s/messages", roomID))
}

// EnsureRoom creates the room document if it does not exist and
// returns the current room either way.
func (repo *chatRepository) EnsureRoom(ctx context.Context, room *entity.ChatRoom) (*entity.ChatRoom, error) {
	if len(room.Participants) != 2 {
		return nil, errors.New("chat room requires exactly two participants")
	}

	room.ID = entity.ChatRoomID(room.Participants[0], room.Participants[1])
	ref := repo.store.Collection(chatRoomsCollection).Doc(room.ID)

	snap, err := ref.Get(ctx)
	if err == nil && snap.Exists() {
		existing := new(entity.ChatRoom)
		if err := snap.DataTo(existing); err != nil {
			return nil, errors.Wrap(err, "failed to decode chat room")
		}
		existing.ID = snap.Ref.ID

		return existing, nil
	}
	if err != nil && status.Code(err) != codes.NotFound {
		return nil, errors.Wrap(err, "failed to read chat room")
	}

	room.CreatedAt = time.Now().UTC()
	if _, err := ref.Create(ctx, room); err != nil {
		return nil, errors.Wrap(err, "failed to create chat room")
	}

	return room, nil
}

// FindRoomsByParticipant retrieves rooms a user takes part in, most
// recently active first.
func (repo *chatRepository) FindRoomsByParticipant(ctx context.Context, userID string) ([]*entity.ChatRoom, error) {
	docs := repo.store.Collection(chatRoomsCollection).
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageAt", firestore.Desc).
		Documents(ctx)
	defer docs.Stop()

	var rooms []*entity.ChatRoom
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate chat rooms")
		}

		room := new(entity.ChatRoom)
		if err := snap.DataTo(room); err != nil {
			return nil, errors.Wrap(err, "failed to decode chat room")
		}
		room.ID = snap.Ref.ID
		rooms = append(rooms, room)
	}

	return rooms, nil
}

// AppendMessage appends a message under chats/{roomId}/messages and
// bumps the room's last-message metadata.
func (repo *chatRepository) AppendMessage(ctx context.Context, msg *entity.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	pushed, err := repo.messagesRef(msg.RoomID).Push(ctx, &rtdbMessage{
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		OrderID:   msg.OrderID,
		IsRead:    msg.IsRead,
		Timestamp: msg.Timestamp.UnixMilli(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to append chat message")
	}
	msg.ID = pushed.Key

	roomRef := repo.store.Collection(chatRoomsCollection).Doc(msg.RoomID)
	_, err = roomRef.Set(ctx, map[string]any{
		"lastMessage":   msg.Text,
		"lastMessageAt": msg.Timestamp,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Wrap(err, "failed to update room metadata")
	}

	return nil
}

// ListMessages retrieves messages for a room ordered by timestamp,
// optionally bounded below by since.
func (repo *chatRepository) ListMessages(ctx context.Context, roomID string, since time.Time, limit int) ([]*entity.ChatMessage, error) {
	query := repo.messagesRef(roomID).OrderByChild("timestamp")
	if !since.IsZero() {
		query = query.StartAt(float64(since.UnixMilli()))
	}
	if limit > 0 {
		query = query.LimitToLast(limit)
	}

	nodes, err := query.GetOrdered(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chat messages")
	}

	messages := make([]*entity.ChatMessage, 0, len(nodes))
	for _, node := range nodes {
		var raw rtdbMessage
		if err := node.Unmarshal(&raw); err != nil {
			return nil, errors.Wrap(err, "failed to decode chat message")
		}

		messages = append(messages, &entity.ChatMessage{
			ID:        node.Key(),
			RoomID:    roomID,
			SenderID:  raw.SenderID,
			Text:      raw.Text,
			OrderID:   raw.OrderID,
			IsRead:    raw.IsRead,
			Timestamp: time.UnixMilli(raw.Timestamp),
		})
	}

	return messages, nil
}

// MarkMessagesRead flags every message in the room not sent by
// readerID as read.
func (repo *chatRepository) MarkMessagesRead(ctx context.Context, roomID, readerID string) error {
	ref := repo.messagesRef(roomID)

	var raw map[string]rtdbMessage
	if err := ref.Get(ctx, &raw); err != nil {
		return errors.Wrap(err, "failed to read chat messages")
	}

	updates := make(map[string]any)
	for key, msg := range raw {
		if msg.SenderID == readerID || msg.IsRead {
			continue
		}
		updates[key+"/isRead"] = true
	}
	if len(updates) == 0 {
		return nil
	}

	if err := ref.Update(ctx, updates); err != nil {
		return errors.Wrap(err, "failed to mark messages read")
	}

	return nil
}
