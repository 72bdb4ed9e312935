package entity

import (
	"strings"
	"time"
)

// ChatRoomID derives the deterministic room id for two participants by
// sorting the identifiers before joining them. Both sides of a
// conversation compute the same id without a lookup table.
func ChatRoomID(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "_" + b
}

// IsRoomParticipant reports whether the user id is one of the two
// participants encoded in the room id.
func IsRoomParticipant(roomID, userID string) bool {
	if userID == "" {
		return false
	}
	if !strings.Contains(roomID, "_") {
		return false
	}
	return strings.HasPrefix(roomID, userID+"_") || strings.HasSuffix(roomID, "_"+userID)
}

// ChatRoom is conversation metadata stored in the "chatRooms"
// collection; the messages themselves live in the realtime store under
// chats/{roomId}/messages.
type ChatRoom struct {
	ID            string    `json:"id" firestore:"-"`
	Participants  []string  `json:"participants" firestore:"participants"`
	OrderID       string    `json:"order_id,omitempty" firestore:"orderId,omitempty"`
	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

// ChatMessage is an append-only message in a room.
type ChatMessage struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	OrderID   string    `json:"order_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	Timestamp time.Time `json:"timestamp"`
}
