package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatRoomID_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"bob", "alice"},
		{"uid-9f2", "uid-0a1"},
		{"driver-42", "customer-42"},
	}

	for _, pair := range pairs {
		assert.Equal(t, ChatRoomID(pair[0], pair[1]), ChatRoomID(pair[1], pair[0]),
			"room id must not depend on who initiates (%s, %s)", pair[0], pair[1])
	}
}

func TestChatRoomID_SortedConcatenation(t *testing.T) {
	assert.Equal(t, "alice_bob", ChatRoomID("bob", "alice"))
	assert.Equal(t, "alice_bob", ChatRoomID("alice", "bob"))
}

func TestIsRoomParticipant(t *testing.T) {
	room := ChatRoomID("alice", "bob")

	assert.True(t, IsRoomParticipant(room, "alice"))
	assert.True(t, IsRoomParticipant(room, "bob"))
	assert.False(t, IsRoomParticipant(room, "carol"))
	assert.False(t, IsRoomParticipant(room, ""))
	assert.False(t, IsRoomParticipant("not-a-room", "alice"))
}
