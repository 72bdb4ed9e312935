package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusScheduled, StatusSearching, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusSearching, StatusAccepted, true},
		{StatusAccepted, StatusCollecting, true},
		{StatusCollecting, StatusInTransit, true},
		{StatusInTransit, StatusDelivered, true},
		{StatusPending, StatusSearching, true},
		{StatusPending, StatusScheduled, true},

		{StatusScheduled, StatusAccepted, false},
		{StatusSearching, StatusDelivered, false},
		{StatusDelivered, StatusSearching, false},
		{StatusCancelled, StatusSearching, false},
		{StatusDelivered, StatusCancelled, false},
		{"bogus", StatusSearching, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCanTransition_SelfIsIdempotent(t *testing.T) {
	// An at-least-once activator may re-apply the same target state.
	for _, s := range []Status{StatusScheduled, StatusSearching, StatusAccepted, StatusDelivered, StatusCancelled} {
		assert.True(t, CanTransition(s, s), "self transition for %s", s)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusDelivered))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusScheduled))
	assert.False(t, IsTerminal(StatusInTransit))
}

func TestScheduledTime_PrefersTimestampField(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	order := &DeliveryOrder{ScheduledAt: &at}

	got, ok := order.ScheduledTime()
	assert.True(t, ok)
	assert.Equal(t, at, got)
}

func TestScheduledTime_FallsBackToEpochMillis(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	order := &DeliveryOrder{ScheduledTimestamp: at.UnixMilli()}

	got, ok := order.ScheduledTime()
	assert.True(t, ok)
	assert.True(t, got.Equal(at))
}

func TestScheduledTime_MissingBothFields(t *testing.T) {
	order := &DeliveryOrder{}

	_, ok := order.ScheduledTime()
	assert.False(t, ok)
}

func TestEffectiveStatus(t *testing.T) {
	order := &DeliveryOrder{Status: StatusAccepted, DeliveryStatus: StatusCollecting}
	assert.Equal(t, StatusCollecting, order.EffectiveStatus())

	order = &DeliveryOrder{Status: StatusAccepted}
	assert.Equal(t, StatusAccepted, order.EffectiveStatus())
}
