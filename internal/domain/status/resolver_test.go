package status

import (
	"testing"
	"time"

	"parcel/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestResolve_KnownStatuses(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name           string
		status         entity.Status
		deliveryStatus entity.Status
		wantText       string
	}{
		{"searching", entity.StatusSearching, entity.StatusSearching, "Searching for driver"},
		{"accepted", entity.StatusAccepted, entity.StatusAccepted, "Driver assigned"},
		{"collecting", entity.StatusCollecting, entity.StatusCollecting, "Driver collecting package"},
		{"in transit", entity.StatusInTransit, entity.StatusInTransit, "Package in transit"},
		{"delivered", entity.StatusDelivered, entity.StatusDelivered, "Delivered"},
		{"cancelled", entity.StatusCancelled, entity.StatusCancelled, "Cancelled"},
		{"pending", entity.StatusPending, entity.StatusPending, "Pending"},
		{"delivery status wins", entity.StatusAccepted, entity.StatusCollecting, "Driver collecting package"},
		{"falls back to coarse status", entity.StatusAccepted, "", "Driver assigned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Resolve(tt.status, tt.deliveryStatus, nil, now)
			assert.Equal(t, tt.wantText, view.Text)
			assert.NotEmpty(t, view.Color)
			assert.NotEmpty(t, view.Icon)
			assert.False(t, view.IsScheduled)
		})
	}
}

func TestResolve_UnknownStatusDegradesToPending(t *testing.T) {
	view := Resolve("warp_drive", "hyperspace", nil, time.Now())
	assert.Equal(t, "Pending", view.Text)
	assert.Equal(t, "#757575", view.Color)
}

func TestResolve_ScheduledNotReady(t *testing.T) {
	now := time.Now()
	at := now.Add(45 * time.Minute)

	view := Resolve(entity.StatusScheduled, entity.StatusScheduled, &at, now)
	assert.True(t, view.IsScheduled)
	assert.False(t, view.IsReady)
	assert.Contains(t, view.Text, "Today at")
}

func TestResolve_ScheduledReady(t *testing.T) {
	now := time.Now()
	at := now.Add(10 * time.Minute)

	view := Resolve(entity.StatusScheduled, entity.StatusScheduled, &at, now)
	assert.True(t, view.IsScheduled)
	assert.True(t, view.IsReady)
	assert.Equal(t, "Ready for pickup - searching for driver", view.Text)
}

func TestResolve_ScheduledMirrorOnlyTriggersScheduledPath(t *testing.T) {
	now := time.Now()
	at := now.Add(5 * time.Minute)

	view := Resolve(entity.StatusPending, entity.StatusScheduled, &at, now)
	assert.True(t, view.IsScheduled)
	assert.True(t, view.IsReady)
}

func TestResolve_ScheduledMissingTime(t *testing.T) {
	view := Resolve(entity.StatusScheduled, "", nil, time.Now())
	assert.True(t, view.IsScheduled)
	assert.False(t, view.IsReady)
	assert.Equal(t, "Scheduled", view.Text)
}

func TestIsReady_BufferBoundary(t *testing.T) {
	buffer := 30 * time.Minute
	scheduledAt := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	boundary := scheduledAt.Add(-buffer)

	assert.False(t, IsReady(scheduledAt, boundary.Add(-time.Second), buffer))
	assert.True(t, IsReady(scheduledAt, boundary, buffer))
	assert.True(t, IsReady(scheduledAt, boundary.Add(time.Second), buffer))
}

func TestFormatScheduled_Tomorrow(t *testing.T) {
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.Local)
	at := time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)

	assert.Equal(t, "Tomorrow at 09:00", formatScheduled(at, now))
}

func TestFormatScheduled_BeyondTwoDays(t *testing.T) {
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.Local)
	at := time.Date(2026, 3, 18, 9, 30, 0, 0, time.Local)

	assert.Equal(t, "Wed, Mar 18 at 09:30", formatScheduled(at, now))
}

func TestFormatLead(t *testing.T) {
	assert.Equal(t, "2h 10m", formatLead(2*time.Hour+10*time.Minute))
	assert.Equal(t, "45m", formatLead(45*time.Minute))
	assert.Equal(t, "3h", formatLead(3*time.Hour))
	assert.Equal(t, "1m", formatLead(20*time.Second))
}
