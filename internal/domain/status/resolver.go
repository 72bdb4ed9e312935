// Package status maps stored order states to display descriptors.
package status

import (
	"fmt"
	"time"

	"parcel/internal/domain/entity"
)

// DefaultActivationBuffer is the lead time before a scheduled
// delivery's target instant during which it becomes eligible for
// driver search.
const DefaultActivationBuffer = 30 * time.Minute

// View is the display descriptor for an order's lifecycle state.
type View struct {
	Text        string `json:"text"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	IsScheduled bool   `json:"is_scheduled"`
	IsReady     bool   `json:"is_ready"`
}

// pendingView is the safe fallback for unknown status values. Unknown
// input degrades silently rather than erroring; stale documents from
// older app builds must still render.
var pendingView = View{Text: "Pending", Color: "#757575", Icon: "time"}

var views = map[entity.Status]View{
	entity.StatusSearching:  {Text: "Searching for driver", Color: "#FF9800", Icon: "search"},
	entity.StatusAccepted:   {Text: "Driver assigned", Color: "#2196F3", Icon: "person"},
	entity.StatusCollecting: {Text: "Driver collecting package", Color: "#FF9800", Icon: "cube"},
	entity.StatusInTransit:  {Text: "Package in transit", Color: "#9C27B0", Icon: "car"},
	entity.StatusDelivered:  {Text: "Delivered", Color: "#4CAF50", Icon: "checkmark-circle"},
	entity.StatusCancelled:  {Text: "Cancelled", Color: "#F44336", Icon: "close-circle"},
	entity.StatusPending:    pendingView,
}

// IsReady reports whether a scheduled instant has entered the
// activation buffer relative to now.
func IsReady(scheduledAt, now time.Time, buffer time.Duration) bool {
	return !now.Before(scheduledAt.Add(-buffer))
}

// Resolve maps a coarse status, its finer-grained mirror and an
// optional scheduled instant to a display descriptor, using the
// default 30-minute activation buffer.
func Resolve(st, deliveryStatus entity.Status, scheduledAt *time.Time, now time.Time) View {
	return ResolveWithBuffer(st, deliveryStatus, scheduledAt, now, DefaultActivationBuffer)
}

// ResolveWithBuffer is Resolve with an explicit activation buffer.
func ResolveWithBuffer(st, deliveryStatus entity.Status, scheduledAt *time.Time, now time.Time, buffer time.Duration) View {
	if st == entity.StatusScheduled || deliveryStatus == entity.StatusScheduled {
		return resolveScheduled(scheduledAt, now, buffer)
	}

	effective := deliveryStatus
	if effective == "" {
		effective = st
	}
	if view, ok := views[effective]; ok {
		return view
	}
	if view, ok := views[st]; ok {
		return view
	}
	return pendingView
}

func resolveScheduled(scheduledAt *time.Time, now time.Time, buffer time.Duration) View {
	view := View{Color: "#00BCD4", Icon: "calendar", IsScheduled: true}
	if scheduledAt == nil || scheduledAt.IsZero() {
		// Unresolvable schedule; render as waiting rather than failing.
		view.Text = "Scheduled"
		return view
	}
	if IsReady(*scheduledAt, now, buffer) {
		view.Text = "Ready for pickup - searching for driver"
		view.Icon = "search"
		view.IsReady = true
		return view
	}
	view.Text = formatScheduled(*scheduledAt, now)
	return view
}

// formatScheduled renders the scheduled instant relative to now:
// "Today at 14:30 (in 2h 10m)", "Tomorrow at 09:00", or a weekday
// form beyond that.
func formatScheduled(scheduledAt, now time.Time) string {
	local := scheduledAt.Local()
	clock := local.Format("15:04")

	switch daysBetween(now.Local(), local) {
	case 0:
		return fmt.Sprintf("Today at %s (in %s)", clock, formatLead(scheduledAt.Sub(now)))
	case 1:
		return fmt.Sprintf("Tomorrow at %s", clock)
	default:
		return fmt.Sprintf("%s at %s", local.Format("Mon, Jan 2"), clock)
	}
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, from.Location())
	end := time.Date(ty, tm, td, 0, 0, 0, 0, to.Location())
	return int(end.Sub(start) / (24 * time.Hour))
}

func formatLead(d time.Duration) string {
	d = d.Round(time.Minute)
	if d < time.Minute {
		d = time.Minute
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
