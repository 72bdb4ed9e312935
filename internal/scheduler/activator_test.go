package scheduler

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcel/internal/domain/entity"
	"parcel/internal/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestActivator(orders *mocks.OrderRepository, queue *mocks.ScheduleQueue, now time.Time) *Activator {
	a := NewActivator(orders, queue, discardLogger(), 30*time.Minute)
	a.now = func() time.Time { return now }

	return a
}

func scheduledOrder(id string, at time.Time) *entity.DeliveryOrder {
	return &entity.DeliveryOrder{
		ID:          id,
		Status:      entity.StatusScheduled,
		ScheduledAt: &at,
	}
}

func TestActivator_StartMonitoring_Idempotent(t *testing.T) {
	orders := new(mocks.OrderRepository)
	queue := new(mocks.ScheduleQueue)
	a := newTestActivator(orders, queue, time.Now())

	updates := make(chan []*entity.DeliveryOrder)
	orders.On("WatchScheduledByCustomer", mock.Anything, "cust-1").Return(updates, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, a.StartMonitoring(ctx, "cust-1"))
	require.NoError(t, a.StartMonitoring(ctx, "cust-1"))
	assert.True(t, a.Watching("cust-1"))

	// Only one watch was ever opened.
	orders.AssertNumberOfCalls(t, "WatchScheduledByCustomer", 1)

	close(updates)
}

func TestActivator_StopMonitoring_DetachesWatch(t *testing.T) {
	orders := new(mocks.OrderRepository)
	queue := new(mocks.ScheduleQueue)
	a := newTestActivator(orders, queue, time.Now())

	updates := make(chan []*entity.DeliveryOrder)
	orders.On("WatchScheduledByCustomer", mock.Anything, "cust-1").Return(updates, nil)

	require.NoError(t, a.StartMonitoring(context.Background(), "cust-1"))
	require.True(t, a.Watching("cust-1"))

	a.StopMonitoring("cust-1")
	assert.False(t, a.Watching("cust-1"))

	// Stopping an unknown customer is a no-op.
	a.StopMonitoring("cust-unknown")

	close(updates)
}

func TestActivator_WatchPush_ActivatesReadyOrders(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	orders := new(mocks.OrderRepository)
	queue := new(mocks.ScheduleQueue)
	a := newTestActivator(orders, queue, now)

	updates := make(chan []*entity.DeliveryOrder, 1)
	orders.On("WatchScheduledByCustomer", mock.Anything, "cust-1").Return(updates, nil)
	orders.On("ActivateScheduled", mock.Anything, "ready").Return(nil)
	queue.On("Remove", mock.Anything, "ready").Return(nil)

	require.NoError(t, a.StartMonitoring(context.Background(), "cust-1"))

	// One order inside the 30-minute buffer, one well outside, one
	// with no usable scheduled time.
	updates <- []*entity.DeliveryOrder{
		scheduledOrder("ready", now.Add(10*time.Minute)),
		scheduledOrder("not-ready", now.Add(45*time.Minute)),
		{ID: "malformed", Status: entity.StatusScheduled},
	}
	close(updates)

	// The watch goroutine drains the channel before it exits.
	assert.Eventually(t, func() bool {
		return !a.Watching("cust-1")
	}, time.Second, 5*time.Millisecond)

	orders.AssertCalled(t, "ActivateScheduled", mock.Anything, "ready")
	orders.AssertNotCalled(t, "ActivateScheduled", mock.Anything, "not-ready")
	orders.AssertNotCalled(t, "ActivateScheduled", mock.Anything, "malformed")
}

func TestActivator_DrainDue(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	orders := new(mocks.OrderRepository)
	queue := new(mocks.ScheduleQueue)
	a := newTestActivator(orders, queue, now)

	queue.On("PopDue", mock.Anything, now).Return([]string{"o1", "o2"}, nil)
	orders.On("ActivateScheduled", mock.Anything, "o1").Return(nil)
	orders.On("ActivateScheduled", mock.Anything, "o2").Return(nil)
	queue.On("Remove", mock.Anything, mock.Anything).Return(nil)

	count, err := a.DrainDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	orders.AssertExpectations(t)
}

func TestActivator_Enqueue_SubtractsBuffer(t *testing.T) {
	orders := new(mocks.OrderRepository)
	queue := new(mocks.ScheduleQueue)
	a := newTestActivator(orders, queue, time.Now())

	scheduledAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	queue.On("Enqueue", mock.Anything, "o1", scheduledAt.Add(-30*time.Minute)).Return(nil)

	require.NoError(t, a.Enqueue(context.Background(), "o1", scheduledAt))
	queue.AssertExpectations(t)
}

func TestActivator_Reschedule_PreservesPIN(t *testing.T) {
	orders := new(mocks.OrderRepository)
	queue := new(mocks.ScheduleQueue)
	a := newTestActivator(orders, queue, time.Now())

	newTime := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	orders.On("FindOrderByID", mock.Anything, "o1").
		Return(&entity.DeliveryOrder{ID: "o1", DeliveryPIN: "0042"}, nil)
	orders.On("RescheduleOrder", mock.Anything, "o1", newTime, "0042").Return(nil)
	queue.On("Enqueue", mock.Anything, "o1", newTime.Add(-30*time.Minute)).Return(nil)

	require.NoError(t, a.Reschedule(context.Background(), "o1", newTime))
	orders.AssertExpectations(t)
}

func TestActivator_Reschedule_MintsPINWhenAbsent(t *testing.T) {
	orders := new(mocks.OrderRepository)
	queue := new(mocks.ScheduleQueue)
	a := newTestActivator(orders, queue, time.Now())

	newTime := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	orders.On("FindOrderByID", mock.Anything, "o1").
		Return(&entity.DeliveryOrder{ID: "o1"}, nil)
	orders.On("RescheduleOrder", mock.Anything, "o1", newTime, mock.MatchedBy(func(pin string) bool {
		if len(pin) != 4 {
			return false
		}
		for _, r := range pin {
			if r < '0' || r > '9' {
				return false
			}
		}

		return true
	})).Return(nil)
	queue.On("Enqueue", mock.Anything, "o1", mock.Anything).Return(nil)

	require.NoError(t, a.Reschedule(context.Background(), "o1", newTime))
	orders.AssertExpectations(t)
}

func TestActivator_Cancel(t *testing.T) {
	orders := new(mocks.OrderRepository)
	queue := new(mocks.ScheduleQueue)
	a := newTestActivator(orders, queue, time.Now())

	orders.On("CancelOrder", mock.Anything, "o1", "customer request").Return(nil)
	queue.On("Remove", mock.Anything, "o1").Return(nil)

	require.NoError(t, a.Cancel(context.Background(), "o1", "customer request"))
	orders.AssertExpectations(t)
	queue.AssertExpectations(t)
}
