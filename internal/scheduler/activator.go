// Package scheduler activates scheduled deliveries when their
// activation window opens: a live per-customer watch for low latency,
// backed by a durable delay queue drained by the worker binary so
// activations survive the absence of any watcher.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
	"parcel/internal/domain/service"
	"parcel/internal/domain/status"
)

// Activator owns scheduled-delivery activation.
type Activator struct {
	orders repository.OrderRepository
	queue  service.ScheduleQueue
	logger *slog.Logger
	buffer time.Duration

	// now is swappable for tests.
	now func() time.Time

	mu      sync.Mutex
	watches map[string]context.CancelFunc
}

// NewActivator constructs an Activator with the given activation buffer.
func NewActivator(orders repository.OrderRepository, queue service.ScheduleQueue, logger *slog.Logger, buffer time.Duration) *Activator {
	if buffer <= 0 {
		buffer = status.DefaultActivationBuffer
	}

	return &Activator{
		orders:  orders,
		queue:   queue,
		logger:  logger,
		buffer:  buffer,
		now:     time.Now,
		watches: make(map[string]context.CancelFunc),
	}
}

// StartMonitoring opens a watch on the customer's scheduled orders.
// Calling it again for the same customer is a no-op; the existing
// watch keeps running.
func (a *Activator) StartMonitoring(ctx context.Context, customerID string) error {
	a.mu.Lock()
	if _, ok := a.watches[customerID]; ok {
		a.mu.Unlock()

		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	a.watches[customerID] = cancel
	a.mu.Unlock()

	updates, err := a.orders.WatchScheduledByCustomer(watchCtx, customerID)
	if err != nil {
		a.removeWatch(customerID)
		cancel()

		return err
	}

	go func() {
		defer a.removeWatch(customerID)
		defer cancel()

		for orders := range updates {
			a.evaluate(watchCtx, orders)
		}
	}()

	a.logger.Info("scheduled order monitoring started",
		slog.String("customer_id", customerID),
	)

	return nil
}

// StopMonitoring detaches the customer's watch. Unknown customers are
// a no-op.
func (a *Activator) StopMonitoring(customerID string) {
	a.mu.Lock()
	cancel, ok := a.watches[customerID]
	delete(a.watches, customerID)
	a.mu.Unlock()

	if ok {
		cancel()
		a.logger.Info("scheduled order monitoring stopped",
			slog.String("customer_id", customerID),
		)
	}
}

// StopAll detaches every watch, for shutdown.
func (a *Activator) StopAll() {
	a.mu.Lock()
	for customerID, cancel := range a.watches {
		cancel()
		delete(a.watches, customerID)
	}
	a.mu.Unlock()
}

// Watching reports whether the customer currently has a live watch.
func (a *Activator) Watching(customerID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.watches[customerID]

	return ok
}

func (a *Activator) removeWatch(customerID string) {
	a.mu.Lock()
	delete(a.watches, customerID)
	a.mu.Unlock()
}

// evaluate scans a snapshot of scheduled orders and activates the ones
// whose window has opened.
func (a *Activator) evaluate(ctx context.Context, orders []*entity.DeliveryOrder) {
	now := a.now()
	for _, order := range orders {
		scheduledAt, ok := order.ScheduledTime()
		if !ok {
			// Malformed documents are skipped, never failed on.
			a.logger.Warn("scheduled order has no usable scheduled time",
				slog.String("order_id", order.ID),
			)

			continue
		}

		if status.IsReady(scheduledAt, now, a.buffer) {
			a.activate(ctx, order.ID)
		}
	}
}

// activate flips one order to searching. The repository write is
// idempotent, so racing with the drain loop is harmless.
func (a *Activator) activate(ctx context.Context, orderID string) {
	if err := a.orders.ActivateScheduled(ctx, orderID); err != nil {
		a.logger.Error("failed to activate scheduled order",
			slog.String("order_id", orderID),
			slog.Any("error", err),
		)

		return
	}

	if err := a.queue.Remove(ctx, orderID); err != nil {
		a.logger.Warn("failed to dequeue activated order",
			slog.String("order_id", orderID),
			slog.Any("error", err),
		)
	}

	a.logger.Info("scheduled order activated",
		slog.String("order_id", orderID),
	)
}

// Enqueue registers a scheduled order for durable activation at
// (scheduledAt - buffer).
func (a *Activator) Enqueue(ctx context.Context, orderID string, scheduledAt time.Time) error {
	return a.queue.Enqueue(ctx, orderID, scheduledAt.Add(-a.buffer))
}

// DrainDue pops every due entry from the delay queue and activates it.
// Returns the number of orders activated.
func (a *Activator) DrainDue(ctx context.Context) (int, error) {
	ids, err := a.queue.PopDue(ctx, a.now())
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		a.activate(ctx, id)
	}

	return len(ids), nil
}

// RunDrainLoop drains the delay queue on an interval until ctx is
// cancelled. This is the worker binary's main loop.
func (a *Activator) RunDrainLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := a.DrainDue(ctx)
			if err != nil {
				a.logger.Error("delay queue drain failed", slog.Any("error", err))

				continue
			}
			if count > 0 {
				a.logger.Info("delay queue drained", slog.Int("activated", count))
			}
		}
	}
}

// Reschedule moves a scheduled order to a new instant. The existing
// delivery PIN is preserved byte for byte; a fresh 4-digit PIN is
// minted only when the order has none.
func (a *Activator) Reschedule(ctx context.Context, orderID string, at time.Time) error {
	order, err := a.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	pin := order.DeliveryPIN
	if pin == "" {
		pin = MintPIN()
	}

	if err := a.orders.RescheduleOrder(ctx, orderID, at, pin); err != nil {
		return err
	}

	return a.Enqueue(ctx, orderID, at)
}

// Cancel cancels a scheduled order and drops its queue entry.
func (a *Activator) Cancel(ctx context.Context, orderID, reason string) error {
	if err := a.orders.CancelOrder(ctx, orderID, reason); err != nil {
		return err
	}

	return a.queue.Remove(ctx, orderID)
}
