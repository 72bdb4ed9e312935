package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"parcel/internal/domain/entity"
	domainerrors "parcel/internal/domain/errors"
	"parcel/internal/domain/repository"
)

// orderRepository implements the repository.OrderRepository interface
// on the "rideRequests" collection.
type orderRepository struct {
	client *firestore.Client
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &orderRepository{client: client}
}

func (repo *orderRepository) orders() *firestore.CollectionRef {
	return repo.client.Collection(collectionOrders)
}

// CreateOrder persists a new order and fills in its generated id.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.DeliveryOrder) error {
	ref := repo.orders().NewDoc()

	now := time.Now().UTC()
	order.ID = ref.ID
	order.CreatedAt = now
	order.UpdatedAt = now
	// The mirror field always tracks the canonical status.
	order.DeliveryStatus = order.Status

	if _, err := ref.Create(ctx, order); err != nil {
		return errors.Wrap(err, "failed to create order")
	}

	return nil
}

// FindOrderByID retrieves a single order document.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id string) (*entity.DeliveryOrder, error) {
	snap, err := repo.orders().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return decodeOrder(snap)
}

// FindOrdersByCustomer retrieves a customer's orders, newest first.
func (repo *orderRepository) FindOrdersByCustomer(ctx context.Context, customerID string, limit int) ([]*entity.DeliveryOrder, error) {
	query := repo.orders().
		Where("customerId", "==", customerID).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return decodeOrders(query.Documents(ctx))
}

// FindOrdersByDriver retrieves a driver's assigned orders, newest first.
func (repo *orderRepository) FindOrdersByDriver(ctx context.Context, driverID string, limit int) ([]*entity.DeliveryOrder, error) {
	query := repo.orders().
		Where("driver.id", "==", driverID).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return decodeOrders(query.Documents(ctx))
}

// FindOrdersByStatus retrieves orders in a given lifecycle state, newest first.
func (repo *orderRepository) FindOrdersByStatus(ctx context.Context, status entity.Status, limit int) ([]*entity.DeliveryOrder, error) {
	query := repo.orders().
		Where("status", "==", string(status)).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return decodeOrders(query.Documents(ctx))
}

// FindScheduledByCustomer retrieves a customer's not-yet-activated scheduled orders.
func (repo *orderRepository) FindScheduledByCustomer(ctx context.Context, customerID string) ([]*entity.DeliveryOrder, error) {
	query := repo.orders().
		Where("customerId", "==", customerID).
		Where("status", "==", string(entity.StatusScheduled))

	return decodeOrders(query.Documents(ctx))
}

// WatchScheduledByCustomer subscribes to the customer's scheduled
// orders via a Firestore snapshot listener. Each push carries the full
// current result set. Cancelling ctx detaches the listener and closes
// the channel.
func (repo *orderRepository) WatchScheduledByCustomer(ctx context.Context, customerID string) (<-chan []*entity.DeliveryOrder, error) {
	query := repo.orders().
		Where("customerId", "==", customerID).
		Where("status", "==", string(entity.StatusScheduled))

	snapshots := query.Snapshots(ctx)
	out := make(chan []*entity.DeliveryOrder, 1)

	go func() {
		defer close(out)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				// Cancelled context or a broken stream both end the watch.
				return
			}

			orders, err := decodeOrders(snap.Documents)
			if err != nil {
				continue
			}

			select {
			case out <- orders:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// UpdateOrderStatus merge-writes status and its deliveryStatus mirror
// after validating the transition table inside a transaction.
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id string, to entity.Status) error {
	ref := repo.orders().Doc(id)

	err := repo.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		current, err := readStatus(tx, ref)
		if err != nil {
			return err
		}

		if current == to {
			// At-least-once writers may re-apply the current status.
			return nil
		}
		if !entity.CanTransition(current, to) {
			return repository.ErrInvalidTransition
		}

		updates := statusUpdates(to)
		if to == entity.StatusDelivered {
			updates["deliveredAt"] = time.Now().UTC()
		}

		return tx.Set(ref, updates, firestore.MergeAll)
	})
	if err != nil {
		return wrapOrderTxErr(err, "failed to update order status")
	}

	return nil
}

// ActivateScheduled flips a scheduled order to searching and stamps
// activatedAt. Activating an order that already left the scheduled
// state is a no-op, which keeps at-least-once delivery of activation
// triggers safe.
func (repo *orderRepository) ActivateScheduled(ctx context.Context, id string) error {
	ref := repo.orders().Doc(id)

	err := repo.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		current, err := readStatus(tx, ref)
		if err != nil {
			return err
		}

		if current != entity.StatusScheduled && current != entity.StatusPending {
			return nil
		}

		updates := statusUpdates(entity.StatusSearching)
		updates["activatedAt"] = time.Now().UTC()

		return tx.Set(ref, updates, firestore.MergeAll)
	})
	if err != nil {
		return wrapOrderTxErr(err, "failed to activate scheduled order")
	}

	return nil
}

// RescheduleOrder sets a fresh scheduled instant, resets the order to
// scheduled and writes the given delivery PIN.
func (repo *orderRepository) RescheduleOrder(ctx context.Context, id string, at time.Time, pin string) error {
	ref := repo.orders().Doc(id)

	err := repo.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		current, err := readStatus(tx, ref)
		if err != nil {
			return err
		}
		if entity.IsTerminal(current) {
			return repository.ErrInvalidTransition
		}

		updates := statusUpdates(entity.StatusScheduled)
		updates["scheduledDateTime"] = at.UTC()
		updates["scheduledTimestamp"] = at.UnixMilli()
		updates["deliveryPin"] = pin
		updates["activatedAt"] = firestore.Delete

		return tx.Set(ref, updates, firestore.MergeAll)
	})
	if err != nil {
		return wrapOrderTxErr(err, "failed to reschedule order")
	}

	return nil
}

// CancelOrder moves the order to cancelled and stamps cancellation metadata.
func (repo *orderRepository) CancelOrder(ctx context.Context, id string, reason string) error {
	ref := repo.orders().Doc(id)

	err := repo.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		current, err := readStatus(tx, ref)
		if err != nil {
			return err
		}

		if current == entity.StatusCancelled {
			return nil
		}
		if !entity.CanTransition(current, entity.StatusCancelled) {
			return repository.ErrInvalidTransition
		}

		updates := statusUpdates(entity.StatusCancelled)
		updates["cancelledAt"] = time.Now().UTC()
		updates["cancelReason"] = reason

		return tx.Set(ref, updates, firestore.MergeAll)
	})
	if err != nil {
		return wrapOrderTxErr(err, "failed to cancel order")
	}

	return nil
}

// AssignDriver stamps the denormalized driver snapshot and moves the
// order to accepted. Two drivers racing for the same order lose the
// transaction cleanly: the second sees accepted and gets
// ErrInvalidTransition.
func (repo *orderRepository) AssignDriver(ctx context.Context, id string, driver *entity.DriverSnapshot) error {
	ref := repo.orders().Doc(id)

	err := repo.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return repository.ErrOrderNotFound
			}

			return err
		}

		order := new(entity.DeliveryOrder)
		if err := snap.DataTo(order); err != nil {
			return errors.Wrap(err, "failed to decode order")
		}

		if order.Status == entity.StatusAccepted && order.Driver != nil && order.Driver.ID == driver.ID {
			// Same driver retrying acceptance.
			return nil
		}
		if !entity.CanTransition(order.Status, entity.StatusAccepted) {
			return repository.ErrInvalidTransition
		}

		updates := statusUpdates(entity.StatusAccepted)
		updates["driver"] = map[string]any{
			"id":            driver.ID,
			"name":          driver.Name,
			"phone":         driver.Phone,
			"vehicleType":   driver.VehicleType,
			"vehicleNumber": driver.VehicleNumber,
			"photoUrl":      driver.PhotoURL,
		}

		return tx.Set(ref, updates, firestore.MergeAll)
	})
	if err != nil {
		return wrapOrderTxErr(err, "failed to assign driver")
	}

	return nil
}

// RateOrder records the one-shot customer rating.
func (repo *orderRepository) RateOrder(ctx context.Context, id string, rating float64) error {
	ref := repo.orders().Doc(id)

	err := repo.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return repository.ErrOrderNotFound
			}

			return err
		}

		order := new(entity.DeliveryOrder)
		if err := snap.DataTo(order); err != nil {
			return errors.Wrap(err, "failed to decode order")
		}

		if order.IsRated {
			return domainerrors.ErrOrderAlreadyRated
		}
		if order.EffectiveStatus() != entity.StatusDelivered {
			return repository.ErrInvalidTransition
		}

		return tx.Set(ref, map[string]any{
			"customerRating": rating,
			"isRated":        true,
			"updatedAt":      time.Now().UTC(),
		}, firestore.MergeAll)
	})
	if err != nil {
		return wrapOrderTxErr(err, "failed to rate order")
	}

	return nil
}

// readStatus reads just the lifecycle state of an order inside a transaction.
func readStatus(tx *firestore.Transaction, ref *firestore.DocumentRef) (entity.Status, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		if isNotFound(err) {
			return "", repository.ErrOrderNotFound
		}

		return "", err
	}

	raw, err := snap.DataAt("status")
	if err != nil {
		return "", errors.Wrap(err, "failed to read order status")
	}

	status, ok := raw.(string)
	if !ok {
		return "", errors.New("order status field is not a string")
	}

	return entity.Status(status), nil
}

// statusUpdates builds the merge payload for a lifecycle transition,
// keeping the deliveryStatus mirror in lock step with status.
func statusUpdates(to entity.Status) map[string]any {
	return map[string]any{
		"status":         string(to),
		"deliveryStatus": string(to),
		"updatedAt":      time.Now().UTC(),
	}
}

// wrapOrderTxErr passes domain errors through untouched and wraps
// everything else.
func wrapOrderTxErr(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrInvalidTransition),
		errors.Is(err, domainerrors.ErrOrderAlreadyRated):
		return err
	default:
		return errors.Wrap(err, msg)
	}
}

func decodeOrder(snap *firestore.DocumentSnapshot) (*entity.DeliveryOrder, error) {
	order := new(entity.DeliveryOrder)
	if err := snap.DataTo(order); err != nil {
		return nil, errors.Wrap(err, "failed to decode order")
	}
	order.ID = snap.Ref.ID

	return order, nil
}

func decodeOrders(docs *firestore.DocumentIterator) ([]*entity.DeliveryOrder, error) {
	defer docs.Stop()

	var orders []*entity.DeliveryOrder
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate orders")
		}

		order, err := decodeOrder(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}
