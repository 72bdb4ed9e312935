package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
)

// orderEventRepository implements repository.OrderEventRepository on
// the "orderEvents" collection, keyed by broker message id.
type orderEventRepository struct {
	client *firestore.Client
}

// NewOrderEventRepository is the constructor for orderEventRepository.
func NewOrderEventRepository(client *firestore.Client) repository.OrderEventRepository {
	return &orderEventRepository{client: client}
}

// RecordEvent appends a lifecycle transition. Create fails with
// AlreadyExists on redelivery, which is treated as success.
func (repo *orderEventRepository) RecordEvent(ctx context.Context, event *entity.OrderEvent) error {
	event.RecordedAt = time.Now().UTC()

	ref := repo.client.Collection(collectionOrderEvents).Doc(event.MessageID)
	if _, err := ref.Create(ctx, event); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}

		return errors.Wrap(err, "failed to record order event")
	}

	return nil
}

// FindEventsByOrder retrieves an order's transitions, oldest first.
func (repo *orderEventRepository) FindEventsByOrder(ctx context.Context, orderID string) ([]*entity.OrderEvent, error) {
	iter := repo.client.Collection(collectionOrderEvents).
		Where("orderId", "==", orderID).
		OrderBy("occurredAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var events []*entity.OrderEvent
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate order events")
		}

		event := new(entity.OrderEvent)
		if err := snap.DataTo(event); err != nil {
			return nil, errors.Wrap(err, "failed to decode order event")
		}
		event.MessageID = snap.Ref.ID
		events = append(events, event)
	}

	return events, nil
}
