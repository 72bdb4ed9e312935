// Package schedule implements the durable delay queue for scheduled
// delivery activation on a Redis sorted set.
package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"parcel/config"
	"parcel/internal/domain/service"
)

const queueKey = "scheduled_orders"

// popDueScript atomically removes and returns every member whose score
// is at or below the given instant, so two workers draining the same
// queue never both claim an order.
var popDueScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
if #due > 0 then
	redis.call('ZREM', KEYS[1], unpack(due))
end
return due
`)

// redisQueue implements service.ScheduleQueue on a Redis ZSET keyed by
// activation time.
type redisQueue struct {
	client *redis.Client
}

// NewRedisClient opens the Redis connection for the delay queue.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		return nil, errors.New("redis configuration is required")
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}), nil
}

// NewRedisQueue is the constructor for redisQueue.
func NewRedisQueue(client *redis.Client) service.ScheduleQueue {
	return &redisQueue{client: client}
}

// Enqueue registers an order for activation at the given instant.
// Re-enqueueing an existing order replaces its activation time.
func (q *redisQueue) Enqueue(ctx context.Context, orderID string, activateAt time.Time) error {
	err := q.client.ZAdd(ctx, queueKey, redis.Z{
		Score:  float64(activateAt.Unix()),
		Member: orderID,
	}).Err()
	if err != nil {
		return errors.Wrap(err, "failed to enqueue scheduled order")
	}

	return nil
}

// Remove drops an order from the queue.
func (q *redisQueue) Remove(ctx context.Context, orderID string) error {
	if err := q.client.ZRem(ctx, queueKey, orderID).Err(); err != nil {
		return errors.Wrap(err, "failed to remove scheduled order")
	}

	return nil
}

// PopDue atomically removes and returns the ids of all orders whose
// activation time is at or before now.
func (q *redisQueue) PopDue(ctx context.Context, now time.Time) ([]string, error) {
	raw, err := popDueScript.Run(ctx, q.client, []string{queueKey}, now.Unix()).Slice()
	if err != nil {
		return nil, errors.Wrap(err, "failed to pop due orders")
	}

	ids := make([]string, 0, len(raw))
	for _, member := range raw {
		if id, ok := member.(string); ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}
