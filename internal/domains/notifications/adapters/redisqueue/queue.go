// Package redisqueue backs the notification channel with a Redis list.
package redisqueue

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pioneercards/storefront/internal/domains/notifications/ports"
)

// receiveBlock bounds each BRPOP so Receive can observe ctx cancellation.
const receiveBlock = 5 * time.Second

// Queue publishes with LPUSH and consumes with BRPOP, so messages are
// delivered in publish order and survive consumer restarts.
type Queue struct {
	client *redis.Client
	key    string
}

// NewQueue creates a queue on the shared confirmation channel.
func NewQueue(client *redis.Client) *Queue {
	return &Queue{client: client, key: ports.QueueName}
}

func (q *Queue) Publish(ctx context.Context, orderID string) error {
	return q.client.LPush(ctx, q.key, orderID).Err()
}

func (q *Queue) Receive(ctx context.Context) (string, error) {
	for {
		values, err := q.client.BRPop(ctx, receiveBlock, q.key).Result()
		if errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if err != nil {
			return "", err
		}
		// BRPOP returns [key, value].
		return values[1], nil
	}
}
