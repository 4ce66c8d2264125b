// Package memory provides an in-process notification queue for single-binary
// deployments and tests.
package memory

import "context"

// Queue is a buffered channel standing in for the Redis list.
type Queue struct {
	messages chan string
}

// NewQueue creates a queue with room for size undelivered messages.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{messages: make(chan string, size)}
}

func (q *Queue) Publish(ctx context.Context, orderID string) error {
	select {
	case q.messages <- orderID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) Receive(ctx context.Context) (string, error) {
	select {
	case orderID := <-q.messages:
		return orderID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
