// Package ports declares the notification channel contracts.
package ports

import "context"

// QueueName is the channel carrying order confirmation requests.
const QueueName = "order-confirmations"

// Queue moves order ids between the confirm endpoint and the consumer loop.
type Queue interface {
	// Publish enqueues an order id for confirmation.
	Publish(ctx context.Context, orderID string) error
	// Receive blocks until a message arrives or ctx is done.
	Receive(ctx context.Context) (string, error)
}
