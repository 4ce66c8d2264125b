package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	"github.com/pioneercards/storefront/internal/domains/notifications/adapters/memory"
)

type recordingFinder struct {
	mu     sync.Mutex
	seen   []int64
	orders map[int64]*domain.CardOrder
	errs   map[int64]error
}

func (f *recordingFinder) GetOrder(_ context.Context, orderID int64) (*domain.CardOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, orderID)
	if err, ok := f.errs[orderID]; ok {
		return nil, err
	}
	return f.orders[orderID], nil
}

func (f *recordingFinder) lookups() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.seen...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestConfirmer_DeliversInPublishOrder(t *testing.T) {
	queue := memory.NewQueue(8)
	finder := &recordingFinder{orders: map[int64]*domain.CardOrder{
		7: {ID: 7, Total: decimal.RequireFromString("31.50"), Customer: &domain.Customer{Email: "ada@example.com"}},
		9: {ID: 9, Total: decimal.RequireFromString("12.00")},
	}}
	confirmer := NewConfirmer(queue, finder, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- confirmer.Run(ctx) }()

	require.NoError(t, queue.Publish(ctx, "7"))
	require.NoError(t, queue.Publish(ctx, "9"))

	waitFor(t, func() bool { return len(finder.lookups()) == 2 })
	require.Equal(t, []int64{7, 9}, finder.lookups())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestConfirmer_ToleratesUnknownAndFailingOrders(t *testing.T) {
	queue := memory.NewQueue(8)
	finder := &recordingFinder{
		orders: map[int64]*domain.CardOrder{5: {ID: 5, Total: decimal.Zero}},
		errs:   map[int64]error{6: errors.New("store unreachable")},
	}
	confirmer := NewConfirmer(queue, finder, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- confirmer.Run(ctx) }()

	// Unknown order, lookup failure, and a malformed message all leave the
	// loop running for the next message.
	require.NoError(t, queue.Publish(ctx, "4"))
	require.NoError(t, queue.Publish(ctx, "6"))
	require.NoError(t, queue.Publish(ctx, "not-a-number"))
	require.NoError(t, queue.Publish(ctx, "5"))

	waitFor(t, func() bool {
		lookups := finder.lookups()
		return len(lookups) == 3 && lookups[len(lookups)-1] == 5
	})
	require.Equal(t, []int64{4, 6, 5}, finder.lookups())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
