package cleanup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

type fakePurger struct {
	mu       sync.Mutex
	carts    []*domain.Cart
	fetchFn  func(ctx context.Context) ([]*domain.Cart, error)
	removeFn func(ctx context.Context, id string) error
	removed  []string
}

func (f *fakePurger) CartsWithoutOrders(ctx context.Context) ([]*domain.Cart, error) {
	if f.fetchFn != nil {
		return f.fetchFn(ctx)
	}
	return f.carts, nil
}

func (f *fakePurger) RemoveCart(ctx context.Context, id string) error {
	if f.removeFn != nil {
		if err := f.removeFn(ctx, id); err != nil {
			return err
		}
	}
	f.mu.Lock()
	f.removed = append(f.removed, id)
	f.mu.Unlock()
	return nil
}

func (f *fakePurger) removedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

func carts(ids ...string) []*domain.Cart {
	out := make([]*domain.Cart, 0, len(ids))
	for _, id := range ids {
		out = append(out, &domain.Cart{ID: id})
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweep_NothingToRemove(t *testing.T) {
	purger := &fakePurger{}
	sweeper := NewSweeper(purger, discardLogger())

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
	assert.Empty(t, purger.removedIDs())
}

func TestSweep_FetchFailureAbortsCycle(t *testing.T) {
	purger := &fakePurger{fetchFn: func(context.Context) ([]*domain.Cart, error) {
		return nil, errors.New("store unreachable")
	}}
	sweeper := NewSweeper(purger, discardLogger())

	_, err := sweeper.Sweep(context.Background())

	require.Error(t, err)
	assert.Empty(t, purger.removedIDs())
}

func TestSweep_RemovesEveryOrphan(t *testing.T) {
	purger := &fakePurger{carts: carts("a", "b", "c", "d")}
	sweeper := NewSweeper(purger, discardLogger())

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{Found: 4, Deleted: 4}, result)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, purger.removedIDs())
}

func TestSweep_TaskFailureLeavesSiblingsUnaffected(t *testing.T) {
	purger := &fakePurger{carts: carts("a", "b", "c")}
	purger.removeFn = func(_ context.Context, id string) error {
		if id == "b" {
			return errors.New("conflict")
		}
		return nil
	}
	sweeper := NewSweeper(purger, discardLogger())

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{Found: 3, Deleted: 2, Failed: 1}, result)
	assert.ElementsMatch(t, []string{"a", "c"}, purger.removedIDs())
}

func TestSweep_NotFoundRaceCountsAsRemoved(t *testing.T) {
	purger := &fakePurger{carts: carts("a", "b")}
	purger.removeFn = func(_ context.Context, id string) error {
		if id == "a" {
			return checkoutports.ErrNotFound
		}
		return nil
	}
	sweeper := NewSweeper(purger, discardLogger())

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{Found: 2, Deleted: 2}, result)
}

func TestSweep_PoolIsBounded(t *testing.T) {
	var inFlight, peak atomic.Int32
	purger := &fakePurger{carts: carts("a", "b", "c", "d", "e", "f")}
	purger.removeFn = func(context.Context, string) error {
		now := inFlight.Add(1)
		for {
			seen := peak.Load()
			if now <= seen || peak.CompareAndSwap(seen, now) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	}
	sweeper := NewSweeper(purger, discardLogger())

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 6, result.Deleted)
	assert.LessOrEqual(t, peak.Load(), int32(DefaultWorkers))
}

func TestSweep_DrainTimeoutAbandonsStragglers(t *testing.T) {
	release := make(chan struct{})
	purger := &fakePurger{carts: carts("a", "b", "c")}
	purger.removeFn = func(context.Context, string) error {
		<-release
		return nil
	}
	sweeper := NewSweeper(purger, discardLogger(), WithDrainTimeout(50*time.Millisecond))

	start := time.Now()
	result, err := sweeper.Sweep(context.Background())
	elapsed := time.Since(start)
	close(release)

	require.NoError(t, err)
	assert.True(t, result.Abandoned)
	assert.Equal(t, 3, result.Found)
	assert.Zero(t, result.Deleted)
	assert.Less(t, elapsed, time.Second)
}

func TestSweep_RejectsOverlappingCycle(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	purger := &fakePurger{fetchFn: func(context.Context) ([]*domain.Cart, error) {
		close(started)
		<-release
		return nil, nil
	}}
	sweeper := NewSweeper(purger, discardLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = sweeper.Sweep(context.Background())
	}()
	<-started

	_, err := sweeper.Sweep(context.Background())
	require.ErrorIs(t, err, ErrSweepInProgress)

	close(release)
	<-done
}
