// Package cleanup removes carts that never became orders.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/pioneercards/storefront/internal/domains/checkout/ports"
)

// CartPurger is the slice of the store the sweep needs. The HTTP store client
// satisfies it across the network; the checkout service satisfies it in-process.
type CartPurger interface {
	CartsWithoutOrders(ctx context.Context) ([]*domain.Cart, error)
	RemoveCart(ctx context.Context, id string) error
}

const (
	// DefaultWorkers is the fixed size of the deletion pool.
	DefaultWorkers = 2
	// DefaultDrainTimeout bounds how long a cycle waits for deletions to finish.
	DefaultDrainTimeout = 5 * time.Minute
)

// Sweeper runs abandoned-cart sweep cycles against a CartPurger.
type Sweeper struct {
	purger       CartPurger
	logger       *slog.Logger
	workers      int
	drainTimeout time.Duration

	// running guards against overlapping cycles when a trigger fires while a
	// previous cycle is still draining.
	running sync.Mutex
}

// Option adjusts sweeper behaviour.
type Option func(*Sweeper)

// WithWorkers overrides the deletion pool size.
func WithWorkers(n int) Option {
	return func(s *Sweeper) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithDrainTimeout overrides how long a cycle waits before abandoning
// outstanding deletions.
func WithDrainTimeout(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.drainTimeout = d
		}
	}
}

// NewSweeper creates a sweeper with the default pool and drain bound.
func NewSweeper(purger CartPurger, logger *slog.Logger, opts ...Option) *Sweeper {
	s := &Sweeper{
		purger:       purger,
		logger:       logger,
		workers:      DefaultWorkers,
		drainTimeout: DefaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result summarises a completed cycle.
type Result struct {
	Found     int
	Deleted   int
	Failed    int
	Abandoned bool
}

// ErrSweepInProgress is returned when a trigger fires while the previous
// cycle is still running.
var ErrSweepInProgress = errors.New("cart sweep already in progress")

// Sweep runs one cycle: fetch the orphaned carts, delete each on the pool,
// and wait for the pool to drain within the drain timeout. A fetch failure
// aborts the cycle. On timeout the outstanding deletions are abandoned, not
// cancelled; their outcome is simply no longer observed.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	if !s.running.TryLock() {
		s.logger.Warn("skipping cart sweep, previous cycle still draining")
		return Result{}, ErrSweepInProgress
	}
	defer s.running.Unlock()

	carts, err := s.purger.CartsWithoutOrders(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch carts without orders: %w", err)
	}
	result := Result{Found: len(carts)}
	if len(carts) == 0 {
		s.logger.Info("cart sweep found nothing to remove")
		return result, nil
	}
	s.logger.Info("cart sweep starting", slog.Int("carts", len(carts)))

	tasks := make(chan string)
	var deleted, failed int
	var counts sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range tasks {
				err := s.purger.RemoveCart(ctx, id)
				switch {
				case err == nil:
					s.logger.Info("removed abandoned cart", slog.String("cartId", id))
				case errors.Is(err, checkoutports.ErrNotFound):
					// Lost the race to another deleter; the cart is gone either way.
					s.logger.Info("cart already removed", slog.String("cartId", id))
					err = nil
				default:
					s.logger.Error("failed to remove cart",
						slog.String("cartId", id), slog.String("error", err.Error()))
				}
				counts.Lock()
				if err != nil {
					failed++
				} else {
					deleted++
				}
				counts.Unlock()
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, cart := range carts {
			tasks <- cart.ID
		}
	}()

	drained := make(chan struct{})
	go func() {
		wg.Wait()
		close(drained)
	}()

	timer := time.NewTimer(s.drainTimeout)
	defer timer.Stop()
	select {
	case <-drained:
	case <-timer.C:
		result.Abandoned = true
		s.logger.Error("cart sweep drain timed out, abandoning outstanding deletions",
			slog.Duration("timeout", s.drainTimeout))
	}

	counts.Lock()
	result.Deleted = deleted
	result.Failed = failed
	counts.Unlock()
	s.logger.Info("cart sweep finished",
		slog.Int("found", result.Found),
		slog.Int("deleted", result.Deleted),
		slog.Int("failed", result.Failed),
		slog.Bool("abandoned", result.Abandoned))
	return result, nil
}
