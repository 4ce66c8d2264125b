package cleanup

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/pioneercards/storefront/internal/cleanup"
)

// Activities groups the cart cleanup activities.
type Activities struct {
	sweeper *cleanup.Sweeper
}

// NewActivities wires the sweeper into the Temporal activities bundle.
func NewActivities(sweeper *cleanup.Sweeper) *Activities {
	return &Activities{sweeper: sweeper}
}

// RunSweep executes one sweep cycle and reports its outcome.
func (a *Activities) RunSweep(ctx context.Context) (cleanup.Result, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.sweeper == nil {
		logger.Error("sweep activity not initialized")
		return cleanup.Result{}, errors.New("sweep activity not initialized")
	}
	logger.Info("RunSweep activity started")
	result, err := a.sweeper.Sweep(ctx)
	if err != nil {
		logger.Error("RunSweep activity failed", "error", err)
		return cleanup.Result{}, err
	}
	logger.Info("RunSweep activity completed",
		"found", result.Found, "deleted", result.Deleted, "failed", result.Failed, "abandoned", result.Abandoned)
	return result, nil
}
