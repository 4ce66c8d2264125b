package cleanup

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/pioneercards/storefront/internal/cleanup"
)

const (
	// CartSweepWorkflowName is the public identifier for registering the workflow.
	CartSweepWorkflowName = "cleanup.workflows.CartSweep"
	// CartSweepTaskQueue is the queue consumed by the worker running sweeps.
	CartSweepTaskQueue = "CART_CLEANUP"
	// CartSweepCronSchedule fires the sweep daily at midnight.
	CartSweepCronSchedule = "0 0 * * *"
	// RunSweepActivityName executes one sweep cycle against the store.
	RunSweepActivityName = "cleanup.activities.RunSweep"
)

// CartSweepWorkflow runs a single sweep cycle. Cycles are self-contained, so
// a failed cycle is reported and left for the next cron fire rather than
// retried.
func CartSweepWorkflow(ctx workflow.Context) (cleanup.Result, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CartSweepWorkflow started")
	options := workflow.ActivityOptions{
		// Covers the sweep's own drain bound plus fetch time.
		StartToCloseTimeout: cleanup.DefaultDrainTimeout + time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	}
	ctx = workflow.WithActivityOptions(ctx, options)
	var result cleanup.Result
	if err := workflow.ExecuteActivity(ctx, RunSweepActivityName).Get(ctx, &result); err != nil {
		logger.Error("CartSweepWorkflow failed", "error", err)
		return cleanup.Result{}, err
	}
	logger.Info("CartSweepWorkflow completed",
		"found", result.Found, "deleted", result.Deleted, "failed", result.Failed)
	return result, nil
}
