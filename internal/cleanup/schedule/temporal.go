package schedule

import (
	"context"
	"errors"
	"log/slog"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	cleanupworkflows "github.com/pioneercards/storefront/internal/durable/temporal/workflows/cleanup"
)

// TemporalSweeps schedules the sweep as a Temporal cron workflow, so the
// schedule survives notifier restarts.
type TemporalSweeps struct {
	client client.Client
	logger *slog.Logger
	spec   string
}

// NewTemporalSweeps creates the durable scheduler. An empty spec means daily
// at midnight.
func NewTemporalSweeps(c client.Client, logger *slog.Logger, spec string) *TemporalSweeps {
	if spec == "" {
		spec = cleanupworkflows.CartSweepCronSchedule
	}
	return &TemporalSweeps{client: c, logger: logger, spec: spec}
}

// Start launches the cron workflow. A schedule already registered from an
// earlier run is not an error.
func (s *TemporalSweeps) Start(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("temporal sweep schedule not configured")
	}
	options := client.StartWorkflowOptions{
		ID:           "cart-sweep-cron",
		TaskQueue:    cleanupworkflows.CartSweepTaskQueue,
		CronSchedule: s.spec,
	}
	_, err := s.client.ExecuteWorkflow(ctx, options, cleanupworkflows.CartSweepWorkflowName)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			s.logger.Info("cart sweep cron workflow already scheduled")
			return nil
		}
		return err
	}
	s.logger.Info("cart sweep scheduled on Temporal", slog.String("spec", s.spec))
	return nil
}

// Stop is a no-op; the durable schedule outlives the process on purpose.
func (s *TemporalSweeps) Stop() {}
