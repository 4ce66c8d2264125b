// Package schedule triggers cart sweep cycles, either on an in-process cron
// or as a Temporal cron workflow when a cluster is reachable.
package schedule

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/pioneercards/storefront/internal/cleanup"
)

// DailyAtMidnight is the default sweep schedule.
const DailyAtMidnight = "0 0 * * *"

// CronSweeps runs sweep cycles on an in-process cron schedule.
type CronSweeps struct {
	sweeper *cleanup.Sweeper
	logger  *slog.Logger
	spec    string
	cron    *cron.Cron
}

// NewCronSweeps creates the in-process scheduler. An empty spec means daily
// at midnight.
func NewCronSweeps(sweeper *cleanup.Sweeper, logger *slog.Logger, spec string) *CronSweeps {
	if spec == "" {
		spec = DailyAtMidnight
	}
	return &CronSweeps{sweeper: sweeper, logger: logger, spec: spec, cron: cron.New()}
}

// Start registers the sweep job and begins firing it. The returned error only
// covers schedule parsing; job outcomes are logged per cycle.
func (s *CronSweeps) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.sweeper.Sweep(ctx); err != nil && !errors.Is(err, cleanup.ErrSweepInProgress) {
			s.logger.Error("scheduled cart sweep failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("cart sweep scheduled in-process", slog.String("spec", s.spec))
	return nil
}

// Stop halts the schedule; a cycle already running drains on its own.
func (s *CronSweeps) Stop() {
	s.cron.Stop()
}
