// Package scheduler runs the scan-and-alert cycle on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is one scan-and-alert cycle. Errors are reported, not fatal: the
// next tick always runs.
type Job func(ctx context.Context) error

// Scheduler runs a Job immediately and then on every tick.
type Scheduler struct {
	job      Job
	interval time.Duration
	log      *slog.Logger
}

// New creates a Scheduler running job every interval.
func New(job Job, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{job: job, interval: interval, log: log}
}

// Run starts the loop, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.log.Error("scheduled run failed", "error", err)
		return
	}
	s.log.Info("scheduled run complete", "duration", time.Since(start).Round(time.Millisecond))
}
