// Package scheduler triggers the automatic afternoon and end-of-day
// reports. It is deliberately thin: a cron wrapper that calls back into the
// same report path every other caller uses.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"preetosbot/internal/config"
)

// Job is the scheduled work: produce and deliver today's report.
type Job func(ctx context.Context)

// Scheduler runs the configured cron entries in the report timezone.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New builds the scheduler with the afternoon and evening entries. The
// returned scheduler is not started.
func New(cfg config.ScheduleConfig, job Job, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	c := cron.New(cron.WithLocation(loc))

	run := func(name string) func() {
		return func() {
			logger.Info("scheduled report triggered", "job", name)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			job(ctx)
		}
	}

	if _, err := c.AddFunc(cfg.AfternoonSpec, run("afternoon")); err != nil {
		return nil, fmt.Errorf("add afternoon job: %w", err)
	}
	if _, err := c.AddFunc(cfg.EveningSpec, run("evening")); err != nil {
		return nil, fmt.Errorf("add evening job: %w", err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "entries", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
