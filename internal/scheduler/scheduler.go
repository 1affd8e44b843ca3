// Package scheduler runs the report cycle at a fixed cadence.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"pricewatch/internal/coordinator"
	"pricewatch/internal/logger"
)

// Runner executes one report cycle.
type Runner interface {
	Run(ctx context.Context) (coordinator.Result, error)
}

// Scheduler triggers a Runner immediately and then every interval. Cycles
// never overlap: a tick that arrives while a cycle is running is skipped.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	cron     *cron.Cron
	job      cron.Job
	logger   *log.Logger
}

// New creates a scheduler. Intervals below one second are rounded up to one second.
func New(runner Runner, interval time.Duration, l *log.Logger) *Scheduler {
	adapter := logger.CronAdapter{Logger: l}
	return &Scheduler{
		runner:   runner,
		interval: interval,
		cron:     cron.New(cron.WithLogger(adapter)),
		logger:   l,
	}
}

// Run blocks until ctx is cancelled, then waits for a running cycle to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid interval %s", s.interval)
	}

	adapter := logger.CronAdapter{Logger: s.logger}
	s.job = cron.NewChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)).
		Then(cron.FuncJob(func() { s.cycle(ctx) }))

	s.cron.Schedule(cron.Every(s.interval), s.job)
	s.cron.Start()
	s.logger.Info().Dur("interval", s.interval).Msg("scheduler started")

	s.job.Run()

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
	return nil
}

func (s *Scheduler) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.runner.Run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("job failed")
	}
}
