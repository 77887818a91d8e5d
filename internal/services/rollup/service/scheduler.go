package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"doomscroll/internal/platform/logger"
	"doomscroll/internal/services/rollup/domain"

	"github.com/robfig/cron/v3"
)

// Runner is the slice of the engine the scheduler drives
type Runner interface {
	RunOnce(ctx context.Context) (domain.RunReport, error)
}

// Scheduler runs the engine once at start and then on a fixed interval.
// Ticks that land while a run is in flight are skipped.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	log      logger.Logger

	started atomic.Bool
	cron    *cron.Cron
	job     cron.Job
	wg      sync.WaitGroup
}

// NewScheduler builds a scheduler; intervals under a second are raised to one
func NewScheduler(r Runner, interval time.Duration) *Scheduler {
	if interval < time.Second {
		interval = time.Second
	}
	return &Scheduler{runner: r, interval: interval, log: *logger.Named("rollup.scheduler")}
}

// Start schedules the runs and fires the first one. It fails on a second call.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return domain.ErrSchedulerStarted
	}
	cl := cronLogger{l: s.log}
	s.cron = cron.New(cron.WithLogger(cl))
	s.job = cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)).Then(cron.FuncJob(func() { s.tick(ctx) }))
	s.cron.Schedule(cron.Every(s.interval), s.job)
	s.cron.Start()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.job.Run()
	}()
	s.log.Info().Dur("interval", s.interval).Msg("rollup scheduler started")
	return nil
}

// Run is Start followed by a block until ctx ends; it then waits for any
// in-flight run before returning
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop halts the schedule and waits for running jobs
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info().Msg("rollup scheduler stopped")
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	rep, err := s.runner.RunOnce(ctx)
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		s.log.Debug().Msg("rollup already running; tick skipped")
	case err != nil:
		s.log.Error().Err(err).Msg("rollup run failed")
	case rep.LeaseHeld:
		s.log.Debug().Msg("rollup lease held elsewhere; tick skipped")
	default:
		s.log.Info().
			Time("since", rep.Since).
			Int("scanned", rep.Scanned).
			Int("skipped_malformed", rep.SkippedMalformed).
			Int("dropped_sentiment", rep.DroppedSentiment).
			Int("buckets", rep.BucketsWritten).
			Dur("elapsed", rep.Duration).
			Msg("rollup run complete")
	}
}

// cronLogger routes cron's logr-style calls into zerolog
type cronLogger struct{ l logger.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug().Fields(pairs(kv)).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(pairs(kv)).Msg("cron: " + msg)
}

func pairs(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
