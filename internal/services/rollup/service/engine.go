// Package service provides the rollup engine and its scheduler
package service

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"doomscroll/internal/core/classify"
	perr "doomscroll/internal/platform/errors"
	"doomscroll/internal/platform/logger"
	"doomscroll/internal/platform/metrics"
	ptime "doomscroll/internal/platform/time"
	evdom "doomscroll/internal/services/events/domain"
	"doomscroll/internal/services/rollup/domain"
	"doomscroll/internal/services/rollup/guardrails"
)

// Config controls window, weighting and scheduling
type Config struct {
	// Interval between scheduled runs; default 30m
	Interval time.Duration

	// WindowDays is how many whole days before today are recomputed; default 2
	WindowDays int

	// SecondsPerAnalysis is the time credited for each content analysis; default 30
	SecondsPerAnalysis int64

	// Location decides calendar dates; default time.Local
	Location *time.Location

	// EnableLeases takes the PG lease around each run
	EnableLeases bool
}

// WithDefaults fills zero fields
func (c Config) WithDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 30 * time.Minute
	}
	if c.WindowDays <= 0 {
		c.WindowDays = 2
	}
	if c.SecondsPerAnalysis <= 0 {
		c.SecondsPerAnalysis = 30
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	return c
}

// Engine recomputes daily buckets from the event log. It implements domain.RunnerPort.
type Engine struct {
	Events  evdom.ReaderPort
	Buckets domain.BucketStore
	Clock   ptime.Clock
	Cfg     Config
	Metrics *metrics.Rollup

	// Lease, when set and Cfg.EnableLeases is on, wraps each run
	Lease guardrails.LeaseFunc

	run sync.Mutex

	mu     sync.Mutex
	status domain.Status
}

// New constructs an Engine
func New(events evdom.ReaderPort, buckets domain.BucketStore, clock ptime.Clock, cfg Config) *Engine {
	if events == nil {
		panic("rollup.Engine requires a non nil event reader")
	}
	if buckets == nil {
		panic("rollup.Engine requires a non nil bucket store")
	}
	if clock == nil {
		clock = ptime.System{}
	}
	return &Engine{Events: events, Buckets: buckets, Clock: clock, Cfg: cfg.WithDefaults()}
}

// WindowStart is midnight of the date WindowDays before now, in the rollup location
func (e *Engine) WindowStart(now time.Time) time.Time {
	loc := e.Cfg.Location
	return ptime.Midnight(now.In(loc).AddDate(0, 0, -e.Cfg.WindowDays), loc)
}

// RunOnce recomputes every bucket the window touches and overwrites them in
// one batch. A concurrent call returns ErrRunInProgress without reading or
// writing anything.
func (e *Engine) RunOnce(ctx context.Context) (domain.RunReport, error) {
	if !e.run.TryLock() {
		e.Metrics.ObserveRun("busy", 0, time.Time{})
		return domain.RunReport{}, domain.ErrRunInProgress
	}
	defer e.run.Unlock()

	e.setRunning(true)
	wall := time.Now()
	rep := domain.RunReport{StartedAt: e.Clock.Now()}

	work := func(ctx context.Context) error {
		var err error
		rep, err = e.compute(ctx, rep.StartedAt)
		return err
	}

	var err error
	if e.Lease != nil && e.Cfg.EnableLeases {
		err = e.Lease(ctx, work)
		if errors.Is(err, guardrails.ErrLeaseHeld) {
			rep.LeaseHeld = true
			err = nil
		}
	} else {
		err = work(ctx)
	}
	rep.Duration = time.Since(wall)

	e.finish(rep, err)
	return rep, err
}

func (e *Engine) compute(ctx context.Context, now time.Time) (domain.RunReport, error) {
	log := logger.C(ctx).With().Str("component", "rollup").Logger()
	rep := domain.RunReport{StartedAt: now, Since: e.WindowStart(now)}

	events, err := e.Events.QueryByTypeSince(ctx, evdom.EventContentAnalysis, rep.Since)
	if err != nil {
		return rep, perr.Wrap(err, perr.ErrorCodeUnavailable, "rollup: read events")
	}

	loc := e.Cfg.Location
	slice := e.Cfg.SecondsPerAnalysis
	acc := map[domain.BucketKey]*domain.DailyBucket{}

	for _, ev := range events {
		rep.Scanned++
		raw, err := sentimentOf(ev.Classification)
		if err != nil {
			rep.SkippedMalformed++
			log.Debug().Str("event_id", ev.ID).Err(err).Msg("skip event")
			continue
		}

		k := domain.BucketKey{UserID: ev.UserID, Date: ptime.DateKey(ev.Timestamp, loc)}
		b, ok := acc[k]
		if !ok {
			b = &domain.DailyBucket{UserID: k.UserID, Date: k.Date}
			acc[k] = b
		}

		s, ok := classify.ParseSentiment(raw)
		if !ok {
			rep.DroppedSentiment++
			log.Debug().Str("event_id", ev.ID).Str("sentiment", raw).Msg("unknown sentiment")
			continue
		}
		switch s {
		case classify.Negative:
			b.DoomSeconds += slice
		case classify.Neutral:
			b.NeutralSeconds += slice
		case classify.Positive:
			b.PositiveSeconds += slice
		}
	}

	bs := make([]domain.DailyBucket, 0, len(acc))
	for _, b := range acc {
		bs = append(bs, *b)
	}
	slices.SortFunc(bs, func(a, b domain.DailyBucket) int {
		if c := strings.Compare(a.UserID, b.UserID); c != 0 {
			return c
		}
		return strings.Compare(a.Date, b.Date)
	})

	if err := e.Buckets.UpsertAll(ctx, bs); err != nil {
		return rep, perr.Wrap(err, perr.ErrorCodeUnavailable, "rollup: write buckets")
	}
	rep.BucketsWritten = len(bs)
	return rep, nil
}

// sentimentOf reads the sentiment field of a classification object. A
// missing or non-string sentiment comes back empty, which the caller drops.
func sentimentOf(payload json.RawMessage) (string, error) {
	if len(payload) == 0 {
		return "", domain.ErrMalformedPayload
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil || obj == nil {
		return "", domain.ErrMalformedPayload
	}
	var s string
	if raw, ok := obj["sentiment"]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s, nil
}

func (e *Engine) setRunning(v bool) {
	e.mu.Lock()
	e.status.Running = v
	e.mu.Unlock()
}

func (e *Engine) finish(rep domain.RunReport, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case rep.LeaseHeld:
		outcome = "lease_held"
	}
	e.Metrics.ObserveRun(outcome, rep.Duration, e.Clock.Now())
	if err == nil && !rep.LeaseHeld {
		e.Metrics.Counted(rep.Scanned, rep.SkippedMalformed, rep.DroppedSentiment, rep.BucketsWritten)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.status.Running = false
	e.status.Runs++
	if err != nil {
		at := e.Clock.Now()
		e.status.LastError = err.Error()
		e.status.LastErrorAt = &at
		return
	}
	r := rep
	e.status.LastRun = &r
}

// Status returns a snapshot of the engine state
func (e *Engine) Status() domain.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.status
	if s.LastRun != nil {
		r := *s.LastRun
		s.LastRun = &r
	}
	return s
}
