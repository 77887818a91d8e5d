// Package module wires the rollup engine and scheduler as a modkit.Module
package module

import (
	"doomscroll/internal/modkit"
	"doomscroll/internal/modkit/httpkit"
	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/platform/metrics"
	evdom "doomscroll/internal/services/events/domain"
	"doomscroll/internal/services/rollup/domain"
	"doomscroll/internal/services/rollup/guardrails"
	"doomscroll/internal/services/rollup/repo"
	"doomscroll/internal/services/rollup/service"
)

// Ports exported by the rollup module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module for the rollup
type Module struct {
	opts      Options
	engine    *service.Engine
	scheduler *service.Scheduler
	ports     Ports
}

// New wires the engine over Postgres buckets. events is the event log the
// engine scans, normally the events module's reader port.
func New(deps modkit.Deps, events evdom.ReaderPort, role string) *Module {
	opts := FromConfig(deps.Cfg)

	db := deps.PG
	if opts.StatementTimeout > 0 {
		db = repokit.WithBeginHooks(db, repokit.StatementTimeout(opts.StatementTimeout))
	}
	m := NewWith(deps, events, repo.Buckets{DB: db, Binder: repo.NewPG()})
	if opts.EnableLeases && deps.PG != nil {
		m.engine.Lease = guardrails.MakeLease(deps.PG, "daily_buckets", guardrails.Owner(role), opts.LeaseTTL)
	}
	return m
}

// NewWith wires the engine over any bucket store, without a lease
func NewWith(deps modkit.Deps, events evdom.ReaderPort, buckets domain.BucketStore) *Module {
	opts := FromConfig(deps.Cfg)
	eng := service.New(events, buckets, deps.Now(), service.Config{
		Interval:           opts.Interval,
		WindowDays:         opts.WindowDays,
		SecondsPerAnalysis: int64(opts.SecondsPerAnalysis),
		Location:           opts.Location,
		EnableLeases:       opts.EnableLeases,
	})
	if deps.Metrics != nil {
		eng.Metrics = metrics.NewRollup(deps.Metrics)
	}
	return &Module{
		opts:      opts,
		engine:    eng,
		scheduler: service.NewScheduler(eng, eng.Cfg.Interval),
		ports:     Ports{Runner: eng},
	}
}

// Name returns the module name
func (m *Module) Name() string { return "rollup" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: run status is served by the meta module
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Enabled reports CORE_ROLLUP_ENABLED
func (m *Module) Enabled() bool { return m.opts.Enabled }

// Engine returns the engine for direct runs
func (m *Module) Engine() *service.Engine { return m.engine }

// Scheduler returns the periodic runner
func (m *Module) Scheduler() *service.Scheduler { return m.scheduler }
