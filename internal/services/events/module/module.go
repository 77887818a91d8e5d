// Package module wires event ingest into the API using modkit
package module

import (
	"doomscroll/internal/core/classify"
	modkit "doomscroll/internal/modkit"
	"doomscroll/internal/modkit/httpkit"
	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/platform/logger"
	"doomscroll/internal/services/events/domain"
	eventshttp "doomscroll/internal/services/events/http"
	"doomscroll/internal/services/events/repo"
	"doomscroll/internal/services/events/service"
)

// Module implements the events module
type Module struct {
	b     modkit.Built
	svc   *service.Service
	ports domain.Ports
}

// New constructs the events module against Postgres. A bad ruleset path is
// fatal at startup.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWith(deps, repo.NewPG(), opts...)
}

// NewWith constructs the module over any storage binder
func NewWith(deps modkit.Deps, b repokit.Binder[repo.Storage], opts ...modkit.Option) *Module {
	o := FromConfig(deps.Cfg)
	cls, err := classify.Load(o.RulesPath)
	if err != nil {
		logger.Get().Fatal().Err(err).Str("path", o.RulesPath).Msg("load classifier ruleset")
	}

	db := deps.PG
	if db == nil {
		db = repokit.InlineTx{}
	}
	svc := service.New(db, b, cls, deps.Now())
	if o.Mirror {
		if m := repo.NewMirror(deps.CH); m != nil {
			svc.Mirror = m
		}
	}

	m := &Module{svc: svc}
	m.ports = domain.Ports{Writer: svc, Reader: svc, Service: svc}

	base := []modkit.Option{
		modkit.WithName("events"),
		modkit.WithPrefix("/events"),
		modkit.WithRegister(func(r httpkit.Router) { eventshttp.Register(r, svc) }),
	}
	m.b = modkit.Build(append(base, opts...)...)
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r) }

// Ports returns domain.Ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Service exposes the concrete service for in-process callers like the CLI
func (m *Module) Service() *service.Service { return m.svc }

// Classifier returns the classifier applied at ingest so other modules can share it
func (m *Module) Classifier() classify.Classifier { return m.svc.Classifier }
