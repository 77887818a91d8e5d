// Package module wires meta endpoints into the API using a tiny module
package module

import (
	modkit "doomscroll/internal/modkit"
	"doomscroll/internal/modkit/httpkit"
	pstrings "doomscroll/internal/platform/strings"

	metahttp "doomscroll/internal/services/api/meta/http"
)

// Ports are what meta reads from other modules; pass them with modkit.WithPorts
type Ports struct {
	Rollup            metahttp.RollupStatus
	ClassifierVersion string
}

// Module implements the modkit.Module interface
type Module struct {
	b modkit.Built
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	p, _ := b.Ports.(Ports)
	hd := metahttp.Deps{
		ServiceName:       pstrings.FirstNonEmpty(deps.Cfg.MayString("LOG_SERVICE", ""), "doomscroll-api"),
		StartedAt:         deps.Now().Now(),
		Clock:             deps.Now(),
		Rollup:            p.Rollup,
		ClassifierVersion: p.ClassifierVersion,
	}
	// a typed nil would read as configured
	if deps.PG != nil {
		hd.PG = deps.PG
	}
	if deps.CH != nil {
		hd.CH = deps.CH
	}

	external := b.Register
	b.Register = func(r httpkit.Router) {
		metahttp.Register(r, hd)
		external(r)
	}
	return &Module{b: b}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.b.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
