// Package module wires stats into the API using modkit
package module

import (
	modkit "doomscroll/internal/modkit"
	"doomscroll/internal/modkit/httpkit"
	"doomscroll/internal/platform/logger"
	"doomscroll/internal/services/api/stats/domain"
	statshttp "doomscroll/internal/services/api/stats/http"
	statsrepo "doomscroll/internal/services/api/stats/repo"
	statssvc "doomscroll/internal/services/api/stats/service"
)

// Module implements the stats module
type Module struct {
	b   modkit.Built
	svc *statssvc.Svc
}

// New constructs the stats module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)

	var events statsrepo.Events = statsrepo.NewPGEvents().Bind(deps.PG)
	source := "postgres"
	switch {
	case o.Source == "clickhouse" && deps.CH == nil:
		logger.Named("stats").Warn().Msg("CORE_STATS_SOURCE=clickhouse but clickhouse is disabled; reading postgres")
	case o.Source != "postgres" && deps.CH != nil:
		events = statsrepo.NewCH(deps.CH)
		source = "clickhouse"
	}

	svc := statssvc.New(deps.PG, statsrepo.NewPGBuckets(), events, deps.Now(), o.Location)
	svc.Source = source

	m := &Module{svc: svc}
	base := []modkit.Option{
		modkit.WithName("stats"),
		modkit.WithPrefix("/stats"),
		modkit.WithRegister(func(r httpkit.Router) { statshttp.Register(r, svc) }),
	}
	m.b = modkit.Build(append(base, opts...)...)
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r) }

// Ports returns the stats service port
func (m *Module) Ports() any { return domain.ServicePort(m.svc) }

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }
