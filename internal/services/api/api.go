// Package api provides the HTTP API for the application
package api

import (
	"doomscroll/internal/platform/config"
	"doomscroll/internal/platform/logger"
	"doomscroll/internal/platform/metrics"
	phttp "doomscroll/internal/platform/net/http"
	"doomscroll/internal/platform/net/middleware"
	"doomscroll/internal/platform/store"
	ptime "doomscroll/internal/platform/time"

	"doomscroll/internal/modkit"
	"doomscroll/internal/modkit/httpkit"
	"doomscroll/internal/modkit/module"
	"doomscroll/internal/modkit/swaggerkit"

	// registers the OpenAPI document with swag
	_ "doomscroll/internal/services/api/docs"

	classifymod "doomscroll/internal/services/api/classify/module"
	metamod "doomscroll/internal/services/api/meta/module"
	statsmod "doomscroll/internal/services/api/stats/module"
	eventsdom "doomscroll/internal/services/events/domain"
	eventsmod "doomscroll/internal/services/events/module"
	rollupmod "doomscroll/internal/services/rollup/module"

	"github.com/prometheus/client_golang/prometheus"
)

// Options are the API options
type Options struct {
	// Root is the unprefixed config; modules pick their own CORE_* views
	Root           config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Registry       *prometheus.Registry
	Clock          ptime.Clock
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	CORS           middleware.CORSOptions
}

// Mounted is what the caller needs after mounting: the rollup module whose
// scheduler it may start
type Mounted struct {
	Rollup *rollupmod.Module
}

// Mount builds every module and mounts the API onto r
func Mount(r phttp.Router, opt Options) Mounted {
	if opt.Registry == nil {
		opt.Registry = metrics.NewRegistry()
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Root,
		Metrics: opt.Registry,
		Clock:   opt.Clock,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	// events owns the log the rollup scans and the classifier the API shares
	events := eventsmod.New(deps)
	reader := module.MustPortsOf[eventsdom.Ports](events).Reader
	ev := events.(*eventsmod.Module)

	rollup := rollupmod.New(deps, reader, "api")

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			Rollup:            rollup.Engine(),
			ClassifierVersion: classifierVersion(ev),
		})),
		events,
		rollup,
		statsmod.New(deps),
		classifymod.New(deps, modkit.WithPorts(classifymod.Ports{Classifier: ev.Classifier()})),
	}

	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler(opt.Registry))
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Metrics: metrics.NewHTTP(opt.Registry),
		CORS:    opt.CORS,
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	return Mounted{Rollup: rollup}
}

func classifierVersion(ev *eventsmod.Module) string {
	if v, ok := ev.Classifier().(interface{ Version() string }); ok {
		return v.Version()
	}
	return ""
}
