// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"doomscroll/internal/core/version"
	"doomscroll/internal/modkit/httpkit"
	perr "doomscroll/internal/platform/errors"
	ptime "doomscroll/internal/platform/time"
	rollupdom "doomscroll/internal/services/rollup/domain"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// RollupStatus is the slice of the rollup engine meta reads
type RollupStatus interface {
	Status() rollupdom.Status
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Clock       ptime.Clock
	PG          any
	CH          any

	// Rollup is nil when this process runs no engine
	Rollup RollupStatus
	// ClassifierVersion is the loaded ruleset's model version
	ClassifierVersion string
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Clock == nil {
		d.Clock = ptime.System{}
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/rollup", h.rollup)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"doomscroll-api"`
	Started string `json:"started"  example:"2026-03-10T13:00:00Z"`
	Now     string `json:"now"      example:"2026-03-10T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-10T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name              string            `json:"name"    example:"doomscroll-api"`
	Started           string            `json:"started" example:"2026-03-10T13:00:00Z"`
	Uptime            int64             `json:"uptime"  example:"300"`
	ClassifierVersion string            `json:"classifier_version" example:"heuristic-1.0"`
	Build             version.BuildInfo `json:"build"`
}

// health godoc
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ready godoc
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	pg := check("pg", h.deps.PG)
	ch := check("ch", h.deps.CH)

	// clickhouse is optional, so only a failure degrades readiness
	overall := "ok"
	switch {
	case pg.Status == "fail":
		overall = "fail"
	case pg.Status != "ok" || ch.Status == "fail" || ch.Status == "unknown":
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{pg, ch},
		Now:    h.deps.Clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

// version godoc
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// service godoc
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.Clock.Now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:              h.deps.ServiceName,
		Started:           h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:            int64(uptime / time.Second),
		ClassifierVersion: h.deps.ClassifierVersion,
		Build:             version.Info(h.deps.ServiceName),
	}, nil
}

// rollup godoc
// @Summary Rollup engine status and last run report
// @Tags Meta
// @Produce json
// @Success 200 {object} rollupdom.Status "ok"
// @Failure 404 {object} httpkit.Envelope "no engine in this process"
// @Router /meta/rollup [get]
func (h *handlers) rollup(_ *http.Request) (any, error) {
	if h.deps.Rollup == nil {
		return nil, perr.NotFoundf("rollup engine not running in this process")
	}
	return h.deps.Rollup.Status(), nil
}
