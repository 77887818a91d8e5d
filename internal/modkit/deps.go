// Package modkit wires modules: shared deps, options and the module contract
package modkit

import (
	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/platform/config"
	"doomscroll/internal/platform/logger"
	"doomscroll/internal/platform/store"
	ptime "doomscroll/internal/platform/time"

	"github.com/prometheus/client_golang/prometheus"
)

// Deps are the process-wide dependencies every module may draw from.
// PG, CH and Metrics may be nil; modules nil check what they use.
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      store.Clickhouse
	Metrics prometheus.Registerer
	Clock   ptime.Clock
}

// Now reads the injected clock, falling back to the system clock
func (d Deps) Now() ptime.Clock {
	if d.Clock == nil {
		return ptime.System{}
	}
	return d.Clock
}
