package module

import (
	"time"

	"doomscroll/internal/platform/config"
)

// Options for the stats module
type Options struct {
	// Source picks the raw event backend: auto, postgres or clickhouse
	Source   string
	Location *time.Location
}

// FromConfig reads CORE_STATS_SOURCE and shares CORE_ROLLUP_TZ so bucket
// dates line up with the rollup
func FromConfig(cfg config.Conf) Options {
	return Options{
		Source:   cfg.Prefix("CORE_STATS_").MayEnum("SOURCE", "auto", "auto", "postgres", "clickhouse"),
		Location: cfg.Prefix("CORE_ROLLUP_").MayLocation("TZ", time.Local),
	}
}
