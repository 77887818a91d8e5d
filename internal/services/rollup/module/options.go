package module

import (
	"time"

	"doomscroll/internal/platform/config"
)

// Options for the rollup module
type Options struct {
	Enabled            bool
	Interval           time.Duration
	WindowDays         int
	SecondsPerAnalysis int
	Location           *time.Location
	EnableLeases       bool
	LeaseTTL           time.Duration
	StatementTimeout   time.Duration
}

// FromConfig fills options from the environment
// CORE_ROLLUP_ENABLED (default true) starts the scheduler alongside the API
// CORE_ROLLUP_INTERVAL_SECONDS (default 1800) is the time between runs
// CORE_ROLLUP_WINDOW_DAYS (default 2) is how many days before today each run recomputes
// CORE_ROLLUP_SECONDS_PER_ANALYSIS (default 30) is the time credited per content analysis
// CORE_ROLLUP_TZ (default Local) is the zone calendar dates are cut in
// CORE_ROLLUP_LEASES (default true) takes the rollup_leases row around each run
// CORE_ROLLUP_LEASE_TTL (default 10m) bounds a crashed owner's hold
// CORE_ROLLUP_STATEMENT_TIMEOUT (default 0, off) caps each statement of the bucket write
func FromConfig(cfg config.Conf) Options {
	r := cfg.Prefix("CORE_ROLLUP_")
	return Options{
		Enabled:            r.MayBool("ENABLED", true),
		Interval:           r.MaySeconds("INTERVAL_SECONDS", 30*time.Minute),
		WindowDays:         r.MayPositiveInt("WINDOW_DAYS", 2),
		SecondsPerAnalysis: r.MayPositiveInt("SECONDS_PER_ANALYSIS", 30),
		Location:           r.MayLocation("TZ", time.Local),
		EnableLeases:       r.MayBool("LEASES", true),
		LeaseTTL:           r.MayDuration("LEASE_TTL", 10*time.Minute),
		StatementTimeout:   r.MayDuration("STATEMENT_TIMEOUT", 0),
	}
}
