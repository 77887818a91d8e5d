package module

import "doomscroll/internal/platform/config"

// Options holds configuration settings for the events module
type Options struct {
	// RulesPath swaps the embedded classifier ruleset for a YAML file
	RulesPath string
	// Mirror copies ingested events to ClickHouse when a connection exists
	Mirror bool
}

// FromConfig reads CORE_CLASSIFIER_* and CORE_EVENTS_*
func FromConfig(cfg config.Conf) Options {
	return Options{
		RulesPath: cfg.Prefix("CORE_CLASSIFIER_").MayString("RULES_PATH", ""),
		Mirror:    cfg.Prefix("CORE_EVENTS_").MayBool("CLICKHOUSE_MIRROR", true),
	}
}
