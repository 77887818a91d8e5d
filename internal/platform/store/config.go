package store

import (
	"doomscroll/internal/platform/config"
)

// Config aggregates backend settings
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures the pgx pool and SQL tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures the ClickHouse connection. Role and Tag are reported
// to the server as client info (visible in system.query_log).
type CHConfig struct {
	Enabled bool
	URL     string
	Role    string
	Tag     string
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_*.
// Postgres is required; ClickHouse is opt-in.
func ConfigFromEnv(root config.Conf, role string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{
		PG: PGConfig{
			Enabled:     true,
			URL:         pg.MustString("DBURL"),
			MaxConns:    int32(pg.MayPositiveInt("MAX_CONNS", 8)),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),
			LogSQL:      pg.MayBool("LOG_SQL", false),
		},
		CH: CHConfig{
			Enabled: ch.MayBool("ENABLED", false),
			Role:    role,
			Tag:     "doomscroll",
		},
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = ch.MustString("DBURL")
	}
	return cfg
}
