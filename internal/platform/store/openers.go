package store

import (
	"context"
	"fmt"
	"time"

	"doomscroll/internal/platform/logger"
	chx "doomscroll/internal/platform/store/ch"
	"doomscroll/internal/platform/store/pg"
)

// ping retry budget while postgres is still starting (compose, CI)
var (
	pgPingAttempts = 20
	pgPingTimeout  = 3 * time.Second
	pgBackoffStart = 150 * time.Millisecond
	pgBackoffMax   = 2 * time.Second
)

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{URL: cfg.URL, MaxConns: cfg.MaxConns, SlowMs: cfg.SlowQueryMs}, tracer, nil)
	if err != nil {
		return nil, err
	}

	// ping the pool directly so boot retries don't spam the SQL trace
	var lastErr error
	wait := pgBackoffStart
	for attempt := 1; attempt <= pgPingAttempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, pgPingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		log.Debug().Err(lastErr).Int("attempt", attempt).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, pgBackoffMax)
	}
	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", pgPingAttempts, lastErr)
}

func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.URL, Role: cfg.Role, Tag: cfg.Tag})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
