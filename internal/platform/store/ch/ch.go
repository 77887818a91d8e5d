// Package ch is a thin ClickHouse client over clickhouse-go/v2
package ch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the connection. URL is a clickhouse:// DSN.
type Config struct {
	URL  string
	Role string
	Tag  string
}

// Rows is the result-set surface callers see
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// conn is the slice of driver.Conn we use
type conn interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	Close() error
}

// CH is a connected client
type CH struct {
	c conn
}

var dial = func(opts *clickhouse.Options) (conn, error) { return clickhouse.Open(opts) }

// Open parses the DSN, tags the connection with client info and pings once
func Open(ctx context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("clickhouse: empty DSN")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: parse dsn: %w", err)
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)

	c, err := dial(opts)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: open: %w", err)
	}
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("clickhouse: ping: %w", err)
	}
	return &CH{c: c}, nil
}

// Exec runs DDL or a statement without results
func (h *CH) Exec(ctx context.Context, sql string, args ...any) error {
	return h.c.Exec(ctx, sql, args...)
}

// Insert appends rows to table in a single native batch.
// Each row's values must follow the table's column order.
func (h *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	b, err := h.c.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("clickhouse: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return fmt.Errorf("clickhouse: append row %d to %s: %w", i, table, err)
		}
	}
	if err := b.Send(); err != nil {
		return fmt.Errorf("clickhouse: send %s: %w", table, err)
	}
	return nil
}

// Query runs a select
func (h *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return h.c.Query(ctx, sql, args...)
}

// Ping checks the connection
func (h *CH) Ping(ctx context.Context) error { return h.c.Ping(ctx) }

// Close closes the connection
func (h *CH) Close() error {
	if h == nil || h.c == nil {
		return nil
	}
	return h.c.Close()
}
