package store

import (
	"context"
	"errors"

	"doomscroll/internal/platform/store/ch"
)

// chClient is the subset of *ch.CH the adapter needs
type chClient interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

type chAdapter struct{ c chClient }

var _ Clickhouse = (*chAdapter)(nil)

func newCHAdapter(c chClient) *chAdapter { return &chAdapter{c: c} }

func (a *chAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	return a.c.Exec(ctx, sql, args...)
}

func (a *chAdapter) Insert(ctx context.Context, table string, rows [][]any) error {
	return a.c.Insert(ctx, table, rows)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{r: r}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error {
	if a == nil || a.c == nil {
		return errors.New("clickhouse: nil adapter")
	}
	return a.c.Ping(ctx)
}

func (a *chAdapter) Close() error { return a.c.Close() }

// chRows folds the driver's Close error into Err
type chRows struct {
	r        ch.Rows
	closeErr error
}

func (r *chRows) Next() bool             { return r.r.Next() }
func (r *chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r *chRows) Columns() []string      { return r.r.Columns() }
func (r *chRows) Close()                 { r.closeErr = r.r.Close() }
func (r *chRows) Err() error {
	if err := r.r.Err(); err != nil {
		return err
	}
	return r.closeErr
}
