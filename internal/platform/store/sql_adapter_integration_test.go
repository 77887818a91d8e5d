//go:build integration_pg

package store_test

import (
	"context"
	"errors"
	"testing"

	"doomscroll/internal/platform/store"
	"doomscroll/internal/platform/store/pgtest"
)

func TestPGAdapterTxAndHelpers(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()

	if err := st.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}

	// rollback leaves nothing behind
	boom := errors.New("boom")
	err := st.PG.Tx(ctx, func(q store.RowQuerier) error {
		if err := store.ExecOne(ctx, q,
			`INSERT INTO daily_buckets (user_id, date, doom_seconds) VALUES ($1, $2, $3)`,
			"u1", "2025-03-10", 30); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Tx err = %v", err)
	}
	n, err := store.Scalar[int64](ctx, st.PG, `SELECT count(*) FROM daily_buckets`)
	if err != nil || n != 0 {
		t.Fatalf("after rollback count = %d err = %v", n, err)
	}

	// commit
	if err := st.PG.Tx(ctx, func(q store.RowQuerier) error {
		return store.ExecOne(ctx, q,
			`INSERT INTO daily_buckets (user_id, date, doom_seconds) VALUES ($1, $2, $3)`,
			"u1", "2025-03-10", 30)
	}); err != nil {
		t.Fatalf("Tx commit: %v", err)
	}

	type pair struct {
		User string
		Doom int64
	}
	scan := func(r store.Row) (pair, error) {
		var p pair
		err := r.Scan(&p.User, &p.Doom)
		return p, err
	}
	got, err := store.One(ctx, st.PG, scan, `SELECT user_id, doom_seconds FROM daily_buckets`)
	if err != nil || got.User != "u1" || got.Doom != 30 {
		t.Fatalf("One = %+v err = %v", got, err)
	}
	if _, err := store.One(ctx, st.PG, scan, `SELECT user_id, doom_seconds FROM daily_buckets WHERE false`); !errors.Is(err, store.ErrNoRows) {
		t.Fatalf("One on empty = %v", err)
	}
}
