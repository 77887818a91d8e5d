//go:build integration_pg

package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/platform/store"
	"doomscroll/internal/platform/store/pgtest"
	"doomscroll/internal/services/rollup/domain"
	"doomscroll/internal/services/rollup/guardrails"
	"doomscroll/internal/services/rollup/repo"

	"github.com/stretchr/testify/require"
)

func TestBucketsUpsertOverwrites(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()
	b := repo.Buckets{DB: st.PG, Binder: repo.NewPG()}

	require.NoError(t, b.UpsertAll(ctx, []domain.DailyBucket{
		{UserID: "u", Date: "2026-03-10", DoomSeconds: 30, NeutralSeconds: 30, PositiveSeconds: 30},
		{UserID: "u", Date: "2026-03-09", NeutralSeconds: 60},
	}))
	require.NoError(t, b.Upsert(ctx, domain.DailyBucket{UserID: "u", Date: "2026-03-10", DoomSeconds: 60, NeutralSeconds: 30, PositiveSeconds: 30}))

	got, err := repo.NewPG().Bind(st.PG).Get(ctx, domain.BucketKey{UserID: "u", Date: "2026-03-10"})
	require.NoError(t, err)
	require.Equal(t, int64(60), got.DoomSeconds)
	require.Equal(t, int64(120), got.Total())

	_, err = repo.NewPG().Bind(st.PG).Get(ctx, domain.BucketKey{UserID: "u", Date: "2026-01-01"})
	require.ErrorIs(t, err, store.ErrNoRows)
}

func TestBucketsUpsertAllIsAtomic(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()
	b := repo.Buckets{DB: st.PG, Binder: repo.NewPG()}

	// the second row violates the non-negative check, so the first must not land
	err := b.UpsertAll(ctx, []domain.DailyBucket{
		{UserID: "a", Date: "2026-03-10", DoomSeconds: 30},
		{UserID: "b", Date: "2026-03-10", DoomSeconds: -1},
	})
	require.Error(t, err)

	n, err := store.Scalar[int64](ctx, st.PG, `SELECT count(*) FROM daily_buckets`)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestBucketsStatementTimeoutHook(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()
	b := repo.Buckets{DB: repokit.WithBeginHooks(st.PG, repokit.StatementTimeout(2*time.Second)), Binder: repo.NewPG()}
	require.NoError(t, b.UpsertAll(ctx, []domain.DailyBucket{{UserID: "u", Date: "2026-03-10", PositiveSeconds: 30}}))
}

func TestLease(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()
	a := guardrails.MakeLease(st.PG, "daily_buckets", "owner-a", time.Minute)
	b := guardrails.MakeLease(st.PG, "daily_buckets", "owner-b", time.Minute)

	var inner error
	err := a(ctx, func(ctx context.Context) error {
		inner = b(ctx, func(context.Context) error { return errors.New("must not run") })
		return nil
	})
	require.NoError(t, err)
	require.ErrorIs(t, inner, guardrails.ErrLeaseHeld)

	// released on return, so b can take it now
	ran := false
	require.NoError(t, b(ctx, func(context.Context) error { ran = true; return nil }))
	require.True(t, ran)
}
