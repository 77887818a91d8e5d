// Package repo stores daily buckets in Postgres, or in memory for tests
package repo

import (
	"context"

	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/platform/store"
	"doomscroll/internal/services/rollup/domain"
)

// Storage is the per-queryer bucket repo
type Storage interface {
	Upsert(ctx context.Context, b domain.DailyBucket) error
	Get(ctx context.Context, k domain.BucketKey) (domain.DailyBucket, error)
}

type binder struct{}

// NewPG constructs a Postgres binder
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

// all three counters move in one statement
const upsertBucket = `
	INSERT INTO daily_buckets (user_id, date, doom_seconds, neutral_seconds, positive_seconds, updated_at)
	VALUES ($1, $2::date, $3, $4, $5, now())
	ON CONFLICT (user_id, date) DO UPDATE SET
		doom_seconds     = EXCLUDED.doom_seconds,
		neutral_seconds  = EXCLUDED.neutral_seconds,
		positive_seconds = EXCLUDED.positive_seconds,
		updated_at       = EXCLUDED.updated_at`

func (s *pg) Upsert(ctx context.Context, b domain.DailyBucket) error {
	_, err := s.q.Exec(ctx, upsertBucket, b.UserID, b.Date, b.DoomSeconds, b.NeutralSeconds, b.PositiveSeconds)
	return err
}

func (s *pg) Get(ctx context.Context, k domain.BucketKey) (domain.DailyBucket, error) {
	return store.One(ctx, s.q, ScanBucket, `
		SELECT user_id, date::text, doom_seconds, neutral_seconds, positive_seconds
		FROM daily_buckets
		WHERE user_id = $1 AND date = $2::date`, k.UserID, k.Date)
}

// ScanBucket reads user_id, date::text and the three counters
func ScanBucket(r store.Row) (domain.DailyBucket, error) {
	var b domain.DailyBucket
	err := r.Scan(&b.UserID, &b.Date, &b.DoomSeconds, &b.NeutralSeconds, &b.PositiveSeconds)
	return b, err
}

// Buckets is the domain.BucketStore over a binder; UpsertAll runs in one transaction
type Buckets struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[Storage]
}

// Upsert overwrites a single row outside any transaction
func (b Buckets) Upsert(ctx context.Context, x domain.DailyBucket) error {
	return b.Binder.Bind(b.DB).Upsert(ctx, x)
}

// UpsertAll overwrites every row in bs or none of them
func (b Buckets) UpsertAll(ctx context.Context, bs []domain.DailyBucket) error {
	if len(bs) == 0 {
		return nil
	}
	return b.DB.Tx(ctx, func(q repokit.Queryer) error {
		s := b.Binder.Bind(q)
		for _, x := range bs {
			if err := s.Upsert(ctx, x); err != nil {
				return err
			}
		}
		return nil
	})
}
