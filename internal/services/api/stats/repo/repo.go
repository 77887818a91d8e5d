// Package repo provides read access for stats: buckets from Postgres and raw
// event aggregates from Postgres or ClickHouse
package repo

import (
	"context"
	"time"

	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/platform/store"
)

// Buckets reads materialized daily buckets
type Buckets interface {
	SumSentiment(ctx context.Context, sinceDate, userID string) (SentimentRow, error)
	DailyByUser(ctx context.Context, userID, sinceDate string) ([]DayRow, error)
}

// Events reads aggregates over the raw event log
type Events interface {
	Totals(ctx context.Context, since time.Time) (TotalsRow, error)
	ByType(ctx context.Context, since time.Time) ([]TypeRow, error)
	TopDomains(ctx context.Context, since time.Time, limit int) ([]DomainRow, error)
	DailyTrends(ctx context.Context, since time.Time) ([]TrendRow, error)
	UserTotals(ctx context.Context, userID string, since time.Time) (UserRow, error)
}

// SentimentRow is the summed bucket split
type SentimentRow struct{ Doom, Neutral, Positive int64 }

// DayRow is one bucket
type DayRow struct {
	Date                    string
	Doom, Neutral, Positive int64
}

// TotalsRow is the overview headline
type TotalsRow struct{ Users, Events, DurationSeconds int64 }

// TypeRow counts events of one type
type TypeRow struct {
	EventType string
	Events    int64
}

// DomainRow is visits and mean duration for one domain
type DomainRow struct {
	Domain             string
	Visits             int64
	AvgDurationSeconds float64
}

// TrendRow is one UTC day
type TrendRow struct {
	Date          string
	Users, Events int64
}

// UserRow is one user's totals
type UserRow struct{ Events, DurationSeconds, FocusAlerts int64 }

type (
	// PG binds both repos to a Queryer
	PG struct{}
	// queries implements Buckets and Events on Postgres
	queries struct{ q repokit.Queryer }
)

// NewPGBuckets returns a binder for bucket reads
func NewPGBuckets() repokit.Binder[Buckets] {
	return repokit.BindFunc[Buckets](func(q repokit.Queryer) Buckets { return &queries{q: q} })
}

// NewPGEvents returns a binder for raw event reads
func NewPGEvents() repokit.Binder[Events] {
	return repokit.BindFunc[Events](func(q repokit.Queryer) Events { return &queries{q: q} })
}

func (r *queries) SumSentiment(ctx context.Context, sinceDate, userID string) (SentimentRow, error) {
	return store.One(ctx, r.q, func(row store.Row) (SentimentRow, error) {
		var s SentimentRow
		err := row.Scan(&s.Doom, &s.Neutral, &s.Positive)
		return s, err
	}, `
select coalesce(sum(doom_seconds), 0)::bigint,
       coalesce(sum(neutral_seconds), 0)::bigint,
       coalesce(sum(positive_seconds), 0)::bigint
from daily_buckets
where date >= $1::date
and ($2 = '' or user_id = $2)
`, sinceDate, userID)
}

func (r *queries) DailyByUser(ctx context.Context, userID, sinceDate string) ([]DayRow, error) {
	return store.Many(ctx, r.q, func(row store.Row) (DayRow, error) {
		var d DayRow
		err := row.Scan(&d.Date, &d.Doom, &d.Neutral, &d.Positive)
		return d, err
	}, `
select date::text, doom_seconds, neutral_seconds, positive_seconds
from daily_buckets
where user_id = $1 and date >= $2::date
order by date asc
`, userID, sinceDate)
}

func (r *queries) Totals(ctx context.Context, since time.Time) (TotalsRow, error) {
	return store.One(ctx, r.q, func(row store.Row) (TotalsRow, error) {
		var t TotalsRow
		err := row.Scan(&t.Users, &t.Events, &t.DurationSeconds)
		return t, err
	}, `
select count(distinct user_id), count(1), coalesce(sum(duration_seconds), 0)::bigint
from usage_events
where ts >= $1
`, since.UTC())
}

func (r *queries) ByType(ctx context.Context, since time.Time) ([]TypeRow, error) {
	return store.Many(ctx, r.q, func(row store.Row) (TypeRow, error) {
		var t TypeRow
		err := row.Scan(&t.EventType, &t.Events)
		return t, err
	}, `
select event_type, count(1) as n
from usage_events
where ts >= $1
group by event_type
order by n desc, event_type asc
`, since.UTC())
}

func (r *queries) TopDomains(ctx context.Context, since time.Time, limit int) ([]DomainRow, error) {
	return store.Many(ctx, r.q, func(row store.Row) (DomainRow, error) {
		var d DomainRow
		err := row.Scan(&d.Domain, &d.Visits, &d.AvgDurationSeconds)
		return d, err
	}, `
select domain, count(1) as visits, coalesce(avg(duration_seconds), 0)::float8
from usage_events
where ts >= $1
group by domain
order by visits desc, domain asc
limit $2
`, since.UTC(), limit)
}

func (r *queries) DailyTrends(ctx context.Context, since time.Time) ([]TrendRow, error) {
	return store.Many(ctx, r.q, func(row store.Row) (TrendRow, error) {
		var t TrendRow
		err := row.Scan(&t.Date, &t.Users, &t.Events)
		return t, err
	}, `
select (ts at time zone 'UTC')::date::text as day, count(distinct user_id), count(1)
from usage_events
where ts >= $1
group by day
order by day desc
`, since.UTC())
}

func (r *queries) UserTotals(ctx context.Context, userID string, since time.Time) (UserRow, error) {
	return store.One(ctx, r.q, func(row store.Row) (UserRow, error) {
		var u UserRow
		err := row.Scan(&u.Events, &u.DurationSeconds, &u.FocusAlerts)
		return u, err
	}, `
select count(1),
       coalesce(sum(duration_seconds), 0)::bigint,
       count(1) filter (where event_type = 'focus_alert')
from usage_events
where user_id = $1 and ts >= $2
`, userID, since.UTC())
}
