package repo

import (
	"context"
	"time"

	"doomscroll/internal/platform/store"
)

// CH reads raw event aggregates from the ClickHouse mirror. Every numeric
// column is cast so scans land in int64 and float64.
type CH struct {
	C     store.Clickhouse
	Table string
}

// NewCH returns an Events repo over the mirror table
func NewCH(c store.Clickhouse) *CH { return &CH{C: c, Table: "usage_events"} }

func (r *CH) query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return r.C.Query(ctx, sql, args...)
}

func one[T any](rows store.Rows, err error, scan func(store.Row) (T, error)) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	items, err := store.Collect(rows, scan)
	if err != nil || len(items) == 0 {
		return zero, err
	}
	return items[0], nil
}

// Totals implements Events
func (r *CH) Totals(ctx context.Context, since time.Time) (TotalsRow, error) {
	rows, err := r.query(ctx, `
		SELECT toInt64(uniqExact(user_id)), toInt64(count()), toInt64(ifNull(sum(duration_seconds), 0))
		FROM `+r.Table+`
		WHERE ts >= ?`, since.UTC())
	return one(rows, err, func(row store.Row) (TotalsRow, error) {
		var t TotalsRow
		err := row.Scan(&t.Users, &t.Events, &t.DurationSeconds)
		return t, err
	})
}

// ByType implements Events
func (r *CH) ByType(ctx context.Context, since time.Time) ([]TypeRow, error) {
	rows, err := r.query(ctx, `
		SELECT event_type, toInt64(count()) AS n
		FROM `+r.Table+`
		WHERE ts >= ?
		GROUP BY event_type
		ORDER BY n DESC, event_type ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	return store.Collect(rows, func(row store.Row) (TypeRow, error) {
		var t TypeRow
		err := row.Scan(&t.EventType, &t.Events)
		return t, err
	})
}

// TopDomains implements Events
func (r *CH) TopDomains(ctx context.Context, since time.Time, limit int) ([]DomainRow, error) {
	rows, err := r.query(ctx, `
		SELECT domain, toInt64(count()) AS visits, toFloat64(ifNull(avg(duration_seconds), 0))
		FROM `+r.Table+`
		WHERE ts >= ?
		GROUP BY domain
		ORDER BY visits DESC, domain ASC
		LIMIT ?`, since.UTC(), limit)
	if err != nil {
		return nil, err
	}
	return store.Collect(rows, func(row store.Row) (DomainRow, error) {
		var d DomainRow
		err := row.Scan(&d.Domain, &d.Visits, &d.AvgDurationSeconds)
		return d, err
	})
}

// DailyTrends implements Events
func (r *CH) DailyTrends(ctx context.Context, since time.Time) ([]TrendRow, error) {
	rows, err := r.query(ctx, `
		SELECT toString(toDate(ts, 'UTC')) AS day, toInt64(uniqExact(user_id)), toInt64(count())
		FROM `+r.Table+`
		WHERE ts >= ?
		GROUP BY day
		ORDER BY day DESC`, since.UTC())
	if err != nil {
		return nil, err
	}
	return store.Collect(rows, func(row store.Row) (TrendRow, error) {
		var t TrendRow
		err := row.Scan(&t.Date, &t.Users, &t.Events)
		return t, err
	})
}

// UserTotals implements Events
func (r *CH) UserTotals(ctx context.Context, userID string, since time.Time) (UserRow, error) {
	rows, err := r.query(ctx, `
		SELECT toInt64(count()), toInt64(ifNull(sum(duration_seconds), 0)), toInt64(countIf(event_type = 'focus_alert'))
		FROM `+r.Table+`
		WHERE user_id = ? AND ts >= ?`, userID, since.UTC())
	return one(rows, err, func(row store.Row) (UserRow, error) {
		var u UserRow
		err := row.Scan(&u.Events, &u.DurationSeconds, &u.FocusAlerts)
		return u, err
	})
}
