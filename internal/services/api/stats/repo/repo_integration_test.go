//go:build integration_pg

package repo_test

import (
	"context"
	"testing"
	"time"

	"doomscroll/internal/platform/store/pgtest"
	"doomscroll/internal/services/api/stats/repo"

	"github.com/stretchr/testify/require"
)

func TestPGReads(t *testing.T) {
	st := pgtest.Open(t)
	ctx := context.Background()

	_, err := st.PG.Exec(ctx, `
		INSERT INTO daily_buckets (user_id, date, doom_seconds, neutral_seconds, positive_seconds) VALUES
			('a', '2026-03-08', 30, 0, 0),
			('a', '2026-03-10', 60, 30, 30),
			('b', '2026-03-10', 0, 0, 90);
		INSERT INTO usage_events (id, user_id, event_type, ts, domain, duration_seconds) VALUES
			(gen_random_uuid(), 'a', 'content_analysis', '2026-03-10T10:00:00Z', 'x.com', 60),
			(gen_random_uuid(), 'a', 'focus_alert',      '2026-03-10T11:00:00Z', 'x.com', NULL),
			(gen_random_uuid(), 'b', 'page_view',        '2026-03-09T09:00:00Z', 'y.com', 120),
			(gen_random_uuid(), 'b', 'page_view',        '2026-01-01T09:00:00Z', 'old.com', 999);`)
	require.NoError(t, err)

	b := repo.NewPGBuckets().Bind(st.PG)
	sum, err := b.SumSentiment(ctx, "2026-03-09", "")
	require.NoError(t, err)
	require.Equal(t, repo.SentimentRow{Doom: 60, Neutral: 30, Positive: 120}, sum)

	sum, err = b.SumSentiment(ctx, "2026-03-01", "a")
	require.NoError(t, err)
	require.Equal(t, repo.SentimentRow{Doom: 90, Neutral: 30, Positive: 30}, sum)

	days, err := b.DailyByUser(ctx, "a", "2026-03-01")
	require.NoError(t, err)
	require.Equal(t, []repo.DayRow{{Date: "2026-03-08", Doom: 30}, {Date: "2026-03-10", Doom: 60, Neutral: 30, Positive: 30}}, days)

	e := repo.NewPGEvents().Bind(st.PG)
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tot, err := e.Totals(ctx, since)
	require.NoError(t, err)
	require.Equal(t, repo.TotalsRow{Users: 2, Events: 3, DurationSeconds: 180}, tot)

	types, err := e.ByType(ctx, since)
	require.NoError(t, err)
	require.Equal(t, []repo.TypeRow{{EventType: "content_analysis", Events: 1}, {EventType: "focus_alert", Events: 1}, {EventType: "page_view", Events: 1}}, types)

	doms, err := e.TopDomains(ctx, since, 1)
	require.NoError(t, err)
	require.Equal(t, []repo.DomainRow{{Domain: "x.com", Visits: 2, AvgDurationSeconds: 60}}, doms)

	trends, err := e.DailyTrends(ctx, since)
	require.NoError(t, err)
	require.Equal(t, []repo.TrendRow{{Date: "2026-03-10", Users: 1, Events: 2}, {Date: "2026-03-09", Users: 1, Events: 1}}, trends)

	u, err := e.UserTotals(ctx, "a", since)
	require.NoError(t, err)
	require.Equal(t, repo.UserRow{Events: 2, DurationSeconds: 60, FocusAlerts: 1}, u)
}
