// Package service contains stats workflows
package service

import (
	"context"
	"math"
	"strings"
	"time"

	"doomscroll/internal/modkit/repokit"
	perr "doomscroll/internal/platform/errors"
	ptime "doomscroll/internal/platform/time"
	"doomscroll/internal/services/api/stats/domain"
	"doomscroll/internal/services/api/stats/repo"
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Buckets repo.Buckets
	Events  repo.Events

	// Source names the event backend in overview responses
	Source string
	Clock  ptime.Clock
	// Location cuts calendar dates; keep it equal to the rollup's
	Location *time.Location
}

// New constructs a stats service reading buckets through db
func New(db repokit.TxRunner, buckets repokit.Binder[repo.Buckets], events repo.Events, clock ptime.Clock, loc *time.Location) *Svc {
	if db == nil {
		panic("stats.Service requires a non nil TxRunner")
	}
	if buckets == nil || events == nil {
		panic("stats.Service requires bucket and event repos")
	}
	if clock == nil {
		clock = ptime.System{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Svc{Buckets: buckets.Bind(db), Events: events, Source: "postgres", Clock: clock, Location: loc}
}

// sinceDate is the first calendar date of a days-long window ending today
func (s *Svc) sinceDate(days int) string {
	today := ptime.Midnight(s.Clock.Now(), s.Location)
	return ptime.DateKey(today.AddDate(0, 0, -(days-1)), s.Location)
}

func checkDays(days int) error {
	if days < 1 {
		return perr.WithField(perr.InvalidArgf("days must be at least 1"), "days")
	}
	return nil
}

// SumSentimentSeconds totals the bucket split over the last days calendar days
func (s *Svc) SumSentimentSeconds(ctx context.Context, in domain.SentimentInput) (domain.SentimentTotals, error) {
	if err := checkDays(in.Days); err != nil {
		return domain.SentimentTotals{}, err
	}
	since := s.sinceDate(in.Days)
	row, err := s.Buckets.SumSentiment(ctx, since, strings.TrimSpace(in.UserID))
	if err != nil {
		return domain.SentimentTotals{}, perr.FromPostgres(err, "sum sentiment seconds")
	}
	return domain.SentimentTotals{
		Days:            in.Days,
		Since:           since,
		UserID:          in.UserID,
		DoomSeconds:     row.Doom,
		NeutralSeconds:  row.Neutral,
		PositiveSeconds: row.Positive,
		TotalSeconds:    row.Doom + row.Neutral + row.Positive,
	}, nil
}

// DailySentiment lists one user's buckets, oldest first
func (s *Svc) DailySentiment(ctx context.Context, userID string, in domain.UserStatsInput) ([]domain.DailySentimentRow, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	if err := checkDays(in.Days); err != nil {
		return nil, err
	}
	rows, err := s.Buckets.DailyByUser(ctx, userID, s.sinceDate(in.Days))
	if err != nil {
		return nil, perr.FromPostgres(err, "daily sentiment")
	}
	out := make([]domain.DailySentimentRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DailySentimentRow{
			Date:            r.Date,
			DoomSeconds:     r.Doom,
			NeutralSeconds:  r.Neutral,
			PositiveSeconds: r.Positive,
		})
	}
	return out, nil
}

// Overview summarizes raw events since now minus days
func (s *Svc) Overview(ctx context.Context, in domain.OverviewInput) (domain.Overview, error) {
	if err := checkDays(in.Days); err != nil {
		return domain.Overview{}, err
	}
	if in.Limit <= 0 {
		in.Limit = 10
	}
	since := s.Clock.Now().AddDate(0, 0, -in.Days)

	tot, err := s.Events.Totals(ctx, since)
	if err != nil {
		return domain.Overview{}, s.eventErr(err, "overview totals")
	}
	types, err := s.Events.ByType(ctx, since)
	if err != nil {
		return domain.Overview{}, s.eventErr(err, "overview by type")
	}
	domains, err := s.Events.TopDomains(ctx, since, in.Limit)
	if err != nil {
		return domain.Overview{}, s.eventErr(err, "overview top domains")
	}
	trends, err := s.Events.DailyTrends(ctx, since)
	if err != nil {
		return domain.Overview{}, s.eventErr(err, "overview daily trends")
	}

	out := domain.Overview{
		PeriodDays: in.Days,
		Source:     s.Source,
		OverallStats: domain.OverallStats{
			ActiveUsers:          tot.Users,
			TotalEvents:          tot.Events,
			TotalDurationSeconds: tot.DurationSeconds,
			TotalDurationMinutes: round1(float64(tot.DurationSeconds) / 60),
		},
		EventsByType: make(map[string]int64, len(types)),
		TopDomains:   make([]domain.DomainRow, 0, len(domains)),
		DailyTrends:  make([]domain.TrendRow, 0, len(trends)),
	}
	if tot.Events > 0 {
		out.OverallStats.AvgDurationMinutes = round1(float64(tot.DurationSeconds) / 60 / float64(tot.Events))
	}
	for _, t := range types {
		out.EventsByType[t.EventType] = t.Events
	}
	for _, d := range domains {
		out.TopDomains = append(out.TopDomains, domain.DomainRow{
			Domain:             d.Domain,
			Visits:             d.Visits,
			AvgDurationMinutes: round1(d.AvgDurationSeconds / 60),
		})
	}
	for _, t := range trends {
		out.DailyTrends = append(out.DailyTrends, domain.TrendRow{Date: t.Date, ActiveUsers: t.Users, TotalEvents: t.Events})
	}
	return out, nil
}

// UserStats summarizes one user's raw events since now minus days
func (s *Svc) UserStats(ctx context.Context, userID string, in domain.UserStatsInput) (domain.UserStats, error) {
	if err := checkUser(userID); err != nil {
		return domain.UserStats{}, err
	}
	if err := checkDays(in.Days); err != nil {
		return domain.UserStats{}, err
	}
	row, err := s.Events.UserTotals(ctx, userID, s.Clock.Now().AddDate(0, 0, -in.Days))
	if err != nil {
		return domain.UserStats{}, s.eventErr(err, "user stats")
	}
	minutes := float64(row.DurationSeconds) / 60
	return domain.UserStats{
		UserID:              userID,
		PeriodDays:          in.Days,
		TotalEvents:         row.Events,
		TotalTimeSeconds:    row.DurationSeconds,
		TotalTimeMinutes:    round1(minutes),
		FocusAlerts:         row.FocusAlerts,
		DailyAverageMinutes: round1(minutes / float64(in.Days)),
	}, nil
}

func checkUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return perr.WithField(perr.InvalidArgf("user_id is required"), "user_id")
	}
	return nil
}

func (s *Svc) eventErr(err error, msg string) error {
	if s.Source == "clickhouse" {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, msg)
	}
	return perr.FromPostgres(err, msg)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
