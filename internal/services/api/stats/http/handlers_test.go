package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "doomscroll/internal/platform/net/http"
	"doomscroll/internal/services/api/stats/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	sentiment domain.SentimentInput
	overview  domain.OverviewInput
	user      string
	days      int
}

func (f *fakeSvc) SumSentimentSeconds(_ context.Context, in domain.SentimentInput) (domain.SentimentTotals, error) {
	f.sentiment = in
	return domain.SentimentTotals{Days: in.Days, DoomSeconds: 30}, nil
}

func (f *fakeSvc) Overview(_ context.Context, in domain.OverviewInput) (domain.Overview, error) {
	f.overview = in
	return domain.Overview{PeriodDays: in.Days}, nil
}

func (f *fakeSvc) UserStats(_ context.Context, user string, in domain.UserStatsInput) (domain.UserStats, error) {
	f.user, f.days = user, in.Days
	return domain.UserStats{UserID: user}, nil
}

func (f *fakeSvc) DailySentiment(_ context.Context, user string, in domain.UserStatsInput) ([]domain.DailySentimentRow, error) {
	f.user, f.days = user, in.Days
	return []domain.DailySentimentRow{{Date: "2026-03-10"}}, nil
}

func TestRoutes(t *testing.T) {
	svc := &fakeSvc{}
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/stats", func(sub phttp.Router) { Register(sub, svc) })

	get := func(path string) (int, phttp.Envelope) {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		var env phttp.Envelope
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
		return rec.Code, env
	}

	if code, _ := get("/stats/sentiment"); code != 200 || svc.sentiment.Days != 7 {
		t.Fatalf("default days: code=%d in=%+v", code, svc.sentiment)
	}
	if code, _ := get("/stats/sentiment?days=30&user_id=abc"); code != 200 || svc.sentiment.Days != 30 || svc.sentiment.UserID != "abc" {
		t.Fatalf("explicit params: code=%d in=%+v", code, svc.sentiment)
	}
	if code, env := get("/stats/sentiment?days=0"); code != 400 || env.Field != "days" {
		t.Fatalf("days=0: code=%d env=%+v", code, env)
	}
	if code, env := get("/stats/sentiment?days=abc"); code != 422 || env.Field != "days" {
		t.Fatalf("days=abc: code=%d env=%+v", code, env)
	}
	if code, _ := get("/stats/overview?limit=5"); code != 200 || svc.overview.Limit != 5 || svc.overview.Days != 7 {
		t.Fatalf("overview: code=%d in=%+v", code, svc.overview)
	}
	if code, _ := get("/stats/users/u-1?days=3"); code != 200 || svc.user != "u-1" || svc.days != 3 {
		t.Fatalf("user stats: code=%d user=%q days=%d", code, svc.user, svc.days)
	}
	if code, env := get("/stats/users/u-2/daily"); code != 200 || svc.user != "u-2" || svc.days != 7 {
		t.Fatalf("daily: code=%d user=%q env=%+v", code, svc.user, env)
	}
}
