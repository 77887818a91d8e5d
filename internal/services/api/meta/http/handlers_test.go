package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "doomscroll/internal/platform/net/http"
	ptime "doomscroll/internal/platform/time"
	rollupdom "doomscroll/internal/services/rollup/domain"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type rollupStub struct{ st rollupdom.Status }

func (s rollupStub) Status() rollupdom.Status { return s.st }

func serve(t *testing.T, d Deps, path string) (int, map[string]any) {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/meta", func(sub phttp.Router) { Register(sub, d) })

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v body=%s", path, err, rec.Body.String())
	}
	return rec.Code, env.Data
}

func TestHealthAndService(t *testing.T) {
	start := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	clock := ptime.NewFake(start.Add(5 * time.Minute))
	d := Deps{ServiceName: "doomscroll-api", StartedAt: start, Clock: clock, ClassifierVersion: "heuristic-1.0"}

	code, data := serve(t, d, "/meta/health")
	if code != 200 || data["ok"] != true || data["now"] != "2026-03-10T13:05:00Z" {
		t.Fatalf("health: code=%d data=%v", code, data)
	}

	code, data = serve(t, d, "/meta/service")
	if code != 200 || data["uptime"] != float64(300) || data["classifier_version"] != "heuristic-1.0" {
		t.Fatalf("service: code=%d data=%v", code, data)
	}

	code, data = serve(t, d, "/meta/version")
	if code != 200 || data["service"] != "doomscroll-api" {
		t.Fatalf("version: code=%d data=%v", code, data)
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name string
		pg   any
		ch   any
		want string
	}{
		{"all up", pinger{}, pinger{}, "ok"},
		{"no clickhouse", pinger{}, nil, "ok"},
		{"clickhouse down", pinger{}, pinger{err: errors.New("refused")}, "degraded"},
		{"pg down", pinger{err: errors.New("refused")}, pinger{}, "fail"},
		{"pg missing", nil, nil, "degraded"},
		{"pg not pingable", struct{}{}, nil, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, data := serve(t, Deps{PG: tc.pg, CH: tc.ch}, "/meta/ready")
			if code != 200 || data["status"] != tc.want {
				t.Fatalf("code=%d data=%v", code, data)
			}
		})
	}
}

func TestRollupStatus(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/meta", func(sub phttp.Router) { Register(sub, Deps{}) })
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/rollup", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("no engine should 404, got %d", rec.Code)
	}

	st := rollupdom.Status{Runs: 3, LastRun: &rollupdom.RunReport{BucketsWritten: 4}}
	code, data := serve(t, Deps{Rollup: rollupStub{st: st}}, "/meta/rollup")
	if code != 200 {
		t.Fatalf("code=%d", code)
	}
	raw, _ := json.Marshal(data)
	var got rollupdom.Status
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if got.Runs != 3 || got.LastRun == nil || got.LastRun.BucketsWritten != 4 {
		t.Fatalf("status = %+v", got)
	}
}
