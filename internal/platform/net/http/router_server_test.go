package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"doomscroll/internal/platform/config"
	phttp "doomscroll/internal/platform/net/http"
)

func TestNewServer_AddrFromConfig(t *testing.T) {
	t.Setenv("TEST_API_PORT", "4123")
	srv := phttp.NewServer(config.New().Prefix("TEST_API_"))
	if srv.Addr() != ":4123" {
		t.Fatalf("addr = %q", srv.Addr())
	}
	if phttp.NewServer(config.New().Prefix("UNSET_API_")).Addr() != ":4000" {
		t.Fatalf("default addr not applied")
	}
}

func TestRouter_RouteParamsAndPattern(t *testing.T) {
	srv := phttp.NewServer(config.New())
	var pattern string
	srv.Router().Route("/api/v1", func(api phttp.Router) {
		api.Route("/stats", func(r phttp.Router) {
			r.Get("/users/{user_id}", func(w http.ResponseWriter, r *http.Request) {
				pattern = phttp.RoutePattern(r)
				_, _ = io.WriteString(w, phttp.URLParam(r, "user_id"))
			})
		})
	})

	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/stats/users/abc123", nil))
	if rec.Body.String() != "abc123" {
		t.Fatalf("param = %q", rec.Body.String())
	}
	if pattern != "/api/v1/stats/users/{user_id}" {
		t.Fatalf("pattern = %q", pattern)
	}
}

func TestRouter_WithScopesMiddleware(t *testing.T) {
	srv := phttp.NewServer(config.New())
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Tagged", "1")
			next.ServeHTTP(w, r)
		})
	}
	r := srv.Router()
	r.With(tag).Get("/a", func(http.ResponseWriter, *http.Request) {})
	r.Get("/b", func(http.ResponseWriter, *http.Request) {})

	for path, want := range map[string]string{"/a": "1", "/b": ""} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if got := rec.Header().Get("X-Tagged"); got != want {
			t.Fatalf("%s tagged = %q", path, got)
		}
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("RUN_API_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New().Prefix("RUN_API_"))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestMountProfiler(t *testing.T) {
	srv := phttp.NewServer(config.New())
	phttp.MountProfiler(srv.Router(), "/debug", true)
	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "goroutine") {
		t.Fatalf("pprof index code=%d", rec.Code)
	}

	off := phttp.NewServer(config.New())
	phttp.MountProfiler(off.Router(), "/debug", false)
	rec = httptest.NewRecorder()
	off.Router().Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler code=%d", rec.Code)
	}
}
