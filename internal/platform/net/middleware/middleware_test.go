package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"doomscroll/internal/platform/logger"
	"doomscroll/internal/platform/metrics"
	phttp "doomscroll/internal/platform/net/http"
	"doomscroll/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func TestRecoverJSON(t *testing.T) {
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("body not json: %v", err)
	}
	if env.RequestID == "" || rec.Header().Get("X-Request-ID") != env.RequestID {
		t.Fatalf("request id not mirrored: %+v", env)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("panic value leaked to client")
	}
}

func TestAccessLogRecordsRoutePattern(t *testing.T) {
	reg := metrics.NewRegistry()
	hm := metrics.NewHTTP(reg)

	r := chi.NewRouter()
	r.Use(middleware.AccessLog(middleware.AccessLogOptions{Metrics: hm, Slow: time.Hour}))
	r.Get("/stats/users/{user_id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/stats/users/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))

	body := scrape(t, reg)
	want := `doomscroll_http_requests_total{method="GET",route="/stats/users/{user_id}",status="418"} 3`
	if !strings.Contains(body, want) {
		t.Fatalf("missing %q in\n%s", want, body)
	}
	if !strings.Contains(body, `route="unmatched"`) {
		t.Fatalf("404 should be labelled unmatched")
	}
}

func TestContextCopiesRequestID(t *testing.T) {
	var seen string
	h := middleware.RequestID()(middleware.Context(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	})))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "rid-7")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "rid-7" {
		t.Fatalf("seen = %q", seen)
	}
}

func TestCORSDefaults(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/events", nil)
	req.Header.Set("Origin", "chrome-extension://abc")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("preflight not answered: %v", rec.Header())
	}
}

func TestCompress(t *testing.T) {
	h := middleware.Compress(5)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Repeat(`{"k":1}`, 1024))
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("not compressed: %v", rec.Header())
	}
}

func scrape(t *testing.T, g prometheus.Gatherer) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler(g).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}
