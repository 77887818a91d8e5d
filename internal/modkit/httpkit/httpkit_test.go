package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"doomscroll/internal/platform/config"
	perr "doomscroll/internal/platform/errors"
	phttp "doomscroll/internal/platform/net/http"
)

func TestMountAPIV1WithCommonStack(t *testing.T) {
	srv := phttp.NewServer(config.New())
	root := srv.Router()
	root.Use(CommonStack(StackOptions{})...)

	MountAPIV1(root, nil, func(api Router) {
		Get(api, "/boom", func(*http.Request) (any, error) { panic("kaboom") })
		Get(api, "/missing", func(*http.Request) (any, error) { return nil, perr.NotFoundf("nope") })
		api.Get("/users/{user_id}", Handle(func(r *http.Request) Response {
			return OK(Param(r, "user_id"))
		}))
	})

	cases := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/api/v1/users/u1/", http.StatusOK},
		{"/api/v1/missing", http.StatusNotFound},
		{"/api/v1/boom", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest("GET", tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s: status %d want %d", tc.path, rec.Code, tc.status)
		}
		if tc.path != "/health" && rec.Header().Get("X-Request-ID") == "" && rec.Code == 500 {
			t.Fatalf("%s: panic response should carry a request id", tc.path)
		}
	}
}

func TestMountAPIVersionTrimmed(t *testing.T) {
	root := phttp.NewServer(config.New()).Router()
	MountAPI(root, "/v2/", nil, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	rec := httptest.NewRecorder()
	root.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v2/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}
