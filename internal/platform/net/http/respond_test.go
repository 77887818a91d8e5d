package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "doomscroll/internal/platform/errors"
	pnet "doomscroll/internal/platform/net"
	phttp "doomscroll/internal/platform/net/http"
)

func reqWithID(method, path, id string) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	return r.WithContext(pnet.WithRequest(r.Context(), id, ""))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, rec.Body.String())
	}
	return env
}

func TestHandle_Success(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Created(map[string]int{"processed_count": 2})
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, reqWithID("POST", "/events", "rid-1"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec)
	if env.StatusCode != 201 || env.RequestID != "rid-1" || env.Error != "" {
		t.Fatalf("envelope = %+v", env)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["processed_count"] != float64(2) {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestHandle_ErrorMapsStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{perr.NotFoundf("no bucket"), http.StatusNotFound},
		{perr.WithField(perr.New(perr.ErrorCodeValidation, "days must be at least 1"), "days"), http.StatusBadRequest},
		{perr.Unavailablef("pg down"), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		phttp.RespondError(rec, reqWithID("GET", "/x", "rid-e"), tc.err)
		if rec.Code != tc.status {
			t.Fatalf("%v: status = %d want %d", tc.err, rec.Code, tc.status)
		}
		env := decode(t, rec)
		if env.Error == "" || env.Data != nil || env.RequestID != "rid-e" {
			t.Fatalf("envelope = %+v", env)
		}
	}
}

func TestHandle_NoContentAndHeaders(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		r := phttp.NoContent()
		r.Header = http.Header{"X-Rollup": []string{"skipped"}}
		return r
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("DELETE", "/", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 || rec.Header().Get("X-Rollup") != "skipped" {
		t.Fatalf("code=%d body=%q", rec.Code, rec.Body.String())
	}
}
