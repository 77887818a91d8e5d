package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "doomscroll/internal/platform/errors"
	phttp "doomscroll/internal/platform/net/http"
	"doomscroll/internal/services/events/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct{ got domain.IngestBatch }

func (f *fakeSvc) Ingest(_ context.Context, in domain.IngestBatch) (domain.IngestResult, error) {
	f.got = in
	return domain.IngestResult{ProcessedCount: len(in.Events)}, nil
}

func serve(t *testing.T, body string) (*httptest.ResponseRecorder, *fakeSvc) {
	t.Helper()
	svc := &fakeSvc{}
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/events", func(sub phttp.Router) { Register(sub, svc) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.Mux().ServeHTTP(rec, req)
	return rec, svc
}

func TestIngestHandler(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"ok", `{"events":[{"user_id":"u","event_type":"content_analysis","domain":"d","visible_text":"hi"}]}`, 200, ""},
		{"missing user", `{"events":[{"event_type":"content_analysis","domain":"d"}]}`, 400, "user_id"},
		{"empty batch", `{"events":[]}`, 400, "events"},
		{"bad id", `{"events":[{"id":"nope","user_id":"u","event_type":"x","domain":"d"}]}`, 400, "id"},
		{"unknown field", `{"events":[],"extra":1}`, 400, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, svc := serve(t, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			var env phttp.Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tc.status == 200 {
				if len(svc.got.Events) != 1 || svc.got.Events[0].VisibleText != "hi" {
					t.Fatalf("service got %+v", svc.got)
				}
				if m := env.Data.(map[string]any); m["processed_count"] != float64(1) {
					t.Fatalf("data = %#v", env.Data)
				}
				return
			}
			if env.Code != perr.ErrorCodeValidation && env.Code != perr.ErrorCodeJSON {
				t.Fatalf("code = %v", env.Code)
			}
			if tc.field != "" && env.Field != tc.field {
				t.Fatalf("field = %q, want %q", env.Field, tc.field)
			}
		})
	}
}
