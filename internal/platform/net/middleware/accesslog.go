// Package middleware holds the request-scoped middlewares: access log,
// route metrics, panic recovery and thin chi/cors wrappers
package middleware

import (
	"net/http"
	"time"

	"doomscroll/internal/platform/logger"
	"doomscroll/internal/platform/metrics"
	pnet "doomscroll/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests at warn once they take this long; 0 disables
	Slow time.Duration
	// Metrics receives one observation per request when set
	Metrics *metrics.HTTP
}

// Context copies chi's request id into the logger context so logger.C picks it up
func Context(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := pnet.WithRequest(r.Context(), chimw.GetReqID(r.Context()), "")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccessLog logs one line per request and records route metrics.
// The route label is chi's pattern, not the raw path, to bound cardinality.
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				route = rc.RoutePattern()
			}
			opt.Metrics.Observe(r.Method, route, status, elapsed)

			log := logger.C(r.Context())
			evt := log.Info()
			if status >= http.StatusInternalServerError {
				evt = log.Error()
			} else if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Int("status", status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("bytes", ww.BytesWritten()).
				Msg("request done")
		})
	}
}
