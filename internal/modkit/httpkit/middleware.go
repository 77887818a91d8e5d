package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"doomscroll/internal/platform/metrics"
	"doomscroll/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Metrics     *metrics.HTTP
	CORS        middleware.CORSOptions
	SlowRequest time.Duration
	Timeout     time.Duration
}

// CommonStack is the root middleware chain, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 500 * time.Millisecond
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Context,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest, Metrics: o.Metrics}),
		middleware.RecoverJSON,
		middleware.CORS(o.CORS),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(o.Timeout),
	}
}
