// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"

	"doomscroll/internal/modkit/httpkit"
	"doomscroll/internal/services/api/stats/domain"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// bucket totals, optionally for one user
	httpkit.GetQuery[domain.SentimentInput](r, "/sentiment", h.sentiment)

	// raw event analytics
	httpkit.GetQuery[domain.OverviewInput](r, "/overview", h.overview)

	httpkit.GetQuery[domain.UserStatsInput](r, "/users/{user_id}", h.userStats)
	httpkit.GetQuery[domain.UserStatsInput](r, "/users/{user_id}/daily", h.userDaily)
}

type handlers struct{ svc domain.ServicePort }

// sentiment godoc
// @Summary Sentiment seconds from daily buckets
// @Description Sums doom, neutral and positive seconds over the last N calendar days. Data may trail events by one rollup interval.
// @Tags Stats
// @Produce json
// @Param days query int false "Calendar days ending today" default(7)
// @Param user_id query string false "Restrict to one user"
// @Success 200 {object} domain.SentimentTotals "ok"
// @Router /stats/sentiment [get]
func (h *handlers) sentiment(r *stdhttp.Request, in domain.SentimentInput) (any, error) {
	return h.svc.SumSentimentSeconds(r.Context(), in)
}

// overview godoc
// @Summary Usage overview from raw events
// @Tags Stats
// @Produce json
// @Param days query int false "Window in days" default(7)
// @Param limit query int false "Top domains to return" default(10)
// @Success 200 {object} domain.Overview "ok"
// @Router /stats/overview [get]
func (h *handlers) overview(r *stdhttp.Request, in domain.OverviewInput) (any, error) {
	return h.svc.Overview(r.Context(), in)
}

// userStats godoc
// @Summary One user's usage totals
// @Tags Stats
// @Produce json
// @Param user_id path string true "Hashed user id"
// @Param days query int false "Window in days" default(7)
// @Success 200 {object} domain.UserStats "ok"
// @Router /stats/users/{user_id} [get]
func (h *handlers) userStats(r *stdhttp.Request, in domain.UserStatsInput) (any, error) {
	return h.svc.UserStats(r.Context(), httpkit.Param(r, "user_id"), in)
}

// userDaily godoc
// @Summary One user's daily sentiment buckets
// @Tags Stats
// @Produce json
// @Param user_id path string true "Hashed user id"
// @Param days query int false "Calendar days ending today" default(7)
// @Success 200 {array} domain.DailySentimentRow "ok"
// @Router /stats/users/{user_id}/daily [get]
func (h *handlers) userDaily(r *stdhttp.Request, in domain.UserStatsInput) (any, error) {
	return h.svc.DailySentiment(r.Context(), httpkit.Param(r, "user_id"), in)
}
