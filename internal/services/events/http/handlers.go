// Package http provides http transport for event ingest
package http

import (
	stdhttp "net/http"

	"doomscroll/internal/modkit/httpkit"
	"doomscroll/internal/services/events/domain"
)

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.IngestBatch](r, "/", h.ingest)
}

type handlers struct{ svc domain.ServicePort }

// ingest godoc
// @Summary Ingest a batch of usage events
// @Description content_analysis events carrying visible_text are classified before they are stored
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.IngestBatch true "Events"
// @Success 200 {object} domain.IngestResult "ok"
// @Router /events [post]
func (h *handlers) ingest(r *stdhttp.Request, in domain.IngestBatch) (any, error) {
	return h.svc.Ingest(r.Context(), in)
}
