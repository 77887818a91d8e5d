// Package http exposes the classifier over HTTP
package http

import (
	stdhttp "net/http"

	"doomscroll/internal/core/classify"
	"doomscroll/internal/modkit/httpkit"
	"doomscroll/internal/services/api/classify/domain"
)

// Register mounts POST / on r
func Register(r httpkit.Router, c classify.Classifier) {
	h := &handlers{c: c}
	httpkit.PostJSON[domain.ClassifyInput](r, "/", h.classify)
}

type handlers struct{ c classify.Classifier }

// classify godoc
// @Summary Classify page text without storing it
// @Tags Classify
// @Accept json
// @Produce json
// @Param payload body domain.ClassifyInput true "Page"
// @Success 200 {object} classify.Result "ok"
// @Failure 400 {object} httpkit.Envelope "bad json"
// @Router /classify [post]
func (h *handlers) classify(_ *stdhttp.Request, in domain.ClassifyInput) (any, error) {
	return h.c.Classify(in.VisibleText, classify.Hints(in.StructuredData)), nil
}
