// Package swaggerkit serves the registered OpenAPI document and the Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "doomscroll/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount exposes /api/docs/ (UI) and /api/docs/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
		httpSwagger.DocExpansion("list"),
	))
}
