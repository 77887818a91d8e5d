package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"doomscroll/internal/platform/logger"

	"github.com/swaggo/swag/v2"
)

// SpecMutator edits the decoded document before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// InstanceName is the swag registry name the docs package registers under
const InstanceName = "doomscroll"

// docReader is a seam for tests
var docReader = func() (string, error) { return swag.ReadDoc(InstanceName) }

// Register adds a mutator; call it during bootstrap, not per request
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := docReader()
		if err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("swagger doc not registered")
			http.Error(w, "api docs not available", http.StatusNotFound)
			return
		}
		var spec map[string]any
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("swagger doc is not valid json")
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		normalizeVersion(spec)
		ensureServers(spec, "/api/v1")
		ensureErrorSchema(spec)
		addErrorResponses(spec)
		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalizeVersion pins the document to 3.0.3; the bundled UI cannot render 3.1
func normalizeVersion(spec map[string]any) {
	delete(spec, "swagger")
	v, _ := spec["openapi"].(string)
	if v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
}

func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureErrorSchema declares the envelope that every failure is written in
func ensureErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addErrorResponses gives every operation 400 and 500 entries unless it declares its own
func addErrorResponses(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	ref := map[string]any{"application/json": map[string]any{
		"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
	}}
	defaults := map[string]string{"400": "Bad Request", "500": "Internal Server Error"}
	for _, p := range paths {
		item, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range item {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, desc := range defaults {
				if _, exists := resps[code]; !exists {
					resps[code] = map[string]any{"description": desc, "content": ref}
				}
			}
		}
	}
}
