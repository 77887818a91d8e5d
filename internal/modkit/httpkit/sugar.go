package httpkit

import (
	"net/http"

	phttp "doomscroll/internal/platform/net/http"
)

// Get mounts a GET handler that reads nothing from the body
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, fn)
}

// GetQuery mounts a GET handler with a bound, validated query struct
func GetQuery[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, fn)
}

// PostJSON mounts a POST handler with a bound, validated body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, fn)
}
