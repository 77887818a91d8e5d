package http

import (
	"net/http"

	"doomscroll/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates T from the body before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// QueryHandler decodes and validates T from the query string before calling fn
func QueryHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseQuery[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// NoBodyHandler wraps fn's result without reading the request
func NoBodyHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// GetJSON mounts fn for GET
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, NoBodyHandler(fn))
}

// GetQuery mounts fn for GET with a bound query struct
func GetQuery[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Get(path, QueryHandler(fn))
}

// PostJSON mounts fn for POST with a bound body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(fn))
}
