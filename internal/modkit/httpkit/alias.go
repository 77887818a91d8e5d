// Package httpkit is the HTTP surface modules import: envelope helpers,
// mount sugar and the shared middleware stack
package httpkit

import (
	"net/http"

	phttp "doomscroll/internal/platform/net/http"
)

type (
	// Envelope is the response body wrapper
	Envelope = phttp.Envelope
	// Response is what return-style handlers produce
	Response = phttp.Response
	// Handler is the platform handler func
	Handler = phttp.Handler
	// Router is the routing seam
	Router = phttp.Router
)

// OK is a 200 with data
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 with data
func Created(data any) Response { return phttp.Created(data) }

// Accepted is a 202 with data
func Accepted(data any) Response { return phttp.Accepted(data) }

// Error maps err onto status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a return-style handler
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Param reads a path parameter
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }
