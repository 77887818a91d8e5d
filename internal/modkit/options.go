package modkit

import (
	"net/http"

	phttp "doomscroll/internal/platform/net/http"
)

// Option adjusts how a module is built
type Option func(*buildCfg)

type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	ports    any
	register func(phttp.Router)
}

// WithName overrides the module name used in logs and the port registry
func WithName(name string) Option { return func(c *buildCfg) { c.name = name } }

// WithPrefix overrides the mount path
func WithPrefix(prefix string) Option { return func(c *buildCfg) { c.prefix = prefix } }

// WithMiddlewares appends module-scoped middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts hands the module a port set owned by another module
func WithPorts[T any](p T) Option { return func(c *buildCfg) { c.ports = p } }

// WithRegister replaces the function that attaches the module's endpoints
func WithRegister(fn func(phttp.Router)) Option { return func(c *buildCfg) { c.register = fn } }
