package modkit

import (
	"net/http"

	phttp "doomscroll/internal/platform/net/http"
	pstrings "doomscroll/internal/platform/strings"
)

// Built is the resolved option set a module reads at construction
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build folds opts over empty defaults; Register is never nil
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount is the MountRoutes body shared by modules. A blank prefix panics.
func (b Built) Mount(r phttp.Router) {
	r.Route(pstrings.MustPrefix(b.Prefix), func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		b.Register(sub)
	})
}
