// Package module holds the module contract and the bootstrap port registry.
// It sits apart from modkit so service packages can import it without cycles.
package module

import phttp "doomscroll/internal/platform/net/http"

// Module mounts routes and exposes a port set for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
