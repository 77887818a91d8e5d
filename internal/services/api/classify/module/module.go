// Package module wires the on-demand classifier into the API
package module

import (
	"doomscroll/internal/core/classify"
	modkit "doomscroll/internal/modkit"
	"doomscroll/internal/modkit/httpkit"
	"doomscroll/internal/platform/logger"
	classifyhttp "doomscroll/internal/services/api/classify/http"
)

// Ports lets the caller share a classifier already loaded elsewhere
type Ports struct {
	Classifier classify.Classifier
}

// Module implements modkit.Module
type Module struct {
	b modkit.Built
	c classify.Classifier
}

// New builds the module. Without a shared classifier it loads
// CORE_CLASSIFIER_RULES_PATH, falling back to the embedded ruleset.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("classify"),
		modkit.WithPrefix("/classify"),
	}, opts...)...)

	var c classify.Classifier
	if p, ok := b.Ports.(Ports); ok && p.Classifier != nil {
		c = p.Classifier
	} else {
		path := deps.Cfg.Prefix("CORE_CLASSIFIER_").MayString("RULES_PATH", "")
		h, err := classify.Load(path)
		if err != nil {
			logger.Get().Fatal().Err(err).Str("path", path).Msg("load classifier ruleset")
		}
		c = h
	}

	external := b.Register
	b.Register = func(r httpkit.Router) {
		classifyhttp.Register(r, c)
		external(r)
	}
	return &Module{b: b, c: c}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r) }

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the classifier in use
func (m *Module) Ports() any { return Ports{Classifier: m.c} }
