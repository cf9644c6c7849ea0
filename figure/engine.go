package figure

import (
	"context"
	"log/slog"

	"github.com/vk/figkit/internal/ctxlog"
)

// Engine builds, shows, saves and closes figures on one backend.
type Engine struct {
	backend Backend
	styles  *StyleRegistry
	base    StyleSpec
}

// Option configures an Engine.
type Option func(*Engine)

// WithStyleRegistry makes the engine resolve styles through reg instead of a
// registry with no style library.
func WithStyleRegistry(reg *StyleRegistry) Option {
	return func(e *Engine) { e.styles = reg }
}

// WithBaseStyle sets the styles applied outside every figure style.
func WithBaseStyle(spec StyleSpec) Option {
	return func(e *Engine) { e.base = spec }
}

// New returns an engine driving backend.
func New(backend Backend, opts ...Option) *Engine {
	e := &Engine{backend: backend}
	for _, opt := range opts {
		opt(e)
	}
	if e.styles == nil {
		e.styles = NewStyleRegistry(backend.Styles(), "")
	}
	return e
}

// Backend returns the backend the engine drives.
func (e *Engine) Backend() Backend {
	return e.backend
}

// Styles returns the engine's style registry.
func (e *Engine) Styles() *StyleRegistry {
	return e.styles
}

// Param reads one style parameter as it is under the engine's base style.
// Unknown parameters are logged and reported as nil.
func (e *Engine) Param(ctx context.Context, name string) any {
	release := e.styles.Enter(ctx, e.base)
	defer release()
	v, ok := e.backend.Styles().Param(name)
	if !ok {
		ctxlog.FromContext(ctx).Error("Invalid style parameter.", "param", name)
		return nil
	}
	return v
}

// WithLogger returns a context carrying logger. The engine and the
// templates log through the logger found in their context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return ctxlog.WithLogger(ctx, logger)
}
