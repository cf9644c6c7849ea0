package suptitle

import (
	"errors"
	"fmt"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Revise sets the figure title from kw["t"]. A "fontsize" option is passed
// on to the backend.
func Revise(fig figure.Figure, _ figure.AxesRegistry, _ figure.ArtifactRegistry, kw figure.Kwargs) error {
	t, ok := kw["t"]
	if !ok || t == nil {
		return errors.New("suptitle: missing title option 't'")
	}
	out := figure.Kwargs{}
	if size, ok := kw["fontsize"]; ok {
		out["fontsize"] = size
	}
	if _, err := fig.Invoke("suptitle", []any{fmt.Sprint(t)}, out); err != nil {
		return fmt.Errorf("suptitle: %w", err)
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRevision("suptitle", &registry.Revision{
		Fn:     Revise,
		Params: []string{"t", "fontsize"},
	})
}
