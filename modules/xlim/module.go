package xlim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Revise applies kw["xlim"] to every panel of the structure, in order key
// order.
func Revise(_ figure.Figure, axes figure.AxesRegistry, _ figure.ArtifactRegistry, kw figure.Kwargs) error {
	lim, ok := kw["xlim"]
	if !ok || lim == nil {
		return errors.New("xlim: missing option 'xlim'")
	}
	keys := make([]int, 0, len(axes))
	for k := range axes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	var errs []error
	for _, k := range keys {
		if _, err := axes[k].Invoke("set_xlim", []any{lim}, nil); err != nil {
			errs = append(errs, fmt.Errorf("axes %d: %w", k, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("xlim: %w", err)
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRevision("xlim", &registry.Revision{
		Fn:     Revise,
		Params: []string{"xlim"},
	})
}
