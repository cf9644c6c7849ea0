package colorbar

import (
	"fmt"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/convert"
	"github.com/vk/figkit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Revise attaches a colorbar for a color-mapped artifact of the structure.
//
// Keyword options: "artifact" is the order key of the mappable (default 1),
// "ax" the order key of the panel to attach to (default: the mappable's own
// panel), "label" the colorbar label.
func Revise(fig figure.Figure, axes figure.AxesRegistry, artifacts figure.ArtifactRegistry, kw figure.Kwargs) error {
	key, err := intOption(kw, "artifact", 1)
	if err != nil {
		return err
	}
	mappable, ok := artifacts[key]
	if !ok {
		return fmt.Errorf("colorbar: no artifact with order key %d", key)
	}
	out := figure.Kwargs{}
	if label, ok := kw["label"]; ok {
		out["label"] = label
	}
	if _, ok := kw["ax"]; ok {
		axKey, err := intOption(kw, "ax", 0)
		if err != nil {
			return err
		}
		panel, ok := axes[axKey]
		if !ok {
			return fmt.Errorf("colorbar: no axes with order key %d", axKey)
		}
		out["ax"] = panel
	}
	_, err = fig.Invoke("colorbar", []any{mappable}, out)
	return err
}

func intOption(kw figure.Kwargs, name string, def int) (int, error) {
	v, ok := kw[name]
	if !ok {
		return def, nil
	}
	n, err := convert.Int(v)
	if err != nil {
		return 0, fmt.Errorf("colorbar: %s must be an integer order key: %w", name, err)
	}
	return n, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRevision("colorbar", &registry.Revision{
		Fn:     Revise,
		Params: []string{"artifact", "ax", "label"},
	})
}
