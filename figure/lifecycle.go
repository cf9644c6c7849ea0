package figure

import (
	"context"
	"errors"

	"github.com/vk/figkit/internal/ctxlog"
)

// InteractiveModes are the display modes in which Show hands the figure
// back to the caller for embedding instead of displaying it.
var InteractiveModes = map[string]bool{
	"inline":    true,
	"notebook":  true,
	"nbagg":     true,
	"ipykernel": true,
}

// Show displays fig. In an interactive mode it returns fig itself;
// otherwise it returns the result of the backend's display primitive.
func (e *Engine) Show(ctx context.Context, fig Figure) (any, error) {
	mode := e.backend.Mode()
	if InteractiveModes[mode] {
		ctxlog.FromContext(ctx).Debug("Interactive mode, returning figure.", "figure", fig.ID(), "mode", mode)
		return fig, nil
	}
	ctxlog.FromContext(ctx).Debug("Displaying figure.", "figure", fig.ID(), "mode", mode)
	return fig.Display()
}

// Close closes fig and then clears it, releasing its canvas eagerly. Clear
// runs even when Close fails.
func (e *Engine) Close(ctx context.Context, fig Figure) error {
	ctxlog.FromContext(ctx).Debug("Closing figure.", "figure", fig.ID())
	err := fig.Close()
	fig.Clear()
	return err
}

// Save exports fig to path, passing kw to the backend untouched.
func (e *Engine) Save(ctx context.Context, fig Figure, path string, kw Kwargs) error {
	if path == "" {
		return errors.New("save: empty path")
	}
	ctxlog.FromContext(ctx).Debug("Saving figure.", "figure", fig.ID(), "path", path)
	return fig.Export(path, kw)
}
