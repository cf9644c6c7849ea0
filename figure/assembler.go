package figure

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/figkit/internal/ctxlog"
)

// NewFigureID returns a process-unique figure identifier.
func NewFigureID() string {
	return "figure-" + uuid.NewString()
}

// BuildFigure creates an empty figure named id and builds every structure
// into it, in order. An empty id is replaced with NewFigureID.
//
// figStyle is active for the whole build, inside the engine's base style;
// each structure's own style nests inside it. Only a failure to create the
// figure is returned: per-structure failures are logged by BuildPanel and
// never stop the build.
func (e *Engine) BuildFigure(ctx context.Context, id string, structures []AxesStructure, figStyle StyleSpec) (Figure, error) {
	if id == "" {
		id = NewFigureID()
	}
	logger := ctxlog.FromContext(ctx).With("figure", id)
	ctx = ctxlog.WithLogger(ctx, logger)

	spec := make(StyleSpec, 0, len(e.base)+len(figStyle))
	spec = append(spec, e.base...)
	spec = append(spec, figStyle...)
	release := e.styles.Enter(ctx, spec)
	defer release()

	fig, err := protect(func() (Figure, error) {
		return e.backend.CreateFigure(id)
	})
	if err != nil {
		return nil, fmt.Errorf("create figure %q: %w", id, err)
	}
	if fig == nil {
		return nil, fmt.Errorf("create figure %q: backend returned no figure", id)
	}

	for i, s := range structures {
		logger.Debug("Picking axes structure.", "index", i+1, "of", len(structures))
		e.BuildPanel(ctx, fig, s)
	}
	logger.Info("Figure built.", "structures", len(structures))
	return fig, nil
}
