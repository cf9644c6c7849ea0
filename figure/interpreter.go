package figure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/figkit/internal/ctxlog"
)

// buildContext is the mutable state threaded through the instruction loop
// of one structure. It is discarded once the structure is built.
type buildContext struct {
	fig       Figure
	current   Panel
	axes      AxesRegistry
	artifacts ArtifactRegistry
	logger    *slog.Logger
}

func newBuildContext(fig Figure, primary Panel, logger *slog.Logger) *buildContext {
	return &buildContext{
		fig:       fig,
		current:   primary,
		axes:      AxesRegistry{0: primary},
		artifacts: ArtifactRegistry{},
		logger:    logger,
	}
}

// BuildPanel adds the panel described by s, and everything its instructions
// draw, to fig.
//
// An invalid position or a panel the backend refuses skips the whole
// structure. A failing instruction is logged and the remaining instructions
// still run. The structure's style is active for the whole build and is
// released on every path.
func (e *Engine) BuildPanel(ctx context.Context, fig Figure, s AxesStructure) {
	logger := ctxlog.FromContext(ctx)

	pos, err := ParsePosition(s.Layout.Position)
	if err != nil {
		logger.Error("Ignoring axes structure.", "error", err)
		return
	}
	logger = logger.With("position", pos.String())

	release := e.styles.Enter(ctx, s.Style)
	defer release()

	logger.Debug("Adding axes.")
	primary, err := protect(func() (Panel, error) {
		return fig.AddPanel(pos, s.Layout.Options)
	})
	if err != nil {
		logger.Error("Failed to add axes.", "error", err)
		return
	}
	if primary == nil {
		logger.Error("Failed to add axes.", "error", "backend returned no panel")
		return
	}

	bc := newBuildContext(fig, primary, logger)
	for _, ins := range s.Data {
		if ins == nil {
			logger.Warn("Skipping nil instruction.")
			continue
		}
		if err := bc.run(ins); err != nil {
			logger.Error("Instruction failed.", "order", ins.Order(), "verb", ins.Verb(), "error", err)
		}
	}
	logger.Debug("Axes done.", "axes", len(bc.axes), "artifacts", len(bc.artifacts))
}

func (bc *buildContext) run(ins Instruction) error {
	switch ins := ins.(type) {
	case Twin:
		return bc.twin(ins)
	case Revise:
		return bc.revise(ins)
	case Invoke:
		return bc.invoke(ins)
	}
	return fmt.Errorf("unknown instruction type %T", ins)
}

// twin always twins off the primary panel; a twin of a twin is not built.
func (bc *buildContext) twin(ins Twin) error {
	bc.logger.Debug("Creating twin axes.", "order", ins.Key, "verb", ins.Verb())
	primary := bc.axes[0]
	twin, err := protect(func() (Panel, error) {
		return primary.Twin(ins.Axis)
	})
	if err != nil {
		return fmt.Errorf("create twin axes: %w", err)
	}
	if twin == nil {
		return errors.New("create twin axes: backend returned no panel")
	}
	if _, dup := bc.axes[ins.Key]; dup {
		bc.logger.Warn("Duplicate axes order key, overwriting.", "order", ins.Key)
	}
	bc.axes[ins.Key] = twin
	bc.current = twin
	if ins.NextColor > 0 {
		return protectErr(func() error {
			twin.AdvanceColorCycle(ins.NextColor)
			return nil
		})
	}
	return nil
}

func (bc *buildContext) revise(ins Revise) error {
	bc.logger.Debug("Revising axes.", "order", ins.Key)
	if ins.Fn == nil {
		return ErrNotReviseFunc
	}
	return protectErr(func() error {
		return ins.Fn(bc.fig, bc.axes, bc.artifacts, ins.Kwargs)
	})
}

func (bc *buildContext) invoke(ins Invoke) error {
	bc.logger.Debug("Adding artist.", "order", ins.Key, "verb", ins.Name)
	current := bc.current
	art, err := protect(func() (Artifact, error) {
		return current.Invoke(ins.Name, ins.Args, ins.Kwargs)
	})
	if err != nil {
		return err
	}
	if _, dup := bc.artifacts[ins.Key]; dup {
		bc.logger.Warn("Duplicate artist order key, overwriting.", "order", ins.Key)
	}
	bc.artifacts[ins.Key] = art
	return nil
}

// protect runs fn and turns a panic into an error so that a misbehaving
// backend call stays inside its instruction.
func protect[T any](fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func protectErr(fn func() error) error {
	_, err := protect(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
