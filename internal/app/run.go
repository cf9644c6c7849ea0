package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/figkit/backends/gonumplot"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/ctxlog"
	"github.com/vk/figkit/internal/figfile"
)

// Run renders every loaded figure: it builds it, saves it to the output
// directory, shows it when asked to and closes it. A failing figure is
// logged and does not stop the others; the failures are returned together.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if len(a.figures) == 0 {
		a.logger.Warn("No figures found, nothing to render.", "path", a.config.FigurePath)
		return nil
	}
	if a.config.OutputDir != "" {
		if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var errs []error
	for _, f := range a.figures {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := a.render(ctx, f); err != nil {
			a.logger.Error("Figure failed.", "figure", f.ID, "source", f.Source, "error", err)
			errs = append(errs, fmt.Errorf("figure '%s': %w", f.ID, err))
		}
	}
	a.logger.Info("Rendering finished.", "figures", len(a.figures), "failed", len(errs))
	return errors.Join(errs...)
}

func (a *App) render(ctx context.Context, f figfile.Figure) error {
	fig, err := a.engine.BuildFigure(ctx, f.ID, f.Structures, f.Style)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.engine.Close(ctx, fig); err != nil {
			a.logger.Warn("Failed to close figure.", "figure", f.ID, "error", err)
		}
	}()

	if a.config.OutputDir != "" {
		path := filepath.Join(a.config.OutputDir, gonumplot.FileName(f.ID)+"."+a.config.Format)
		kw := figure.Kwargs{}
		if a.config.DPI > 0 {
			kw["dpi"] = a.config.DPI
		}
		if err := a.engine.Save(ctx, fig, path, kw); err != nil {
			return err
		}
		a.logger.Info("Figure saved.", "figure", f.ID, "path", path)
	}
	if a.config.Show {
		shown, err := a.engine.Show(ctx, fig)
		if err != nil {
			return err
		}
		if _, inline := shown.(figure.Figure); inline {
			shown = f.ID
		}
		a.logger.Info("Figure shown.", "figure", f.ID, "result", fmt.Sprint(shown))
	}
	return nil
}
