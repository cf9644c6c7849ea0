package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/figkit/backends/gonumplot"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/ctxlog"
	"github.com/vk/figkit/internal/figfile"
	"github.com/vk/figkit/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	config   *Config
	logger   *slog.Logger
	registry *registry.Registry
	backend  *gonumplot.Backend
	engine   *figure.Engine
	figures  []figfile.Figure
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own logger, registry, backend and loaded figures.
// A figure file that cannot be loaded is a fatal startup error and panics.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New().Register(modules...)
	logger.Debug("All revise modules registered.", "count", len(modules), "names", reg.Names())

	backend, err := gonumplot.New(gonumplot.Config{
		Mode:      cfg.DisplayMode,
		OutputDir: cfg.OutputDir,
		ViewerURL: cfg.ViewerURL,
		Logger:    logger,
	})
	if err != nil {
		panic(fmt.Errorf("failed to create backend: %w", err))
	}

	base := make([]any, 0, len(cfg.Styles)+1)
	base = append(base, DefaultStyle)
	for _, s := range cfg.Styles {
		base = append(base, s)
	}
	engine := figure.New(backend,
		figure.WithStyleRegistry(figure.NewStyleRegistry(backend.Styles(), cfg.StyleLibPath)),
		figure.WithBaseStyle(figure.Styles(base...)),
	)

	figures, err := figfile.NewLoader(reg).Load(ctx, cfg.FigurePath)
	if err != nil {
		panic(fmt.Errorf("failed to load figures: %w", err))
	}
	logger.Debug("Figure files loaded.", "figures", len(figures))

	return &App{
		outW:     outW,
		config:   cfg,
		logger:   logger,
		registry: reg,
		backend:  backend,
		engine:   engine,
		figures:  figures,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Figures returns the loaded figure declarations.
func (a *App) Figures() []figfile.Figure {
	return a.figures
}
