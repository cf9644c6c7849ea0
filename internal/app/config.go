package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/figkit/backends/gonumplot"
)

// DefaultStyle is the library style every figure is built on.
const DefaultStyle = "figkit-notebook"

// Formats lists the export formats accepted by Config.Format.
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	FigurePath string // .hcl file or directory
	OutputDir  string // saved figures; empty skips saving
	Format     string
	DPI        int

	DisplayMode string
	ViewerURL   string
	Show        bool

	StyleLibPath string
	Styles       []string // applied on top of DefaultStyle

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.FigurePath == "" {
		return nil, errors.New("FigurePath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" && !cfg.Show {
		return nil, errors.New("nothing to do: set an output directory or enable show")
	}
	if cfg.Format == "" {
		cfg.Format = "png"
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if !slices.Contains(Formats, cfg.Format) {
		return nil, fmt.Errorf("unsupported format '%s' (supported: %s)", cfg.Format, strings.Join(Formats, ", "))
	}
	if cfg.DPI < 0 {
		return nil, fmt.Errorf("dpi must not be negative, got %d", cfg.DPI)
	}
	if cfg.DisplayMode == "" {
		cfg.DisplayMode = gonumplot.ModeFile
	}
	if !slices.Contains(gonumplot.Modes, cfg.DisplayMode) {
		return nil, fmt.Errorf("unknown display mode '%s' (supported: %s)", cfg.DisplayMode, strings.Join(gonumplot.Modes, ", "))
	}
	if cfg.DisplayMode == gonumplot.ModeSocketIO && cfg.ViewerURL == "" {
		return nil, errors.New("display mode 'socketio' needs a viewer URL")
	}
	return &cfg, nil
}
