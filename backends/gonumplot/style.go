package gonumplot

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/convert"
	"github.com/vk/figkit/internal/stylefile"
)

var tab10 = []any{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// defaultParams is the state every style stack starts from, and what the
// "default" style restores.
var defaultParams = map[string]any{
	"figure.figsize":         []any{6.4, 4.8},
	"figure.dpi":             100,
	"figure.facecolor":       "white",
	"figure.titlesize":       14,
	"figure.subplot.left":    0.125,
	"figure.subplot.right":   0.9,
	"figure.subplot.bottom":  0.11,
	"figure.subplot.top":     0.88,
	"figure.subplot.hspace":  0.2,
	"figure.subplot.wspace":  0.2,
	"axes.facecolor":         "white",
	"axes.edgecolor":         "black",
	"axes.labelcolor":        "black",
	"axes.grid":              false,
	"axes.titlesize":         12,
	"axes.labelsize":         10,
	"axes.prop_cycle":        tab10,
	"lines.linewidth":        1.5,
	"lines.markersize":       3,
	"font.size":              10,
	"text.color":             "black",
	"xtick.color":            "black",
	"ytick.color":            "black",
	"grid.color":             "#b0b0b0",
	"grid.alpha":             1.0,
	"grid.linewidth":         0.8,
	"legend.loc":             "best",
	"image.cmap":             "viridis",
	"contour.levels":         10,
	"savefig.format":         "png",
	"figure.colorbar.width":  0.05,
	"figure.twin.tickmargin": 36,
}

// builtinStyles are the styles the backend knows without a style file.
var builtinStyles = map[string]map[string]any{
	"default": defaultParams,
	"classic": {
		"figure.figsize":   []any{8, 6},
		"figure.dpi":       80,
		"axes.prop_cycle":  []any{"b", "g", "r", "c", "m", "y", "k"},
		"lines.linewidth":  1.0,
		"axes.titlesize":   14,
		"axes.labelsize":   12,
		"figure.facecolor": "#bfbfbf",
	},
	"ggplot": {
		"axes.facecolor":  "#e5e5e5",
		"axes.edgecolor":  "white",
		"axes.grid":       true,
		"grid.color":      "white",
		"axes.labelcolor": "#555555",
		"axes.prop_cycle": []any{"#e24a33", "#348abd", "#988ed5", "#777777", "#fbc15e", "#8eba42", "#ffb5b8"},
	},
	"grayscale": {
		"axes.prop_cycle": []any{"0.00", "0.40", "0.60", "0.70"},
		"image.cmap":      "gray",
	},
	"seaborn-whitegrid": {
		"axes.grid":      true,
		"grid.color":     "#eaeaf2",
		"axes.edgecolor": "#cccccc",
	},
}

// Styler is the backend's scoped stack of style parameters. Every context
// pushes the merged parameters on top of the current ones; releasing pops
// it again.
type Styler struct {
	stack []map[string]any
}

func newStyler() *Styler {
	return &Styler{stack: []map[string]any{maps.Clone(defaultParams)}}
}

// Available lists the built-in style names.
func (s *Styler) Available() []string {
	names := make([]string, 0, len(builtinStyles))
	for name := range builtinStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TryApply reports whether name is a built-in style or a readable style
// file.
func (s *Styler) TryApply(name string) error {
	_, err := s.resolve(figure.StyleName(name))
	return err
}

func (s *Styler) resolve(st figure.Style) (map[string]any, error) {
	switch st := st.(type) {
	case figure.StyleParams:
		return st, nil
	case figure.StyleName:
		if params, ok := builtinStyles[string(st)]; ok {
			return params, nil
		}
		params, err := stylefile.Load(string(st))
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", string(st), err)
		}
		return params, nil
	}
	return nil, fmt.Errorf("unsupported style entry %T", st)
}

// Context applies spec on top of the current parameters. Entries that fail
// to resolve are skipped and reported together; the rest are applied and
// release must still be called.
func (s *Styler) Context(spec figure.StyleSpec) (func(), error) {
	next := maps.Clone(s.top())
	var errs []error
	for _, st := range spec {
		params, err := s.resolve(st)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		maps.Copy(next, params)
	}
	depth := len(s.stack)
	s.stack = append(s.stack, next)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.stack = s.stack[:depth]
	}, errors.Join(errs...)
}

// Param returns the current value of a style parameter.
func (s *Styler) Param(name string) (any, bool) {
	v, ok := s.top()[name]
	return v, ok
}

func (s *Styler) top() map[string]any {
	return s.stack[len(s.stack)-1]
}

// snapshot copies the current parameters for a figure or panel.
func (s *Styler) snapshot() params {
	return params(maps.Clone(s.top()))
}

// params is a frozen copy of the style parameters.
type params map[string]any

func (p params) float(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		if f, err := convert.Float(v); err == nil {
			return f
		}
	}
	return def
}

func (p params) bool(name string) bool {
	b, _ := convert.Bool(p[name])
	return b
}

func (p params) string(name, def string) string {
	if s, ok := toString(p[name]); ok && s != "" {
		return s
	}
	return def
}
