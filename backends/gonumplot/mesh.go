package gonumplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/convert"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// mesh is a value grid: z[row][col] sampled at x[col], y[row].
type mesh struct {
	x, y []float64
	z    [][]float64
}

func (m mesh) Dims() (c, r int)   { return len(m.x), len(m.y) }
func (m mesh) Z(c, r int) float64 { return m.z[r][c] }
func (m mesh) X(c int) float64    { return m.x[c] }
func (m mesh) Y(r int) float64    { return m.y[r] }

func (m mesh) values() []float64 {
	out := make([]float64, 0, len(m.x)*len(m.y))
	for _, row := range m.z {
		for _, v := range row {
			if !math.IsNaN(v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// meshArgs reads (Z) or (X, Y, Z). X and Y may be coordinate vectors or
// meshgrid matrices, and may hold cell edges instead of centers.
func meshArgs(args []any) (mesh, error) {
	var m mesh
	var err error
	switch len(args) {
	case 1:
		if m.z, err = convert.Matrix(args[0]); err != nil {
			return m, fmt.Errorf("Z: %w", err)
		}
		if len(m.z) == 0 {
			return m, fmt.Errorf("Z is empty")
		}
		m.x = indexes(len(m.z[0]))
		m.y = indexes(len(m.z))
	case 3:
		if m.z, err = convert.Matrix(args[2]); err != nil {
			return m, fmt.Errorf("Z: %w", err)
		}
		if len(m.z) == 0 {
			return m, fmt.Errorf("Z is empty")
		}
		if m.x, err = axisCoords(args[0], false); err != nil {
			return m, fmt.Errorf("X: %w", err)
		}
		if m.y, err = axisCoords(args[1], true); err != nil {
			return m, fmt.Errorf("Y: %w", err)
		}
	default:
		return m, fmt.Errorf("expected (Z) or (X, Y, Z), got %d arguments", len(args))
	}
	rows, cols := len(m.z), len(m.z[0])
	for i, row := range m.z {
		if len(row) != cols {
			return m, fmt.Errorf("Z row %d has %d values, want %d", i, len(row), cols)
		}
	}
	if m.x, err = centers(m.x, cols); err != nil {
		return m, fmt.Errorf("X: %w", err)
	}
	if m.y, err = centers(m.y, rows); err != nil {
		return m, fmt.Errorf("Y: %w", err)
	}
	return m, nil
}

// axisCoords reads a coordinate vector, or the first row (for X) or first
// column (for Y) of a meshgrid matrix.
func axisCoords(v any, column bool) ([]float64, error) {
	if s, err := convert.Floats(v); err == nil {
		if len(s) == 0 || !isMatrix(v) {
			return s, nil
		}
	}
	m, err := convert.Matrix(v)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("empty coordinates")
	}
	if !column {
		return m[0], nil
	}
	out := make([]float64, len(m))
	for i, row := range m {
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d is empty", i)
		}
		out[i] = row[0]
	}
	return out, nil
}

func isMatrix(v any) bool {
	switch s := v.(type) {
	case [][]float64, [][]int:
		return true
	case []any:
		if len(s) > 0 {
			switch s[0].(type) {
			case []any, []float64, []int:
				return true
			}
		}
	}
	return false
}

// centers returns n cell centers from n centers or n+1 edges.
func centers(c []float64, n int) ([]float64, error) {
	switch len(c) {
	case n:
		return c, nil
	case n + 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = (c[i] + c[i+1]) / 2
		}
		return out, nil
	}
	return nil, fmt.Errorf("have %d coordinates for %d cells", len(c), n)
}

// colormapByName maps common colormap names onto the perceptual maps of
// the moreland package.
func colormapByName(name string) (palette.ColorMap, error) {
	switch strings.ToLower(name) {
	case "coolwarm", "bwr", "rdbu", "rdbu_r", "seismic":
		return moreland.SmoothBlueRed(), nil
	case "purpleorange", "puor":
		return moreland.SmoothPurpleOrange(), nil
	case "hot", "afmhot", "inferno", "magma", "blackbody":
		return moreland.BlackBody(), nil
	case "gist_heat", "extendedblackbody":
		return moreland.ExtendedBlackBody(), nil
	case "jet", "rainbow", "turbo", "kindlmann":
		return moreland.Kindlmann(), nil
	case "viridis", "plasma", "cividis", "", "extendedkindlmann":
		return moreland.ExtendedKindlmann(), nil
	case "gray", "grey", "greys":
		return moreland.NewLuminance([]color.Color{color.Black, color.White})
	}
	return nil, fmt.Errorf("unknown colormap %q", name)
}

// scaled picks the colormap named in kw (or the image.cmap parameter) and
// sets its range to vmin/vmax, or to the data bounds.
func (p *Panel) scaled(m mesh, kw figure.Kwargs) (palette.ColorMap, float64, float64, error) {
	name := stringKw(kw, "cmap")
	if name == "" {
		name = p.params.string("image.cmap", "viridis")
	}
	cm, err := colormapByName(name)
	if err != nil {
		return nil, 0, 0, err
	}
	vals := m.values()
	if len(vals) == 0 {
		return nil, 0, 0, fmt.Errorf("Z has no finite values")
	}
	lo, hi := stats.Bounds(vals)
	lo = floatKw(kw, lo, "vmin")
	hi = floatKw(kw, hi, "vmax")
	if lo >= hi {
		lo, hi = lo-0.5, lo+0.5
	}
	cm.SetMax(hi)
	cm.SetMin(lo)
	return cm, lo, hi, nil
}

func verbPcolormesh(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	m, err := meshArgs(args)
	if err != nil {
		return nil, err
	}
	cm, lo, hi, err := p.scaled(m, kw)
	if err != nil {
		return nil, err
	}
	hm := plotter.NewHeatMap(m, cm.Palette(256))
	hm.Min, hm.Max = lo, hi
	p.plot.Add(hm)
	return &Artist{Plotters: []plot.Plotter{hm}, ColorMap: cm}, nil
}

// levelArg splits an optional trailing level count or level list off the
// (X, Y, Z) arguments.
func levelArg(args []any, kw figure.Kwargs, def int) ([]any, int, []float64, error) {
	var v any
	if len(args) == 2 || len(args) == 4 {
		v = args[len(args)-1]
		args = args[:len(args)-1]
	} else if lv, ok := kw["levels"]; ok {
		v = lv
	}
	if v == nil {
		return args, def, nil, nil
	}
	if n, err := convert.Float(v); err == nil {
		if n < 1 {
			return nil, 0, nil, fmt.Errorf("levels must be positive, got %v", n)
		}
		return args, int(n), nil, nil
	}
	levels, err := convert.Floats(v)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("levels: %w", err)
	}
	return args, len(levels), levels, nil
}

func verbContourf(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	args, n, _, err := levelArg(args, kw, int(p.params.float("contour.levels", 10)))
	if err != nil {
		return nil, err
	}
	m, err := meshArgs(args)
	if err != nil {
		return nil, err
	}
	cm, lo, hi, err := p.scaled(m, kw)
	if err != nil {
		return nil, err
	}
	hm := plotter.NewHeatMap(m, cm.Palette(max(n, 2)))
	hm.Min, hm.Max = lo, hi
	p.plot.Add(hm)
	return &Artist{Plotters: []plot.Plotter{hm}, ColorMap: cm}, nil
}

func verbContour(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	args, n, levels, err := levelArg(args, kw, int(p.params.float("contour.levels", 10)))
	if err != nil {
		return nil, err
	}
	m, err := meshArgs(args)
	if err != nil {
		return nil, err
	}
	cm, lo, hi, err := p.scaled(m, kw)
	if err != nil {
		return nil, err
	}
	if levels == nil {
		levels = vec.Linspace(lo, hi, n)
	}
	c := plotter.NewContour(m, levels, cm.Palette(max(len(levels), 2)))
	c.Min, c.Max = lo, hi
	if lw, ok := kw["linewidths"]; ok {
		if w, err := convert.Float(lw); err == nil {
			c.LineStyles = []draw.LineStyle{{Width: vg.Points(w)}}
		}
	}
	p.plot.Add(c)
	return &Artist{Plotters: []plot.Plotter{c}, ColorMap: cm}, nil
}
