package templates

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/ctxlog"
	"github.com/vk/figkit/modules/colorbar"
)

// Pseudocolor drawing methods understood by Pcolor.
const (
	MethodPcolor      = "pcolor"
	MethodPcolormesh  = "pcolormesh"
	MethodContourf    = "contourf"
	MethodPlotSurface = "plot_surface"
)

// defaultLevels is the contour resolution used when the caller gives none.
const defaultLevels = 100

// PcolorSpec describes a pseudocolor, filled contour or surface plot of Z
// over the X, Y grid. X and Y are vectors or meshgrid matrices.
type PcolorSpec struct {
	X, Y any
	Z    [][]float64

	// Method defaults to MethodPcolormesh.
	Method       string
	MethodArgs   []any
	MethodKwargs figure.Kwargs

	Title  string
	XLabel string
	YLabel string

	Colorbar  bool
	GridAlpha *float64

	// SurfaceShadow lists the axes ("x", "y", "z") that get a filled
	// contour projected onto their data boundary. Only used by
	// MethodPlotSurface.
	SurfaceShadow []string
}

// Pcolor returns one structure at position 111 drawing spec.Z with a color
// range symmetric around zero.
func Pcolor(ctx context.Context, spec PcolorSpec) ([]figure.AxesStructure, figure.StyleSpec) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Getting axes.", "position", 111)

	zmin, zmax := stats.Bounds(flatten(spec.Z))
	if math.IsNaN(zmin) {
		logger.Error("Pcolor data is empty, skipping.")
		return nil, nil
	}
	vmax := math.Max(math.Abs(zmin), math.Abs(zmax))

	method := spec.Method
	if method == "" {
		method = MethodPcolormesh
	}

	layout := figure.Kwargs{}
	plotkw := figure.Kwargs{}
	data := []figure.Instruction{}
	order := 1

	if method == MethodPlotSurface {
		layout["projection"] = "3d"
		layout["zlim"] = []float64{-vmax, vmax}
		plotkw["rstride"] = 1
		plotkw["cstride"] = 1
		plotkw["linewidth"] = 1
		plotkw["antialiased"] = true
		plotkw["cmap"] = "jet"
		if len(spec.SurfaceShadow) > 0 {
			offsets, lims, err := shadowBounds(spec, vmax)
			if err != nil {
				logger.Error("Cannot place surface shadows.", "error", err)
			} else {
				shadowArgs := []any{spec.X, spec.Y, spec.Z}
				if len(spec.MethodArgs) > 0 {
					shadowArgs = append(shadowArgs, spec.MethodArgs...)
				} else {
					shadowArgs = append(shadowArgs, defaultLevels)
				}
				for _, axis := range spec.SurfaceShadow {
					off, ok := offsets[axis]
					if !ok {
						logger.Warn("Ignoring shadow for unknown axis.", "axis", axis)
						continue
					}
					order++
					layout[axis+"lim"] = lims[axis]
					data = append(data, figure.Invoke{
						Key:    order,
						Name:   MethodContourf,
						Args:   append([]any(nil), shadowArgs...),
						Kwargs: figure.Kwargs{"zdir": axis, "offset": off},
					})
				}
			}
		}
	}
	if spec.Colorbar {
		order++
		data = append(data, figure.Revise{Key: order, Fn: colorbar.Revise, Kwargs: figure.Kwargs{"artifact": 1}})
	}
	if spec.GridAlpha != nil {
		order++
		data = append(data, figure.Invoke{Key: order, Name: "grid", Kwargs: figure.Kwargs{"alpha": *spec.GridAlpha}})
	}

	args := []any{spec.X, spec.Y, spec.Z}
	args = append(args, spec.MethodArgs...)
	if len(spec.MethodArgs) == 0 && method == MethodContourf {
		args = append(args, defaultLevels)
	}
	plotkw["vmin"] = -vmax
	plotkw["vmax"] = vmax
	for k, v := range spec.MethodKwargs {
		plotkw[k] = v
	}
	data = append([]figure.Instruction{figure.Invoke{Key: 1, Name: method, Args: args, Kwargs: plotkw}}, data...)

	if spec.Title != "" {
		layout["title"] = spec.Title
	}
	if spec.XLabel != "" {
		layout["xlabel"] = spec.XLabel
	}
	if spec.YLabel != "" {
		layout["ylabel"] = spec.YLabel
	}

	return []figure.AxesStructure{{
		Data:   data,
		Layout: figure.Layout{Position: 111, Options: layout},
	}}, nil
}

// shadowBounds returns the per-axis shadow offsets and limits.
func shadowBounds(spec PcolorSpec, vmax float64) (map[string]float64, map[string][]float64, error) {
	xs, err := coords(spec.X)
	if err != nil {
		return nil, nil, fmt.Errorf("x: %w", err)
	}
	ys, err := coords(spec.Y)
	if err != nil {
		return nil, nil, fmt.Errorf("y: %w", err)
	}
	xmin, xmax := stats.Bounds(xs)
	ymin, ymax := stats.Bounds(ys)
	offsets := map[string]float64{"x": xmin, "y": ymax, "z": -vmax}
	lims := map[string][]float64{
		"x": {xmin, xmax},
		"y": {ymin, ymax},
		"z": {-vmax, vmax},
	}
	return offsets, lims, nil
}

func flatten(m [][]float64) []float64 {
	n := 0
	for _, row := range m {
		n += len(row)
	}
	out := make([]float64, 0, n)
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

func coords(v any) ([]float64, error) {
	var out []float64
	switch c := v.(type) {
	case []float64:
		out = c
	case [][]float64:
		out = flatten(c)
	case []int:
		for _, n := range c {
			out = append(out, float64(n))
		}
	default:
		return nil, fmt.Errorf("unsupported coordinates %T", v)
	}
	if len(out) == 0 {
		return nil, errors.New("no coordinates")
	}
	return out, nil
}
