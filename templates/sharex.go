package templates

import (
	"context"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/ctxlog"
)

// Curve is one series plotted against the shared x values of a SharexSpec.
type Curve struct {
	Y     any
	Label string
}

// Row is one panel of a SharexSpec. Left curves use the panel's own y axis,
// right curves a twin y axis on the other side.
type Row struct {
	Left  []Curve
	Right []Curve

	// Legend options per side. Nil selects "upper left" and "upper right".
	LeftLegend  figure.Kwargs
	RightLegend figure.Kwargs

	LeftYLabel  string
	RightYLabel string
}

// SharexSpec stacks Rows vertically over the same X values.
type SharexSpec struct {
	X    any
	Rows []Row

	HSpace         float64
	Title          string
	XLabel         string
	XLim           []float64
	YLabelRotation *float64
}

// maxSubplotRows is the largest row count a three-digit subplot code can
// address.
const maxSubplotRows = 9

// SharexTwinx returns one structure per row. Only the first row carries the
// title and only the last one shows x tick labels and the x label.
func SharexTwinx(ctx context.Context, spec SharexSpec) ([]figure.AxesStructure, figure.StyleSpec) {
	logger := ctxlog.FromContext(ctx)
	n := len(spec.Rows)
	out := make([]figure.AxesStructure, 0, n)

	for row, r := range spec.Rows {
		var pos figure.Position
		if n <= maxSubplotRows {
			pos = figure.SubplotCode(n*100 + 10 + row + 1)
		} else {
			pos = figure.GridSpec{Rows: n, Cols: 1, Row: row}
		}
		logger.Debug("Getting axes.", "position", pos.String())

		layout := figure.Kwargs{}
		if len(spec.XLim) > 0 {
			layout["xlim"] = spec.XLim
		}
		if row == 0 && spec.Title != "" {
			layout["title"] = spec.Title
		}
		if row == n-1 {
			if spec.XLabel != "" {
				layout["xlabel"] = spec.XLabel
			}
		} else {
			layout["xticklabels"] = []any{}
		}

		var data []figure.Instruction
		order := 0
		side := func(curves []Curve, legend figure.Kwargs, defaultLoc, ylabel string) {
			for _, c := range curves {
				order++
				data = append(data, figure.Invoke{
					Key:    order,
					Name:   "plot",
					Args:   []any{spec.X, c.Y},
					Kwargs: figure.Kwargs{"label": c.Label},
				})
			}
			if legend == nil {
				legend = figure.Kwargs{"loc": defaultLoc}
			}
			order++
			data = append(data, figure.Invoke{Key: order, Name: "legend", Kwargs: legend.Clone()})
			if ylabel != "" {
				order++
				kw := figure.Kwargs{}
				if spec.YLabelRotation != nil {
					kw["rotation"] = *spec.YLabelRotation
				}
				data = append(data, figure.Invoke{Key: order, Name: "set_ylabel", Args: []any{ylabel}, Kwargs: kw})
			}
		}

		if len(r.Left) > 0 {
			side(r.Left, r.LeftLegend, "upper left", r.LeftYLabel)
		}
		if len(r.Right) > 0 {
			order++
			data = append(data, figure.Twin{Key: order, Axis: figure.TwinX, NextColor: len(r.Left)})
			side(r.Right, r.RightLegend, "upper right", r.RightYLabel)
			if len(spec.XLim) > 0 {
				order++
				data = append(data, figure.Invoke{Key: order, Name: "set_xlim", Args: []any{spec.XLim}})
			}
		}

		out = append(out, figure.AxesStructure{
			Data:   data,
			Layout: figure.Layout{Position: pos, Options: layout},
		})
	}

	return out, figure.StyleSpec{figure.StyleParams{"figure.subplot.hspace": spec.HSpace}}
}
