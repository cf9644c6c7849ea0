package templates

import (
	"context"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/ctxlog"
)

// Series is one line of a line plot. An empty Label marks the series as
// unlabelled: its plot gets no label keyword, and Line adds a legend only
// when at least one series has a non-empty Label.
type Series struct {
	X, Y  any
	Label string
}

// LineOptions decorates the single panel produced by Line.
type LineOptions struct {
	Title  string
	XLabel string
	YLabel string
	XLim   []float64
	YLim   []float64

	// YLabelRotation, when set, moves the y label into a set_ylabel
	// instruction carrying the rotation.
	YLabelRotation *float64
	LegendKwargs   figure.Kwargs
}

// Line returns one structure at position 111 that plots every series in
// order, followed by a legend when at least one series is labelled.
func Line(ctx context.Context, lines []Series, opts LineOptions) ([]figure.AxesStructure, figure.StyleSpec) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Getting axes.", "position", 111)

	data := make([]figure.Instruction, 0, len(lines)+2)
	order := 0
	labelled := false
	for _, ln := range lines {
		order++
		kw := figure.Kwargs{}
		if ln.Label != "" {
			kw["label"] = ln.Label
			labelled = true
		}
		data = append(data, figure.Invoke{Key: order, Name: "plot", Args: []any{ln.X, ln.Y}, Kwargs: kw})
	}
	if labelled {
		order++
		data = append(data, figure.Invoke{Key: order, Name: "legend", Kwargs: opts.LegendKwargs.Clone()})
	}

	layout := figure.Kwargs{}
	if opts.Title != "" {
		layout["title"] = opts.Title
	}
	if opts.XLabel != "" {
		layout["xlabel"] = opts.XLabel
	}
	if opts.YLabel != "" {
		if opts.YLabelRotation == nil {
			layout["ylabel"] = opts.YLabel
		} else {
			data = append(data, figure.Invoke{
				Key:    order + 1,
				Name:   "set_ylabel",
				Args:   []any{opts.YLabel},
				Kwargs: figure.Kwargs{"rotation": *opts.YLabelRotation},
			})
		}
	}
	if len(opts.XLim) > 0 {
		layout["xlim"] = opts.XLim
	}
	if len(opts.YLim) > 0 {
		layout["ylim"] = opts.YLim
	}

	return []figure.AxesStructure{{
		Data:   data,
		Layout: figure.Layout{Position: 111, Options: layout},
	}}, nil
}
