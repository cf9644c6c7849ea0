package gonumplot

import (
	"image/color"
	"math"

	"github.com/vk/figkit/figure"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const tickLength = 4

// draw renders the panel, its colorbar and its twins into c.
func (p *Panel) draw(c draw.Canvas) {
	if p.colorbar != nil {
		w := vg.Length(p.params.float("figure.colorbar.width", 0.05)) * c.Rectangle.Size().X
		strip := c
		strip.Min.X = c.Max.X - w
		c.Max.X -= w + vg.Points(8)
		p.colorbar.Draw(strip)
	}

	var right, top vg.Length
	margin := vg.Points(p.params.float("figure.twin.tickmargin", 36))
	for _, tw := range p.twins {
		if tw.axis == figure.TwinY {
			top = margin
		} else {
			right = margin
		}
	}
	c = draw.Crop(c, 0, -right, 0, -top)
	p.plot.Draw(c)
	if len(p.twins) == 0 {
		return
	}
	dc := p.plot.DataCanvas(c)
	for _, tw := range p.twins {
		tw.drawTwin(dc)
	}
}

// drawTwin draws a twin panel into the data area of its primary panel and
// adds the independent axis on the right (twinx) or top (twiny).
func (tw *Panel) drawTwin(dc draw.Canvas) {
	shared := tw.parent.plot
	if tw.axis == figure.TwinY {
		tw.plot.Y.Min, tw.plot.Y.Max = shared.Y.Min, shared.Y.Max
		tw.plot.Y.Scale = shared.Y.Scale
	} else {
		tw.plot.X.Min, tw.plot.X.Max = shared.X.Min, shared.X.Max
		tw.plot.X.Scale = shared.X.Scale
	}
	tw.plot.Draw(dc)
	tw.drawSideAxis(dc)
}

func (tw *Panel) drawSideAxis(dc draw.Canvas) {
	ax := &tw.plot.Y
	if tw.axis == figure.TwinY {
		ax = &tw.plot.X
	}
	lo, hi := ax.Min, ax.Max
	if hi <= lo || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return
	}
	line := draw.LineStyle{Color: tw.color("axes.edgecolor", color.Black), Width: vg.Points(0.5)}
	tickSty := textStyle(tw.params.float("font.size", 10)*0.9, tw.color("ytick.color", color.Black))
	labelSty := textStyle(tw.params.float("axes.labelsize", 10), tw.color("axes.labelcolor", color.Black))

	pos := func(v float64) vg.Length {
		f := vg.Length((v - lo) / (hi - lo))
		if tw.axis == figure.TwinY {
			return dc.Min.X + f*(dc.Max.X-dc.Min.X)
		}
		return dc.Min.Y + f*(dc.Max.Y-dc.Min.Y)
	}

	var ticks []plot.Tick
	if !tw.sideHidden {
		ticks = tw.sideTicker.Ticks(lo, hi)
	}
	var widest vg.Length
	if tw.axis == figure.TwinY {
		dc.StrokeLine2(line, dc.Min.X, dc.Max.Y, dc.Max.X, dc.Max.Y)
		tickSty.YAlign = text.YBottom
		for _, t := range ticks {
			if t.IsMinor() {
				continue
			}
			x := pos(t.Value)
			dc.StrokeLine2(line, x, dc.Max.Y, x, dc.Max.Y+vg.Points(tickLength))
			dc.FillText(tickSty, vg.Point{X: x, Y: dc.Max.Y + vg.Points(tickLength+2)}, t.Label)
			widest = max(widest, tickSty.Height(t.Label))
		}
		if tw.sideLabel != "" {
			labelSty.YAlign = text.YBottom
			pt := vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y + vg.Points(tickLength+4) + widest}
			dc.FillText(labelSty, pt, tw.sideLabel)
		}
		return
	}

	dc.StrokeLine2(line, dc.Max.X, dc.Min.Y, dc.Max.X, dc.Max.Y)
	tickSty.XAlign = text.XLeft
	for _, t := range ticks {
		if t.IsMinor() {
			continue
		}
		y := pos(t.Value)
		dc.StrokeLine2(line, dc.Max.X, y, dc.Max.X+vg.Points(tickLength), y)
		dc.FillText(tickSty, vg.Point{X: dc.Max.X + vg.Points(tickLength+2), Y: y}, t.Label)
		widest = max(widest, tickSty.Width(t.Label))
	}
	if tw.sideLabel != "" {
		labelSty.Rotation = -math.Pi / 2
		pt := vg.Point{X: dc.Max.X + vg.Points(tickLength+6) + widest, Y: (dc.Min.Y + dc.Max.Y) / 2}
		dc.FillText(labelSty, pt, tw.sideLabel)
	}
}
