package gonumplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/convert"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Panel is one gonum plot placed on a figure. Twin panels share the
// primary panel's rectangle and are drawn into its data area.
type Panel struct {
	fig    *Figure
	pos    figure.Position
	rect   frac
	params params
	plot   *plot.Plot

	cycle   []color.Color
	next    int
	handles []handle
	grid    *plotter.Grid

	parent *Panel
	axis   figure.TwinAxis
	twins  []*Panel

	// Twin panels draw their own independent axis on the far side.
	sideLabel  string
	sideTicker plot.Ticker
	sideHidden bool

	colorbar *plot.Plot
}

type handle struct {
	label  string
	thumbs []plot.Thumbnailer
}

// Artist is the artifact returned for every drawn primitive.
type Artist struct {
	Verb     string
	Panel    *Panel
	Plotters []plot.Plotter
	// ColorMap is set for color-mapped primitives and is what a colorbar
	// is drawn from.
	ColorMap palette.ColorMap
}

func newPanel(fig *Figure, pos figure.Position, rect frac, ps params) *Panel {
	p := &Panel{
		fig:        fig,
		pos:        pos,
		rect:       rect,
		params:     ps,
		plot:       plot.New(),
		cycle:      parseCycle(ps["axes.prop_cycle"]),
		sideTicker: plot.DefaultTicks{},
	}
	pl := p.plot
	pl.BackgroundColor = p.color("axes.facecolor", color.White)

	fontSize := ps.float("font.size", 10)
	textColor := p.color("text.color", color.Black)
	pl.Title.TextStyle.Font.Size = vg.Points(ps.float("axes.titlesize", fontSize*1.2))
	pl.Title.TextStyle.Color = textColor
	pl.Legend.TextStyle.Font.Size = vg.Points(fontSize)
	pl.Legend.TextStyle.Color = textColor

	edge := p.color("axes.edgecolor", color.Black)
	labelColor := p.color("axes.labelcolor", color.Black)
	for _, ax := range []struct {
		a    *plot.Axis
		tick string
	}{{&pl.X, "xtick.color"}, {&pl.Y, "ytick.color"}} {
		ax.a.Label.TextStyle.Font.Size = vg.Points(ps.float("axes.labelsize", fontSize))
		ax.a.Label.TextStyle.Color = labelColor
		ax.a.Tick.Label.Font.Size = vg.Points(fontSize * 0.9)
		ax.a.Tick.Label.Color = p.color(ax.tick, color.Black)
		ax.a.Tick.LineStyle.Color = p.color(ax.tick, color.Black)
		ax.a.LineStyle.Color = edge
	}

	if ps.bool("axes.grid") {
		p.showGrid(nil)
	}
	return p
}

func (p *Panel) color(name string, def color.Color) color.Color {
	v, ok := p.params[name]
	if !ok {
		return def
	}
	c, err := parseColor(v, p.cycle)
	if err != nil {
		return def
	}
	return c
}

// Invoke calls the named drawing primitive on the panel.
func (p *Panel) Invoke(verb string, args []any, kw figure.Kwargs) (figure.Artifact, error) {
	fn, ok := panelVerbs[verb]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVerb, verb)
	}
	art, err := fn(p, args, kw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", verb, err)
	}
	if art == nil {
		art = &Artist{Verb: verb, Panel: p}
	}
	art.Verb = verb
	art.Panel = p
	return art, nil
}

// Twin creates a panel sharing axis with p. Only primary panels can be
// twinned.
func (p *Panel) Twin(axis figure.TwinAxis) (figure.Panel, error) {
	if p.parent != nil {
		return nil, errors.New("cannot twin a twin panel")
	}
	if axis != figure.TwinX && axis != figure.TwinY {
		return nil, fmt.Errorf("unknown twin axis %q", axis)
	}
	tw := newPanel(p.fig, p.pos, p.rect, p.fig.backend.styles.snapshot())
	tw.parent = p
	tw.axis = axis
	tw.plot.BackgroundColor = color.Transparent
	tw.plot.HideAxes()
	tw.plot.X.Padding = 0
	tw.plot.Y.Padding = 0
	p.twins = append(p.twins, tw)
	return tw, nil
}

// AdvanceColorCycle skips the next n automatic series colors.
func (p *Panel) AdvanceColorCycle(n int) {
	if n > 0 {
		p.next += n
	}
}

func (p *Panel) nextColor() color.Color {
	c := p.cycle[p.next%len(p.cycle)]
	p.next++
	return c
}

// seriesColor returns the explicit color in kw, or the next cycle color.
func (p *Panel) seriesColor(kw figure.Kwargs, fallback string) (color.Color, error) {
	for _, k := range []string{"color", "c"} {
		if v, ok := kw[k]; ok {
			c, err := parseColor(v, p.cycle)
			if err != nil {
				return nil, err
			}
			return p.alpha(c, kw), nil
		}
	}
	if fallback != "" {
		c, err := parseColorString(fallback, p.cycle)
		if err != nil {
			return nil, err
		}
		return p.alpha(c, kw), nil
	}
	return p.alpha(p.nextColor(), kw), nil
}

func (p *Panel) alpha(c color.Color, kw figure.Kwargs) color.Color {
	if v, ok := kw["alpha"]; ok {
		if a, err := convert.Float(v); err == nil {
			return withAlpha(c, a)
		}
	}
	return c
}

// addLabelled registers a legend handle when kw carries a label that does
// not start with an underscore.
func (p *Panel) addLabelled(kw figure.Kwargs, thumbs ...plot.Thumbnailer) {
	label := stringKw(kw, "label")
	if label == "" || strings.HasPrefix(label, "_") {
		return
	}
	p.handles = append(p.handles, handle{label: label, thumbs: thumbs})
}

func (p *Panel) showGrid(kw figure.Kwargs) {
	if p.grid == nil {
		p.grid = plotter.NewGrid()
		p.plot.Add(p.grid)
	}
	c := p.color("grid.color", color.Gray{Y: 0xb0})
	if v, ok := kw["color"]; ok {
		if pc, err := parseColor(v, p.cycle); err == nil {
			c = pc
		}
	}
	c = withAlpha(c, floatKw(kw, p.params.float("grid.alpha", 1), "alpha"))
	ls := draw.LineStyle{
		Color:  c,
		Width:  vg.Points(floatKw(kw, p.params.float("grid.linewidth", 0.8), "linewidth", "lw")),
		Dashes: dashes(stringKw(kw, "linestyle", "ls")),
	}
	which := stringKw(kw, "axis")
	p.grid.Vertical, p.grid.Horizontal = ls, ls
	switch which {
	case "x":
		p.grid.Horizontal.Width = 0
	case "y":
		p.grid.Vertical.Width = 0
	}
}

func (p *Panel) hideGrid() {
	if p.grid != nil {
		p.grid.Vertical.Width = 0
		p.grid.Horizontal.Width = 0
	}
}

// axisFor returns the gonum axis named "x" or "y".
func (p *Panel) axisFor(name string) *plot.Axis {
	if name == "x" {
		return &p.plot.X
	}
	return &p.plot.Y
}

// sideAxis reports whether name is the independent axis of a twin panel.
func (p *Panel) sideAxis(name string) bool {
	if p.parent == nil {
		return false
	}
	return (p.axis == figure.TwinX && name == "y") || (p.axis == figure.TwinY && name == "x")
}

func (p *Panel) setLabel(name, label string, kw figure.Kwargs) {
	if p.sideAxis(name) {
		p.sideLabel = label
		return
	}
	ax := p.axisFor(name)
	ax.Label.Text = label
	if v, ok := kw["fontsize"]; ok {
		if f, err := convert.Float(v); err == nil {
			ax.Label.TextStyle.Font.Size = vg.Points(f)
		}
	}
	if v, ok := kw["rotation"]; ok {
		if f, err := convert.Float(v); err == nil {
			ax.Label.TextStyle.Rotation = degrees(f)
			if name == "y" {
				// gonum turns the vertical label a quarter turn on its own.
				ax.Label.TextStyle.Rotation -= math.Pi / 2
			}
		}
	}
}

func (p *Panel) setLimits(name string, args []any) error {
	var lo, hi float64
	var err error
	switch len(args) {
	case 1:
		lo, hi, err = toPair(args[0])
	case 2:
		if lo, err = convert.Float(args[0]); err == nil {
			hi, err = convert.Float(args[1])
		}
	default:
		err = fmt.Errorf("expected limits, got %d arguments", len(args))
	}
	if err != nil {
		return err
	}
	if lo == hi {
		return fmt.Errorf("empty range [%g, %g]", lo, hi)
	}
	ax := p.axisFor(name)
	ax.Min, ax.Max = lo, hi
	return nil
}

func (p *Panel) setTickLabels(name string, labels []any) {
	if p.sideAxis(name) {
		p.sideHidden = len(labels) == 0
		return
	}
	ax := p.axisFor(name)
	if len(labels) == 0 {
		ax.Tick.Marker = blankTicks{Ticker: ax.Tick.Marker}
		return
	}
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = fmt.Sprint(l)
	}
	ax.Tick.Marker = labelTicks{Ticker: ax.Tick.Marker, labels: names}
}

func (p *Panel) setScale(name, scale string) error {
	ax := p.axisFor(name)
	switch scale {
	case "linear":
		ax.Scale = plot.LinearScale{}
		ax.Tick.Marker = plot.DefaultTicks{}
	case "log":
		ax.Scale = plot.LogScale{}
		ax.Tick.Marker = plot.LogTicks{}
	default:
		return fmt.Errorf("unsupported scale %q", scale)
	}
	return nil
}

func (p *Panel) setLegendLoc(loc string) {
	top, left := true, false
	switch strings.ToLower(loc) {
	case "upper left", "2":
		top, left = true, true
	case "lower left", "3":
		top, left = false, true
	case "lower right", "4":
		top, left = false, false
	case "center left":
		top, left = true, true
	}
	p.plot.Legend.Top = top
	p.plot.Legend.Left = left
}

// textStyle returns a text style of the given size and color with the
// plot package's default font and handler.
func textStyle(size float64, c color.Color) text.Style {
	return text.Style{
		Color:   c,
		Font:    font.From(plot.DefaultFont, vg.Points(size)),
		Handler: plot.DefaultTextHandler,
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
	}
}

// blankTicks keeps the tick positions of Ticker and drops their labels.
type blankTicks struct {
	plot.Ticker
}

func (b blankTicks) Ticks(min, max float64) []plot.Tick {
	ticks := b.Ticker.Ticks(min, max)
	out := make([]plot.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = plot.Tick{Value: t.Value}
	}
	return out
}

// labelTicks relabels the major ticks of Ticker in order. Ticks past the
// end of labels are left blank.
type labelTicks struct {
	plot.Ticker
	labels []string
}

func (l labelTicks) Ticks(min, max float64) []plot.Tick {
	ticks := l.Ticker.Ticks(min, max)
	out := make([]plot.Tick, 0, len(ticks))
	i := 0
	for _, t := range ticks {
		if t.IsMinor() {
			out = append(out, t)
			continue
		}
		label := ""
		if i < len(l.labels) {
			label = l.labels[i]
		}
		i++
		out = append(out, plot.Tick{Value: t.Value, Label: label})
	}
	return out
}
