package gonumplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/convert"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type verbFunc func(p *Panel, args []any, kw figure.Kwargs) (*Artist, error)

// panelVerbs are the drawing primitives a panel understands.
var panelVerbs map[string]verbFunc

func init() {
	panelVerbs = map[string]verbFunc{
		"plot":            verbPlot,
		"step":            verbStep,
		"scatter":         verbScatter,
		"bar":             verbBar,
		"barh":            verbBarh,
		"hist":            verbHist,
		"fill_between":    verbFillBetween,
		"axhline":         verbRefLine(true),
		"axvline":         verbRefLine(false),
		"text":            verbText,
		"annotate":        verbAnnotate,
		"legend":          verbLegend,
		"grid":            verbGrid,
		"pcolormesh":      verbPcolormesh,
		"pcolor":          verbPcolormesh,
		"imshow":          verbPcolormesh,
		"contourf":        verbContourf,
		"contour":         verbContour,
		"plot_surface":    verbUnsupported,
		"set_title":       verbSetTitle,
		"set_xlabel":      verbSetLabel("x"),
		"set_ylabel":      verbSetLabel("y"),
		"set_xlim":        verbSetLim("x"),
		"set_ylim":        verbSetLim("y"),
		"set_xticklabels": verbSetTickLabels("x"),
		"set_yticklabels": verbSetTickLabels("y"),
		"set_xscale":      verbSetScale("x"),
		"set_yscale":      verbSetScale("y"),
		"set_facecolor":   verbSetFacecolor,
		"set":             verbSet,
	}
}

func verbUnsupported(*Panel, []any, figure.Kwargs) (*Artist, error) {
	return nil, ErrUnsupported
}

// lineSpec is the parsed form of a format string such as "r--o".
type lineSpec struct {
	color  string
	dashes string
	marker string
}

func parseFormat(s string) lineSpec {
	var ls lineSpec
	for i := 0; i < len(s); i++ {
		if i+1 < len(s) && (s[i:i+2] == "--" || s[i:i+2] == "-.") {
			ls.dashes = s[i : i+2]
			i++
			continue
		}
		ch := s[i : i+1]
		switch {
		case ch == "-" || ch == ":":
			ls.dashes = ch
		case strings.Contains("bgrcmykw", ch):
			ls.color = ch
		case strings.Contains("o.sx+^vD*", ch):
			ls.marker = ch
		}
	}
	if ls.dashes == "" && ls.marker == "" {
		ls.dashes = "-"
	}
	if ls.dashes == "" {
		ls.dashes = "none"
	}
	return ls
}

func dashes(style string) []vg.Length {
	switch style {
	case "--", "dashed":
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case ":", "dotted":
		return []vg.Length{vg.Points(1), vg.Points(2)}
	case "-.", "dashdot":
		return []vg.Length{vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)}
	}
	return nil
}

func glyphShape(marker string) draw.GlyphDrawer {
	switch marker {
	case "s":
		return draw.BoxGlyph{}
	case "^":
		return draw.TriangleGlyph{}
	case "v":
		return draw.PyramidGlyph{}
	case "x":
		return draw.CrossGlyph{}
	case "+":
		return draw.PlusGlyph{}
	case "D":
		return draw.SquareGlyph{}
	case "*":
		return draw.RingGlyph{}
	}
	return draw.CircleGlyph{}
}

// xyArgs splits args into x and y: (y) uses the indexes as x.
func xyArgs(args []any) (plotter.XYs, error) {
	var xs, ys []float64
	var err error
	switch len(args) {
	case 1:
		if ys, err = convert.Floats(args[0]); err != nil {
			return nil, fmt.Errorf("y: %w", err)
		}
		xs = indexes(len(ys))
	case 2:
		if xs, err = convert.Floats(args[0]); err != nil {
			return nil, fmt.Errorf("x: %w", err)
		}
		if ys, err = convert.Floats(args[1]); err != nil {
			return nil, fmt.Errorf("y: %w", err)
		}
	default:
		return nil, fmt.Errorf("expected (y) or (x, y), got %d arguments", len(args))
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("x and y must have the same length, got %d and %d", len(xs), len(ys))
	}
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X, xys[i].Y = xs[i], ys[i]
	}
	return xys, nil
}

func verbPlot(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	return p.line(args, kw, plotter.NoStep)
}

func verbStep(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	step := plotter.PreStep
	switch stringKw(kw, "where") {
	case "post":
		step = plotter.PostStep
	case "mid":
		step = plotter.MidStep
	}
	return p.line(args, kw, step)
}

func (p *Panel) line(args []any, kw figure.Kwargs, step plotter.StepKind) (*Artist, error) {
	spec := lineSpec{dashes: "-"}
	if n := len(args); n > 0 {
		if s, ok := args[n-1].(string); ok {
			spec = parseFormat(s)
			args = args[:n-1]
		}
	}
	if ls := stringKw(kw, "linestyle", "ls"); ls != "" {
		spec.dashes = ls
	}
	if m := stringKw(kw, "marker"); m != "" {
		spec.marker = m
	}
	xys, err := xyArgs(args)
	if err != nil {
		return nil, err
	}
	c, err := p.seriesColor(kw, spec.color)
	if err != nil {
		return nil, err
	}

	art := &Artist{}
	var thumbs []plot.Thumbnailer
	if !strings.EqualFold(spec.dashes, "none") && spec.dashes != "" {
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		l.LineStyle = draw.LineStyle{
			Color:  c,
			Width:  vg.Points(floatKw(kw, p.params.float("lines.linewidth", 1.5), "linewidth", "lw")),
			Dashes: dashes(spec.dashes),
		}
		l.StepStyle = step
		art.Plotters = append(art.Plotters, l)
		thumbs = append(thumbs, l)
	}
	if spec.marker != "" {
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  c,
			Radius: vg.Points(floatKw(kw, p.params.float("lines.markersize", 3), "markersize", "ms")),
			Shape:  glyphShape(spec.marker),
		}
		art.Plotters = append(art.Plotters, s)
		thumbs = append(thumbs, s)
	}
	for _, pl := range art.Plotters {
		p.plot.Add(pl)
	}
	p.addLabelled(kw, thumbs...)
	return art, nil
}

func verbScatter(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	xys, err := xyArgs(args)
	if err != nil {
		return nil, err
	}
	c, err := p.seriesColor(kw, "")
	if err != nil {
		return nil, err
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	// s is a marker area in points squared.
	radius := math.Sqrt(floatKw(kw, 36, "s")) / 2
	s.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(radius), Shape: glyphShape(stringKw(kw, "marker"))}
	p.plot.Add(s)
	p.addLabelled(kw, s)
	return &Artist{Plotters: []plot.Plotter{s}}, nil
}

func verbBar(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	return p.bars(args, kw, false)
}

func verbBarh(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	return p.bars(args, kw, true)
}

// bars draws one rectangle per value, centered on its position, in data
// coordinates.
func (p *Panel) bars(args []any, kw figure.Kwargs, horizontal bool) (*Artist, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected (x, height), got %d arguments", len(args))
	}
	pos, err := convert.Floats(args[0])
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	heights, err := convert.Floats(args[1])
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	if len(pos) != len(heights) {
		return nil, fmt.Errorf("x and height must have the same length, got %d and %d", len(pos), len(heights))
	}
	if len(pos) == 0 {
		return nil, fmt.Errorf("no bars to draw")
	}
	c, err := p.seriesColor(kw, "")
	if err != nil {
		return nil, err
	}
	width := floatKw(kw, 0.8, "width", "height")
	bottom := floatKw(kw, 0, "bottom", "left")

	rings := make([]plotter.XYer, len(pos))
	for i := range pos {
		lo, hi := pos[i]-width/2, pos[i]+width/2
		top := bottom + heights[i]
		ring := plotter.XYs{{X: lo, Y: bottom}, {X: hi, Y: bottom}, {X: hi, Y: top}, {X: lo, Y: top}}
		if horizontal {
			for j := range ring {
				ring[j].X, ring[j].Y = ring[j].Y, ring[j].X
			}
		}
		rings[i] = ring
	}
	poly, err := plotter.NewPolygon(rings...)
	if err != nil {
		return nil, err
	}
	poly.Color = c
	poly.LineStyle.Width = 0
	p.plot.Add(poly)
	p.addLabelled(kw, poly)
	return &Artist{Plotters: []plot.Plotter{poly}}, nil
}

func verbHist(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected (values), got %d arguments", len(args))
	}
	vals, err := convert.Floats(args[0])
	if err != nil {
		return nil, err
	}
	c, err := p.seriesColor(kw, "")
	if err != nil {
		return nil, err
	}
	bins := int(floatKw(kw, 10, "bins"))
	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return nil, err
	}
	if density, _ := convert.Bool(kw["density"]); density {
		h.Normalize(1)
	}
	h.FillColor = c
	h.LineStyle.Color = c
	p.plot.Add(h)
	p.addLabelled(kw, h)
	return &Artist{Plotters: []plot.Plotter{h}}, nil
}

func verbFillBetween(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("expected (x, y1[, y2]), got %d arguments", len(args))
	}
	xs, err := convert.Floats(args[0])
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y1, err := convert.Floats(args[1])
	if err != nil {
		return nil, fmt.Errorf("y1: %w", err)
	}
	y2 := make([]float64, len(xs))
	if len(args) == 3 {
		if f, err := convert.Float(args[2]); err == nil {
			for i := range y2 {
				y2[i] = f
			}
		} else if y2, err = convert.Floats(args[2]); err != nil {
			return nil, fmt.Errorf("y2: %w", err)
		}
	}
	if len(y1) != len(xs) || len(y2) != len(xs) {
		return nil, fmt.Errorf("x, y1 and y2 must have the same length")
	}
	c, err := p.seriesColor(kw, "")
	if err != nil {
		return nil, err
	}
	ring := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		ring = append(ring, plotter.XY{X: xs[i], Y: y1[i]})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: xs[i], Y: y2[i]})
	}
	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	poly.Color = c
	poly.LineStyle.Width = 0
	p.plot.Add(poly)
	p.addLabelled(kw, poly)
	return &Artist{Plotters: []plot.Plotter{poly}}, nil
}

func verbRefLine(horizontal bool) verbFunc {
	return func(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
		v := 0.0
		if len(args) > 0 {
			f, err := convert.Float(args[0])
			if err != nil {
				return nil, err
			}
			v = f
		}
		c, err := p.seriesColor(kw, "")
		if err != nil {
			return nil, err
		}
		r := refLine{
			horizontal: horizontal,
			value:      v,
			style: draw.LineStyle{
				Color:  c,
				Width:  vg.Points(floatKw(kw, p.params.float("lines.linewidth", 1.5), "linewidth", "lw")),
				Dashes: dashes(stringKw(kw, "linestyle", "ls")),
			},
		}
		p.plot.Add(r)
		p.addLabelled(kw, r)
		return &Artist{Plotters: []plot.Plotter{r}}, nil
	}
}

func verbText(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("expected (x, y, text), got %d arguments", len(args))
	}
	x, err := convert.Float(args[0])
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := convert.Float(args[1])
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	return p.label(x, y, fmt.Sprint(args[2]), kw)
}

func verbAnnotate(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected (text, xy), got %d arguments", len(args))
	}
	x, y, err := toPair(args[1])
	if err != nil {
		return nil, fmt.Errorf("xy: %w", err)
	}
	return p.label(x, y, fmt.Sprint(args[0]), kw)
}

func (p *Panel) label(x, y float64, s string, kw figure.Kwargs) (*Artist, error) {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{s},
	})
	if err != nil {
		return nil, err
	}
	c := p.color("text.color", color.Black)
	if v, ok := kw["color"]; ok {
		if c, err = parseColor(v, p.cycle); err != nil {
			return nil, err
		}
	}
	sty := textStyle(floatKw(kw, p.params.float("font.size", 10), "fontsize", "size"), c)
	sty.XAlign, sty.YAlign = text.XLeft, text.YBottom
	for i := range labels.TextStyle {
		labels.TextStyle[i] = sty
	}
	p.plot.Add(labels)
	return &Artist{Plotters: []plot.Plotter{labels}}, nil
}

func verbLegend(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	if len(p.handles) == 0 {
		p.fig.backend.logger.Warn("No artists with labels found to put in legend.", "figure", p.fig.id)
		return &Artist{}, nil
	}
	sty := p.plot.Legend.TextStyle
	p.plot.Legend = plot.NewLegend()
	p.plot.Legend.TextStyle = sty
	if v, ok := kw["fontsize"]; ok {
		if f, err := convert.Float(v); err == nil {
			p.plot.Legend.TextStyle.Font.Size = vg.Points(f)
		}
	}
	loc := stringKw(kw, "loc")
	if loc == "" {
		loc = p.params.string("legend.loc", "best")
	}
	p.setLegendLoc(loc)
	for _, h := range p.handles {
		p.plot.Legend.Add(h.label, h.thumbs...)
	}
	return &Artist{}, nil
}

func verbGrid(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	visible := true
	if len(args) > 0 {
		b, ok := convert.Bool(args[0])
		if !ok {
			return nil, fmt.Errorf("expected a boolean, got %T", args[0])
		}
		visible = b
	}
	if v, ok := convert.Bool(kw["visible"]); ok {
		visible = v
	}
	if !visible {
		p.hideGrid()
		return &Artist{}, nil
	}
	p.showGrid(kw)
	return &Artist{Plotters: []plot.Plotter{p.grid}}, nil
}

func verbSetTitle(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected (title), got %d arguments", len(args))
	}
	p.plot.Title.Text = fmt.Sprint(args[0])
	if v, ok := kw["fontsize"]; ok {
		if f, err := convert.Float(v); err == nil {
			p.plot.Title.TextStyle.Font.Size = vg.Points(f)
		}
	}
	return nil, nil
}

func verbSetLabel(axis string) verbFunc {
	return func(p *Panel, args []any, kw figure.Kwargs) (*Artist, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected (label), got %d arguments", len(args))
		}
		p.setLabel(axis, fmt.Sprint(args[0]), kw)
		return nil, nil
	}
}

func verbSetLim(axis string) verbFunc {
	return func(p *Panel, args []any, _ figure.Kwargs) (*Artist, error) {
		return nil, p.setLimits(axis, args)
	}
}

func verbSetTickLabels(axis string) verbFunc {
	return func(p *Panel, args []any, _ figure.Kwargs) (*Artist, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected (labels), got %d arguments", len(args))
		}
		labels, ok := args[0].([]any)
		if !ok {
			if ss, isStrings := args[0].([]string); isStrings {
				for _, s := range ss {
					labels = append(labels, s)
				}
			} else if args[0] != nil {
				return nil, fmt.Errorf("expected a list of labels, got %T", args[0])
			}
		}
		p.setTickLabels(axis, labels)
		return nil, nil
	}
}

func verbSetScale(axis string) verbFunc {
	return func(p *Panel, args []any, _ figure.Kwargs) (*Artist, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected (scale), got %d arguments", len(args))
		}
		return nil, p.setScale(axis, fmt.Sprint(args[0]))
	}
}

func verbSetFacecolor(p *Panel, args []any, _ figure.Kwargs) (*Artist, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected (color), got %d arguments", len(args))
	}
	c, err := parseColor(args[0], p.cycle)
	if err != nil {
		return nil, err
	}
	p.plot.BackgroundColor = c
	return nil, nil
}

// verbSet applies layout options, the keyword form of the setters.
func verbSet(p *Panel, _ []any, kw figure.Kwargs) (*Artist, error) {
	return nil, p.applyOptions(kw)
}

// refLine is a horizontal or vertical line across the whole data area.
type refLine struct {
	horizontal bool
	value      float64
	style      draw.LineStyle
}

func (r refLine) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	if r.horizontal {
		y := trY(r.value)
		c.StrokeLine2(r.style, c.Min.X, y, c.Max.X, y)
		return
	}
	x := trX(r.value)
	c.StrokeLine2(r.style, x, c.Min.Y, x, c.Max.Y)
}

// DataRange includes the line's value on its own axis only.
func (r refLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	inf := math.Inf(1)
	if r.horizontal {
		return inf, -inf, r.value, r.value
	}
	return r.value, r.value, inf, -inf
}

func (r refLine) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(r.style, c.Min.X, y, c.Max.X, y)
}
