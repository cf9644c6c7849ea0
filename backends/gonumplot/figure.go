package gonumplot

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/convert"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure is a canvas of panels. Its size, margins and background are
// fixed by the style active when it was created.
type Figure struct {
	id      string
	backend *Backend
	params  params
	panels  []*Panel

	suptitle     string
	suptitleSize float64
	closed       bool
}

// ID returns the name the figure is registered under.
func (f *Figure) ID() string { return f.id }

// Panels returns the primary panels in the order they were added.
func (f *Figure) Panels() []*Panel { return append([]*Panel(nil), f.panels...) }

// AddPanel creates a panel at pos. Layout options in kw are applied to the
// new panel; an unknown option rejects the panel.
func (f *Figure) AddPanel(pos figure.Position, kw figure.Kwargs) (figure.Panel, error) {
	if f.closed {
		return nil, fmt.Errorf("figure %q is closed", f.id)
	}
	rect, err := placement(pos, subplotParamsOf(f.params))
	if err != nil {
		return nil, err
	}
	p := newPanel(f, pos, rect, f.backend.styles.snapshot())
	if err := p.applyOptions(kw); err != nil {
		return nil, err
	}
	f.panels = append(f.panels, p)
	return p, nil
}

// Invoke runs a figure-level verb: suptitle, colorbar, subplots_adjust or
// set_size_inches.
func (f *Figure) Invoke(verb string, args []any, kw figure.Kwargs) (figure.Artifact, error) {
	switch verb {
	case "suptitle":
		if len(args) != 1 {
			return nil, fmt.Errorf("suptitle: expected (title), got %d arguments", len(args))
		}
		f.suptitle = fmt.Sprint(args[0])
		f.suptitleSize = floatKw(kw, f.params.float("figure.titlesize", 14), "fontsize", "size")
		return &Artist{Verb: verb}, nil
	case "colorbar":
		return f.colorbar(args, kw)
	case "subplots_adjust":
		for _, k := range []string{"left", "right", "bottom", "top", "hspace", "wspace"} {
			if v, ok := kw[k]; ok {
				f.params["figure.subplot."+k] = v
			}
		}
		return &Artist{Verb: verb}, f.relayout()
	case "set_size_inches":
		w, h, err := f.sizeArgs(args)
		if err != nil {
			return nil, fmt.Errorf("set_size_inches: %w", err)
		}
		f.params["figure.figsize"] = []any{w, h}
		return &Artist{Verb: verb}, nil
	}
	return nil, fmt.Errorf("%w: figure verb %q", ErrUnknownVerb, verb)
}

func (f *Figure) sizeArgs(args []any) (float64, float64, error) {
	switch len(args) {
	case 1:
		return toPair(args[0])
	case 2:
		w, err := convert.Float(args[0])
		if err != nil {
			return 0, 0, err
		}
		h, err := convert.Float(args[1])
		return w, h, err
	}
	return 0, 0, fmt.Errorf("expected (w, h), got %d arguments", len(args))
}

// colorbar attaches a colorbar for a color-mapped artist to the panel in
// kw["ax"], or to the panel the artist was drawn on.
func (f *Figure) colorbar(args []any, kw figure.Kwargs) (figure.Artifact, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("colorbar: expected (mappable), got %d arguments", len(args))
	}
	art, ok := args[0].(*Artist)
	if !ok || art == nil {
		return nil, fmt.Errorf("colorbar: mappable must be an artist, got %T", args[0])
	}
	if art.ColorMap == nil {
		return nil, fmt.Errorf("colorbar: %s artist is not color-mapped", art.Verb)
	}
	target := art.Panel
	if ax, ok := kw["ax"].(*Panel); ok && ax != nil {
		target = ax
	}
	if target == nil {
		return nil, fmt.Errorf("colorbar: no panel to attach to")
	}
	if target.parent != nil {
		target = target.parent
	}

	cb := &plotter.ColorBar{ColorMap: art.ColorMap, Vertical: true}
	cbp := plot.New()
	cbp.Add(cb)
	cbp.HideX()
	cbp.Y.Tick.Label.Font.Size = vg.Points(target.params.float("font.size", 10) * 0.9)
	cbp.Y.Label.Text = stringKw(kw, "label")
	target.colorbar = cbp
	return &Artist{Verb: "colorbar", Panel: target, Plotters: []plot.Plotter{cb}, ColorMap: art.ColorMap}, nil
}

// relayout recomputes grid-placed panels after the margins changed.
func (f *Figure) relayout() error {
	sp := subplotParamsOf(f.params)
	for _, p := range f.panels {
		if _, ok := p.pos.(figure.Rect); ok {
			continue
		}
		rect, err := placement(p.pos, sp)
		if err != nil {
			return err
		}
		p.rect = rect
		for _, tw := range p.twins {
			tw.rect = rect
		}
	}
	return nil
}

// size returns the figure size in inches.
func (f *Figure) size() (vg.Length, vg.Length) {
	w, h := 6.4, 4.8
	if s, err := convert.Floats(f.params["figure.figsize"]); err == nil && len(s) == 2 && s[0] > 0 && s[1] > 0 {
		w, h = s[0], s[1]
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

func (f *Figure) render(c draw.Canvas) {
	bg := color.Color(color.White)
	if v, ok := f.params["figure.facecolor"]; ok {
		if pc, err := parseColor(v, nil); err == nil {
			bg = pc
		}
	}
	c.SetColor(bg)
	c.Fill(c.Rectangle.Path())

	for _, p := range f.panels {
		p.draw(within(c, p.rect))
	}
	if f.suptitle != "" {
		textColor := color.Color(color.Black)
		if v, ok := f.params["text.color"]; ok {
			if pc, err := parseColor(v, nil); err == nil {
				textColor = pc
			}
		}
		sty := textStyle(f.suptitleSize, textColor)
		sty.YAlign = text.YTop
		pt := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: c.Max.Y - vg.Points(6)}
		c.FillText(sty, pt, f.suptitle)
	}
}

// canvas returns a canvas of the given size writing format. Raster formats
// honor dpi.
func canvas(w, h vg.Length, format string, dpi float64) (vg.CanvasWriterTo, error) {
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(int(dpi)))
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: img}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: img}, nil
		}
		return vgimg.TiffCanvas{Canvas: img}, nil
	}
	return draw.NewFormattedCanvas(w, h, format)
}

// encode renders the figure in format.
func (f *Figure) encode(format string, kw figure.Kwargs) ([]byte, error) {
	w, h := f.size()
	dpi := floatKw(kw, f.params.float("figure.dpi", 100), "dpi")
	if dpi <= 0 {
		return nil, fmt.Errorf("invalid dpi %v", dpi)
	}
	cw, err := canvas(w, h, format, dpi)
	if err != nil {
		return nil, err
	}
	f.render(draw.New(cw))
	var buf bytes.Buffer
	if _, err := cw.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Export writes the figure to path. The format follows the extension;
// kw["format"] overrides it and kw["dpi"] sets the raster resolution.
func (f *Figure) Export(path string, kw figure.Kwargs) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if v := stringKw(kw, "format"); v != "" {
		format = strings.ToLower(v)
	}
	if format == "" {
		format = f.params.string("savefig.format", "png")
		path += "." + format
	}
	data, err := f.encode(format, kw)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}
	f.backend.logger.Debug("Figure exported.", "figure", f.id, "path", path, "bytes", len(data))
	return nil
}

// Display shows the figure the way the backend's mode says.
func (f *Figure) Display() (any, error) {
	return f.backend.display(f)
}

// Close unregisters the figure. Closing twice is a no-op.
func (f *Figure) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.backend.forget(f)
	return nil
}

// Clear drops every panel and the suptitle.
func (f *Figure) Clear() {
	f.panels = nil
	f.suptitle = ""
}
