package gonumplot

import (
	"fmt"

	"github.com/vk/figkit/figure"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// frac is a rectangle in figure fractions: left, bottom, width, height.
type frac [4]float64

// subplotParams are the figure margins and gaps used to lay out grid cells.
type subplotParams struct {
	left, right, bottom, top float64
	hspace, wspace           float64
}

func subplotParamsOf(p params) subplotParams {
	return subplotParams{
		left:   p.float("figure.subplot.left", 0.125),
		right:  p.float("figure.subplot.right", 0.9),
		bottom: p.float("figure.subplot.bottom", 0.11),
		top:    p.float("figure.subplot.top", 0.88),
		hspace: p.float("figure.subplot.hspace", 0.2),
		wspace: p.float("figure.subplot.wspace", 0.2),
	}
}

// cell returns the rectangle of the grid cells starting at row, col
// (0-based, rows counted from the top) and spanning rowSpan x colSpan.
// The gaps between cells are hspace and wspace times the mean cell size.
func (sp subplotParams) cell(rows, cols, row, col, rowSpan, colSpan int) frac {
	totW := sp.right - sp.left
	totH := sp.top - sp.bottom
	cellW := totW / (float64(cols) + sp.wspace*float64(cols-1))
	cellH := totH / (float64(rows) + sp.hspace*float64(rows-1))
	sepW := sp.wspace * cellW
	sepH := sp.hspace * cellH

	x0 := sp.left + float64(col)*(cellW+sepW)
	w := float64(colSpan)*cellW + float64(colSpan-1)*sepW
	y1 := sp.top - float64(row)*(cellH+sepH)
	h := float64(rowSpan)*cellH + float64(rowSpan-1)*sepH
	return frac{x0, y1 - h, w, h}
}

// placement converts a validated position into figure fractions.
func placement(pos figure.Position, sp subplotParams) (frac, error) {
	switch p := pos.(type) {
	case figure.SubplotCode:
		rows, cols, index := p.Split()
		if rows < 1 || cols < 1 || index < 1 || index > rows*cols {
			return frac{}, fmt.Errorf("subplot code %d out of range", int(p))
		}
		i := index - 1
		return sp.cell(rows, cols, i/cols, i%cols, 1, 1), nil
	case figure.Rect:
		if p[2] <= 0 || p[3] <= 0 {
			return frac{}, fmt.Errorf("rectangle %v has no area", p)
		}
		return frac(p), nil
	case figure.GridSpec:
		rs, cs := p.Spans()
		if p.Rows < 1 || p.Cols < 1 || p.Row < 0 || p.Col < 0 || p.Row+rs > p.Rows || p.Col+cs > p.Cols {
			return frac{}, fmt.Errorf("grid cell %s out of range", p)
		}
		return sp.cell(p.Rows, p.Cols, p.Row, p.Col, rs, cs), nil
	}
	return frac{}, fmt.Errorf("%w: %T", figure.ErrInvalidPosition, pos)
}

// within returns the part of c covered by f.
func within(c draw.Canvas, f frac) draw.Canvas {
	size := c.Rectangle.Size()
	minX := c.Min.X + vg.Length(f[0])*size.X
	minY := c.Min.Y + vg.Length(f[1])*size.Y
	return draw.Canvas{
		Canvas: c.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: minX, Y: minY},
			Max: vg.Point{X: minX + vg.Length(f[2])*size.X, Y: minY + vg.Length(f[3])*size.Y},
		},
	}
}
