package figure

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition reports a layout position of an unsupported type.
var ErrInvalidPosition = errors.New("invalid layout position")

// Position is a validated layout position: a SubplotCode, a Rect or a
// GridSpec.
type Position interface {
	isPosition()
	String() string
}

// SubplotCode is the three-digit rows/cols/index code, e.g. 111 or 212.
type SubplotCode int

func (SubplotCode) isPosition() {}

func (c SubplotCode) String() string { return fmt.Sprintf("%d", int(c)) }

// Split returns the rows, columns and 1-based index encoded in c.
func (c SubplotCode) Split() (rows, cols, index int) {
	n := int(c)
	return n / 100, (n / 10) % 10, n % 10
}

// Rect is an explicit [left, bottom, width, height] rectangle in figure
// fractions.
type Rect [4]float64

func (Rect) isPosition() {}

func (r Rect) String() string {
	return fmt.Sprintf("[%g %g %g %g]", r[0], r[1], r[2], r[3])
}

// GridSpec is the opaque grid handle. Row and Col are 0-based; a zero span
// means one cell.
type GridSpec struct {
	Rows, Cols int
	Row, Col   int
	RowSpan    int
	ColSpan    int
}

func (GridSpec) isPosition() {}

func (g GridSpec) String() string {
	return fmt.Sprintf("grid(%dx%d)[%d,%d]", g.Rows, g.Cols, g.Row, g.Col)
}

// Spans returns the row and column spans with zero normalized to one.
func (g GridSpec) Spans() (rows, cols int) {
	rows, cols = g.RowSpan, g.ColSpan
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// ParsePosition validates the type of a layout position. Only integers
// (subplot codes), four-element rectangles and grid specs are accepted.
// Value ranges are left to the backend.
func ParsePosition(v any) (Position, error) {
	switch p := v.(type) {
	case SubplotCode:
		return p, nil
	case int:
		return SubplotCode(p), nil
	case Rect:
		return p, nil
	case [4]float64:
		return Rect(p), nil
	case []float64:
		if len(p) == 4 {
			return Rect{p[0], p[1], p[2], p[3]}, nil
		}
		return nil, fmt.Errorf("%w: rectangle needs 4 values, got %d", ErrInvalidPosition, len(p))
	case GridSpec:
		return p, nil
	case *GridSpec:
		if p != nil {
			return *p, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidPosition, v)
}
