package gonumplot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/plotutil"
)

// shortColors are the single-letter color codes.
var shortColors = map[string]color.Color{
	"b": color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"g": color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"r": color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"c": color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
	"m": color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	"y": color.RGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	"k": color.Black,
	"w": color.White,
}

// tabNames index the "tab:" colors into tab10.
var tabNames = map[string]int{
	"blue": 0, "orange": 1, "green": 2, "red": 3, "purple": 4,
	"brown": 5, "pink": 6, "gray": 7, "olive": 8, "cyan": 9,
}

// parseColor accepts color.Color values, CSS color names, "#rgb",
// "#rrggbb", "#rrggbbaa", single-letter codes and "C<n>" references into
// cycle.
func parseColor(v any, cycle []color.Color) (color.Color, error) {
	switch c := v.(type) {
	case color.Color:
		return c, nil
	case string:
		return parseColorString(c, cycle)
	}
	return nil, fmt.Errorf("unsupported color %T", v)
}

func parseColorString(s string, cycle []color.Color) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := shortColors[name]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if tab, ok := strings.CutPrefix(name, "tab:"); ok {
		if i, ok := tabNames[tab]; ok {
			return parseHex(tab10[i].(string)[1:])
		}
	}
	if strings.HasPrefix(name, "c") {
		if i, err := strconv.Atoi(name[1:]); err == nil && i >= 0 {
			if len(cycle) == 0 {
				return plotutil.Color(i), nil
			}
			return cycle[i%len(cycle)], nil
		}
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name[1:])
	}
	if g, err := strconv.ParseFloat(name, 64); err == nil && g >= 0 && g <= 1 {
		return color.Gray{Y: uint8(g * 255)}, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

func parseHex(h string) (color.Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("bad hex color %q", h)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad hex color %q: %w", h, err)
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// withAlpha returns c with its alpha replaced by a in [0, 1].
func withAlpha(c color.Color, a float64) color.Color {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(a * 255)
	return n
}

// parseCycle turns an axes.prop_cycle parameter into colors. Entries that
// do not parse are dropped; an empty result falls back to plotutil's
// default colors.
func parseCycle(v any) []color.Color {
	var out []color.Color
	switch s := v.(type) {
	case []any:
		for _, e := range s {
			if c, err := parseColor(e, nil); err == nil {
				out = append(out, c)
			}
		}
	case []string:
		for _, e := range s {
			if c, err := parseColorString(e, nil); err == nil {
				out = append(out, c)
			}
		}
	}
	if len(out) == 0 {
		out = append(out, plotutil.DefaultColors...)
	}
	return out
}
