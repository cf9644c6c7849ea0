package gonumplot

import (
	"fmt"
	"math"

	"github.com/vk/figkit/internal/convert"
)

func toPair(v any) (float64, float64, error) {
	s, err := convert.Floats(v)
	if err != nil {
		return 0, 0, err
	}
	if len(s) != 2 {
		return 0, 0, fmt.Errorf("expected 2 values, got %d", len(s))
	}
	return s[0], s[1], nil
}

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

// indexes returns 0..n-1 as floats, the implicit x of a single-series plot.
func indexes(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// floatKw reads a numeric keyword, falling back to def when it is missing
// or not a number.
func floatKw(kw map[string]any, def float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := kw[k]; ok {
			if f, err := convert.Float(v); err == nil {
				return f
			}
		}
	}
	return def
}

func stringKw(kw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := kw[k]; ok {
			if s, ok := toString(v); ok {
				return s
			}
		}
	}
	return ""
}

func degrees(d float64) float64 { return d * math.Pi / 180 }
