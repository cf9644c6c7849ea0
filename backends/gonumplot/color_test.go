package gonumplot

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/plotutil"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	cycle := []color.Color{color.Black, color.White}
	testCases := []struct {
		in   any
		want color.Color
	}{
		{in: "r", want: shortColors["r"]},
		{in: "red", want: colornames.Red},
		{in: " Navy ", want: colornames.Navy},
		{in: "#ff0000", want: color.NRGBA{R: 0xff, A: 0xff}},
		{in: "#f00", want: color.NRGBA{R: 0xff, A: 0xff}},
		{in: "#00ff0080", want: color.NRGBA{G: 0xff, A: 0x80}},
		{in: "tab:orange", want: color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}},
		{in: "C1", want: color.White},
		{in: "C2", want: color.Black},
		{in: "0.5", want: color.Gray{Y: 127}},
		{in: color.Gray{Y: 3}, want: color.Gray{Y: 3}},
	}

	for _, tc := range testCases {
		got, err := parseColor(tc.in, cycle)
		require.NoError(t, err, "color %v", tc.in)
		require.Equal(t, tc.want, got, "color %v", tc.in)
	}
}

func TestParseColor_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []any{"not-a-color", "#12", "#gggggg", "1.5", 42} {
		_, err := parseColor(in, nil)
		require.Error(t, err, "color %v", in)
	}
}

func TestParseColor_CycleReferenceWithoutCycle(t *testing.T) {
	t.Parallel()

	got, err := parseColor("C3", nil)

	require.NoError(t, err)
	require.Equal(t, plotutil.Color(3), got)
}

func TestWithAlpha(t *testing.T) {
	t.Parallel()

	require.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 127}, withAlpha(color.White, 0.5))
	require.Equal(t, uint8(0), withAlpha(color.White, -1).(color.NRGBA).A)
	require.Equal(t, uint8(0xff), withAlpha(color.Black, 7).(color.NRGBA).A)
}

func TestParseCycle(t *testing.T) {
	t.Parallel()

	cycle := parseCycle(tab10)
	require.Len(t, cycle, 10)
	require.Equal(t, color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, cycle[0])

	require.Len(t, parseCycle([]string{"k", "bogus", "w"}), 2)
	require.Equal(t, plotutil.DefaultColors, parseCycle(nil))
	require.Equal(t, plotutil.DefaultColors, parseCycle([]any{"bogus"}))
}
