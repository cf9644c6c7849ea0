package figure_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/figkit/figure"
)

func TestParsePosition(t *testing.T) {
	t.Parallel()

	grid := figure.GridSpec{Rows: 12, Cols: 1, Row: 3}

	cases := []struct {
		name string
		in   any
		want figure.Position
	}{
		{"int code", 212, figure.SubplotCode(212)},
		{"typed code", figure.SubplotCode(111), figure.SubplotCode(111)},
		{"rect", figure.Rect{0.1, 0.1, 0.8, 0.8}, figure.Rect{0.1, 0.1, 0.8, 0.8}},
		{"array", [4]float64{0, 0, 1, 1}, figure.Rect{0, 0, 1, 1}},
		{"slice", []float64{0.2, 0.3, 0.4, 0.5}, figure.Rect{0.2, 0.3, 0.4, 0.5}},
		{"grid", grid, grid},
		{"grid pointer", &grid, grid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := figure.ParsePosition(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParsePosition_Invalid(t *testing.T) {
	t.Parallel()

	var nilGrid *figure.GridSpec
	for _, in := range []any{"abc", nil, 1.5, []float64{1, 2, 3}, []int{1, 2, 3, 4}, nilGrid} {
		_, err := figure.ParsePosition(in)
		require.ErrorIs(t, err, figure.ErrInvalidPosition, "input %#v", in)
	}
}

func TestSubplotCode_Split(t *testing.T) {
	t.Parallel()

	rows, cols, index := figure.SubplotCode(312).Split()
	require.Equal(t, 3, rows)
	require.Equal(t, 1, cols)
	require.Equal(t, 2, index)
}

func TestGridSpec_Spans(t *testing.T) {
	t.Parallel()

	r, c := figure.GridSpec{Rows: 2, Cols: 2}.Spans()
	require.Equal(t, 1, r)
	require.Equal(t, 1, c)

	r, c = figure.GridSpec{Rows: 2, Cols: 2, RowSpan: 2}.Spans()
	require.Equal(t, 2, r)
	require.Equal(t, 1, c)
}
