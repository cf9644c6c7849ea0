package gonumplot

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/figkit/figure"
)

func requireFrac(t *testing.T, want, got frac) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestPlacement(t *testing.T) {
	t.Parallel()

	sp := subplotParamsOf(params(defaultParams))
	testCases := []struct {
		name string
		pos  figure.Position
		want frac
	}{
		{name: "single cell", pos: figure.SubplotCode(111), want: frac{0.125, 0.11, 0.775, 0.77}},
		{name: "top of two rows", pos: figure.SubplotCode(211), want: frac{0.125, 0.53, 0.775, 0.35}},
		{name: "bottom of two rows", pos: figure.SubplotCode(212), want: frac{0.125, 0.11, 0.775, 0.35}},
		{name: "rect passes through", pos: figure.Rect{0.1, 0.2, 0.3, 0.4}, want: frac{0.1, 0.2, 0.3, 0.4}},
		{
			name: "grid span covers both rows",
			pos:  figure.GridSpec{Rows: 2, Cols: 1, RowSpan: 2},
			want: frac{0.125, 0.11, 0.775, 0.77},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := placement(tc.pos, sp)
			require.NoError(t, err)
			requireFrac(t, tc.want, got)
		})
	}
}

func TestPlacement_OutOfRange(t *testing.T) {
	t.Parallel()

	sp := subplotParamsOf(params(defaultParams))
	for _, pos := range []figure.Position{
		figure.SubplotCode(120),
		figure.SubplotCode(215),
		figure.SubplotCode(11),
		figure.Rect{0, 0, 0, 1},
		figure.GridSpec{Rows: 2, Cols: 2, Row: 1, RowSpan: 2},
		figure.GridSpec{Rows: 0, Cols: 2},
	} {
		_, err := placement(pos, sp)
		require.Error(t, err, "position %s", pos)
	}
}

func TestSubplotParams_FollowStyle(t *testing.T) {
	t.Parallel()

	ps := params{"figure.subplot.left": 0, "figure.subplot.right": 1, "figure.subplot.bottom": 0, "figure.subplot.top": 1, "figure.subplot.wspace": 0}
	sp := subplotParamsOf(ps)

	requireFrac(t, frac{0.5, 0, 0.5, 1}, sp.cell(1, 2, 0, 1, 1, 1))
}
