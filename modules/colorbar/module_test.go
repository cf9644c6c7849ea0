package colorbar_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/testutil"
	"github.com/vk/figkit/modules/colorbar"
)

func build(t *testing.T, kw figure.Kwargs) (*testutil.Figure, *testutil.SafeBuffer) {
	t.Helper()
	ctx, logs := testutil.LogContext(t)
	e := figure.New(testutil.NewBackend())
	fig, err := e.BuildFigure(ctx, "cb", []figure.AxesStructure{{
		Data: []figure.Instruction{
			figure.Invoke{Key: 1, Name: "pcolormesh"},
			figure.Twin{Key: 2, Axis: figure.TwinX},
			figure.Invoke{Key: 3, Name: "contourf"},
			figure.Revise{Key: 4, Fn: colorbar.Revise, Kwargs: kw},
		},
		Layout: figure.Layout{Position: 111},
	}}, nil)
	require.NoError(t, err)
	return fig.(*testutil.Figure), logs
}

func TestRevise_DefaultsToFirstArtifact(t *testing.T) {
	t.Parallel()

	// --- Act ---
	fig, _ := build(t, nil)

	// --- Assert ---
	require.Len(t, fig.Calls, 1)
	call := fig.Calls[0]
	require.Equal(t, "colorbar", call.Verb)
	require.Equal(t, "pcolormesh", call.Args[0].(*testutil.Artist).Call.Verb)
	require.Empty(t, call.Kwargs)
}

func TestRevise_Options(t *testing.T) {
	t.Parallel()

	fig, _ := build(t, figure.Kwargs{"artifact": 3, "ax": float64(2), "label": "Z"})

	require.Len(t, fig.Calls, 1)
	call := fig.Calls[0]
	require.Equal(t, "contourf", call.Args[0].(*testutil.Artist).Call.Verb)
	require.Same(t, fig.Panels[1], call.Kwargs["ax"])
	require.Equal(t, "Z", call.Kwargs["label"])
}

func TestRevise_Errors(t *testing.T) {
	t.Parallel()

	for _, kw := range []figure.Kwargs{
		{"artifact": 9},
		{"artifact": 1.5},
		{"ax": 7},
	} {
		fig, logs := build(t, kw)
		require.Empty(t, fig.Calls)
		require.Contains(t, logs.String(), "colorbar:")
	}
}
