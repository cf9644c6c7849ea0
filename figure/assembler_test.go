package figure_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/testutil"
)

func TestBuildFigure_BuildsStructuresInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, logs := testutil.LogContext(t)
	b := testutil.NewBackend()
	e := figure.New(b)
	structures := []figure.AxesStructure{
		{Data: []figure.Instruction{figure.Invoke{Key: 1, Name: "plot"}}, Layout: figure.Layout{Position: 311}},
		{Data: []figure.Instruction{figure.Invoke{Key: 1, Name: "bar"}}, Layout: figure.Layout{Position: 312}},
		{Data: []figure.Instruction{figure.Invoke{Key: 1, Name: "hist"}}, Layout: figure.Layout{Position: 313}},
	}

	// --- Act ---
	fig, err := e.BuildFigure(ctx, "ordered", structures, nil)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "ordered", fig.ID())
	rec := fig.(*testutil.Figure)
	require.Len(t, rec.Panels, 3)
	for i, want := range []string{"plot", "bar", "hist"} {
		require.Equal(t, []string{want}, rec.Panels[i].Verbs())
	}
	require.Contains(t, logs.String(), "figure=ordered")
	require.Contains(t, logs.String(), "Figure built.")
}

func TestBuildFigure_GeneratesID(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.LogContext(t)
	e := figure.New(testutil.NewBackend())

	a, err := e.BuildFigure(ctx, "", nil, nil)
	require.NoError(t, err)
	c, err := e.BuildFigure(ctx, "", nil, nil)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(a.ID(), "figure-"))
	require.NotEqual(t, a.ID(), c.ID())
}

func TestBuildFigure_FigureStyleWrapsCreation(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, _ := testutil.LogContext(t)
	b := testutil.NewBackend()
	base := figure.StyleParams{"figure.dpi": 100}
	e := figure.New(b, figure.WithBaseStyle(figure.StyleSpec{base}))
	figStyle := figure.StyleParams{"figure.subplot.hspace": 0.1}

	// --- Act ---
	fig, err := e.BuildFigure(ctx, "styled", []figure.AxesStructure{{Layout: figure.Layout{Position: 111}}}, figure.StyleSpec{figStyle})

	// --- Assert ---
	require.NoError(t, err)
	rec := fig.(*testutil.Figure)
	require.Equal(t, 1, rec.StyleDepth)
	require.Equal(t, figure.StyleSpec{base, figStyle}, rec.Active)
	require.Equal(t, 0, b.Styler.Depth())
}

func TestBuildFigure_CreationFailure(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.LogContext(t)
	b := testutil.NewBackend()
	b.FailFigure = errors.New("out of canvases")
	e := figure.New(b)

	fig, err := e.BuildFigure(ctx, "broken", []figure.AxesStructure{{Layout: figure.Layout{Position: 111}}}, nil)

	require.Nil(t, fig)
	require.ErrorContains(t, err, "out of canvases")
	require.ErrorContains(t, err, `"broken"`)
	require.Equal(t, 0, b.Styler.Depth())
	require.Equal(t, 1, b.Styler.Released)
}
