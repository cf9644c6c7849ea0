package figure_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/testutil"
)

func TestShow(t *testing.T) {
	t.Parallel()

	for mode := range figure.InteractiveModes {
		t.Run(mode, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testutil.LogContext(t)
			b := testutil.NewBackend()
			b.ModeName = mode
			e := figure.New(b)
			fig, err := e.BuildFigure(ctx, "f", nil, nil)
			require.NoError(t, err)

			got, err := e.Show(ctx, fig)

			require.NoError(t, err)
			require.Same(t, fig.(*testutil.Figure), got)
			require.Equal(t, 0, fig.(*testutil.Figure).Displayed)
		})
	}

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testutil.LogContext(t)
		e := figure.New(testutil.NewBackend())
		fig, err := e.BuildFigure(ctx, "f", nil, nil)
		require.NoError(t, err)

		got, err := e.Show(ctx, fig)

		require.NoError(t, err)
		require.Equal(t, "displayed:f", got)
		require.Equal(t, 1, fig.(*testutil.Figure).Displayed)
	})
}

func TestClose_ClosesThenClears(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.LogContext(t)
	e := figure.New(testutil.NewBackend())
	fig, err := e.BuildFigure(ctx, "f", []figure.AxesStructure{{Layout: figure.Layout{Position: 111}}}, nil)
	require.NoError(t, err)
	rec := fig.(*testutil.Figure)

	require.NoError(t, e.Close(ctx, fig))
	require.True(t, rec.Closed)
	require.True(t, rec.Cleared)
	require.Empty(t, rec.Panels)

	// A failing close still clears.
	rec.Cleared = false
	require.Error(t, e.Close(ctx, fig))
	require.True(t, rec.Cleared)
}

func TestSave(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.LogContext(t)
	e := figure.New(testutil.NewBackend())
	fig, err := e.BuildFigure(ctx, "saved", nil, nil)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, e.Save(ctx, fig, path, figure.Kwargs{"dpi": 150}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "saved", string(data))
	require.Error(t, e.Save(ctx, fig, "", nil))
}

func TestEngine_Param(t *testing.T) {
	t.Parallel()

	ctx, logs := testutil.LogContext(t)
	b := testutil.NewBackend()
	e := figure.New(b, figure.WithBaseStyle(figure.StyleSpec{figure.StyleParams{"figure.dpi": 120}}))

	require.Equal(t, 120, e.Param(ctx, "figure.dpi"))
	require.Nil(t, e.Param(ctx, "no.such.param"))
	require.Contains(t, logs.String(), "Invalid style parameter.")
	require.Equal(t, 0, b.Styler.Depth())
}
