package figfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/figfile"
	"github.com/vk/figkit/internal/registry"
	"github.com/vk/figkit/internal/testutil"
	"github.com/vk/figkit/modules/colorbar"
	"github.com/vk/figkit/modules/suptitle"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader() *figfile.Loader {
	return figfile.NewLoader(registry.New().Register(&colorbar.Module{}, &suptitle.Module{}))
}

const overview = `
figure "overview" {
  style = ["default", { "lines.linewidth" = 2 }]

  axes {
    position = 211
    options  = { title = "Signal", xlim = [0, 1] }

    plot {
      args  = [linspace(0, 1, 3), [1, 3.5, 2]]
      label = "raw"
    }
    legend { loc = "upper left" }
    twinx { nextcolor = 1 }
    pcolormesh {
      args = [[[0, 1], [2, 3]]]
      cmap = "viridis"
    }
    revise "colorbar" { label = "z" }
  }

  axes {
    position = [0.1, 0.1, 0.8, 0.3]
    style    = "classic"

    hist { args = range(4) }
    revise "suptitle" { t = upper("done") }
  }
}
`

func TestLoad_TranslatesFigure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, _ := testutil.LogContext(t)
	path := writeFile(t, t.TempDir(), "overview.hcl", overview)

	// --- Act ---
	figs, err := newLoader().Load(ctx, path)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, figs, 1)
	fig := figs[0]
	require.Equal(t, "overview", fig.ID)
	require.Equal(t, path, fig.Source)
	require.Equal(t, figure.StyleSpec{
		figure.StyleName("default"),
		figure.StyleParams{"lines.linewidth": 2},
	}, fig.Style)
	require.Len(t, fig.Structures, 2)

	top := fig.Structures[0]
	require.Equal(t, figure.SubplotCode(211), top.Layout.Position)
	require.Equal(t, figure.Kwargs{"title": "Signal", "xlim": []any{0, 1}}, top.Layout.Options)
	require.Len(t, top.Data, 5)
	require.Equal(t, figure.Invoke{
		Key:    1,
		Name:   "plot",
		Args:   []any{[]any{0, 0.5, 1}, []any{1, 3.5, 2}},
		Kwargs: figure.Kwargs{"label": "raw"},
	}, top.Data[0])
	require.Equal(t, figure.Invoke{Key: 2, Name: "legend", Kwargs: figure.Kwargs{"loc": "upper left"}}, top.Data[1])
	require.Equal(t, figure.Twin{Key: 3, Axis: figure.TwinX, NextColor: 1}, top.Data[2])
	require.Equal(t, figure.Invoke{
		Key:    4,
		Name:   "pcolormesh",
		Args:   []any{[]any{[]any{0, 1}, []any{2, 3}}},
		Kwargs: figure.Kwargs{"cmap": "viridis"},
	}, top.Data[3])
	rev, ok := top.Data[4].(figure.Revise)
	require.True(t, ok)
	require.Equal(t, 5, rev.Key)
	require.NotNil(t, rev.Fn)
	require.Equal(t, figure.Kwargs{"label": "z"}, rev.Kwargs)

	bottom := fig.Structures[1]
	require.Equal(t, figure.Rect{0.1, 0.1, 0.8, 0.3}, bottom.Layout.Position)
	require.Equal(t, figure.StyleSpec{figure.StyleName("classic")}, bottom.Style)
	require.Equal(t, figure.Invoke{Key: 1, Name: "hist", Args: []any{0, 1, 2, 3}, Kwargs: figure.Kwargs{}}, bottom.Data[0])
	require.Equal(t, figure.Kwargs{"t": "DONE"}, bottom.Data[1].(figure.Revise).Kwargs)
}

func TestLoad_BuildsThroughEngine(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, logs := testutil.LogContext(t)
	path := writeFile(t, t.TempDir(), "overview.hcl", overview)
	figs, err := newLoader().Load(ctx, path)
	require.NoError(t, err)
	e := figure.New(testutil.NewBackend())

	// --- Act ---
	got, err := e.BuildFigure(ctx, figs[0].ID, figs[0].Structures, figs[0].Style)

	// --- Assert ---
	require.NoError(t, err)
	f := got.(*testutil.Figure)
	require.Len(t, f.Panels, 3)
	require.Equal(t, []string{"plot", "legend"}, f.Panels[0].Verbs())
	require.Equal(t, []string{"pcolormesh"}, f.Panels[1].Verbs())
	require.Equal(t, []string{"hist"}, f.Panels[2].Verbs())
	require.Len(t, f.Calls, 2)
	require.Equal(t, "colorbar", f.Calls[0].Verb)
	require.Equal(t, []any{"DONE"}, f.Calls[1].Args)
	require.NotContains(t, logs.String(), "level=ERROR")
}

func TestLoad_DirectoryAndGrid(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.LogContext(t)
	dir := t.TempDir()
	writeFile(t, dir, "b/second.hcl", `
figure "second" {
  axes {
    position = { rows = 3, cols = 1, row = 2 }
  }
}
`)
	writeFile(t, dir, "a.hcl", `figure "first" {}`)
	writeFile(t, dir, "notes.txt", "not a figure file")

	figs, err := newLoader().Load(ctx, dir)

	require.NoError(t, err)
	require.Len(t, figs, 2)
	require.Equal(t, "first", figs[0].ID)
	require.Empty(t, figs[0].Structures)
	require.Equal(t, figure.GridSpec{Rows: 3, Cols: 1, Row: 2}, figs[1].Structures[0].Layout.Position)
}

// axes wraps body in a figure with a single axes block.
func axes(body string) string {
	return "figure \"x\" {\n  axes {\n" + body + "\n  }\n}\n"
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax", content: `figure "x" {`, wantErr: "failed to parse"},
		{name: "unknown top level block", content: `chart "x" {}`, wantErr: "failed to decode"},
		{name: "missing position", content: axes(``), wantErr: "position is required"},
		{name: "invalid position", content: axes(`position = "top"`), wantErr: "invalid layout position"},
		{name: "bad rectangle", content: axes(`position = [1, 2]`), wantErr: "4 values"},
		{name: "unknown grid field", content: axes(`position = { rows = 1, span = 2 }`), wantErr: "unknown grid field"},
		{name: "options not an object", content: axes("position = 111\noptions = [1]"), wantErr: "expected an object"},
		{name: "stray attribute", content: axes("position = 111\ntitle = \"T\""), wantErr: "unsupported attribute 'title'"},
		{name: "nested block", content: axes("position = 111\nplot {\ninner {}\n}"), wantErr: "must not contain blocks"},
		{name: "unknown revision", content: axes("position = 111\nrevise \"frobnicate\" {}"), wantErr: "unknown revision 'frobnicate'"},
		{name: "revision option", content: axes("position = 111\nrevise \"colorbar\" { colour = \"r\" }"), wantErr: "unknown options colour"},
		{name: "revise without label", content: axes("position = 111\nrevise { t = \"T\" }"), wantErr: "exactly one label"},
		{name: "label on verb", content: axes("position = 111\nplot \"named\" {}"), wantErr: "takes no labels"},
		{name: "bad nextcolor", content: axes("position = 111\ntwinx { nextcolor = 1.5 }"), wantErr: "nextcolor"},
		{name: "bad function call", content: axes("position = 111\nplot { args = linspace(0, 1, -1) }"), wantErr: "negative"},
		{name: "bad style entry", content: `figure "x" { style = [1] }`, wantErr: "style"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testutil.LogContext(t)
			path := writeFile(t, t.TempDir(), "bad.hcl", tc.content)

			_, err := newLoader().Load(ctx, path)

			require.Error(t, err)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoad_DuplicateFigureID(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.LogContext(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `figure "same" {}`)
	writeFile(t, dir, "b.hcl", `figure "same" {}`)

	_, err := newLoader().Load(ctx, dir)

	require.ErrorContains(t, err, "already declared")
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.LogContext(t)

	_, err := newLoader().Load(ctx, filepath.Join(t.TempDir(), "nope.hcl"))

	require.ErrorContains(t, err, "error accessing path")
}
