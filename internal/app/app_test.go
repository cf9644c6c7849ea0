package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/figkit/internal/testutil"
)

const figureFile = `
figure "signal/raw" {
  axes {
    position = 211
    options  = { title = "Signal" }

    plot {
      args  = [linspace(0, 1, 5), [1, 3, 2, 5, 4]]
      label = "raw"
    }
    legend {}
  }

  axes {
    position = 212

    pcolormesh { args = [[[0, 1], [2, 3]]] }
    revise "colorbar" { label = "z" }
    revise "suptitle" { t = "Overview" }
  }
}

figure "histogram" {
  style = ["grayscale"]

  axes {
    position = 111
    hist {
      args = [[1, 1, 2, 3, 3, 3]]
      bins = 3
    }
  }
}
`

// setupAppTest creates an app over a figure file with the given content.
func setupAppTest(t *testing.T, content string, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "figures.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg.FigurePath = path
	cfg.LogLevel = "debug"
	if cfg.StyleLibPath == "" {
		cfg.StyleLibPath = filepath.Join("..", "..", "stylelib")
	}
	valid, err := NewConfig(cfg)
	require.NoError(t, err)

	logs := &testutil.SafeBuffer{}
	a := NewApp(logs, valid)
	t.Cleanup(func() {
		if os.Getenv("FIGKIT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, logs
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "save only", cfg: Config{FigurePath: "f.hcl", OutputDir: "out"}},
		{name: "show only", cfg: Config{FigurePath: "f.hcl", Show: true, DisplayMode: "inline"}},
		{name: "missing path", cfg: Config{OutputDir: "out"}, wantErr: "FigurePath"},
		{name: "nothing to do", cfg: Config{FigurePath: "f.hcl"}, wantErr: "nothing to do"},
		{name: "bad format", cfg: Config{FigurePath: "f.hcl", OutputDir: "out", Format: "bmp"}, wantErr: "unsupported format 'bmp'"},
		{name: "negative dpi", cfg: Config{FigurePath: "f.hcl", OutputDir: "out", DPI: -1}, wantErr: "dpi"},
		{name: "bad mode", cfg: Config{FigurePath: "f.hcl", Show: true, DisplayMode: "tk"}, wantErr: "unknown display mode"},
		{name: "socketio without viewer", cfg: Config{FigurePath: "f.hcl", Show: true, DisplayMode: "socketio"}, wantErr: "viewer URL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, cfg.Format)
			require.NotEmpty(t, cfg.DisplayMode)
		})
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{FigurePath: "f.hcl", OutputDir: "out", Format: "SVG"})

	require.NoError(t, err)
	require.Equal(t, "svg", cfg.Format)
	require.Equal(t, "file", cfg.DisplayMode)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	buf := &testutil.SafeBuffer{}
	logger := newLogger("warn", "json", buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"key":"value"`)
}

func TestApp_RunSavesEveryFigure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := filepath.Join(t.TempDir(), "out")
	a, logs := setupAppTest(t, figureFile, Config{OutputDir: out, Format: "svg"})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, a.Figures(), 2)
	for _, name := range []string{"signal_raw.svg", "histogram.svg"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, "file %s", name)
		require.Contains(t, string(data), "<svg")
	}
	require.Contains(t, logs.String(), "Figure saved.")
	require.NotContains(t, logs.String(), "level=ERROR")
	require.Equal(t, []string{"colorbar", "suptitle", "xlim"}, a.Registry().Names())
	require.Empty(t, a.backend.Open(), "figures are closed after rendering")
}

func TestApp_RunShowsInline(t *testing.T) {
	t.Parallel()

	a, logs := setupAppTest(t, figureFile, Config{Show: true, DisplayMode: "inline"})

	err := a.Run(context.Background())

	require.NoError(t, err)
	require.Contains(t, logs.String(), "Figure shown.")
	require.Contains(t, logs.String(), "result=histogram")
	require.NotContains(t, logs.String(), "Figure saved.")
}

func TestApp_RunCancelled(t *testing.T) {
	t.Parallel()

	a, _ := setupAppTest(t, figureFile, Config{OutputDir: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestApp_RunWithoutFigures(t *testing.T) {
	t.Parallel()

	a, logs := setupAppTest(t, "# empty\n", Config{OutputDir: t.TempDir()})

	require.NoError(t, a.Run(context.Background()))
	require.Contains(t, logs.String(), "No figures found")
}

func TestNewApp_PanicsOnInvalidFigureFile(t *testing.T) {
	t.Parallel()

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		setupAppTest(t, `figure "x" {`, Config{OutputDir: t.TempDir()})
	}()

	err, ok := recovered.(error)
	require.True(t, ok, "NewApp should panic with an error, got %v", recovered)
	require.ErrorContains(t, err, "failed to load figures: failed to parse figure file")
}
