package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}
	args := []string{
		"-out", "build",
		"-format", "svg",
		"-dpi", "150",
		"-style", `ggplot "my styles/wide.yaml"`,
		"-log-level", "DEBUG",
		"figures/",
	}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, out)

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "figures/", cfg.FigurePath)
	require.Equal(t, "build", cfg.OutputDir)
	require.Equal(t, "svg", cfg.Format)
	require.Equal(t, 150, cfg.DPI)
	require.Equal(t, []string{"ggplot", "my styles/wide.yaml"}, cfg.Styles)
	require.Equal(t, "stylelib", cfg.StyleLibPath)
	require.Equal(t, "file", cfg.DisplayMode)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.False(t, cfg.Show)
}

func TestParse_PathFlagsWin(t *testing.T) {
	t.Parallel()

	cfg, _, err := Parse([]string{"-f", "short.hcl", "-figures", "long.hcl", "-show", "-display", "inline", "positional.hcl"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.Equal(t, "long.hcl", cfg.FigurePath)
	require.True(t, cfg.Show)
	require.Empty(t, cfg.Styles)
}

func TestParse_ExitsWithUsage(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"-h"}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(args, out)

		require.NoError(t, err)
		require.True(t, shouldExit)
		require.Nil(t, cfg)
		require.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown flag", args: []string{"-nope", "f.hcl"}, wantErr: "flag provided but not defined"},
		{name: "log format", args: []string{"-log-format", "xml", "-out", "o", "f.hcl"}, wantErr: "invalid log-format"},
		{name: "log level", args: []string{"-log-level", "trace", "-out", "o", "f.hcl"}, wantErr: "invalid log-level"},
		{name: "unterminated style quote", args: []string{"-style", `"ggplot`, "-out", "o", "f.hcl"}, wantErr: "invalid style list"},
		{name: "config validation", args: []string{"f.hcl"}, wantErr: "nothing to do"},
		{name: "format", args: []string{"-out", "o", "-format", "gif", "f.hcl"}, wantErr: "unsupported format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
			require.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}
