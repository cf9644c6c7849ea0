package gonumplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/figkit/figure"
)

func TestStyler_ContextStacks(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s := newStyler()
	outer := figure.StyleSpec{figure.StyleName("classic")}
	inner := figure.StyleSpec{figure.StyleParams{"lines.linewidth": 4}}

	// --- Act ---
	releaseOuter, err := s.Context(outer)
	require.NoError(t, err)
	releaseInner, err := s.Context(inner)
	require.NoError(t, err)

	// --- Assert ---
	lw, _ := s.Param("lines.linewidth")
	require.Equal(t, 4, lw)
	dpi, _ := s.Param("figure.dpi")
	require.Equal(t, 80, dpi, "outer scope still visible")

	releaseInner()
	lw, _ = s.Param("lines.linewidth")
	require.Equal(t, 1.0, lw)

	releaseOuter()
	releaseOuter()
	lw, _ = s.Param("lines.linewidth")
	require.Equal(t, 1.5, lw)
	require.Len(t, s.stack, 1)
}

func TestStyler_ContextRejectsUnknownStyle(t *testing.T) {
	t.Parallel()

	s := newStyler()

	release, err := s.Context(figure.StyleSpec{figure.StyleName("ggplot"), figure.StyleName("no-such-style")})

	require.Error(t, err)
	require.ErrorContains(t, err, "no-such-style")
	require.NotNil(t, release)
	require.Len(t, s.stack, 2, "resolvable entries are still applied")
	release()
	require.Len(t, s.stack, 1)
}

func TestStyler_ContextSkipsBrokenFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [unterminated\n"), 0o600))
	s := newStyler()

	// --- Act ---
	release, err := s.Context(figure.StyleSpec{
		figure.StyleName(path),
		figure.StyleParams{"lines.linewidth": 9.0},
	})

	// --- Assert ---
	require.ErrorContains(t, err, "broken.yaml")
	require.NotNil(t, release)
	lw, _ := s.Param("lines.linewidth")
	require.Equal(t, 9.0, lw)
	require.Error(t, s.TryApply(path))
	release()
	lw, _ = s.Param("lines.linewidth")
	require.Equal(t, 1.5, lw)
}

func TestStyler_StyleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "big.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lines:\n  linewidth: 5\n"), 0o600))
	s := newStyler()

	require.NoError(t, s.TryApply(path))
	release, err := s.Context(figure.StyleSpec{figure.StyleName(path)})
	require.NoError(t, err)
	defer release()

	lw, ok := s.Param("lines.linewidth")
	require.True(t, ok)
	require.Equal(t, 5, lw)
}

func TestStyler_Available(t *testing.T) {
	t.Parallel()

	s := newStyler()

	require.Equal(t, []string{"classic", "default", "ggplot", "grayscale", "seaborn-whitegrid"}, s.Available())
	require.NoError(t, s.TryApply("grayscale"))
	require.Error(t, s.TryApply("missing"))
}

func TestParams_Lookups(t *testing.T) {
	t.Parallel()

	p := params{"a": "0.25", "b": int64(3), "c": true, "d": "text", "e": []any{1}}

	require.Equal(t, 0.25, p.float("a", 1))
	require.Equal(t, 3.0, p.float("b", 1))
	require.Equal(t, 1.0, p.float("e", 1))
	require.Equal(t, 2.0, p.float("missing", 2))
	require.True(t, p.bool("c"))
	require.False(t, p.bool("d"))
	require.Equal(t, "text", p.string("d", "x"))
	require.Equal(t, "x", p.string("b", "x"))
}
