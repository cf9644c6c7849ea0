package figure

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/vk/figkit/internal/ctxlog"
	"github.com/vk/figkit/internal/fsutil"
)

// StyleFileExtensions are the extensions discovered in a style library.
var StyleFileExtensions = []string{".yaml", ".yml", ".toml"}

// Style is one entry of a StyleSpec: a StyleName or inline StyleParams.
type Style interface {
	isStyle()
}

// StyleName names a built-in style, a style in the library, or a path to a
// style file.
type StyleName string

func (StyleName) isStyle() {}

// StyleParams is an inline mapping of style parameters.
type StyleParams map[string]any

func (StyleParams) isStyle() {}

// StyleSpec is an ordered list of styles; later entries win.
type StyleSpec []Style

// Styles builds a StyleSpec from names and inline parameter maps. Values of
// any other type are ignored.
func Styles(entries ...any) StyleSpec {
	spec := make(StyleSpec, 0, len(entries))
	for _, e := range entries {
		switch s := e.(type) {
		case string:
			spec = append(spec, StyleName(s))
		case StyleName:
			spec = append(spec, s)
		case map[string]any:
			spec = append(spec, StyleParams(s))
		case StyleParams:
			spec = append(spec, s)
		}
	}
	return spec
}

// StyleRegistry knows which style names are valid and where library styles
// live. The known-name set is built on first use and never changes
// afterwards.
type StyleRegistry struct {
	styler Styler
	libDir string

	once    sync.Once
	builtin map[string]bool
	library map[string]string
	names   []string
}

// NewStyleRegistry returns a registry over styler's built-ins and the style
// files found under libDir. libDir may be empty.
func NewStyleRegistry(styler Styler, libDir string) *StyleRegistry {
	return &StyleRegistry{styler: styler, libDir: libDir}
}

func (r *StyleRegistry) build(ctx context.Context) {
	r.once.Do(func() {
		logger := ctxlog.FromContext(ctx)
		r.builtin = make(map[string]bool)
		r.library = make(map[string]string)
		for _, name := range r.styler.Available() {
			r.builtin[name] = true
			r.names = append(r.names, name)
		}
		if r.libDir == "" {
			logger.Debug("No style library configured.")
			sort.Strings(r.names)
			return
		}
		if _, err := os.Stat(r.libDir); err != nil {
			logger.Warn("Style library not readable, using built-in styles only.", "path", r.libDir, "error", err)
			sort.Strings(r.names)
			return
		}
		files, err := fsutil.FindFilesByExtension(r.libDir, StyleFileExtensions...)
		if err != nil {
			logger.Error("Failed to walk style library.", "path", r.libDir, "error", err)
		}
		for _, path := range files {
			name := fsutil.TrimExtension(path)
			if _, dup := r.library[name]; dup {
				logger.Warn("Duplicate style in library, keeping the first.", "style", name, "path", path)
				continue
			}
			r.library[name] = path
			if !r.builtin[name] {
				r.names = append(r.names, name)
			}
		}
		sort.Strings(r.names)
		logger.Debug("Style names discovered.", "builtin", len(r.builtin), "library", len(r.library))
	})
}

// Available returns the sorted list of known style names.
func (r *StyleRegistry) Available(ctx context.Context) []string {
	r.build(ctx)
	return append([]string(nil), r.names...)
}

// Check reports whether name is usable. Built-in names are accepted as they
// are; library styles and other names are tried against the backend, and a
// failure is logged and reported as false.
func (r *StyleRegistry) Check(ctx context.Context, name string) bool {
	r.build(ctx)
	if r.builtin[name] {
		return true
	}
	target := name
	if path, ok := r.library[name]; ok {
		target = path
	}
	if err := r.styler.TryApply(target); err != nil {
		ctxlog.FromContext(ctx).Error("Ignoring style.", "style", name, "error", err)
		return false
	}
	return true
}

// Resolve maps a library style name to its file path. Built-in names and
// names that are not in the library are returned unchanged.
func (r *StyleRegistry) Resolve(name string) string {
	r.build(context.Background())
	if r.builtin[name] {
		return name
	}
	if path, ok := r.library[name]; ok {
		return path
	}
	return name
}

// Filter drops the invalid names of spec and resolves the rest. Inline
// parameters are kept as they are.
func (r *StyleRegistry) Filter(ctx context.Context, spec StyleSpec) StyleSpec {
	out := make(StyleSpec, 0, len(spec))
	for _, s := range spec {
		switch s := s.(type) {
		case StyleName:
			if r.Check(ctx, string(s)) {
				out = append(out, StyleName(r.Resolve(string(s))))
			}
		case StyleParams:
			out = append(out, s)
		}
	}
	return out
}

// Enter filters spec and activates it on the backend. Styles the backend
// still rejects are logged and dropped while the rest stay active. The
// returned function restores the previous overrides; it is never nil and
// must be called once.
func (r *StyleRegistry) Enter(ctx context.Context, spec StyleSpec) func() {
	release, err := r.styler.Context(r.Filter(ctx, spec))
	if err != nil {
		ctxlog.FromContext(ctx).Error("Dropping styles that failed to apply.", "error", err)
	}
	if release == nil {
		return func() {}
	}
	return release
}
