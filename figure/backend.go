package figure

// Artifact is whatever a backend returns for a drawn primitive. The engine
// only stores it in the ArtifactRegistry.
type Artifact any

// Backend is the rendering capability the engine drives.
type Backend interface {
	// Mode identifies the active display mode, e.g. "file" or "inline".
	Mode() string
	// CreateFigure returns a new, empty figure registered under id.
	CreateFigure(id string) (Figure, error)
	// Styles returns the backend's style stack.
	Styles() Styler
}

// Figure is a backend-owned canvas that panels attach to.
type Figure interface {
	ID() string
	// AddPanel creates a panel at pos, either a subplot cell or an explicit
	// rectangle, configured by kw.
	AddPanel(pos Position, kw Kwargs) (Panel, error)
	// Invoke runs a figure-level verb such as "suptitle" or "colorbar".
	Invoke(verb string, args []any, kw Kwargs) (Artifact, error)
	// Display runs the backend's blocking display primitive.
	Display() (any, error)
	// Export writes the figure to path; the format follows the extension.
	Export(path string, kw Kwargs) error
	// Close releases the figure's backend resources.
	Close() error
	// Clear drops every panel and artifact of the figure.
	Clear()
}

// Panel is one coordinate system inside a figure.
type Panel interface {
	// Invoke calls the named drawing primitive with args and kw passed
	// through uninterpreted.
	Invoke(verb string, args []any, kw Kwargs) (Artifact, error)
	// Twin creates a panel sharing axis with this one.
	Twin(axis TwinAxis) (Panel, error)
	// AdvanceColorCycle skips the next n automatic series colors.
	AdvanceColorCycle(n int)
}

// Styler is the backend's scoped style mechanism.
type Styler interface {
	// Context applies spec on top of the active overrides. Entries that
	// cannot be applied are skipped and joined into err. A non-nil release
	// restores the previous state and must be called exactly once, even
	// when err is set.
	Context(spec StyleSpec) (release func(), err error)
	// Available lists the backend's built-in style names.
	Available() []string
	// TryApply reports whether name can be applied as a style.
	TryApply(name string) error
	// Param returns the current value of a style parameter.
	Param(name string) (any, bool)
}
