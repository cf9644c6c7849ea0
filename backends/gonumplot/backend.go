package gonumplot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/vk/figkit/figure"
)

var (
	// ErrUnknownVerb is returned for drawing verbs the backend does not
	// implement.
	ErrUnknownVerb = errors.New("unknown verb")
	// ErrUnknownOption is returned for panel layout options the backend
	// does not implement.
	ErrUnknownOption = errors.New("unknown panel option")
	// ErrUnsupported is returned for features gonum/plot cannot render,
	// such as 3d projections.
	ErrUnsupported = errors.New("not supported by the gonum backend")
)

// Display modes.
const (
	ModeFile     = "file"
	ModeSocketIO = "socketio"
)

// Modes lists every mode New accepts.
var Modes = []string{ModeFile, ModeSocketIO, "inline", "notebook", "nbagg", "ipykernel"}

// Config configures a Backend.
type Config struct {
	// Mode is the display mode, one of Modes. Defaults to "file".
	Mode string
	// OutputDir receives the images written by Display in file mode.
	// Defaults to the system temp directory.
	OutputDir string
	// ViewerURL is the socket.io endpoint figures are pushed to in
	// socketio mode, e.g. "http://localhost:3000/socket.io/".
	ViewerURL string
	// ViewerNamespace is the socket.io namespace. Defaults to "/".
	ViewerNamespace string
	// ViewerTimeout bounds one push, connection included. Defaults to 15s.
	ViewerTimeout time.Duration
	Logger        *slog.Logger
}

// Backend renders figures with gonum.org/v1/plot.
type Backend struct {
	cfg     Config
	logger  *slog.Logger
	styles  *Styler
	figures map[string]*Figure
	viewer  *viewer
}

var _ figure.Backend = (*Backend)(nil)

// New returns a backend for cfg.
func New(cfg Config) (*Backend, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeFile
	}
	if !slices.Contains(Modes, cfg.Mode) {
		return nil, fmt.Errorf("unknown display mode %q, want one of %v", cfg.Mode, Modes)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ViewerTimeout <= 0 {
		cfg.ViewerTimeout = 15 * time.Second
	}
	if cfg.ViewerNamespace == "" {
		cfg.ViewerNamespace = "/"
	}
	b := &Backend{
		cfg:     cfg,
		logger:  cfg.Logger.With("backend", "gonumplot"),
		styles:  newStyler(),
		figures: make(map[string]*Figure),
	}
	if cfg.Mode == ModeSocketIO {
		if cfg.ViewerURL == "" {
			return nil, errors.New("socketio mode needs a viewer URL")
		}
		v, err := newViewer(cfg, b.logger)
		if err != nil {
			return nil, err
		}
		b.viewer = v
	}
	return b, nil
}

// Mode returns the display mode.
func (b *Backend) Mode() string { return b.cfg.Mode }

// Styles returns the backend's style stack.
func (b *Backend) Styles() figure.Styler { return b.styles }

// CreateFigure returns a new, empty figure registered under id. A figure
// already registered under id is closed and replaced.
func (b *Backend) CreateFigure(id string) (figure.Figure, error) {
	if old, ok := b.figures[id]; ok {
		b.logger.Warn("Replacing open figure.", "figure", id)
		_ = old.Close()
	}
	f := &Figure{
		id:      id,
		backend: b,
		params:  b.styles.snapshot(),
	}
	b.figures[id] = f
	return f, nil
}

// Figure returns the open figure registered under id.
func (b *Backend) Figure(id string) (*Figure, bool) {
	f, ok := b.figures[id]
	return f, ok
}

// Open returns the ids of the open figures.
func (b *Backend) Open() []string {
	ids := make([]string, 0, len(b.figures))
	for id := range b.figures {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (b *Backend) forget(f *Figure) {
	if cur, ok := b.figures[f.id]; ok && cur == f {
		delete(b.figures, f.id)
	}
}

func (b *Backend) outputDir() string {
	if b.cfg.OutputDir != "" {
		return b.cfg.OutputDir
	}
	return os.TempDir()
}
