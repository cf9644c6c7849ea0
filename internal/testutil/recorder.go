package testutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/vk/figkit/figure"
)

// Call is one recorded Invoke.
type Call struct {
	Verb   string
	Args   []any
	Kwargs figure.Kwargs
}

// Artist is the artifact returned by the recording backend. It remembers
// which panel drew it.
type Artist struct {
	Panel *Panel
	Call  Call
}

// Backend is an in-memory figure.Backend that records every call. The
// failure maps let tests make individual operations fail.
type Backend struct {
	ModeName string

	// FailFigure makes CreateFigure fail.
	FailFigure error
	// FailPositions makes AddPanel fail for positions with this String().
	FailPositions map[string]error
	// FailVerbs makes Invoke fail for these verbs.
	FailVerbs map[string]error
	// PanicVerbs makes Invoke panic for these verbs.
	PanicVerbs map[string]bool
	// FailTwin makes Twin fail.
	FailTwin error

	Figures []*Figure
	Styler  *Styler
}

// NewBackend returns a recording backend in mode "file" with the built-in
// styles "default" and "classic".
func NewBackend() *Backend {
	return &Backend{
		ModeName: "file",
		Styler:   &Styler{Builtins: []string{"classic", "default"}},
	}
}

func (b *Backend) Mode() string { return b.ModeName }

func (b *Backend) Styles() figure.Styler { return b.Styler }

func (b *Backend) CreateFigure(id string) (figure.Figure, error) {
	if b.FailFigure != nil {
		return nil, b.FailFigure
	}
	f := &Figure{Id: id, backend: b, StyleDepth: b.Styler.Depth(), Active: b.Styler.Active()}
	b.Figures = append(b.Figures, f)
	return f, nil
}

// Figure records panels and figure-level calls.
type Figure struct {
	Id         string
	Panels     []*Panel
	Calls      []Call
	StyleDepth int
	Active     figure.StyleSpec

	Displayed int
	Exports   []string
	Closed    bool
	Cleared   bool

	backend *Backend
}

func (f *Figure) ID() string { return f.Id }

func (f *Figure) AddPanel(pos figure.Position, kw figure.Kwargs) (figure.Panel, error) {
	if err, ok := f.backend.FailPositions[pos.String()]; ok {
		return nil, err
	}
	p := &Panel{
		Index:      len(f.Panels),
		Fig:        f,
		Position:   pos,
		Options:    kw,
		StyleDepth: f.backend.Styler.Depth(),
		Active:     f.backend.Styler.Active(),
	}
	f.Panels = append(f.Panels, p)
	return p, nil
}

func (f *Figure) Invoke(verb string, args []any, kw figure.Kwargs) (figure.Artifact, error) {
	c := Call{Verb: verb, Args: args, Kwargs: kw}
	f.Calls = append(f.Calls, c)
	return &Artist{Call: c}, nil
}

func (f *Figure) Display() (any, error) {
	f.Displayed++
	return "displayed:" + f.Id, nil
}

func (f *Figure) Export(path string, kw figure.Kwargs) error {
	f.Exports = append(f.Exports, path)
	return os.WriteFile(path, []byte(f.Id), 0o644)
}

func (f *Figure) Close() error {
	if f.Closed {
		return errors.New("figure already closed")
	}
	f.Closed = true
	return nil
}

func (f *Figure) Clear() {
	f.Cleared = true
	f.Panels = nil
	f.Calls = nil
}

// Panel records the calls made on one panel.
type Panel struct {
	Index      int
	Fig        *Figure
	Position   figure.Position
	Options    figure.Kwargs
	Parent     *Panel
	Axis       figure.TwinAxis
	ColorSkips int
	Calls      []Call
	StyleDepth int
	Active     figure.StyleSpec
}

func (p *Panel) Invoke(verb string, args []any, kw figure.Kwargs) (figure.Artifact, error) {
	b := p.Fig.backend
	if b.PanicVerbs[verb] {
		panic(fmt.Sprintf("verb %q exploded", verb))
	}
	if err, ok := b.FailVerbs[verb]; ok {
		return nil, err
	}
	c := Call{Verb: verb, Args: args, Kwargs: kw}
	p.Calls = append(p.Calls, c)
	return &Artist{Panel: p, Call: c}, nil
}

func (p *Panel) Twin(axis figure.TwinAxis) (figure.Panel, error) {
	if p.Fig.backend.FailTwin != nil {
		return nil, p.Fig.backend.FailTwin
	}
	t := &Panel{
		Index:      len(p.Fig.Panels),
		Fig:        p.Fig,
		Position:   p.Position,
		Parent:     p,
		Axis:       axis,
		StyleDepth: p.Fig.backend.Styler.Depth(),
	}
	p.Fig.Panels = append(p.Fig.Panels, t)
	return t, nil
}

func (p *Panel) AdvanceColorCycle(n int) { p.ColorSkips += n }

// Verbs returns the verbs invoked on p, in order.
func (p *Panel) Verbs() []string {
	out := make([]string, 0, len(p.Calls))
	for _, c := range p.Calls {
		out = append(out, c.Verb)
	}
	return out
}

// Styler is a recording style stack.
type Styler struct {
	Builtins []string
	// Bad names fail TryApply and are skipped by Context.
	Bad map[string]bool

	stack    []figure.StyleSpec
	Entered  int
	Released int
	Tried    []string
}

func (s *Styler) Available() []string { return append([]string(nil), s.Builtins...) }

func (s *Styler) TryApply(name string) error {
	s.Tried = append(s.Tried, name)
	if s.Bad[name] {
		return fmt.Errorf("style %q is not valid", name)
	}
	if _, err := os.Stat(name); err != nil {
		return fmt.Errorf("style %q not found: %w", name, err)
	}
	return nil
}

func (s *Styler) Context(spec figure.StyleSpec) (func(), error) {
	var errs []error
	kept := make(figure.StyleSpec, 0, len(spec))
	for _, st := range spec {
		if n, ok := st.(figure.StyleName); ok && s.Bad[string(n)] {
			errs = append(errs, fmt.Errorf("style %q is not valid", n))
			continue
		}
		kept = append(kept, st)
	}
	s.stack = append(s.stack, kept)
	s.Entered++
	depth := len(s.stack)
	released := false
	return func() {
		if released {
			panic("style context released twice")
		}
		released = true
		s.stack = s.stack[:depth-1]
		s.Released++
	}, errors.Join(errs...)
}

func (s *Styler) Param(name string) (any, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		for j := len(s.stack[i]) - 1; j >= 0; j-- {
			if p, ok := s.stack[i][j].(figure.StyleParams); ok {
				if v, ok := p[name]; ok {
					return v, true
				}
			}
		}
	}
	return nil, false
}

// Depth is the number of active style contexts.
func (s *Styler) Depth() int { return len(s.stack) }

// Active flattens the active contexts, outermost first.
func (s *Styler) Active() figure.StyleSpec {
	var out figure.StyleSpec
	for _, spec := range s.stack {
		out = append(out, spec...)
	}
	return out
}
