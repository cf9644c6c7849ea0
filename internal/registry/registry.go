package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/vk/figkit/figure"
)

// Module is the interface that all revise modules implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Revision is a registered revise callback.
type Revision struct {
	Fn figure.ReviseFunc
	// Params lists the keyword options Fn understands. Nil accepts any
	// keyword.
	Params []string
}

// Registry holds the revise callbacks of a single application instance.
type Registry struct {
	revisions map[string]*Revision
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{revisions: make(map[string]*Revision)}
}

// RegisterRevision registers a revise callback under name.
func (r *Registry) RegisterRevision(name string, rev *Revision) {
	if _, exists := r.revisions[name]; exists {
		panic(fmt.Sprintf("revision with name '%s' already registered", name))
	}
	if rev == nil || rev.Fn == nil {
		panic(fmt.Sprintf("revision '%s' has no function", name))
	}
	slog.Debug("Registering revision.", "name", name)
	r.revisions[name] = rev
}

// Lookup returns the callback registered under name.
func (r *Registry) Lookup(name string) (figure.ReviseFunc, bool) {
	rev, ok := r.revisions[name]
	if !ok {
		return nil, false
	}
	return rev.Fn, true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.revisions))
	for name := range r.revisions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that name is registered and that every key of kw is a
// declared parameter of it.
func (r *Registry) Validate(name string, kw figure.Kwargs) error {
	rev, ok := r.revisions[name]
	if !ok {
		return fmt.Errorf("unknown revision '%s' (registered: %s)", name, strings.Join(r.Names(), ", "))
	}
	if rev.Params == nil {
		return nil
	}
	var unknown []string
	for k := range kw {
		if !slices.Contains(rev.Params, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("revision '%s': unknown options %s, want any of %s",
			name, strings.Join(unknown, ", "), strings.Join(rev.Params, ", "))
	}
	return nil
}

// Register registers every module with r.
func (r *Registry) Register(modules ...Module) *Registry {
	for _, m := range modules {
		m.Register(r)
	}
	return r
}
