package attributes

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-binder/pkg/dom"
)

// Built-in attribute names registered by NewRegistry.
const (
	AttrFor     = "for"
	AttrLoopFor = "loop-for"
	AttrIf      = "if"
)

// Host is the component surface handlers work against.
type Host interface {
	// Get returns the current value of a component variable.
	Get(name string) (any, bool)
	// Watch registers fn for changes of name and returns a function that
	// removes it again.
	Watch(name string, fn func(name string)) (cancel func())
	// Evaluate renders text against the component variables and the local
	// scope visible at node.
	Evaluate(text string, node *dom.Node) (string, error)
	// UpdateBindings resynchronises the bind index after nodes were inserted
	// under or removed from node.
	UpdateBindings(node *dom.Node)
	// RenderSubtree evaluates every interpolated node under node once.
	RenderSubtree(node *dom.Node)
	Logger() *slog.Logger
}

// Context describes the attribute a handler is created for.
type Context struct {
	Host    Host
	Attr    *dom.Node
	Element *dom.Node
}

// Handler is a live attribute behaviour. Detach is called once the attribute
// leaves the component or the component is disposed.
type Handler interface {
	Detach()
}

// HandlerFunc adapts a detach function into a Handler.
type HandlerFunc func()

// Detach calls fn.
func (fn HandlerFunc) Detach() {
	if fn != nil {
		fn()
	}
}

// Factory creates a handler for an attribute. Returning a nil Handler and a
// nil error means the attribute value does not apply (e.g. a label's plain
// `for` target) and is left alone.
type Factory func(ctx Context) (Handler, error)

type entry struct {
	name    string
	factory Factory
}

// Registry maps attribute names to handler factories. Lookups are safe for
// concurrent use; registration order is preserved by Names.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

// NewRegistry returns a registry with the built-in `for`, `loop-for` and `if`
// handlers.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	reg.Register(AttrFor, NewLoop)
	reg.Register(AttrLoopFor, NewLoop)
	reg.Register(AttrIf, NewConditional)
	return reg
}

// NewEmptyRegistry returns a registry without handlers.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds factory under name. Registering an existing name replaces the
// factory in place.
func (r *Registry) Register(name string, factory Factory) {
	if r == nil || factory == nil {
		return
	}
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].name == trimmed {
			r.entries[i].factory = factory
			return
		}
	}
	r.entries = append(r.entries, entry{name: trimmed, factory: factory})
}

// Lookup returns the factory registered for name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.name == key {
			return e.factory, true
		}
	}
	return nil, false
}

// Names lists the registered attribute names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.name)
	}
	return out
}
