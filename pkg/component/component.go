package component

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/goliatone/go-binder/internal/loader"
	"github.com/goliatone/go-binder/pkg/attributes"
	"github.com/goliatone/go-binder/pkg/binding"
	"github.com/goliatone/go-binder/pkg/dom"
	"github.com/goliatone/go-binder/pkg/eval"
	"github.com/goliatone/go-binder/pkg/eval/hcltemplate"
	"github.com/goliatone/go-binder/pkg/reactive"
	"github.com/goliatone/go-binder/pkg/source"
	"github.com/goliatone/go-binder/pkg/template"
)

const defaultRequestTimeout = 10 * time.Second

var (
	// ErrNoTemplate is returned by Mount when neither an inline template nor a
	// source was configured.
	ErrNoTemplate = errors.New("component: no template configured")
	// ErrMounted is returned when Mount is called twice.
	ErrMounted = errors.New("component: already mounted")
	// ErrDisposed is returned when Mount is called after Dispose.
	ErrDisposed = errors.New("component: disposed")
)

// Callback observes changes of a variable. It receives the variable name.
type Callback func(name string)

// Handle identifies a registered callback for RemoveUpdateCallback.
type Handle uint64

type callback struct {
	handle Handle
	fn     Callback
}

// Component binds a template to a root node and keeps the rendered subtree in
// sync with its variables. A Component is single threaded: every Set runs
// callbacks, the Update hook and the DOM refresh before returning.
type Component struct {
	root  *dom.Node
	store *reactive.Store
	index *binding.Index

	callbacks  map[string][]callback
	nextHandle Handle
	handlers   map[*dom.Node]attributes.Handler
	slot       dom.NodeList

	template     string
	hasTemplate  bool
	source       source.Source
	loader       source.Loader
	evaluator    eval.Evaluator
	logger       *slog.Logger
	lifecycle    Lifecycle
	attributes   *attributes.Registry
	state        map[string]any
	sanitizer    func(string) string
	preprocessor template.Preprocessor
	globals      map[string]any

	mounted  bool
	disposed bool
}

var _ attributes.Host = (*Component)(nil)

// New constructs a component rooted at root. Nothing is rendered until Mount.
func New(root *dom.Node, options ...Option) *Component {
	c := &Component{
		root:      root,
		index:     binding.New(),
		callbacks: make(map[string][]callback),
		handlers:  make(map[*dom.Node]attributes.Handler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.applyDefaults()

	c.store = reactive.NewStore(nil)
	for _, name := range sortedKeys(c.state) {
		c.store.Set(name, c.state[name])
	}
	c.store.SetNotifier(c.dispatch)
	return c
}

func (c *Component) applyDefaults() {
	if c.root == nil {
		c.root = dom.NewElement("div")
	}
	if c.evaluator == nil {
		c.evaluator = hcltemplate.New()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.lifecycle == nil {
		c.lifecycle = NopLifecycle{}
	}
	if c.attributes == nil {
		c.attributes = attributes.NewRegistry()
	}
	if c.loader == nil {
		c.loader = loader.New(loader.Options{
			AllowHTTPFallback: true,
			RequestTimeout:    defaultRequestTimeout,
		})
	}
}

// Mount resolves the template, attaches it under the root and performs the
// initial bind. Children already under the root are moved aside and remain
// available through SlotChildren.
func (c *Component) Mount(ctx context.Context) error {
	switch {
	case c.disposed:
		return ErrDisposed
	case c.mounted:
		return ErrMounted
	}

	markup, err := c.resolveTemplate(ctx)
	if err != nil {
		return err
	}
	nodes, err := dom.Parse(markup)
	if err != nil {
		return fmt.Errorf("component: parse template: %w", err)
	}

	c.slot = c.root.RemoveChildren()
	for _, n := range nodes {
		if err := c.root.AppendChild(n); err != nil {
			return fmt.Errorf("component: attach template: %w", err)
		}
	}
	c.mounted = true

	c.UpdateBindings(c.root)
	c.RenderSubtree(c.root)
	for _, name := range c.store.Names() {
		if value, ok := c.store.Get(name); ok {
			if _, bearing := renderable(value); bearing {
				c.refresh(name)
			}
		}
	}

	c.lifecycle.Created(c)
	return nil
}

func (c *Component) resolveTemplate(ctx context.Context) (string, error) {
	var markup string
	switch {
	case c.hasTemplate:
		markup = c.template
	case c.source != nil:
		raw, err := c.loader.Load(ctx, c.source)
		if err != nil {
			return "", fmt.Errorf("component: load template: %w", err)
		}
		markup = string(raw)
	default:
		return "", ErrNoTemplate
	}

	if c.preprocessor != nil {
		out, err := c.preprocessor.Preprocess(markup, c.preprocessData())
		if err != nil {
			return "", fmt.Errorf("component: preprocess template: %w", err)
		}
		markup = out
	}
	if c.sanitizer != nil {
		markup = c.sanitizer(markup)
	}
	return markup, nil
}

func (c *Component) preprocessData() map[string]any {
	data := make(map[string]any, len(c.globals))
	for k, v := range c.globals {
		data[k] = v
	}
	for k, v := range c.store.Snapshot() {
		data[k] = v
	}
	return data
}

// Root returns the node the component renders into.
func (c *Component) Root() *dom.Node {
	return c.root
}

// SlotChildren returns the nodes that were under the root before Mount.
func (c *Component) SlotChildren() dom.NodeList {
	out := make(dom.NodeList, len(c.slot))
	copy(out, c.slot)
	return out
}

// Index exposes the bind index for inspection.
func (c *Component) Index() *binding.Index {
	return c.index
}

// Logger returns the component logger.
func (c *Component) Logger() *slog.Logger {
	return c.logger
}

// Get returns the value of name. Structured values are returned as
// *reactive.Record or *reactive.List views; writes through them notify name.
func (c *Component) Get(name string) (any, bool) {
	return c.store.Get(name)
}

// Value is Get without the presence flag.
func (c *Component) Value(name string) any {
	return c.store.Value(name)
}

// Set assigns value to name. Assigning the identical value is a no-op and
// reports false.
func (c *Component) Set(name string, value any) bool {
	return c.store.Set(name, value)
}

// Define makes name reactive without assigning it.
func (c *Component) Define(name string) bool {
	return c.store.Define(name)
}

// Names returns the reactive variable names in definition order.
func (c *Component) Names() []string {
	return c.store.Names()
}

// Snapshot returns the plain values of every assigned variable.
func (c *Component) Snapshot() map[string]any {
	return c.store.Snapshot()
}

// AddUpdateCallback registers fn for changes of name. Callbacks run in
// registration order before the DOM refresh.
func (c *Component) AddUpdateCallback(name string, fn Callback) Handle {
	if fn == nil {
		return 0
	}
	c.store.Define(name)
	c.nextHandle++
	c.callbacks[name] = append(c.callbacks[name], callback{handle: c.nextHandle, fn: fn})
	return c.nextHandle
}

// RemoveUpdateCallback removes the callback registered under handle. It
// reports false when no such callback exists.
func (c *Component) RemoveUpdateCallback(name string, handle Handle) bool {
	list := c.callbacks[name]
	for i, cb := range list {
		if cb.handle == handle {
			c.callbacks[name] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Watch implements attributes.Host.
func (c *Component) Watch(name string, fn func(name string)) func() {
	handle := c.AddUpdateCallback(name, fn)
	return func() {
		c.RemoveUpdateCallback(name, handle)
	}
}

// Notify runs the update cascade for name without assigning it, e.g. after
// mutating a value the store cannot observe.
func (c *Component) Notify(name string) {
	c.dispatch(name)
}

// Evaluate renders text against the component variables and the local scope
// visible at node.
func (c *Component) Evaluate(text string, node *dom.Node) (string, error) {
	return c.evaluator.Evaluate(text, eval.Scope{
		Self:   c.self(),
		Locals: node.LocalScope(),
	})
}

func (c *Component) self() map[string]any {
	names := c.store.Names()
	out := make(map[string]any, len(names))
	for _, name := range names {
		value := c.store.Value(name)
		if _, bearing := renderable(value); bearing {
			continue
		}
		out[name] = value
	}
	return out
}

// Dispose runs the Disposed hook, detaches attribute handlers and drops the
// index and callbacks. The rendered nodes stay where they are.
func (c *Component) Dispose() {
	if c.disposed {
		return
	}
	c.lifecycle.Disposed(c)
	c.disposed = true
	for attr, h := range c.handlers {
		if h != nil {
			h.Detach()
		}
		delete(c.handlers, attr)
	}
	c.index.Reset()
	c.callbacks = make(map[string][]callback)
	c.store.SetNotifier(nil)
}

// Disposed reports whether Dispose was called.
func (c *Component) Disposed() bool {
	return c.disposed
}

func (c *Component) dispatch(name string) {
	if c.disposed {
		return
	}
	for _, cb := range append([]callback(nil), c.callbacks[name]...) {
		cb.fn(name)
	}
	c.lifecycle.Update(c, name)
	c.refresh(name)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
