package component

// Lifecycle receives component lifecycle events. Created runs once after the
// initial bind, Update on every variable change after registered callbacks
// and before the DOM refresh, Disposed from Dispose.
type Lifecycle interface {
	Created(c *Component)
	Update(c *Component, name string)
	Disposed(c *Component)
}

// NopLifecycle implements Lifecycle with no-ops. Embed it to override a
// subset of hooks.
type NopLifecycle struct{}

func (NopLifecycle) Created(*Component)        {}
func (NopLifecycle) Update(*Component, string) {}
func (NopLifecycle) Disposed(*Component)       {}

var _ Lifecycle = NopLifecycle{}

// LifecycleFuncs adapts optional functions into a Lifecycle.
type LifecycleFuncs struct {
	OnCreated  func(c *Component)
	OnUpdate   func(c *Component, name string)
	OnDisposed func(c *Component)
}

var _ Lifecycle = LifecycleFuncs{}

func (l LifecycleFuncs) Created(c *Component) {
	if l.OnCreated != nil {
		l.OnCreated(c)
	}
}

func (l LifecycleFuncs) Update(c *Component, name string) {
	if l.OnUpdate != nil {
		l.OnUpdate(c, name)
	}
}

func (l LifecycleFuncs) Disposed(c *Component) {
	if l.OnDisposed != nil {
		l.OnDisposed(c)
	}
}
