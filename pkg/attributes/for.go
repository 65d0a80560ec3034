package attributes

import (
	"regexp"

	"github.com/goliatone/go-binder/pkg/dom"
)

var loopPattern = regexp.MustCompile(`^\s*(?:(?:let|const|var)\s+)?([A-Za-z_$][A-Za-z0-9_$]*)\s+(of|in)\s+(\S+)\s*$`)

// Loop repeats the children of its element once per entry of a sequence or
// record. `let x of src` binds each value to x; `let k in src` binds indices
// or sorted field names. src is either a component variable path
// (`this.items`) or a local declared by an enclosing loop.
type Loop struct {
	host     Host
	element  *dom.Node
	local    string
	keys     bool
	source   path
	template dom.NodeList
	rendered dom.NodeList
	cancel   func()
}

var _ Handler = (*Loop)(nil)

// NewLoop is the Factory for loop attributes. Values that do not look like a
// loop declaration are ignored so plain `for` attributes keep working.
func NewLoop(ctx Context) (Handler, error) {
	match := loopPattern.FindStringSubmatch(ctx.Attr.Value)
	if match == nil {
		return nil, nil
	}
	src, err := parsePath(match[3])
	if err != nil {
		return nil, err
	}
	l := &Loop{
		host:     ctx.Host,
		element:  ctx.Element,
		local:    match[1],
		keys:     match[2] == "in",
		source:   src,
		template: ctx.Element.RemoveChildren(),
	}
	if src.self {
		l.cancel = ctx.Host.Watch(src.root, func(string) { l.Render() })
	}
	l.Render()
	return l, nil
}

// Render replaces the previously rendered clones with a fresh set for the
// current source value.
func (l *Loop) Render() {
	for _, n := range l.rendered {
		n.Remove()
	}
	l.rendered = nil

	if value, ok := l.source.resolve(l.host, l.element); ok {
		for _, it := range items(value) {
			bound := it.value
			if l.keys {
				bound = it.key
			}
			for _, tmpl := range l.template {
				clone := tmpl.Clone(true)
				if clone.Scope == nil {
					clone.Scope = make(map[string]any, 1)
				}
				clone.Scope[l.local] = bound
				if err := l.element.AppendChild(clone); err != nil {
					l.host.Logger().Error("attributes: append loop item", "error", err, "node", l.element)
					continue
				}
				l.rendered = append(l.rendered, clone)
			}
		}
	}

	l.host.UpdateBindings(l.element)
	for _, n := range l.rendered {
		l.host.RenderSubtree(n)
	}
}

// Rendered returns the clones currently attached.
func (l *Loop) Rendered() dom.NodeList {
	out := make(dom.NodeList, len(l.rendered))
	copy(out, l.rendered)
	return out
}

// Detach stops watching the source variable.
func (l *Loop) Detach() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
