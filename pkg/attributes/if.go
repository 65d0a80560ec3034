package attributes

import (
	"strings"

	"github.com/goliatone/go-binder/pkg/dom"
	"github.com/goliatone/go-binder/pkg/eval"
	"github.com/goliatone/go-binder/pkg/interp"
)

// Conditional keeps the children of its element attached while its
// expression is truthy. The attribute holds a bare expression
// (`this.visible`) or template text (`${this.count > 0}`).
type Conditional struct {
	host     Host
	element  *dom.Node
	text     string
	template dom.NodeList
	rendered dom.NodeList
	shown    bool
	cancels  []func()
}

var _ Handler = (*Conditional)(nil)

// NewConditional is the Factory for `if` attributes.
func NewConditional(ctx Context) (Handler, error) {
	expr := strings.TrimSpace(ctx.Attr.Value)
	if expr == "" {
		return nil, nil
	}
	text := expr
	if !interp.HasInterpolation(expr) {
		text = interp.Open + expr + interp.Close
	}
	c := &Conditional{
		host:     ctx.Host,
		element:  ctx.Element,
		text:     text,
		template: ctx.Element.RemoveChildren(),
	}
	for _, name := range interp.Variables(text) {
		c.cancels = append(c.cancels, ctx.Host.Watch(name, func(string) { c.Render() }))
	}
	c.Render()
	return c, nil
}

// Shown reports whether the children are currently attached.
func (c *Conditional) Shown() bool {
	return c.shown
}

// Render evaluates the expression and attaches or removes the children.
func (c *Conditional) Render() {
	out, err := c.host.Evaluate(c.text, c.element)
	if err != nil {
		c.host.Logger().Error("attributes: evaluate condition", "error", err, "text", c.text, "node", c.element)
	}
	want := err == nil && eval.Truthy(out)
	if want == c.shown {
		return
	}
	c.shown = want

	if !want {
		for _, n := range c.rendered {
			n.Remove()
		}
		c.rendered = nil
		c.host.UpdateBindings(c.element)
		return
	}

	for _, tmpl := range c.template {
		clone := tmpl.Clone(true)
		if err := c.element.AppendChild(clone); err != nil {
			c.host.Logger().Error("attributes: append conditional content", "error", err, "node", c.element)
			continue
		}
		c.rendered = append(c.rendered, clone)
	}
	c.host.UpdateBindings(c.element)
	for _, n := range c.rendered {
		c.host.RenderSubtree(n)
	}
}

// Detach stops watching the referenced variables.
func (c *Conditional) Detach() {
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
}
