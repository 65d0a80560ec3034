package component

import (
	"github.com/goliatone/go-binder/pkg/dom"
	"github.com/goliatone/go-binder/pkg/interp"
	"github.com/goliatone/go-binder/pkg/reactive"
)

// refresh re-evaluates every binding keyed by name in registration order.
func (c *Component) refresh(name string) {
	for _, b := range c.index.Bindings(name) {
		c.refreshNode(b.Node, b.RawText, b.Variables, name)
	}
}

// RenderSubtree evaluates every indexed node under node once, including nodes
// whose text only references local variables.
func (c *Component) RenderSubtree(node *dom.Node) {
	if c.disposed {
		return
	}
	dom.Walk(node, func(n *dom.Node) bool {
		targets := dom.NodeList{n}
		if n.IsElement() {
			targets = n.Attrs()
		}
		for _, t := range targets {
			raw, ok := c.index.RawText(t)
			if !ok {
				continue
			}
			c.refreshNode(t, raw, c.index.Variables(t), "")
		}
		return true
	})
}

func (c *Component) refreshNode(node *dom.Node, raw string, vars []string, changed string) {
	el := resolveElement(node)
	if el == nil || (el != c.root && !el.IsDescendantOf(c.root)) {
		return
	}

	text := raw
	for _, name := range vars {
		nodes, ok := renderable(c.store.Value(name))
		if !ok {
			continue
		}
		text = interp.StripVariable(text, name)
		if name != changed {
			continue
		}
		for _, n := range nodes {
			if err := el.AppendChild(n); err != nil {
				c.logger.Error("component: append node value", "error", err, "variable", name, "node", el)
			}
		}
	}

	if node.IsElement() {
		return
	}

	out := text
	if interp.HasInterpolation(text) {
		var err error
		out, err = c.Evaluate(text, node)
		if err != nil {
			c.logger.Error("component: evaluate binding", "error", err, "text", text, "node", node)
			out = ""
		}
	}
	if node.Type == dom.AttributeNode {
		node.SetValue(out)
		return
	}
	node.SetTextContent(out)
}

// resolveElement maps character data to its parent element and attributes
// to their owner.
func resolveElement(n *dom.Node) *dom.Node {
	switch {
	case n == nil:
		return nil
	case n.IsElement():
		return n
	case n.Type == dom.AttributeNode:
		return n.OwnerElement()
	default:
		return n.ParentElement()
	}
}

// renderable reports whether value holds nodes to splice into the tree
// rather than text to evaluate.
func renderable(value any) (dom.NodeList, bool) {
	switch typed := value.(type) {
	case *dom.Node:
		if typed == nil || typed.Type == dom.AttributeNode {
			return nil, false
		}
		return dom.NodeList{typed}, true
	case dom.NodeList:
		return typed, true
	case []*dom.Node:
		return dom.NodeList(typed), true
	case *reactive.List:
		if typed.Len() == 0 {
			return nil, false
		}
		out := make(dom.NodeList, 0, typed.Len())
		for i := 0; i < typed.Len(); i++ {
			n, ok := typed.Index(i).(*dom.Node)
			if !ok || n == nil || n.Type == dom.AttributeNode {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	}
	return nil, false
}
