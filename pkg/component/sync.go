package component

import (
	"github.com/goliatone/go-binder/pkg/attributes"
	"github.com/goliatone/go-binder/pkg/dom"
	"github.com/goliatone/go-binder/pkg/interp"
)

// UpdateBindings resynchronises the bind index with the subtree at node. It
// must be called after nodes are inserted under or removed from the
// component. Attribute handlers are attached first so structural attributes
// capture their raw children, then every text-bearing node under node is
// bound or retired, then index entries for nodes that left the root are
// dropped.
func (c *Component) UpdateBindings(node *dom.Node) {
	if c.disposed || node == nil {
		return
	}
	c.attachHandlers(node)
	c.syncNode(node)
	c.sweep()
}

func (c *Component) attachHandlers(node *dom.Node) {
	dom.Walk(node, func(n *dom.Node) bool {
		if !n.IsElement() || !n.IsDescendantOf(c.root) {
			return true
		}
		for _, attr := range n.Attrs() {
			if _, seen := c.handlers[attr]; seen {
				continue
			}
			factory, ok := c.attributes.Lookup(attr.Data)
			if !ok {
				continue
			}
			// reserve the slot: factories call back into UpdateBindings
			c.handlers[attr] = nil
			h, err := factory(attributes.Context{Host: c, Attr: attr, Element: n})
			if err != nil {
				c.logger.Error("component: attach attribute handler", "error", err, "attr", attr.Data, "node", n)
				continue
			}
			if h != nil {
				c.handlers[attr] = h
			}
		}
		return true
	})
}

func (c *Component) syncNode(n *dom.Node) {
	switch {
	case n.IsCharacterData():
		c.syncTarget(n)
	case n.IsElement():
		for _, attr := range n.Attrs() {
			c.syncTarget(attr)
		}
	}
	for _, child := range n.Children() {
		c.syncNode(child)
	}
}

func (c *Component) syncTarget(n *dom.Node) {
	live := n.IsDescendantOf(c.root)
	bound := c.index.Has(n)
	switch {
	case bound && !live:
		removed := c.index.Remove(n)
		c.logger.Debug("component: retired bindings", "node", n, "bindings", removed)
	case !bound && live:
		c.scan(n)
	}
}

func (c *Component) scan(n *dom.Node) {
	raw := n.TextContent()
	if raw == "" || !interp.HasInterpolation(raw) {
		return
	}
	vars := interp.Variables(raw)
	c.index.Add(n, raw, vars)
	for _, name := range vars {
		c.store.Define(name)
	}
	c.logger.Debug("component: bound node", "node", n, "variables", vars)
}

func (c *Component) sweep() {
	for _, n := range c.index.Nodes() {
		if !n.IsDescendantOf(c.root) {
			removed := c.index.Remove(n)
			c.logger.Debug("component: retired bindings", "node", n, "bindings", removed)
		}
	}
	for attr, h := range c.handlers {
		if attr.IsDescendantOf(c.root) {
			continue
		}
		if h != nil {
			h.Detach()
		}
		delete(c.handlers, attr)
	}
}
