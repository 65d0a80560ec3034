package dom

import (
	"errors"
	"strings"
)

// NodeType identifies the kind of a Node.
type NodeType int

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	AttributeNode
	FragmentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case AttributeNode:
		return "attribute"
	case FragmentNode:
		return "fragment"
	default:
		return "unknown"
	}
}

// ErrHierarchy is returned when an insertion would produce an invalid tree:
// attaching a node under itself or one of its descendants, or inserting
// attribute nodes as children.
var ErrHierarchy = errors.New("dom: invalid hierarchy")

// Node is a mutable document node. Elements carry ordered children and
// ordered attribute nodes; attribute nodes point back to their owner element.
//
// Data holds the tag name for elements, the character data for text and
// comment nodes, and the attribute name for attribute nodes. Value is only
// meaningful for attributes.
type Node struct {
	Type      NodeType
	Data      string
	Value     string
	Namespace string

	// Scope holds local variables declared on this node by structural
	// constructs such as loops. See LocalScope.
	Scope map[string]any

	parent   *Node
	owner    *Node
	children []*Node
	attrs    []*Node
}

// NodeList is an ordered sequence of renderable nodes.
type NodeList []*Node

// NewElement returns a detached element with the given tag name.
func NewElement(tag string) *Node {
	return &Node{Type: ElementNode, Data: strings.ToLower(strings.TrimSpace(tag))}
}

// NewText returns a detached text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Data: text}
}

// NewComment returns a detached comment node.
func NewComment(text string) *Node {
	return &Node{Type: CommentNode, Data: text}
}

// NewFragment returns an empty fragment. Appending a fragment moves its
// children into the target and leaves the fragment empty.
func NewFragment() *Node {
	return &Node{Type: FragmentNode}
}

// IsCharacterData reports whether the node holds character data (text or
// comment).
func (n *Node) IsCharacterData() bool {
	return n != nil && (n.Type == TextNode || n.Type == CommentNode)
}

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// Parent returns the parent node. Attribute nodes have no parent; use
// OwnerElement instead.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// ParentElement returns the parent when it is an element.
func (n *Node) ParentElement() *Node {
	if n == nil || n.parent == nil || n.parent.Type != ElementNode {
		return nil
	}
	return n.parent
}

// OwnerElement returns the element an attribute node belongs to.
func (n *Node) OwnerElement() *Node {
	if n == nil {
		return nil
	}
	return n.owner
}

// Children returns a snapshot of the child nodes.
func (n *Node) Children() NodeList {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make(NodeList, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Attrs returns a snapshot of the attribute nodes in document order.
func (n *Node) Attrs() NodeList {
	if n == nil || len(n.attrs) == 0 {
		return nil
	}
	out := make(NodeList, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Attr returns the attribute node with the given name.
func (n *Node) Attr(name string) *Node {
	if n == nil {
		return nil
	}
	for _, attr := range n.attrs {
		if attr.Data == name {
			return attr
		}
	}
	return nil
}

// AttrValue returns the value of the named attribute and whether it exists.
func (n *Node) AttrValue(name string) (string, bool) {
	attr := n.Attr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// SetAttr sets an attribute value, creating the attribute node when missing.
// The attribute node is returned so callers can keep a reference to it.
func (n *Node) SetAttr(name, value string) *Node {
	if n == nil || n.Type != ElementNode {
		return nil
	}
	if attr := n.Attr(name); attr != nil {
		attr.Value = value
		return attr
	}
	attr := &Node{Type: AttributeNode, Data: name, Value: value, owner: n}
	n.attrs = append(n.attrs, attr)
	return attr
}

// RemoveAttr detaches the named attribute and returns it.
func (n *Node) RemoveAttr(name string) *Node {
	if n == nil {
		return nil
	}
	for i, attr := range n.attrs {
		if attr.Data == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			attr.owner = nil
			return attr
		}
	}
	return nil
}

// AppendChild moves child to the end of n's children. Fragments are spliced:
// their children move and the fragment is left empty.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) error {
	if n == nil || child == nil {
		return ErrHierarchy
	}
	if n.Type != ElementNode && n.Type != FragmentNode {
		return ErrHierarchy
	}
	if child.Type == AttributeNode {
		return ErrHierarchy
	}
	if ref != nil && ref.parent != n {
		return errors.New("dom: reference node is not a child")
	}

	if child.Type == FragmentNode {
		if child == n {
			return ErrHierarchy
		}
		for _, grandchild := range child.Children() {
			if err := n.InsertBefore(grandchild, ref); err != nil {
				return err
			}
		}
		return nil
	}

	if child == n || n.IsDescendantOf(child) {
		return ErrHierarchy
	}
	if child == ref {
		return nil
	}

	child.Remove()
	child.parent = n
	if ref == nil {
		n.children = append(n.children, child)
		return nil
	}
	idx := n.indexOf(ref)
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	return nil
}

// RemoveChild detaches child from n. Removing a node that is not a child is a
// no-op that reports false.
func (n *Node) RemoveChild(child *Node) bool {
	if n == nil || child == nil || child.parent != n {
		return false
	}
	idx := n.indexOf(child)
	if idx < 0 {
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	child.parent = nil
	return true
}

// Remove detaches the node from its parent (or owner, for attributes).
func (n *Node) Remove() {
	if n == nil {
		return
	}
	if n.Type == AttributeNode {
		if n.owner != nil {
			n.owner.RemoveAttr(n.Data)
		}
		return
	}
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// RemoveChildren detaches every child and returns them in order.
func (n *Node) RemoveChildren() NodeList {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	removed := n.Children()
	for _, child := range removed {
		child.parent = nil
	}
	n.children = nil
	return removed
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// IsDescendantOf reports whether n sits strictly below root. Attribute nodes
// are descendants when their owner element is. The walk stops at a nil parent
// and is guarded against parent cycles.
func (n *Node) IsDescendantOf(root *Node) bool {
	if n == nil || root == nil {
		return false
	}
	start := n.parent
	if n.Type == AttributeNode {
		if n.owner == nil {
			return false
		}
		if n.owner == root {
			return false
		}
		start = n.owner.parent
	}

	slow, fast := start, start
	for fast != nil {
		if fast == root {
			return true
		}
		fast = fast.parent
		if fast == nil {
			return false
		}
		if fast == root {
			return true
		}
		fast = fast.parent
		slow = slow.parent
		if fast != nil && fast == slow {
			return false
		}
	}
	return false
}

// TextContent returns the node's character data, attribute value, or the
// concatenated text of every descendant text node.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case TextNode, CommentNode:
		return n.Data
	case AttributeNode:
		return n.Value
	}
	var b strings.Builder
	n.collectText(&b)
	return b.String()
}

func (n *Node) collectText(b *strings.Builder) {
	for _, child := range n.children {
		switch child.Type {
		case TextNode:
			b.WriteString(child.Data)
		case ElementNode, FragmentNode:
			child.collectText(b)
		}
	}
}

// SetTextContent replaces the node's text. Elements and fragments lose their
// children and receive a single text node (none when text is empty).
func (n *Node) SetTextContent(text string) {
	if n == nil {
		return
	}
	switch n.Type {
	case TextNode, CommentNode:
		n.Data = text
	case AttributeNode:
		n.Value = text
	default:
		n.RemoveChildren()
		if text != "" {
			_ = n.AppendChild(NewText(text))
		}
	}
}

// SetValue writes a value: attribute nodes store it, form controls mirror it
// into their value attribute, anything else receives it as text content.
func (n *Node) SetValue(value string) {
	if n == nil {
		return
	}
	switch n.Type {
	case AttributeNode:
		n.Value = value
	case ElementNode:
		switch n.Data {
		case "input", "option", "button", "select":
			n.SetAttr("value", value)
		default:
			n.SetTextContent(value)
		}
	default:
		n.SetTextContent(value)
	}
}

// Clone copies the node. Attributes and scope are always copied; children are
// copied when deep is true. The clone is detached.
func (n *Node) Clone(deep bool) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Type:      n.Type,
		Data:      n.Data,
		Value:     n.Value,
		Namespace: n.Namespace,
	}
	if len(n.Scope) > 0 {
		out.Scope = make(map[string]any, len(n.Scope))
		for k, v := range n.Scope {
			out.Scope[k] = v
		}
	}
	for _, attr := range n.attrs {
		out.attrs = append(out.attrs, &Node{
			Type:      AttributeNode,
			Data:      attr.Data,
			Value:     attr.Value,
			Namespace: attr.Namespace,
			owner:     out,
		})
	}
	if deep {
		for _, child := range n.children {
			c := child.Clone(true)
			c.parent = out
			out.children = append(out.children, c)
		}
	}
	return out
}

// LocalScope merges Scope maps from the outermost ancestor down to n, so
// declarations closer to n win. Attribute nodes start from their owner.
func (n *Node) LocalScope() map[string]any {
	var chain []*Node
	cur := n
	if cur != nil && cur.Type == AttributeNode {
		chain = append(chain, cur)
		cur = cur.owner
	}
	seen := make(map[*Node]struct{})
	for cur != nil {
		if _, ok := seen[cur]; ok {
			break
		}
		seen[cur] = struct{}{}
		chain = append(chain, cur)
		cur = cur.parent
	}

	var out map[string]any
	for i := len(chain) - 1; i >= 0; i-- {
		if len(chain[i].Scope) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		for k, v := range chain[i].Scope {
			out[k] = v
		}
	}
	return out
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || fn == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}

// FindAll returns every node under (and including) root matching pred, in
// document order.
func FindAll(root *Node, pred func(*Node) bool) NodeList {
	var out NodeList
	Walk(root, func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindElement returns the first element with the given tag under root.
func FindElement(root *Node, tag string) *Node {
	tag = strings.ToLower(tag)
	found := FindAll(root, func(n *Node) bool {
		return n.Type == ElementNode && n.Data == tag
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}
