package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML fragment in a <body> context and returns the top-level
// nodes, detached and in document order.
func Parse(markup string) (NodeList, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	out := make(NodeList, 0, len(parsed))
	for _, n := range parsed {
		if converted := fromHTML(n); converted != nil {
			out = append(out, converted)
		}
	}
	return out, nil
}

// ParseFragment parses markup into a fragment node holding the parsed nodes.
func ParseFragment(markup string) (*Node, error) {
	nodes, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	frag := NewFragment()
	for _, n := range nodes {
		if err := frag.AppendChild(n); err != nil {
			return nil, err
		}
	}
	return frag, nil
}

func fromHTML(n *html.Node) *Node {
	switch n.Type {
	case html.ElementNode:
		el := NewElement(n.Data)
		el.Namespace = n.Namespace
		for _, attr := range n.Attr {
			name := attr.Key
			if attr.Namespace != "" {
				name = attr.Namespace + ":" + attr.Key
			}
			el.SetAttr(name, attr.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTML(c); child != nil {
				_ = el.AppendChild(child)
			}
		}
		return el
	case html.TextNode:
		return NewText(n.Data)
	case html.CommentNode:
		return NewComment(n.Data)
	default:
		return nil
	}
}

func toHTML(n *Node) *html.Node {
	switch n.Type {
	case ElementNode:
		out := &html.Node{
			Type:      html.ElementNode,
			Data:      n.Data,
			DataAtom:  atom.Lookup([]byte(n.Data)),
			Namespace: n.Namespace,
		}
		for _, attr := range n.attrs {
			out.Attr = append(out.Attr, html.Attribute{Key: attr.Data, Val: attr.Value})
		}
		for _, child := range n.children {
			if c := toHTML(child); c != nil {
				out.AppendChild(c)
			}
		}
		return out
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.Data}
	default:
		return nil
	}
}

// Render writes the HTML serialisation of n. Fragments render their children;
// attribute nodes render as name="value".
func Render(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	switch n.Type {
	case FragmentNode:
		for _, child := range n.children {
			if err := Render(w, child); err != nil {
				return err
			}
		}
		return nil
	case AttributeNode:
		_, err := fmt.Fprintf(w, "%s=\"%s\"", n.Data, html.EscapeString(n.Value))
		return err
	}
	converted := toHTML(n)
	if converted == nil {
		return nil
	}
	return html.Render(w, converted)
}

// OuterHTML renders n including itself.
func OuterHTML(n *Node) string {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the children of n.
func InnerHTML(n *Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	for _, child := range n.children {
		if err := Render(&buf, child); err != nil {
			return ""
		}
	}
	return buf.String()
}

// String implements fmt.Stringer with a short diagnostic description used in
// log output.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case ElementNode:
		return "<" + n.Data + ">"
	case TextNode:
		return fmt.Sprintf("#text %q", truncate(n.Data, 40))
	case CommentNode:
		return fmt.Sprintf("#comment %q", truncate(n.Data, 40))
	case AttributeNode:
		return fmt.Sprintf("@%s=%q", n.Data, truncate(n.Value, 40))
	case FragmentNode:
		return "#fragment"
	default:
		return "#unknown"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
