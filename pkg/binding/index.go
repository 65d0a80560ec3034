// Package binding keeps the two-way index between component variables and
// the document nodes whose text depends on them.
//
// For every variable v listed for a node n there is exactly one Binding for
// n under v, and the other way around. Nodes scanned without any variable
// reference keep an empty entry so later passes treat them as already seen.
package binding

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-binder/pkg/dom"
)

// Binding ties a text-bearing node to the raw text it was discovered with and
// the variables that text references.
type Binding struct {
	Node      *dom.Node
	RawText   string
	Variables []string
}

// DependsOn reports whether the binding references name.
func (b *Binding) DependsOn(name string) bool {
	for _, v := range b.Variables {
		if v == name {
			return true
		}
	}
	return false
}

// Index holds bindings by variable (registration order) and variable names
// by node. It is owned by one component and is not safe for concurrent use.
type Index struct {
	byVariable map[string][]*Binding
	byNode     map[*dom.Node]*nodeEntry
	nodes      []*dom.Node
}

type nodeEntry struct {
	raw  string
	vars []string
}

// New returns an empty index.
func New() *Index {
	return &Index{
		byVariable: make(map[string][]*Binding),
		byNode:     make(map[*dom.Node]*nodeEntry),
	}
}

// Mark records node as scanned together with the raw text it was scanned
// with. Marking a node that already has an entry is a no-op.
func (idx *Index) Mark(node *dom.Node, rawText string) {
	if node == nil {
		return
	}
	if _, ok := idx.byNode[node]; ok {
		return
	}
	idx.byNode[node] = &nodeEntry{raw: rawText}
	idx.nodes = append(idx.nodes, node)
}

// Add registers one binding per variable in vars that node is not yet bound
// to and returns the variable names that were newly bound. vars is shared by
// every binding created in this call.
func (idx *Index) Add(node *dom.Node, rawText string, vars []string) []string {
	if node == nil {
		return nil
	}
	idx.Mark(node, rawText)
	entry := idx.byNode[node]

	var added []string
	for _, name := range vars {
		if idx.boundTo(node, name) {
			continue
		}
		idx.byVariable[name] = append(idx.byVariable[name], &Binding{
			Node:      node,
			RawText:   rawText,
			Variables: vars,
		})
		entry.vars = append(entry.vars, name)
		added = append(added, name)
	}
	return added
}

func (idx *Index) boundTo(node *dom.Node, name string) bool {
	entry, ok := idx.byNode[node]
	if !ok {
		return false
	}
	for _, v := range entry.vars {
		if v == name {
			return true
		}
	}
	return false
}

// Has reports whether node has an entry.
func (idx *Index) Has(node *dom.Node) bool {
	_, ok := idx.byNode[node]
	return ok
}

// RawText returns the text node was scanned with.
func (idx *Index) RawText(node *dom.Node) (string, bool) {
	entry, ok := idx.byNode[node]
	if !ok {
		return "", false
	}
	return entry.raw, true
}

// Variables returns the variable names bound at node.
func (idx *Index) Variables(node *dom.Node) []string {
	entry, ok := idx.byNode[node]
	if !ok || len(entry.vars) == 0 {
		return nil
	}
	out := make([]string, len(entry.vars))
	copy(out, entry.vars)
	return out
}

// Bindings returns the bindings keyed by name in registration order. The
// returned slice is a snapshot.
func (idx *Index) Bindings(name string) []*Binding {
	list := idx.byVariable[name]
	if len(list) == 0 {
		return nil
	}
	out := make([]*Binding, len(list))
	copy(out, list)
	return out
}

// Remove deletes every binding for node along with its entry and returns the
// number of bindings removed. Unknown nodes are ignored.
func (idx *Index) Remove(node *dom.Node) int {
	entry, ok := idx.byNode[node]
	if !ok {
		return 0
	}
	removed := 0
	for _, name := range entry.vars {
		list := idx.byVariable[name]
		kept := list[:0]
		for _, b := range list {
			if b.Node == node {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		if len(kept) == 0 {
			delete(idx.byVariable, name)
			continue
		}
		for i := len(kept); i < len(list); i++ {
			list[i] = nil
		}
		idx.byVariable[name] = kept
	}
	delete(idx.byNode, node)
	for i, n := range idx.nodes {
		if n == node {
			idx.nodes = append(idx.nodes[:i], idx.nodes[i+1:]...)
			break
		}
	}
	return removed
}

// Nodes returns every node with an entry, in the order they were first seen.
func (idx *Index) Nodes() []*dom.Node {
	out := make([]*dom.Node, len(idx.nodes))
	copy(out, idx.nodes)
	return out
}

// Len returns the total number of bindings.
func (idx *Index) Len() int {
	total := 0
	for _, list := range idx.byVariable {
		total += len(list)
	}
	return total
}

// NodeCount returns the number of node entries.
func (idx *Index) NodeCount() int {
	return len(idx.byNode)
}

// VariableNames returns every variable with at least one binding, sorted.
func (idx *Index) VariableNames() []string {
	out := make([]string, 0, len(idx.byVariable))
	for name, list := range idx.byVariable {
		if len(list) == 0 {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reset drops every entry.
func (idx *Index) Reset() {
	idx.byVariable = make(map[string][]*Binding)
	idx.byNode = make(map[*dom.Node]*nodeEntry)
	idx.nodes = nil
}

// Verify checks that both directions agree and returns the first mismatch.
func (idx *Index) Verify() error {
	for node, entry := range idx.byNode {
		for _, name := range entry.vars {
			count := 0
			for _, b := range idx.byVariable[name] {
				if b.Node == node {
					count++
				}
			}
			if count != 1 {
				return fmt.Errorf("binding: node %s has %d bindings for %q, want 1", node, count, name)
			}
		}
	}
	for name, list := range idx.byVariable {
		for _, b := range list {
			if !idx.boundTo(b.Node, name) {
				return fmt.Errorf("binding: binding for %q on %s missing from node entry", name, b.Node)
			}
		}
	}
	if len(idx.nodes) != len(idx.byNode) {
		return fmt.Errorf("binding: node order has %d entries, node map has %d", len(idx.nodes), len(idx.byNode))
	}
	return nil
}
