// Package dom is the mutable document tree the binding engine writes into.
// Nodes carry parent links and ordered children; attributes are nodes of
// their own so bindings can hold a reference to them. Parsing and
// serialisation go through golang.org/x/net/html.
package dom
