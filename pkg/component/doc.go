// Package component binds a template to a document subtree and keeps it in
// sync with component variables.
//
// A component parses its template under a root node, indexes every text and
// attribute node containing `${ ... }` interpolations, and re-evaluates only
// the nodes that reference a variable when that variable changes:
//
//	root := dom.NewElement("div")
//	c := component.New(root, component.WithTemplate(`<p>${this.greeting}</p>`))
//	if err := c.Mount(ctx); err != nil {
//		return err
//	}
//	c.Set("greeting", "Hello world!")
//
// Every Set runs synchronously: registered callbacks in order, then the
// Lifecycle Update hook, then the DOM refresh. Code that inserts or removes
// nodes under the root must call UpdateBindings afterwards so the index
// picks up new nodes and forgets removed ones.
package component
