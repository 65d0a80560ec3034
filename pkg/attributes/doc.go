// Package attributes implements structural attribute handlers. A handler is
// created once per attribute node found under a component and may insert or
// remove nodes, after which it asks its Host to resynchronise bindings.
//
// The built-in registry understands loops:
//
//	<ul for="let item of this.items"><li>${item}</li></ul>
//	<p for="let key in this.settings">${key}: ${this.settings[key]}</p>
//
// and conditionals:
//
//	<div if="this.open">...</div>
package attributes
