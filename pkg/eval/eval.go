// Package eval defines the expression evaluator the binding engine calls to
// turn template text into rendered text. The engine treats evaluation as an
// opaque capability; hcltemplate provides the default implementation.
package eval

import "strings"

// Scope is the data an expression is evaluated against. Self holds the
// component variables reachable as `this.<name>`; Locals holds variables
// declared by enclosing structural constructs and is reachable by bare name.
type Scope struct {
	Self   map[string]any
	Locals map[string]any
}

// Evaluator renders a template text containing `${ ... }` interpolations.
type Evaluator interface {
	Evaluate(text string, scope Scope) (string, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(text string, scope Scope) (string, error)

// Evaluate delegates to the underlying function.
func (fn EvaluatorFunc) Evaluate(text string, scope Scope) (string, error) {
	return fn(text, scope)
}

// Truthy interprets rendered text as a condition. Empty text, "false", "0"
// and "null" are false; everything else is true.
func Truthy(rendered string) bool {
	switch strings.ToLower(strings.TrimSpace(rendered)) {
	case "", "false", "0", "null":
		return false
	default:
		return true
	}
}
