// Package hcltemplate evaluates `${ ... }` template text with the HCL
// template language. Component variables are exposed as attributes of the
// `this` object and local scope entries as top-level variables, so the
// authored syntax `${this.name}` is evaluated as written.
package hcltemplate

import (
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/goliatone/go-binder/pkg/eval"
	"github.com/goliatone/go-binder/pkg/interp"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithFunctions registers additional HCL functions, replacing built-ins with
// the same name.
func WithFunctions(funcs map[string]function.Function) Option {
	return func(e *Evaluator) {
		for name, fn := range funcs {
			e.functions[name] = fn
		}
	}
}

// WithStrictNulls keeps unassigned component variables as null instead of
// rendering them as empty strings. HCL rejects null values inside larger
// templates, so strict mode surfaces those as evaluation errors.
func WithStrictNulls() Option {
	return func(e *Evaluator) {
		e.strictNulls = true
	}
}

// Evaluator implements eval.Evaluator on top of hclsyntax templates. Parsed
// templates are cached by text.
type Evaluator struct {
	mu          sync.RWMutex
	cache       map[string]hclsyntax.Expression
	functions   map[string]function.Function
	strictNulls bool
}

var _ eval.Evaluator = (*Evaluator)(nil)

// New returns an Evaluator with a small set of string and collection
// functions from go-cty's stdlib.
func New(options ...Option) *Evaluator {
	e := &Evaluator{
		cache: make(map[string]hclsyntax.Expression),
		functions: map[string]function.Function{
			"upper":      stdlib.UpperFunc,
			"lower":      stdlib.LowerFunc,
			"length":     stdlib.LengthFunc,
			"join":       stdlib.JoinFunc,
			"format":     stdlib.FormatFunc,
			"jsonencode": stdlib.JSONEncodeFunc,
			"trimspace":  stdlib.TrimSpaceFunc,
			"keys":       stdlib.KeysFunc,
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Evaluate renders text against scope.
func (e *Evaluator) Evaluate(text string, scope eval.Scope) (string, error) {
	expr, err := e.parse(text)
	if err != nil {
		return "", err
	}

	ctx, err := e.context(scope)
	if err != nil {
		return "", err
	}

	value, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return "", fmt.Errorf("hcltemplate: evaluate: %w", diags)
	}
	return Stringify(value)
}

func (e *Evaluator) parse(text string) (hclsyntax.Expression, error) {
	e.mu.RLock()
	expr, ok := e.cache[text]
	e.mu.RUnlock()
	if ok {
		return expr, nil
	}

	expr, diags := hclsyntax.ParseTemplate([]byte(text), "template", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, fmt.Errorf("hcltemplate: parse: %w", diags)
	}

	e.mu.Lock()
	e.cache[text] = expr
	e.mu.Unlock()
	return expr, nil
}

func (e *Evaluator) context(scope eval.Scope) (*hcl.EvalContext, error) {
	self := make(map[string]cty.Value, len(scope.Self))
	for name, value := range scope.Self {
		if value == nil && !e.strictNulls {
			self[name] = cty.StringVal("")
			continue
		}
		converted, err := ToValue(value)
		if err != nil {
			return nil, fmt.Errorf("hcltemplate: convert %s.%s: %w", interp.Self, name, err)
		}
		self[name] = converted
	}

	vars := make(map[string]cty.Value, len(scope.Locals)+1)
	for name, value := range scope.Locals {
		if name == interp.Self || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		converted, err := ToValue(value)
		if err != nil {
			return nil, fmt.Errorf("hcltemplate: convert local %s: %w", name, err)
		}
		vars[name] = converted
	}
	vars[interp.Self] = cty.ObjectVal(self)

	return &hcl.EvalContext{
		Variables: vars,
		Functions: e.functions,
	}, nil
}
