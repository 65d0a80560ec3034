package component

import (
	"log/slog"

	"github.com/goliatone/go-binder/pkg/attributes"
	"github.com/goliatone/go-binder/pkg/eval"
	"github.com/goliatone/go-binder/pkg/source"
	"github.com/goliatone/go-binder/pkg/template"
)

// Option customises a Component.
type Option func(*Component)

// WithTemplate sets inline template markup.
func WithTemplate(markup string) Option {
	return func(c *Component) {
		c.template = markup
		c.hasTemplate = true
	}
}

// WithSource loads the template from src during Mount. An inline template set
// with WithTemplate takes precedence.
func WithSource(src source.Source) Option {
	return func(c *Component) {
		c.source = src
	}
}

// WithLoader injects the loader used for WithSource.
func WithLoader(loader source.Loader) Option {
	return func(c *Component) {
		c.loader = loader
	}
}

// WithEvaluator replaces the expression evaluator.
func WithEvaluator(evaluator eval.Evaluator) Option {
	return func(c *Component) {
		c.evaluator = evaluator
	}
}

// WithLogger sets the logger used for evaluation failures and index
// maintenance.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Component) {
		c.logger = logger
	}
}

// WithLifecycle installs lifecycle hooks.
func WithLifecycle(lifecycle Lifecycle) Option {
	return func(c *Component) {
		c.lifecycle = lifecycle
	}
}

// WithAttributes replaces the attribute handler registry. Pass
// attributes.NewEmptyRegistry() to disable structural attributes.
func WithAttributes(registry *attributes.Registry) Option {
	return func(c *Component) {
		c.attributes = registry
	}
}

// WithState assigns initial variable values before the template is bound.
// No notifications are sent for these assignments.
func WithState(state map[string]any) Option {
	return func(c *Component) {
		if len(state) == 0 {
			return
		}
		if c.state == nil {
			c.state = make(map[string]any, len(state))
		}
		for k, v := range state {
			c.state[k] = v
		}
	}
}

// WithSanitizer filters the template markup after preprocessing and before
// parsing, e.g. sanitize.Template.
func WithSanitizer(fn func(string) string) Option {
	return func(c *Component) {
		c.sanitizer = fn
	}
}

// WithPreprocessor runs p over the template text before parsing. It receives
// the globals merged with the initial state.
func WithPreprocessor(p template.Preprocessor) Option {
	return func(c *Component) {
		c.preprocessor = p
	}
}

// WithGlobals supplies preprocessor data that is not part of the reactive
// state.
func WithGlobals(globals map[string]any) Option {
	return func(c *Component) {
		if len(globals) == 0 {
			return
		}
		if c.globals == nil {
			c.globals = make(map[string]any, len(globals))
		}
		for k, v := range globals {
			c.globals[k] = v
		}
	}
}
