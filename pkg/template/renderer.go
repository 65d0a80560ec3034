// Package template defines the preprocessing seam a component runs over its
// template text before parsing it. Preprocessors handle static, render-once
// syntax ({{ }} / {% %}); `${ }` interpolations pass through untouched and
// stay live.
package template

import "io"

// Renderer renders template content with data.
type Renderer interface {
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

// Preprocessor turns raw template text into the markup that gets parsed.
type Preprocessor interface {
	Preprocess(text string, data map[string]any) (string, error)
}

// PreprocessorFunc adapts a function into a Preprocessor.
type PreprocessorFunc func(text string, data map[string]any) (string, error)

// Preprocess delegates to the underlying function.
func (fn PreprocessorFunc) Preprocess(text string, data map[string]any) (string, error) {
	return fn(text, data)
}

// FromRenderer adapts a Renderer into a Preprocessor.
func FromRenderer(r Renderer) Preprocessor {
	return PreprocessorFunc(func(text string, data map[string]any) (string, error) {
		return r.RenderString(text, data)
	})
}
