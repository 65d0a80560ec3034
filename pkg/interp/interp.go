// Package interp finds `${ ... }` interpolations in template text and the
// component variables each one references.
//
// A variable reference is the self reference `this` followed by
// `.identifier`. Markers do not nest: an expression runs from `${` to the
// first `}` after it, and an unterminated marker is not a match.
package interp

import (
	"regexp"
	"strings"
)

const (
	// Open starts an interpolation.
	Open = "${"
	// Close ends an interpolation.
	Close = "}"
	// Self is the self reference that prefixes component variables.
	Self = "this"
)

var (
	expressionPattern = regexp.MustCompile(`\$\{([^}]*)\}`)
	referencePattern  = regexp.MustCompile(`(?:^|[^A-Za-z0-9_$.])` + Self + `\.([A-Za-z0-9_$]+)`)
)

// Expression is one interpolation found in a text.
type Expression struct {
	// Source is the expression between the markers.
	Source string
	// Start and End are byte offsets of the whole `${...}` span.
	Start int
	End   int
	// Variables are the distinct variable names in first-seen order. Empty for
	// expressions without variable references.
	Variables []string
}

// Scan calls fn for every interpolation in text, left to right.
func Scan(text string, fn func(Expression)) {
	if fn == nil || !strings.Contains(text, Open) {
		return
	}
	for _, loc := range expressionPattern.FindAllStringSubmatchIndex(text, -1) {
		source := text[loc[2]:loc[3]]
		fn(Expression{
			Source:    source,
			Start:     loc[0],
			End:       loc[1],
			Variables: References(source),
		})
	}
}

// Expressions returns every interpolation in text.
func Expressions(text string) []Expression {
	var out []Expression
	Scan(text, func(expr Expression) {
		out = append(out, expr)
	})
	return out
}

// HasInterpolation reports whether text contains at least one complete
// interpolation.
func HasInterpolation(text string) bool {
	return strings.Contains(text, Open) && expressionPattern.MatchString(text)
}

// References returns the distinct variable names referenced by a bare
// expression, in first-seen order.
func References(expr string) []string {
	matches := referencePattern.FindAllStringSubmatch(expr, -1)
	if len(matches) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Variables returns the union of variable names across every interpolation in
// text, in first-seen order.
func Variables(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	Scan(text, func(expr Expression) {
		for _, name := range expr.Variables {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	})
	return out
}

// StripVariable removes every interpolation that consists solely of a
// reference to name, e.g. `${ this.items }`.
func StripVariable(text, name string) string {
	if name == "" || !strings.Contains(text, Open) {
		return text
	}
	pattern := regexp.MustCompile(`\$\{\s*` + Self + `\.` + regexp.QuoteMeta(name) + `\s*\}`)
	return pattern.ReplaceAllString(text, "")
}
