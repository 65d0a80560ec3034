// Package sanitize cleans authored template markup with bluemonday before a
// component parses it. The policy keeps the attributes the binding engine
// understands and leaves `${ }` interpolations intact.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the shared template policy: bluemonday's UGC policy plus
// the structural and form attributes templates commonly bind.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("for", "loop-for", "if", "class", "id", "title", "role").Globally()
		p.AllowElements("form", "input", "button", "select", "option", "label", "textarea", "section", "article", "header", "footer", "nav")
		p.AllowAttrs("value", "name", "type", "placeholder", "checked", "disabled", "selected").
			OnElements("input", "button", "select", "option", "textarea")
		policy = p
	})
	return policy
}

// Template sanitises markup with the shared policy.
func Template(markup string) string {
	return Clean(Policy(), markup)
}

// Clean sanitises markup with p, falling back to the shared policy when p is
// nil.
func Clean(p *bluemonday.Policy, markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	if p == nil {
		p = Policy()
	}
	return p.Sanitize(markup)
}
