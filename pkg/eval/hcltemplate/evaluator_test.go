package hcltemplate

import (
	"strings"
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/goliatone/go-binder/pkg/eval"
)

type view struct {
	data any
}

func (v view) Unwrap() any { return v.data }

func TestEvaluate(t *testing.T) {
	ev := New()

	cases := []struct {
		name  string
		text  string
		scope eval.Scope
		want  string
	}{
		{
			name:  "plain interpolation",
			text:  "${this.text}",
			scope: eval.Scope{Self: map[string]any{"text": "Hello world!"}},
			want:  "Hello world!",
		},
		{
			name:  "arithmetic in literal text",
			text:  "Count: ${this.n + 1}",
			scope: eval.Scope{Self: map[string]any{"n": 2}},
			want:  "Count: 3",
		},
		{
			name:  "local scope",
			text:  "<${value}>",
			scope: eval.Scope{Locals: map[string]any{"value": 3}},
			want:  "<3>",
		},
		{
			name: "nested record",
			text: "${this.user.name} (${this.user.tags[1]})",
			scope: eval.Scope{Self: map[string]any{
				"user": map[string]any{"name": "Ada", "tags": []any{"a", "b"}},
			}},
			want: "Ada (b)",
		},
		{
			name:  "unwrapped view",
			text:  "${this.cfg.mode}",
			scope: eval.Scope{Self: map[string]any{"cfg": view{data: map[string]any{"mode": "dark"}}}},
			want:  "dark",
		},
		{
			name:  "function",
			text:  "${upper(this.s)}",
			scope: eval.Scope{Self: map[string]any{"s": "shout"}},
			want:  "SHOUT",
		},
		{
			name:  "directive",
			text:  "%{ if this.ok }yes%{ else }no%{ endif }",
			scope: eval.Scope{Self: map[string]any{"ok": false}},
			want:  "no",
		},
		{
			name:  "unassigned renders empty",
			text:  "a${this.missing}b",
			scope: eval.Scope{Self: map[string]any{"missing": nil}},
			want:  "ab",
		},
		{
			name:  "static text",
			text:  "no interpolation",
			scope: eval.Scope{},
			want:  "no interpolation",
		},
		{
			name:  "float",
			text:  "${this.ratio}",
			scope: eval.Scope{Self: map[string]any{"ratio": 1.5}},
			want:  "1.5",
		},
	}

	for _, tc := range cases {
		got, err := ev.Evaluate(tc.text, tc.scope)
		if err != nil {
			t.Fatalf("%s: Evaluate returned error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: Evaluate = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	ev := New()

	if _, err := ev.Evaluate("${this.unknown}", eval.Scope{}); err == nil {
		t.Fatalf("expected error for unsupported attribute")
	}
	if _, err := ev.Evaluate("${this.", eval.Scope{}); err == nil {
		t.Fatalf("expected parse error")
	}

	strict := New(WithStrictNulls())
	_, err := strict.Evaluate("a${this.missing}b", eval.Scope{Self: map[string]any{"missing": nil}})
	if err == nil || !strings.Contains(err.Error(), "null") {
		t.Fatalf("expected null interpolation error in strict mode, got %v", err)
	}
}

func TestToValueHandlesCycles(t *testing.T) {
	loop := map[string]any{"name": "x"}
	loop["self"] = loop

	v, err := ToValue(loop)
	if err != nil {
		t.Fatalf("ToValue returned error: %v", err)
	}
	if !v.GetAttr("self").IsNull() {
		t.Fatalf("expected repeated reference to convert to null")
	}
}

func TestToValueStructFallsBackToJSON(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	v, err := ToValue(item{Name: "n"})
	if err != nil {
		t.Fatalf("ToValue returned error: %v", err)
	}
	if got := v.GetAttr("name").AsString(); got != "n" {
		t.Fatalf("unexpected attribute %q", got)
	}
}

func TestStringifyCollections(t *testing.T) {
	got, err := Stringify(cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}))
	if err != nil {
		t.Fatalf("Stringify returned error: %v", err)
	}
	if got != `["a",1]` {
		t.Fatalf("Stringify = %q", got)
	}
}
