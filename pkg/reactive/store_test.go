package reactive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	names []string
}

func (r *recorder) notify(name string) {
	r.names = append(r.names, name)
}

func TestSetNotifiesAndSkipsIdenticalValues(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec.notify)

	if !store.Set("text", "Hello") {
		t.Fatalf("expected first set to report a change")
	}
	if store.Set("text", "Hello") {
		t.Fatalf("expected identical set to be a no-op")
	}
	if !store.Set("text", "World") {
		t.Fatalf("expected changed value to report a change")
	}

	if diff := cmp.Diff([]string{"text", "text"}, rec.names); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	if got := store.Value("text"); got != "World" {
		t.Fatalf("Value = %v", got)
	}
}

func TestSetNilOnAbsentIsNoop(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec.notify)
	if store.Set("missing", nil) {
		t.Fatalf("expected nil assignment on an absent variable to be a no-op")
	}
	if len(rec.names) != 0 {
		t.Fatalf("unexpected notifications %v", rec.names)
	}
	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected variable to remain absent")
	}
}

func TestStructuredValuesCompareByIdentity(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec.notify)

	data := map[string]any{"a": 1}
	store.Set("obj", data)
	store.Set("obj", data)
	store.Set("obj", store.Value("obj"))
	store.Set("obj", map[string]any{"a": 1})

	if diff := cmp.Diff([]string{"obj", "obj"}, rec.names); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestDefineIsIdempotentAndKeepsValue(t *testing.T) {
	store := NewStore(nil)
	store.Set("count", 3)

	if store.Define("count") {
		t.Fatalf("Define must not recreate an existing variable")
	}
	if got := store.Value("count"); got != 3 {
		t.Fatalf("Define clobbered value: %v", got)
	}
	if !store.Define("fresh") {
		t.Fatalf("expected Define to create a new variable")
	}
	if store.Define("fresh") {
		t.Fatalf("expected second Define to be a no-op")
	}
	if store.Has("fresh") || !store.Defined("fresh") {
		t.Fatalf("defined-but-unset variable must not report a value")
	}

	want := []string{"count", "fresh"}
	if diff := cmp.Diff(want, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedRecordWriteNotifiesOwnerOnce(t *testing.T) {
	store := NewStore(nil)
	var seen []any
	store.SetNotifier(func(name string) {
		// The new value must be observable before listeners run.
		inner := store.Value("state").(*Record).Value("a").(*Record)
		seen = append(seen, name, inner.Value("b"))
	})

	store.Set("state", map[string]any{"a": map[string]any{"b": 1}})
	seen = nil

	a := store.Value("state").(*Record).Value("a").(*Record)
	if !a.Set("b", 2) {
		t.Fatalf("expected nested set to report a change")
	}

	if diff := cmp.Diff([]any{"state", 2}, seen); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	if a.Set("b", 2) {
		t.Fatalf("expected identical nested set to be a no-op")
	}
	if len(seen) != 2 {
		t.Fatalf("identical nested set must not notify, got %v", seen)
	}
}

func TestDeepWriteThreeLevels(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec.notify)
	store.Set("cfg", map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": "old",
			},
		},
	})
	rec.names = nil

	c := store.Value("cfg").(*Record).Value("a").(*Record).Value("b").(*Record)
	c.Set("c", "new")
	c.Set("d", map[string]any{"e": 1})
	c.Value("d").(*Record).Set("e", 2)

	if diff := cmp.Diff([]string{"cfg", "cfg", "cfg"}, rec.names); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}

	plain := Unwrap(store.Value("cfg")).(map[string]any)
	got := plain["a"].(map[string]any)["b"].(map[string]any)["d"].(map[string]any)["e"]
	if got != 2 {
		t.Fatalf("expected nested write to reach plain data, got %v", got)
	}
}

func TestListViews(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec.notify)
	store.Set("items", []any{"a", map[string]any{"n": 1}})
	rec.names = nil

	items := store.Value("items").(*List)
	items.Append("c")
	items.SetIndex(0, "A")
	items.SetIndex(0, "A")
	items.Index(1).(*Record).Set("n", 2)
	items.RemoveAt(2)

	if diff := cmp.Diff([]string{"items", "items", "items", "items"}, rec.names); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	want := []any{"A", map[string]any{"n": 2}}
	if diff := cmp.Diff(want, Unwrap(store.Value("items"))); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedListAppendWritesBack(t *testing.T) {
	store := NewStore(nil)
	store.Set("doc", map[string]any{"tags": []any{"x"}})

	tags := store.Value("doc").(*Record).Value("tags").(*List)
	tags.Append("y", "z")

	plain := Unwrap(store.Value("doc")).(map[string]any)
	if diff := cmp.Diff([]any{"x", "y", "z"}, plain["tags"]); diff != "" {
		t.Fatalf("write back mismatch (-want +got):\n%s", diff)
	}
}

func TestNilNestedMapWritesBack(t *testing.T) {
	store := NewStore(nil)
	store.Set("x", map[string]any{"a": map[string]any(nil)})
	store.Set("rows", []any{map[string]any(nil)})

	var seen []any
	store.SetNotifier(func(name string) {
		switch name {
		case "x":
			seen = append(seen, store.Value("x").(*Record).Value("a").(*Record).Value("b"))
		case "rows":
			seen = append(seen, store.Value("rows").(*List).Index(0).(*Record).Value("n"))
		}
	})

	store.Value("x").(*Record).Value("a").(*Record).Set("b", 2)
	store.Value("rows").(*List).Index(0).(*Record).Set("n", 3)

	if diff := cmp.Diff([]any{2, 3}, seen); diff != "" {
		t.Fatalf("values seen by listeners (-want +got):\n%s", diff)
	}
	want := map[string]any{
		"x":    map[string]any{"a": map[string]any{"b": 2}},
		"rows": []any{map[string]any{"n": 3}},
	}
	if diff := cmp.Diff(want, store.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestCyclicRecordsReuseViews(t *testing.T) {
	store := NewStore(nil)
	self := map[string]any{"name": "loop"}
	self["self"] = self

	store.Set("node", self)
	root := store.Value("node").(*Record)
	again := root.Value("self").(*Record).Value("self").(*Record)
	if again != root {
		t.Fatalf("expected cyclic map to resolve to the same view")
	}
}

func TestAliasingWrapsPerAssignment(t *testing.T) {
	rec := &recorder{}
	store := NewStore(rec.notify)
	shared := map[string]any{"v": 1}

	store.Set("a", shared)
	store.Set("b", shared)
	rec.names = nil

	store.Value("b").(*Record).Set("v", 2)

	if diff := cmp.Diff([]string{"b"}, rec.names); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	if got := store.Value("a").(*Record).Value("v"); got != 2 {
		t.Fatalf("aliased views must share data, got %v", got)
	}
}

func TestSame(t *testing.T) {
	m := map[string]any{}
	s := []any{1}
	type pair struct{ a, b int }

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "nil", a: nil, b: nil, want: true},
		{name: "nil vs value", a: nil, b: 0, want: false},
		{name: "ints", a: 1, b: 1, want: true},
		{name: "int vs float", a: 1, b: 1.0, want: false},
		{name: "strings", a: "x", b: "y", want: false},
		{name: "same map", a: m, b: m, want: true},
		{name: "different maps", a: m, b: map[string]any{}, want: false},
		{name: "same slice", a: s, b: s, want: true},
		{name: "structs", a: pair{1, 2}, b: pair{1, 2}, want: true},
		{name: "uncomparable struct", a: struct{ v []int }{}, b: struct{ v []int }{}, want: false},
	}
	for _, tc := range cases {
		if got := Same(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: Same = %v, want %v", tc.name, got, tc.want)
		}
	}
}
