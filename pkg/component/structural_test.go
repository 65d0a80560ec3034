package component

import (
	"testing"

	"github.com/goliatone/go-binder/pkg/attributes"
	"github.com/goliatone/go-binder/pkg/dom"
	"github.com/goliatone/go-binder/pkg/reactive"
	"github.com/goliatone/go-binder/pkg/sanitize"
)

func TestLoopOverSequence(t *testing.T) {
	c := mount(t, `<ul for="let item of this.items"><li>${item}</li></ul>`)
	ul := find(t, c, "ul")

	c.Set("items", []any{"a", "b"})
	if got := dom.InnerHTML(ul); got != "<li>a</li><li>b</li>" {
		t.Fatalf("rendered %q", got)
	}

	items, _ := c.Get("items")
	items.(*reactive.List).Append("c")
	if got := dom.InnerHTML(ul); got != "<li>a</li><li>b</li><li>c</li>" {
		t.Fatalf("rendered %q after append", got)
	}

	c.Set("items", []any{})
	if got := dom.InnerHTML(ul); got != "" {
		t.Fatalf("rendered %q after clearing", got)
	}
	if err := c.Index().Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if n := c.Index().NodeCount(); n != 0 {
		t.Fatalf("expected clone entries to be retired, got %d", n)
	}
}

func TestLoopOverRecordKeys(t *testing.T) {
	c := mount(t, `<p for="let k in this.obj">${k}=${this.obj[k]};</p>`)
	c.Set("obj", map[string]any{"b": 2, "a": 1})

	if got := dom.InnerHTML(find(t, c, "p")); got != "a=1;b=2;" {
		t.Fatalf("rendered %q", got)
	}

	obj, _ := c.Get("obj")
	obj.(*reactive.Record).Set("a", 10)
	if got := dom.InnerHTML(find(t, c, "p")); got != "a=10;b=2;" {
		t.Fatalf("rendered %q after nested write", got)
	}
}

func TestNestedLoopsUseOuterLocals(t *testing.T) {
	c := mount(t, `<div for="let row of this.rows"><span loop-for="let cell of row">${cell}</span></div>`)
	c.Set("rows", []any{[]any{"a", "b"}, []any{"c"}})

	outer := c.Root().FirstChild()
	if got := dom.InnerHTML(outer); got != "<span>ab</span><span>c</span>" {
		t.Fatalf("rendered %q", got)
	}
}

func TestSanitisedLoopForTemplate(t *testing.T) {
	c := mount(t, `<div loop-for="let v of this.items"><b>${v}</b></div>`,
		WithSanitizer(sanitize.Template),
		WithState(map[string]any{"items": []any{1, 2}}),
	)

	if got := dom.InnerHTML(c.Root().FirstChild()); got != "<b>1</b><b>2</b>" {
		t.Fatalf("rendered %q", got)
	}
}

func TestLoopItemsAreRecords(t *testing.T) {
	c := mount(t, `<ol for="let user of this.users"><li title="${user.id}">${upper(user.name)}</li></ol>`)
	c.Set("users", []any{
		map[string]any{"id": 1, "name": "ada"},
		map[string]any{"id": 2, "name": "grace"},
	})

	if got := dom.InnerHTML(find(t, c, "ol")); got != `<li title="1">ADA</li><li title="2">GRACE</li>` {
		t.Fatalf("rendered %q", got)
	}
}

func TestPlainForAttributeIsLeftAlone(t *testing.T) {
	c := mount(t, `<label for="email">Email</label>`)
	label := find(t, c, "label")

	if got := dom.InnerHTML(label); got != "Email" {
		t.Fatalf("rendered %q", got)
	}
	if v, _ := label.AttrValue("for"); v != "email" {
		t.Fatalf("for = %q", v)
	}
}

func TestConditional(t *testing.T) {
	c := mount(t, `<div if="this.show"><b>${this.name}</b></div>`,
		WithState(map[string]any{"name": "x"}))
	div := c.Root().FirstChild()

	if got := dom.InnerHTML(div); got != "" {
		t.Fatalf("expected hidden content, got %q", got)
	}

	c.Set("show", true)
	if got := dom.InnerHTML(div); got != "<b>x</b>" {
		t.Fatalf("rendered %q", got)
	}
	c.Set("name", "y")
	if got := dom.InnerHTML(div); got != "<b>y</b>" {
		t.Fatalf("rendered %q after update", got)
	}

	b := div.FirstChild()
	c.Set("show", false)
	if got := dom.InnerHTML(div); got != "" {
		t.Fatalf("expected content removed, got %q", got)
	}
	if c.Index().Has(b.FirstChild()) {
		t.Fatalf("expected hidden binding to be retired")
	}
}

func TestConditionalInsideLoop(t *testing.T) {
	c := mount(t, `<ul for="let task of this.tasks"><li if="task.done">${task.title}</li></ul>`)
	c.Set("tasks", []any{
		map[string]any{"title": "write", "done": true},
		map[string]any{"title": "test", "done": false},
	})

	if got := dom.InnerHTML(find(t, c, "ul")); got != "<li if=\"task.done\">write</li><li if=\"task.done\"></li>" {
		t.Fatalf("rendered %q", got)
	}
}

func TestEmptyRegistryDisablesStructuralAttributes(t *testing.T) {
	c := mount(t, `<ul for="let item of this.items"><li>${item}</li></ul>`,
		WithAttributes(attributes.NewEmptyRegistry()),
	)
	c.Set("items", []any{"a", "b"})

	if got := dom.InnerHTML(find(t, c, "ul")); got != "<li></li>" {
		t.Fatalf("rendered %q", got)
	}
}

func TestDisposeDetachesHandlers(t *testing.T) {
	c := mount(t, `<ul for="let item of this.items"><li>${item}</li></ul>`)
	ul := find(t, c, "ul")
	c.Set("items", []any{"a"})

	c.Dispose()
	c.Set("items", []any{"a", "b"})

	if got := dom.InnerHTML(ul); got != "<li>a</li>" {
		t.Fatalf("expected no re-render after dispose, got %q", got)
	}
}

func TestRemovedLoopStopsWatching(t *testing.T) {
	c := mount(t, `<section><ul for="let item of this.items"><li>${item}</li></ul></section>`)
	ul := find(t, c, "ul")
	c.Set("items", []any{"a"})

	ul.Remove()
	c.UpdateBindings(c.Root())
	c.Set("items", []any{"a", "b"})

	if got := dom.InnerHTML(ul); got != "<li>a</li>" {
		t.Fatalf("expected detached loop to stay put, got %q", got)
	}
}
