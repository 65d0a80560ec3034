package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-binder/internal/prompt"
	"github.com/goliatone/go-binder/pkg/component"
	"github.com/goliatone/go-binder/pkg/dom"
)

func TestParseAssignment(t *testing.T) {
	cases := []struct {
		raw     string
		name    string
		value   any
		wantErr bool
	}{
		{raw: "title=Hello", name: "title", value: "Hello"},
		{raw: "count=3", name: "count", value: float64(3)},
		{raw: `items=["a","b"]`, name: "items", value: []any{"a", "b"}},
		{raw: `user={"name":"ada"}`, name: "user", value: map[string]any{"name": "ada"}},
		{raw: "flag=true", name: "flag", value: true},
		{raw: "eq=a=b", name: "eq", value: "a=b"},
		{raw: "empty=", name: "empty", value: ""},
		{raw: "novalue", wantErr: true},
		{raw: " =x", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parseAssignment(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAssignment: %v", err)
			}
			if got.name != tc.name {
				t.Fatalf("name = %q, want %q", got.name, tc.name)
			}
			if diff := cmp.Diff(tc.value, got.value); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssignmentsFlag(t *testing.T) {
	var a assignments
	if err := a.Set("a=1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := a.Set("b=x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := a.Set("bad"); err == nil {
		t.Fatalf("expected error for malformed assignment")
	}
	if got := a.String(); got != "a=1,b=x" {
		t.Fatalf("String = %q", got)
	}
}

type step struct {
	selectName string
	input      string
	err        error
}

type fakeDriver struct {
	steps []step
	infos []string
}

func (d *fakeDriver) next() step {
	if len(d.steps) == 0 {
		return step{err: prompt.ErrAborted}
	}
	s := d.steps[0]
	d.steps = d.steps[1:]
	return s
}

func (d *fakeDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s := d.next()
	if s.err != nil {
		return "", s.err
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(s.input); err != nil {
			return "", err
		}
	}
	return s.input, nil
}

func (d *fakeDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	s := d.next()
	if s.err != nil {
		return 0, s.err
	}
	for i, option := range cfg.Options {
		if option == s.selectName {
			return i, nil
		}
	}
	return -1, nil
}

func (d *fakeDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func newComponent(t *testing.T, markup string) *component.Component {
	t.Helper()
	c := component.New(dom.NewElement("div"),
		component.WithTemplate(markup),
		component.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err := c.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return c
}

func TestPlayAssignsAndRenders(t *testing.T) {
	c := newComponent(t, `<p>${this.greeting}</p><span>${this.count}</span>`)
	driver := &fakeDriver{steps: []step{
		{selectName: "greeting"},
		{input: "hello"},
		{selectName: optionNew},
		{input: "extra"},
		{input: "[1,2]"},
		{selectName: "count"},
		{input: "2"},
		{selectName: optionDone},
	}}

	if err := play(context.Background(), c, driver); err != nil {
		t.Fatalf("play: %v", err)
	}

	want := []string{
		`<div><p></p><span></span></div>`,
		`<div><p>hello</p><span></span></div>`,
		`<div><p>hello</p><span></span></div>`,
		`<div><p>hello</p><span>2</span></div>`,
	}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("renders mismatch (-want +got):\n%s", diff)
	}
	if got := currentValue(c, "extra"); got != "[1,2]" {
		t.Fatalf("extra = %q", got)
	}
}

func TestPlayStopsOnAbort(t *testing.T) {
	c := newComponent(t, `<p>${this.x}</p>`)
	driver := &fakeDriver{steps: []step{
		{selectName: "x"},
		{err: prompt.ErrAborted},
	}}
	if err := play(context.Background(), c, driver); err != nil {
		t.Fatalf("expected abort to end the session cleanly, got %v", err)
	}
	if len(driver.infos) != 1 {
		t.Fatalf("expected only the initial render, got %d", len(driver.infos))
	}
}

func TestPlayPropagatesErrors(t *testing.T) {
	c := newComponent(t, `<p>${this.x}</p>`)
	boom := errors.New("boom")
	driver := &fakeDriver{steps: []step{{err: boom}}}
	if err := play(context.Background(), c, driver); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestCurrentValue(t *testing.T) {
	c := newComponent(t, `<p>${this.x}</p>`)
	if got := currentValue(c, "x"); got != "" {
		t.Fatalf("unset value = %q", got)
	}
	c.Set("x", "plain")
	if got := currentValue(c, "x"); got != "plain" {
		t.Fatalf("string value = %q", got)
	}
	c.Set("x", map[string]any{"a": 1})
	if got := currentValue(c, "x"); !strings.Contains(got, `"a":1`) {
		t.Fatalf("record value = %q", got)
	}
}
