package attributes

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-binder/pkg/dom"
	"github.com/goliatone/go-binder/pkg/interp"
	"github.com/goliatone/go-binder/pkg/reactive"
)

// path is a dotted value reference: `this.items.open` or `row.cells`.
type path struct {
	self  bool
	root  string
	steps []string
}

func parsePath(expr string) (path, error) {
	parts := strings.Split(strings.TrimSpace(expr), ".")
	for _, part := range parts {
		if part == "" {
			return path{}, fmt.Errorf("attributes: invalid reference %q", expr)
		}
	}
	if parts[0] == interp.Self {
		if len(parts) < 2 {
			return path{}, fmt.Errorf("attributes: reference %q names no variable", expr)
		}
		return path{self: true, root: parts[1], steps: parts[2:]}, nil
	}
	return path{root: parts[0], steps: parts[1:]}, nil
}

// resolve looks the path up on host variables or on the local scope visible
// at node.
func (p path) resolve(host Host, node *dom.Node) (any, bool) {
	var (
		current any
		ok      bool
	)
	if p.self {
		current, ok = host.Get(p.root)
	} else {
		current, ok = node.LocalScope()[p.root]
	}
	if !ok {
		return nil, false
	}
	for _, step := range p.steps {
		current, ok = member(current, step)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func member(value any, key string) (any, bool) {
	switch typed := value.(type) {
	case *reactive.Record:
		return typed.Get(key)
	case *reactive.List:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= typed.Len() {
			return nil, false
		}
		return typed.Index(i), true
	case map[string]any:
		v, ok := typed[key]
		return v, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(typed) {
			return nil, false
		}
		return typed[i], true
	}
	return nil, false
}

type item struct {
	key   any
	value any
}

// items lists the entries of a sequence (keyed by index) or of a record
// (keyed by field name, sorted). Scalars and nil produce no items.
func items(value any) []item {
	switch typed := value.(type) {
	case nil:
		return nil
	case *reactive.List:
		out := make([]item, 0, typed.Len())
		for i := 0; i < typed.Len(); i++ {
			out = append(out, item{key: i, value: typed.Index(i)})
		}
		return out
	case *reactive.Record:
		keys := typed.Keys()
		out := make([]item, 0, len(keys))
		for _, k := range keys {
			out = append(out, item{key: k, value: typed.Value(k)})
		}
		return out
	case dom.NodeList:
		return nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]item, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, item{key: i, value: rv.Index(i).Interface()})
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		out := make([]item, 0, len(keys))
		for _, k := range keys {
			v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			out = append(out, item{key: k, value: v.Interface()})
		}
		return out
	}
	return nil
}
