package reactive

import (
	"reflect"
	"sort"
)

// tracker ties every view created under one top-level assignment to the
// variable that owns it. Record views are cached by map identity, which also
// breaks reference cycles: reaching a map again yields the existing view.
type tracker struct {
	store   *Store
	name    string
	records map[uintptr]*Record
}

func newTracker(store *Store, name string) *tracker {
	return &tracker{store: store, name: name, records: make(map[uintptr]*Record)}
}

func (t *tracker) notify() {
	t.store.fire(t.name)
}

func (t *tracker) record(data map[string]any, writeBack func(map[string]any)) *Record {
	if data == nil {
		return &Record{tr: t, writeBack: writeBack}
	}
	key := reflect.ValueOf(data).Pointer()
	if existing, ok := t.records[key]; ok {
		return existing
	}
	r := &Record{tr: t, data: data}
	t.records[key] = r
	return r
}

func (t *tracker) list(data []any, writeBack func([]any)) *List {
	return &List{tr: t, data: data, writeBack: writeBack}
}

// view returns a Record or List over structured raw values and raw itself
// otherwise. slot stores a replaced slice header or a lazily allocated map in
// the parent.
func (t *tracker) view(raw any, slot func(any)) any {
	switch typed := raw.(type) {
	case map[string]any:
		return t.record(typed, func(next map[string]any) { slot(next) })
	case []any:
		return t.list(typed, func(next []any) { slot(next) })
	default:
		return raw
	}
}

// Record is a change-intercepting view over a map[string]any. Writes that
// change a field notify the top-level variable the record belongs to.
type Record struct {
	tr        *tracker
	data      map[string]any
	writeBack func(map[string]any)
}

// Owner returns the name of the top-level variable notified by writes.
func (r *Record) Owner() string {
	return r.tr.name
}

// Get returns the field value, wrapped when structured.
func (r *Record) Get(key string) (any, bool) {
	raw, ok := r.data[key]
	if !ok {
		return nil, false
	}
	return r.tr.view(raw, func(next any) {
		r.data[key] = next
	}), true
}

// Value is Get without the presence flag.
func (r *Record) Value(key string) any {
	v, _ := r.Get(key)
	return v
}

// Set writes key. It reports false, without notifying, when the stored value
// is identical to value.
func (r *Record) Set(key string, value any) bool {
	if r.data == nil {
		r.data = make(map[string]any)
		if r.writeBack != nil {
			r.writeBack(r.data)
		}
	}
	raw := Unwrap(value)
	if old, ok := r.data[key]; ok && Same(old, raw) {
		return false
	}
	r.data[key] = raw
	r.tr.notify()
	return true
}

// Delete removes key and notifies when it existed.
func (r *Record) Delete(key string) bool {
	if _, ok := r.data[key]; !ok {
		return false
	}
	delete(r.data, key)
	r.tr.notify()
	return true
}

// Keys returns the field names sorted lexically.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.data)
}

// Unwrap returns the underlying map.
func (r *Record) Unwrap() any {
	return r.data
}

// List is a change-intercepting view over a []any.
type List struct {
	tr        *tracker
	data      []any
	writeBack func([]any)
}

// Owner returns the name of the top-level variable notified by writes.
func (l *List) Owner() string {
	return l.tr.name
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.data)
}

// Index returns element i, wrapped when structured. Out of range indices
// return nil.
func (l *List) Index(i int) any {
	if i < 0 || i >= len(l.data) {
		return nil
	}
	return l.tr.view(l.data[i], func(next any) {
		l.data[i] = next
	})
}

// SetIndex writes element i. Writing past the end grows the list, padding
// with nil. It reports false, without notifying, when nothing changed.
func (l *List) SetIndex(i int, value any) bool {
	if i < 0 {
		return false
	}
	raw := Unwrap(value)
	if i < len(l.data) {
		if Same(l.data[i], raw) {
			return false
		}
		l.data[i] = raw
		l.tr.notify()
		return true
	}
	for len(l.data) < i {
		l.data = append(l.data, nil)
	}
	l.data = append(l.data, raw)
	l.store()
	l.tr.notify()
	return true
}

// Append adds values at the end and notifies once.
func (l *List) Append(values ...any) {
	if len(values) == 0 {
		return
	}
	for _, v := range values {
		l.data = append(l.data, Unwrap(v))
	}
	l.store()
	l.tr.notify()
}

// RemoveAt deletes element i and notifies when it existed.
func (l *List) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.data) {
		return false
	}
	l.data = append(l.data[:i], l.data[i+1:]...)
	l.store()
	l.tr.notify()
	return true
}

// Unwrap returns the underlying slice.
func (l *List) Unwrap() any {
	return l.data
}

func (l *List) store() {
	if l.writeBack != nil {
		l.writeBack(l.data)
	}
}

// Unwrap returns the plain value behind a Record or List view, or value
// unchanged.
func Unwrap(value any) any {
	switch typed := value.(type) {
	case *Record:
		if typed == nil {
			return nil
		}
		return typed.data
	case *List:
		if typed == nil {
			return nil
		}
		return typed.data
	default:
		return value
	}
}

// Same reports whether two values are identical for change detection:
// maps, pointers, funcs and channels compare by reference, slices by backing
// array and length, comparable scalars by value. Anything else is treated as
// different.
func Same(a, b any) bool {
	a, b = Unwrap(a), Unwrap(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}
