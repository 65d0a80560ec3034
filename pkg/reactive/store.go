package reactive

// Notifier receives the name of a top-level variable whose value changed,
// either by direct assignment or by a nested write through a Record or List
// view.
type Notifier func(name string)

type entry struct {
	value any
	set   bool
}

// Store maps variable names to values and reports changes. It is owned by a
// single component and is not safe for concurrent use.
type Store struct {
	notify  Notifier
	entries map[string]*entry
	order   []string
}

// NewStore returns an empty store reporting changes to notify.
func NewStore(notify Notifier) *Store {
	return &Store{
		notify:  notify,
		entries: make(map[string]*entry),
	}
}

// SetNotifier replaces the change listener.
func (s *Store) SetNotifier(notify Notifier) {
	s.notify = notify
}

// Define makes name reactive. It is idempotent and never resets an existing
// value; it reports whether the variable was created by this call.
func (s *Store) Define(name string) bool {
	if _, ok := s.entries[name]; ok {
		return false
	}
	s.entries[name] = &entry{}
	s.order = append(s.order, name)
	return true
}

// Defined reports whether name has been made reactive.
func (s *Store) Defined(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Has reports whether name currently holds a value that was assigned.
func (s *Store) Has(name string) bool {
	e, ok := s.entries[name]
	return ok && e.set
}

// Get returns the current value of name. Structured values come back as
// *Record or *List views. The second result is false when the variable was
// never assigned.
func (s *Store) Get(name string) (any, bool) {
	e, ok := s.entries[name]
	if !ok || !e.set {
		return nil, false
	}
	return e.value, true
}

// Value is Get without the presence flag.
func (s *Store) Value(name string) any {
	v, _ := s.Get(name)
	return v
}

// Set assigns value to name and notifies listeners. Assigning a value that is
// identical to the current one (see Same) is a no-op and reports false.
// map[string]any and []any values are wrapped so nested writes made through
// the returned views notify name as well.
func (s *Store) Set(name string, value any) bool {
	s.Define(name)
	e := s.entries[name]

	raw := Unwrap(value)
	if Same(Unwrap(e.value), raw) {
		return false
	}

	e.value = s.wrap(name, raw)
	e.set = raw != nil || e.set
	s.fire(name)
	return true
}

// Names returns the defined variable names in definition order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Snapshot returns the plain (unwrapped) values of every assigned variable.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.entries))
	for name, e := range s.entries {
		if !e.set {
			continue
		}
		out[name] = Unwrap(e.value)
	}
	return out
}

func (s *Store) wrap(name string, raw any) any {
	switch typed := raw.(type) {
	case map[string]any:
		return newTracker(s, name).record(typed, nil)
	case []any:
		return newTracker(s, name).list(typed, nil)
	default:
		return raw
	}
}

func (s *Store) fire(name string) {
	if s.notify != nil {
		s.notify(name)
	}
}
