package pyxis

import (
	"sort"
	"sync"
)

// DefaultPriority is assigned to strategies with no particular ordering
// requirement. Lower values are tried first.
const DefaultPriority = 100

// MatchFunc reports whether a strategy can handle the given input.
type MatchFunc func(input string) bool

// Registry selects strategy implementations by predicate. Entries are tried
// in ascending priority order, ties broken by registration order, and each
// entry is constructed at most once, on its first successful match. This is
// the mechanism readers, parsers and value resolvers use to plug into the
// engine without it knowing their concrete types.
type Registry[T any] struct {
	mu      sync.Mutex
	entries []*entry[T]
}

type entry[T any] struct {
	priority int
	match    MatchFunc
	create   func() (T, error)
	instance T
	built    bool
}

// NewRegistry creates an empty strategy registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Register adds a strategy with the given priority. The create function is
// deferred until the first Find call whose input the predicate accepts.
func (r *Registry[T]) Register(priority int, match MatchFunc, create func() (T, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, &entry[T]{
		priority: priority,
		match:    match,
		create:   create,
	})
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].priority < r.entries[j].priority
	})
}

// Find returns the first registered strategy whose predicate accepts input.
// The boolean is false when nothing matches; absence is not an error, the
// caller decides whether it is fatal. A construction failure propagates to
// the caller and is not cached, so a later Find may attempt it again.
func (r *Registry[T]) Find(input string) (T, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	for _, e := range r.entries {
		if !e.match(input) {
			continue
		}
		if !e.built {
			instance, err := e.create()
			if err != nil {
				return zero, false, err
			}
			e.instance = instance
			e.built = true
		}
		return e.instance, true, nil
	}
	return zero, false, nil
}

// Len returns the number of registered strategies.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
