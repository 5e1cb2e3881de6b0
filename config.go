package pyxis

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

// Config wraps an immutable tree of nested maps, sequences and scalars. All
// transformations (Get, WithFallback, Resolve) return new values rather than
// mutating in place, so a Config is freely shareable across goroutines.
type Config struct {
	root      map[string]any
	resolvers *Registry[ValueResolver]
}

// New creates a Config over the given tree. The placeholder reference
// resolver is pre-registered; use WithResolvers to attach the registry of a
// composition root instead.
func New(root map[string]any) *Config {
	if root == nil {
		root = map[string]any{}
	}
	resolvers := NewRegistry[ValueResolver]()
	RegisterReferenceResolver(resolvers)
	return &Config{root: root, resolvers: resolvers}
}

// WithResolvers returns a copy of the Config whose Resolve dispatches through
// the given registry.
func (c *Config) WithResolvers(resolvers *Registry[ValueResolver]) *Config {
	return &Config{root: c.root, resolvers: resolvers}
}

// Get returns the value at the given path. A present leaf holding nil is
// returned as nil; only a genuinely missing path segment fails with
// ErrKeyNotFound. Slice steps broadcast the remaining path over the selected
// elements, e.g. Get("arr[:].k") returns one value per element of arr.
func (c *Config) Get(key string) (any, error) {
	return traverse(c.root, splitPath(key), key)
}

// GetDefault is Get with def substituted when the path is missing. The
// default applies to ErrKeyNotFound only: a present leaf holding nil is still
// returned as nil, and other lookup failures propagate unchanged.
func (c *Config) GetDefault(key string, def any) (any, error) {
	v, err := c.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return def, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Has reports whether key appears in the flattened key iteration.
func (c *Config) Has(key string) bool {
	for k := range c.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Keys returns a lazy depth-first iteration over every addressable path in
// the tree, yielding a path at each map key and each sequence element. Map
// keys are visited in sorted order, sequence elements in declaration order.
func (c *Config) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		iterKeys("", c.root, yield)
	}
}

func iterKeys(prefix string, node any, yield func(string) bool) bool {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range sortedKeys(n) {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			if !yield(path) || !iterKeys(path, n[k], yield) {
				return false
			}
		}
	case []any:
		for i, v := range n {
			path := fmt.Sprintf("%s[%d]", prefix, i)
			if !yield(path) || !iterKeys(path, v, yield) {
				return false
			}
		}
	}
	return true
}

// WithFallback returns a new Config with missing values filled in from the
// fallback: maps merge recursively key by key, this Config wins every other
// collision, and keys present only in the fallback are carried over. Neither
// input is modified.
func (c *Config) WithFallback(other *Config) *Config {
	return c.WithFallbackFill(other, true)
}

// WithFallbackFill is WithFallback with control over whether keys present
// only in the fallback appear in the result. Nested map merges always fill.
func (c *Config) WithFallbackFill(other *Config, fillMissing bool) *Config {
	return &Config{
		root:      mergeMaps(c.root, other.root, fillMissing),
		resolvers: c.resolvers,
	}
}

func mergeMaps(primary, fallback map[string]any, fillMissing bool) map[string]any {
	merged := make(map[string]any, len(primary))
	for k, v := range primary {
		if fv, exists := fallback[k]; exists {
			pm, pOK := v.(map[string]any)
			fm, fOK := fv.(map[string]any)
			if pOK && fOK {
				merged[k] = mergeMaps(pm, fm, true)
				continue
			}
		}
		merged[k] = v
	}
	if fillMissing {
		for k, v := range fallback {
			if _, exists := primary[k]; !exists {
				merged[k] = v
			}
		}
	}
	return merged
}

// Equal reports deep value equality of the underlying trees: map key/value
// sets and sequence order must match.
func (c *Config) Equal(other *Config) bool {
	if other == nil {
		return false
	}
	return reflect.DeepEqual(c.root, other.root)
}

// Root returns the underlying tree. The returned map must not be modified.
func (c *Config) Root() map[string]any {
	return c.root
}
