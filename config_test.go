package pyxis

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew tests config construction
func TestNew(t *testing.T) {
	t.Run("WithTree", func(t *testing.T) {
		cfg := New(map[string]any{"key": "value"})
		require.NotNil(t, cfg)
		v, err := cfg.Get("key")
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	})

	t.Run("NilTree", func(t *testing.T) {
		cfg := New(nil)
		require.NotNil(t, cfg)
		assert.Empty(t, cfg.Root())
	})

	t.Run("ReferenceResolverPreRegistered", func(t *testing.T) {
		cfg := New(map[string]any{"a": "x", "b": "${a}"})
		resolved, err := cfg.Resolve()
		require.NoError(t, err)
		v, err := resolved.Get("b")
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})
}

// TestWithFallback tests the deep fallback merge
func TestWithFallback(t *testing.T) {
	tests := []struct {
		name     string
		primary  map[string]any
		fallback map[string]any
		expected map[string]any
	}{
		{
			"DisjointKeys",
			map[string]any{"a": int64(1)},
			map[string]any{"b": int64(2)},
			map[string]any{"a": int64(1), "b": int64(2)},
		},
		{
			"PrimaryWinsCollision",
			map[string]any{"a": int64(1)},
			map[string]any{"a": int64(2)},
			map[string]any{"a": int64(1)},
		},
		{
			"NestedMapsMerge",
			map[string]any{"db": map[string]any{"host": "prod"}},
			map[string]any{"db": map[string]any{"host": "localhost", "port": int64(5432)}},
			map[string]any{"db": map[string]any{"host": "prod", "port": int64(5432)}},
		},
		{
			"MapBeatsScalar",
			map[string]any{"a": map[string]any{"b": int64(1)}},
			map[string]any{"a": "scalar"},
			map[string]any{"a": map[string]any{"b": int64(1)}},
		},
		{
			"ScalarBeatsMap",
			map[string]any{"a": "scalar"},
			map[string]any{"a": map[string]any{"b": int64(1)}},
			map[string]any{"a": "scalar"},
		},
		{
			"SequencesReplaceWholesale",
			map[string]any{"a": []any{int64(1)}},
			map[string]any{"a": []any{int64(2), int64(3)}},
			map[string]any{"a": []any{int64(1)}},
		},
		{
			"NilLeafWins",
			map[string]any{"a": nil},
			map[string]any{"a": int64(1)},
			map[string]any{"a": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := New(tt.primary).WithFallback(New(tt.fallback))
			assert.Equal(t, tt.expected, merged.Root())
		})
	}

	t.Run("InputsUnmodified", func(t *testing.T) {
		primary := New(map[string]any{"db": map[string]any{"host": "prod"}})
		fallback := New(map[string]any{"db": map[string]any{"port": int64(5432)}})
		_ = primary.WithFallback(fallback)
		assert.Equal(t, map[string]any{"db": map[string]any{"host": "prod"}}, primary.Root())
		assert.Equal(t, map[string]any{"db": map[string]any{"port": int64(5432)}}, fallback.Root())
	})
}

// TestWithFallbackFill tests the fill-missing control
func TestWithFallbackFill(t *testing.T) {
	primary := map[string]any{
		"shared": map[string]any{"a": int64(1)},
		"only":   "primary",
	}
	fallback := map[string]any{
		"shared": map[string]any{"a": int64(9), "b": int64(2)},
		"extra":  "fallback",
	}

	t.Run("NoFill", func(t *testing.T) {
		merged := New(primary).WithFallbackFill(New(fallback), false)
		expected := map[string]any{
			"shared": map[string]any{"a": int64(1), "b": int64(2)},
			"only":   "primary",
		}
		assert.Equal(t, expected, merged.Root())
	})

	t.Run("Fill", func(t *testing.T) {
		merged := New(primary).WithFallbackFill(New(fallback), true)
		expected := map[string]any{
			"shared": map[string]any{"a": int64(1), "b": int64(2)},
			"only":   "primary",
			"extra":  "fallback",
		}
		assert.Equal(t, expected, merged.Root())
	})
}

// TestKeys tests the flattened key iteration
func TestKeys(t *testing.T) {
	cfg := New(map[string]any{
		"b": map[string]any{"y": int64(1), "x": int64(2)},
		"a": []any{"first", map[string]any{"k": "v"}},
	})

	keys := slices.Collect(cfg.Keys())
	expected := []string{
		"a", "a[0]", "a[1]", "a[1].k",
		"b", "b.x", "b.y",
	}
	assert.Equal(t, expected, keys)
}

// TestHas tests key presence
func TestHas(t *testing.T) {
	cfg := New(map[string]any{
		"foo":  map[string]any{"bar": nil},
		"list": []any{"a"},
	})

	assert.True(t, cfg.Has("foo"))
	assert.True(t, cfg.Has("foo.bar"))
	assert.True(t, cfg.Has("list[0]"))
	assert.False(t, cfg.Has("missing"))
	assert.False(t, cfg.Has("foo.baz"))
}

// TestEqual tests deep tree equality
func TestEqual(t *testing.T) {
	a := New(map[string]any{"k": []any{int64(1), int64(2)}})
	b := New(map[string]any{"k": []any{int64(1), int64(2)}})
	c := New(map[string]any{"k": []any{int64(2), int64(1)}})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
