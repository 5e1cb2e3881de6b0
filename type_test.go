package pyxis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTypedGetters tests the converting accessors
func TestTypedGetters(t *testing.T) {
	cfg := New(map[string]any{
		"str":      "hello",
		"num":      int64(42),
		"numStr":   "42",
		"flt":      3.5,
		"fltStr":   "3.5",
		"flag":     true,
		"flagStr":  "true",
		"nilValue": nil,
	})

	t.Run("String", func(t *testing.T) {
		v, err := cfg.String("str")
		require.NoError(t, err)
		assert.Equal(t, "hello", v)

		v, err = cfg.String("num")
		require.NoError(t, err)
		assert.Equal(t, "42", v)

		v, err = cfg.String("flag")
		require.NoError(t, err)
		assert.Equal(t, "true", v)

		v, err = cfg.String("nilValue")
		require.NoError(t, err)
		assert.Equal(t, "", v)

		_, err = cfg.String("missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Int64", func(t *testing.T) {
		v, err := cfg.Int64("num")
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		v, err = cfg.Int64("numStr")
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		v, err = cfg.Int64("flt")
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)

		v, err = cfg.Int64("flag")
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)

		_, err = cfg.Int64("str")
		assert.Error(t, err)

		_, err = cfg.Int64("nilValue")
		assert.Error(t, err)
	})

	t.Run("Bool", func(t *testing.T) {
		v, err := cfg.Bool("flag")
		require.NoError(t, err)
		assert.True(t, v)

		v, err = cfg.Bool("flagStr")
		require.NoError(t, err)
		assert.True(t, v)

		v, err = cfg.Bool("num")
		require.NoError(t, err)
		assert.True(t, v)

		_, err = cfg.Bool("str")
		assert.Error(t, err)
	})

	t.Run("Float64", func(t *testing.T) {
		v, err := cfg.Float64("flt")
		require.NoError(t, err)
		assert.Equal(t, 3.5, v)

		v, err = cfg.Float64("fltStr")
		require.NoError(t, err)
		assert.Equal(t, 3.5, v)

		v, err = cfg.Float64("num")
		require.NoError(t, err)
		assert.Equal(t, 42.0, v)

		_, err = cfg.Float64("str")
		assert.Error(t, err)
	})
}
