package pyxis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScan tests decoding configuration sections into structs
func TestScan(t *testing.T) {
	type poolConfig struct {
		Size    int           `config:"size"`
		Timeout time.Duration `config:"timeout"`
	}
	type dbConfig struct {
		Host     string     `config:"host"`
		Port     int        `config:"port"`
		Replicas []string   `config:"replicas"`
		Pool     poolConfig `config:"pool"`
	}

	cfg := New(map[string]any{
		"db": map[string]any{
			"host":     "localhost",
			"port":     "5432",
			"replicas": "a,b,c",
			"pool": map[string]any{
				"size":    int64(10),
				"timeout": "30s",
			},
		},
	})

	t.Run("Section", func(t *testing.T) {
		var target dbConfig
		require.NoError(t, cfg.Scan("db", &target))
		assert.Equal(t, "localhost", target.Host)
		assert.Equal(t, 5432, target.Port)
		assert.Equal(t, []string{"a", "b", "c"}, target.Replicas)
		assert.Equal(t, 10, target.Pool.Size)
		assert.Equal(t, 30*time.Second, target.Pool.Timeout)
	})

	t.Run("WholeTree", func(t *testing.T) {
		var target struct {
			DB dbConfig `config:"db"`
		}
		require.NoError(t, cfg.Scan("", &target))
		assert.Equal(t, "localhost", target.DB.Host)
	})

	t.Run("IntoMap", func(t *testing.T) {
		target := map[string]any{}
		require.NoError(t, cfg.Scan("db.pool", &target))
		assert.Equal(t, int64(10), target["size"])
	})
}

// TestScanErrors tests Scan failure modes
func TestScanErrors(t *testing.T) {
	cfg := New(map[string]any{
		"scalar": "value",
		"db":     map[string]any{"host": "localhost"},
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var target struct{}
		err := cfg.Scan("db", target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-nil pointer")
	})

	t.Run("NilPointerTarget", func(t *testing.T) {
		var target *struct{}
		err := cfg.Scan("db", target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-nil pointer")
	})

	t.Run("MissingKey", func(t *testing.T) {
		var target struct{}
		err := cfg.Scan("missing", &target)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("ScalarSection", func(t *testing.T) {
		var target struct{}
		err := cfg.Scan("scalar", &target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not refer to a scannable section")
	})
}
