package pyxis

import (
	"fmt"
	"os"
)

// Load creates a stock factory and loads the given file layered under the
// default application configuration (CLI arguments over environment). This is
// the recommended one-call initialization for most applications.
func Load(path string) (*Config, error) {
	return NewFactory().Load(path, os.Args[1:])
}

// DefaultLoad creates a stock factory and probes the default application.*
// file names, falling back to the --config_file argument.
func DefaultLoad() (*Config, error) {
	return NewFactory().DefaultLoad(os.Args[1:])
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}
	return cfg
}
