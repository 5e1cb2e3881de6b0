package pyxis

import (
	"fmt"
	"os"
)

// ValidatorFunc validates a fully resolved Config. It should return an error
// describing the first problem found.
type ValidatorFunc func(c *Config) error

// Builder composes the load-merge-resolve pipeline with a fluent interface.
// Precedence, highest first: CLI arguments, environment, file, defaults.
type Builder struct {
	factory    *Factory
	file       string
	node       string
	args       []string
	environ    bool
	defaults   map[string]any
	validators []ValidatorFunc
}

// NewBuilder creates a builder backed by a stock Factory and os.Args.
func NewBuilder() *Builder {
	return &Builder{
		factory: NewFactory(),
		args:    os.Args[1:],
	}
}

// WithFactory sets the factory whose registries the build uses.
func (b *Builder) WithFactory(factory *Factory) *Builder {
	b.factory = factory
	return b
}

// WithFile sets the configuration file path.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithNode re-roots the file configuration under the given dotted path.
func (b *Builder) WithNode(node string) *Builder {
	b.node = node
	return b
}

// WithArgs sets the command-line arguments.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithEnviron includes the process environment under the "envs" node.
func (b *Builder) WithEnviron() *Builder {
	b.environ = true
	return b
}

// WithDefaults sets the tree used as the lowest-precedence fallback.
func (b *Builder) WithDefaults(defaults map[string]any) *Builder {
	b.defaults = defaults
	return b
}

// WithValidator adds a validation function run against the resolved Config.
// Multiple validators execute in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build layers the sources, resolves every placeholder and runs the
// validators, returning the frozen Config.
func (b *Builder) Build() (*Config, error) {
	cfg, err := b.factory.Arguments(b.args)
	if err != nil {
		return nil, err
	}
	if b.environ {
		cfg = cfg.WithFallback(b.factory.Environ())
	}
	if b.file != "" {
		file, err := b.factory.FromFileNode(b.file, b.node)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithFallback(file)
	}
	if b.defaults != nil {
		cfg = cfg.WithFallback(New(b.defaults))
	}

	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	for _, validator := range b.validators {
		if err := validator(resolved); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return resolved, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds and decodes the resolved configuration into the given
// target struct pointer.
func (b *Builder) BuildAndScan(target any) error {
	cfg, err := b.Build()
	if err != nil {
		return err
	}
	return cfg.Scan("", target)
}
