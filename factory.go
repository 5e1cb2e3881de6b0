package pyxis

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Factory owns the reader, parser and value-resolver registries and exposes
// the loading pipeline. Create one at the application's composition root and
// register collaborator plugins against its registries; every Config it
// produces resolves through the same resolver set.
type Factory struct {
	readers   *Registry[Reader]
	parsers   *Registry[Parser]
	resolvers *Registry[ValueResolver]
}

// NewFactory creates a Factory with the stock strategies registered: the
// local file reader, the JSON/YAML/TOML/INI/properties parsers, and the
// placeholder reference resolver.
func NewFactory() *Factory {
	f := &Factory{
		readers:   NewRegistry[Reader](),
		parsers:   NewRegistry[Parser](),
		resolvers: NewRegistry[ValueResolver](),
	}

	f.readers.Register(LocalFilePriority, func(string) bool { return true }, func() (Reader, error) {
		return LocalFileReader{}, nil
	})

	registerParser := func(parser Parser, suffixes ...string) {
		f.parsers.Register(DefaultPriority, matchSuffix(suffixes...), func() (Parser, error) {
			return parser, nil
		})
	}
	registerParser(JSONParser{}, ".json")
	registerParser(YAMLParser{}, ".yaml", ".yml")
	registerParser(TOMLParser{}, ".toml", ".tml")
	registerParser(INIParser{}, ".ini")
	registerParser(PropertiesParser{}, ".properties")

	RegisterReferenceResolver(f.resolvers)
	return f
}

// matchSuffix builds a predicate accepting any of the given path suffixes.
func matchSuffix(suffixes ...string) MatchFunc {
	return func(path string) bool {
		for _, suffix := range suffixes {
			if strings.HasSuffix(path, suffix) {
				return true
			}
		}
		return false
	}
}

// Readers returns the reader registry for plugin registration.
func (f *Factory) Readers() *Registry[Reader] {
	return f.readers
}

// Parsers returns the parser registry for plugin registration.
func (f *Factory) Parsers() *Registry[Parser] {
	return f.parsers
}

// Resolvers returns the value-resolver registry for plugin registration.
func (f *Factory) Resolvers() *Registry[ValueResolver] {
	return f.resolvers
}

// Empty returns an empty Config bound to this factory's resolvers.
func (f *Factory) Empty() *Config {
	return New(map[string]any{}).WithResolvers(f.resolvers)
}

// Environ captures the process environment under the "envs" node.
func (f *Factory) Environ() *Config {
	envs := make(map[string]any)
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		envs[k] = v
	}
	return New(map[string]any{"envs": envs}).WithResolvers(f.resolvers)
}

// Arguments parses command-line flags of the form "--key.sub value",
// "--key=value", or bare boolean flags, and nests the parsed values under the
// "args" node. Values are interpreted by the literal parser, so "--port 8080"
// yields an int64 and "--debug true" a bool.
func (f *Factory) Arguments(args []string) (*Config, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	return New(map[string]any{"args": parsed}).WithResolvers(f.resolvers), nil
}

// DefaultApplication layers CLI arguments over the environment capture and
// resolves the result.
func (f *Factory) DefaultApplication(args []string) (*Config, error) {
	arguments, err := f.Arguments(args)
	if err != nil {
		return nil, err
	}
	return arguments.WithFallback(f.Environ()).Resolve()
}

// FromFile loads and parses a configuration file through the reader and
// parser registries. The resulting Config is unresolved.
func (f *Factory) FromFile(path string) (*Config, error) {
	return f.FromFileNode(path, "")
}

// FromFileNode is FromFile with the parsed tree re-rooted under node, a
// dotted path: FromFileNode("db.json", "a.b") places the document under
// the "a" -> "b" subtree.
func (f *Factory) FromFileNode(path, node string) (*Config, error) {
	reader, ok, err := f.readers.Find(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no reader found for file %s", ErrUnsupportedFormat, path)
	}

	parser, ok, err := f.parsers.Find(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no format parser found for file %s", ErrUnsupportedFormat, path)
	}

	text, err := reader.Read(path)
	if err != nil {
		return nil, err
	}
	root, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}

	if node != "" {
		segments := strings.Split(node, ".")
		for i := len(segments) - 1; i >= 0; i-- {
			root = map[string]any{segments[i]: root}
		}
	}
	return New(root).WithResolvers(f.resolvers), nil
}

// Load layers the default application configuration over the given file and
// resolves every placeholder, producing the frozen Config that application
// code consumes.
func (f *Factory) Load(path string, args []string) (*Config, error) {
	base, err := f.DefaultApplication(args)
	if err != nil {
		return nil, err
	}
	file, err := f.FromFile(path)
	if err != nil {
		return nil, err
	}
	return base.WithFallback(file).Resolve()
}

// DefaultLoad probes application.{json,yaml,toml,ini,properties} in the
// working directory and loads the first that exists; when none does, it loads
// the path supplied by the --config_file argument.
func (f *Factory) DefaultLoad(args []string) (*Config, error) {
	for _, extension := range []string{"json", "yaml", "toml", "ini", "properties"} {
		cfg, err := f.Load("application."+extension, args)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) && !errors.Is(err, ErrUnsupportedFormat) {
			return nil, err
		}
	}

	arguments, err := f.Arguments(args)
	if err != nil {
		return nil, err
	}
	v, err := arguments.Get("args.config_file")
	if err != nil {
		return nil, fmt.Errorf("%w: no configuration source found", ErrUnsupportedFormat)
	}
	path, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("config_file argument must be a string, got %T", v)
	}
	return f.Load(path, args)
}

// parseArgs processes command-line arguments into a nested map structure.
func parseArgs(args []string) (map[string]any, error) {
	result := make(map[string]any)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			i++
			continue
		}

		var keyPath, value string
		if strings.Contains(content, "=") {
			parts := strings.SplitN(content, "=", 2)
			keyPath, value = parts[0], parts[1]
			i++
		} else {
			keyPath = content
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				value = "true"
				i++
			} else {
				value = args[i+1]
				i += 2
			}
		}

		for _, segment := range strings.Split(keyPath, ".") {
			if !isValidKeySegment(segment) {
				return nil, fmt.Errorf("invalid command-line key segment %q in flag %q", segment, arg)
			}
		}
		setNestedValue(result, keyPath, ParseLiteral(value))
	}
	return result, nil
}
