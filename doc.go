// Package pyxis is a hierarchical configuration engine: it loads structured
// configuration from heterogeneous sources (files, environment, CLI
// arguments, cloud services), merges sources with fallback precedence, and
// resolves embedded ${...} placeholder expressions into final values.
//
// Features:
//   - Immutable tree model (maps, sequences, scalars); every transformation
//     returns a new Config
//   - Path addressing with dotted keys, bracket indices and Python-style
//     slices with broadcast: Get("hosts[:].name")
//   - Deep fallback merge with left precedence: cfg.WithFallback(defaults)
//   - ${ref|fallback?default} placeholder resolution with fallback chains,
//     literal defaults and $$ escapes
//   - Priority-ordered strategy registries for pluggable readers, parsers
//     and value resolvers (JSON, YAML, TOML, INI and properties built in;
//     AWS collaborators in the aws subpackage)
//   - Struct decoding via mapstructure and a fluent Builder
//
// Quick Start:
//
//	cfg, err := pyxis.Load("application.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := cfg.String("db.host")
//	port, _ := cfg.Int64("db.port")
//
// Custom composition:
//
//	factory := pyxis.NewFactory()
//	aws.Register(factory) // s3:// reader, {{resolve:...}} resolvers
//
//	cfg, err := pyxis.NewBuilder().
//	    WithFactory(factory).
//	    WithFile("s3://bucket/config.json").
//	    WithEnviron().
//	    WithDefaults(map[string]any{"db": map[string]any{"port": 5432}}).
//	    Build()
//
// Lifecycle: a Config is created by a factory, merged zero or more times via
// WithFallback, and resolved exactly once via Resolve to obtain the frozen,
// substitution-free Config that application code consumes. Configs are
// immutable and safe for concurrent use; the registries guard their lazy
// construction path, so concurrent first-use races construct each strategy
// at most once.
package pyxis
