package pyxis

import (
	"fmt"
	"regexp"
	"strings"
)

// ValueResolver substitutes a string leaf with its resolved value. The key is
// the flattened path of the leaf inside the tree, the value its raw text.
type ValueResolver interface {
	Resolve(config *Config, key string, value string) (any, error)
}

// ReferencePriority orders the placeholder resolver ahead of external value
// resolvers registered at DefaultPriority.
const ReferencePriority = 10

// RegisterReferenceResolver registers the ${...} placeholder resolver with
// the given registry.
func RegisterReferenceResolver(r *Registry[ValueResolver]) {
	r.Register(ReferencePriority, MatchReference, func() (ValueResolver, error) {
		return &ReferenceResolver{}, nil
	})
}

// MatchReference reports whether the value contains a ${ followed by a later
// closing brace.
func MatchReference(value string) bool {
	open := strings.Index(value, "${")
	end := strings.Index(value, "}")
	return open >= 0 && end >= 0 && open < end
}

var referencePattern = regexp.MustCompile(`^\$\{([^}]+)}`)

// ReferenceResolver evaluates ${...} expressions embedded in string leaves:
// reference lookups against the same Config, |-separated fallback chains, and
// a ?default on the final candidate. $$ escapes a literal dollar sign. A leaf
// that is exactly one reference keeps the referenced value's native type; a
// leaf mixing references with literal text is concatenated as a string, which
// is impossible for map or sequence values and fails with
// ErrCompositeSubstitution.
type ReferenceResolver struct{}

// Resolve evaluates every reference in value and assembles the result.
func (r *ReferenceResolver) Resolve(config *Config, key string, value string) (any, error) {
	parts, err := r.split(config, value)
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parts[0], nil
	}

	var sb strings.Builder
	for _, part := range parts {
		switch part.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("%w at key %q", ErrCompositeSubstitution, key)
		}
		fmt.Fprintf(&sb, "%v", part)
	}
	return sb.String(), nil
}

// split scans the leaf left to right into literal fragments and resolved
// reference values.
func (r *ReferenceResolver) split(config *Config, value string) ([]any, error) {
	var parts []any
	s := value
	for len(s) > 0 {
		pos := strings.Index(s, "$")
		if pos < 0 {
			parts = append(parts, s)
			break
		}
		if pos > 0 {
			parts = append(parts, s[:pos])
			s = s[pos:]
		}
		switch {
		case strings.HasPrefix(s, "$$"):
			parts = append(parts, "$")
			s = s[2:]
		case strings.HasPrefix(s, "${"):
			m := referencePattern.FindStringSubmatch(s)
			if m == nil {
				return nil, fmt.Errorf("%w %s", ErrBadSubstitution, s)
			}
			v, err := r.evaluate(config, m[1])
			if err != nil {
				return nil, err
			}
			parts = append(parts, v)
			s = s[len(m[0]):]
		default:
			// A dollar sign starting neither an escape nor a reference is an
			// ordinary character.
			parts = append(parts, "$")
			s = s[1:]
		}
	}
	if len(parts) == 0 {
		parts = append(parts, value)
	}
	return parts, nil
}

// evaluate tries each |-separated candidate path in order and returns the
// first successful lookup. The final candidate may carry a ?default, parsed
// as a literal when every path fails.
func (r *ReferenceResolver) evaluate(config *Config, expr string) (any, error) {
	candidates := strings.Split(expr, "|")
	for _, candidate := range candidates[:len(candidates)-1] {
		if v, err := config.Get(candidate); err == nil {
			return v, nil
		}
	}

	last := candidates[len(candidates)-1]
	path, def, hasDefault := strings.Cut(last, "?")
	v, err := config.Get(path)
	if err == nil {
		return v, nil
	}
	if !hasDefault {
		return nil, fmt.Errorf("%w ${%s}: %w", ErrUnresolvedReference, expr, err)
	}
	return ParseLiteral(def), nil
}

// Resolve rebuilds the tree depth-first, substituting every string leaf that
// matches a registered value resolver and returning a new, fully resolved
// Config. Resolver output is re-processed through the same walk, so a
// resolver may produce another placeholder string, or a composite value whose
// inner strings still need resolution. Self-referential placeholder chains
// are not detected and recurse until the stack is exhausted.
func (c *Config) Resolve() (*Config, error) {
	root, err := c.resolveNode("", c.root)
	if err != nil {
		return nil, err
	}
	return &Config{root: root.(map[string]any), resolvers: c.resolvers}, nil
}

func (c *Config) resolveNode(key string, node any) (any, error) {
	switch n := node.(type) {
	case string:
		resolver, ok, err := c.resolvers.Find(n)
		if err != nil {
			return nil, err
		}
		if !ok {
			return n, nil
		}
		v, err := resolver.Resolve(c, key, n)
		if err != nil {
			return nil, err
		}
		return c.resolveNode(key, v)
	case map[string]any:
		resolved := make(map[string]any, len(n))
		for k, v := range n {
			path := k
			if key != "" {
				path = key + "." + k
			}
			rv, err := c.resolveNode(path, v)
			if err != nil {
				return nil, err
			}
			resolved[k] = rv
		}
		return resolved, nil
	case []any:
		resolved := make([]any, len(n))
		for i, v := range n {
			rv, err := c.resolveNode(fmt.Sprintf("%s[%d]", key, i), v)
			if err != nil {
				return nil, err
			}
			resolved[i] = rv
		}
		return resolved, nil
	default:
		return node, nil
	}
}
