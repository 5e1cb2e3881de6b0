package pyxis

import (
	"fmt"
	"strconv"
	"strings"
)

// splitPath decomposes a dotted path into traversal steps. Every bracket
// group becomes its own step: "a.b[1].c" -> ["a", "b", "[1]", "c"].
func splitPath(key string) []string {
	return strings.Split(strings.ReplaceAll(key, "[", ".["), ".")
}

// traverse walks the tree left to right through the given steps. Map nodes
// descend by field name, sequence nodes by index or slice. A slice step
// broadcasts the remaining steps over every selected element and returns a
// sequence of the per-element results. The full original key is carried for
// error reporting only; the tree is never mutated.
func traverse(node any, steps []string, key string) (any, error) {
	for i, step := range steps {
		if m, ok := node.(map[string]any); ok {
			if v, exists := m[step]; exists {
				node = v
				continue
			}
		}
		if seq, ok := node.([]any); ok && strings.HasPrefix(step, "[") && strings.HasSuffix(step, "]") {
			body := step[1 : len(step)-1]
			if body == "" || strings.Contains(body, ":") {
				indices, err := sliceIndices(body, len(seq))
				if err != nil {
					return nil, err
				}
				rest := steps[i+1:]
				out := make([]any, 0, len(indices))
				for _, j := range indices {
					v, err := traverse(seq[j], rest, key)
					if err != nil {
						return nil, err
					}
					out = append(out, v)
				}
				return out, nil
			}
			j, err := strconv.Atoi(body)
			if err != nil {
				return nil, fmt.Errorf("%w [%s]", ErrIllegalSlice, body)
			}
			if j < 0 {
				j += len(seq)
			}
			if j < 0 || j >= len(seq) {
				return nil, fmt.Errorf("%w: %s", ErrIndexOutOfRange, body)
			}
			node = seq[j]
			continue
		}
		return nil, fmt.Errorf("%w %q", ErrKeyNotFound, key)
	}
	return node, nil
}

// sliceIndices expands a bracket slice body ("1:-1:2", ":", "", "::-1") into
// the selected element indices for a sequence of length n, following Python
// slice semantics: missing bounds default to the full range and the step may
// be negative. A zero step or a body outside the slice grammar is illegal.
func sliceIndices(body string, n int) ([]int, error) {
	parts := strings.Split(body, ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w [%s]", ErrIllegalSlice, body)
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	bounds := make([]*int, 3)
	for i, part := range parts {
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w [%s]", ErrIllegalSlice, body)
		}
		bounds[i] = &v
	}

	step := 1
	if bounds[2] != nil {
		step = *bounds[2]
	}
	if step == 0 {
		return nil, fmt.Errorf("%w [%s]", ErrIllegalSlice, body)
	}

	lo := clampBound(bounds[0], n, step, true)
	hi := clampBound(bounds[1], n, step, false)

	var indices []int
	if step > 0 {
		for i := lo; i < hi; i += step {
			indices = append(indices, i)
		}
	} else {
		for i := lo; i > hi; i += step {
			indices = append(indices, i)
		}
	}
	return indices, nil
}

// clampBound normalizes one slice bound relative to sequence length n. A nil
// bound selects the full range for the direction of travel; out-of-range
// bounds clamp instead of failing.
func clampBound(bound *int, n, step int, start bool) int {
	if bound == nil {
		if step > 0 {
			if start {
				return 0
			}
			return n
		}
		if start {
			return n - 1
		}
		return -1
	}

	v := *bound
	if v < 0 {
		v += n
	}
	if v < 0 {
		if step < 0 {
			return -1
		}
		return 0
	}
	if v >= n {
		if step < 0 {
			return n - 1
		}
		return n
	}
	return v
}
