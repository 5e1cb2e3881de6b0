package pyxis

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseLiteral interprets a string as a typed literal: booleans, null,
// integers, floats, quoted strings, and JSON lists or objects. A string that
// parses as none of these is returned unchanged. Both Go/JSON and Python
// spellings of booleans and null are accepted so that defaults written in
// either style behave the same.
func ParseLiteral(s string) any {
	switch s {
	case "true", "True":
		return true
	case "false", "False":
		return false
	case "null", "None", "nil":
		return nil
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
		if first == '[' || first == '{' {
			decoder := json.NewDecoder(strings.NewReader(s))
			decoder.UseNumber()
			var v any
			if err := decoder.Decode(&v); err == nil {
				return normalizeValue(v)
			}
		}
	}
	return s
}

// normalizeValue rewrites json.Number leaves to int64 or float64 and recurses
// into composite values.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case map[string]any:
		for k, e := range n {
			n[k] = normalizeValue(e)
		}
		return n
	case []any:
		for i, e := range n {
			n[i] = normalizeValue(e)
		}
		return n
	}
	return v
}
