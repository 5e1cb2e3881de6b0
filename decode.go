package pyxis

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the subtree at key into target, which must be a non-nil
// pointer to a struct or map. An empty key scans the whole tree. Struct
// fields map through `config` tags; string values convert weakly, including
// duration strings and comma-separated lists.
func (c *Config) Scan(key string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	node := any(c.root)
	if key != "" {
		var err error
		node, err = c.Get(key)
		if err != nil {
			return err
		}
	}
	section, ok := node.(map[string]any)
	if !ok {
		return fmt.Errorf("configuration path %q does not refer to a scannable section, but to type %T", key, node)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(section); err != nil {
		return fmt.Errorf("failed to scan section %q into %T: %w", key, target, err)
	}
	return nil
}
