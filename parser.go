package pyxis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Parser converts raw configuration text into a tree. Parsers are selected
// through the factory's registry by path suffix.
type Parser interface {
	Parse(text string) (map[string]any, error)
}

// JSONParser parses JSON documents. Numbers are decoded through json.Number
// to preserve precision, then normalized to int64 or float64.
type JSONParser struct{}

// Parse implements Parser.
func (JSONParser) Parse(text string) (map[string]any, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	root := make(map[string]any)
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}
	normalizeValue(root)
	return root, nil
}

// YAMLParser parses YAML documents.
type YAMLParser struct{}

// Parse implements Parser.
func (YAMLParser) Parse(text string) (map[string]any, error) {
	root := make(map[string]any)
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return root, nil
}

// TOMLParser parses TOML documents.
type TOMLParser struct{}

// Parse implements Parser.
func (TOMLParser) Parse(text string) (map[string]any, error) {
	root := make(map[string]any)
	if err := toml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return root, nil
}

// INIParser parses INI documents. Dotted section names nest, so [a.b] places
// its keys under the "a" -> "b" subtree. Values stay strings.
type INIParser struct{}

// Parse implements Parser.
func (INIParser) Parse(text string) (map[string]any, error) {
	file, err := ini.Load([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI config: %w", err)
	}

	root := make(map[string]any)
	for _, section := range file.Sections() {
		keys := section.Keys()
		if section.Name() == ini.DefaultSection {
			for _, k := range keys {
				root[k.Name()] = k.Value()
			}
			continue
		}
		values := make(map[string]any, len(keys))
		for _, k := range keys {
			values[k.Name()] = k.Value()
		}
		setNestedValue(root, section.Name(), values)
	}
	return root, nil
}

// PropertiesParser parses Java-style .properties documents. Dotted keys nest
// and values stay strings.
type PropertiesParser struct{}

// Parse implements Parser.
func (PropertiesParser) Parse(text string) (map[string]any, error) {
	props, err := properties.Load([]byte(text), properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties config: %w", err)
	}

	root := make(map[string]any)
	for key, value := range props.Map() {
		setNestedValue(root, key, value)
	}
	return root, nil
}
