package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"suyan/internal/theme"
)

// themeSchemaJSON describes the shape a user theme/*.yaml file must
// have, re-expressed as JSON Schema so malformed hand-edited theme
// files are rejected with a specific error instead of producing a
// half-populated theme.Theme at render time.
const themeSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "font_family", "font_size"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "font_family": {"type": "string", "minLength": 1},
    "font_size": {"type": "number", "exclusiveMinimum": 0},
    "opacity": {"type": "integer", "minimum": 0, "maximum": 100},
    "corner_radius": {"type": "number", "minimum": 0},
    "border_width": {"type": "number", "minimum": 0},
    "candidate_spacing": {"type": "number", "minimum": 0},
    "padding": {"type": "number", "minimum": 0}
  }
}`

var themeSchema = mustCompileThemeSchema()

func mustCompileThemeSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("theme.json", strings.NewReader(themeSchemaJSON)); err != nil {
		panic(fmt.Sprintf("config: invalid embedded theme schema: %v", err))
	}
	return compiler.MustCompile("theme.json")
}

// LoadTheme reads and validates a theme YAML document from path
// against the embedded schema, then decodes it into theme.Theme.
func LoadTheme(path string) (theme.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return theme.Theme{}, fmt.Errorf("read theme file %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return theme.Theme{}, fmt.Errorf("parse theme file %s: %w", path, err)
	}
	doc = normalizeForSchema(doc)

	if err := themeSchema.Validate(doc); err != nil {
		return theme.Theme{}, fmt.Errorf("validate theme file %s: %w", path, err)
	}

	var t theme.Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return theme.Theme{}, fmt.Errorf("decode theme file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return theme.Theme{}, fmt.Errorf("theme file %s: %w", path, err)
	}
	return t, nil
}

// normalizeForSchema converts yaml.v3's map[string]interface{} decode
// result into the map[string]any/[]any shape jsonschema expects;
// yaml.v3 already produces that shape for "any", so this just walks
// and type-asserts defensively in case a nested map comes back as
// map[string]interface{} with a different key type from another
// decoder.
func normalizeForSchema(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = normalizeForSchema(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalizeForSchema(e)
		}
		return out
	default:
		return val
	}
}

// ThemePath returns the path themeName would load from under dir.
func ThemePath(dir, themeName string) string {
	return filepath.Join(dir, themeName+".yaml")
}
