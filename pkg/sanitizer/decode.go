package sanitizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Accepted spellings for each Config field in loosely typed input.
var (
	tagKeys  = []string{"allowed_tags", "allowedTags", "ALLOWED_TAGS"}
	attrKeys = []string{"allowed_attributes", "allowedAttributes", "ALLOWED_ATTR"}
	dataKeys = []string{"allow_data_attributes", "allowDataAttributes", "ALLOW_DATA_ATTR"}
)

// ConfigFromMap decodes a Config from a generic mapping, such as parsed JSON
// or YAML. Both list fields are required; the data attribute flag defaults
// to false. Unknown keys are ignored.
func ConfigFromMap(m map[string]any) (Config, error) {
	if m == nil {
		return Config{}, &ConfigError{Field: "config", Reason: "is not a mapping"}
	}

	tags, err := stringList(m, "allowed_tags", tagKeys)
	if err != nil {
		return Config{}, err
	}
	attrs, err := stringList(m, "allowed_attributes", attrKeys)
	if err != nil {
		return Config{}, err
	}

	var allowData bool
	if v, ok := lookup(m, dataKeys); ok {
		b, isBool := v.(bool)
		if !isBool {
			return Config{}, &ConfigError{Field: "allow_data_attributes", Reason: fmt.Sprintf("expected a boolean, got %T", v)}
		}
		allowData = b
	}

	cfg := Config{AllowedTags: tags, AllowedAttributes: attrs, AllowDataAttributes: allowData}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseConfigYAML decodes a Config from a YAML document.
func ParseConfigYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, &ConfigError{Field: "config", Reason: "invalid yaml: " + err.Error()}
	}
	return ConfigFromMap(m)
}

// LoadConfigFile reads and decodes a YAML policy file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sanitizer: read policy file: %w", err)
	}
	return ParseConfigYAML(data)
}

func lookup(m map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func stringList(m map[string]any, field string, keys []string) ([]string, error) {
	v, ok := lookup(m, keys)
	if !ok || v == nil {
		return nil, &ConfigError{Field: field, Reason: "is required"}
	}

	switch list := v.(type) {
	case []string:
		return append(make([]string, 0, len(list)), list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, isString := item.(string)
			if !isString {
				return nil, &ConfigError{Field: field, Reason: fmt.Sprintf("item %d: expected a string, got %T", i, item)}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &ConfigError{Field: field, Reason: fmt.Sprintf("expected a list, got %T", v)}
	}
}
