package formatspec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a format template from a YAML or JSON file. Keys the file
// omits keep their built-in defaults, field by field. Load performs the
// only file I/O in this package; callers inject the result where it is
// needed.
func Load(path string) (*DocumentFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read format template: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported template format: %s", filepath.Ext(path))
	}
}

// ParseYAML decodes a YAML template over the built-in defaults.
func ParseYAML(data []byte) (*DocumentFormat, error) {
	spec := Default()
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("parse yaml template: %w", err)
	}
	return spec, nil
}

// ParseJSON decodes a JSON template over the built-in defaults.
func ParseJSON(data []byte) (*DocumentFormat, error) {
	spec := Default()
	if err := json.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("parse json template: %w", err)
	}
	return spec, nil
}
