package parsers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema maps logical record fields to zero-based column indices in the
// comma-delimited dump format. The indices are configuration rather than code
// so a format change in the upstream firewall export does not require a
// rebuild.
type Schema struct {
	Priority    int `yaml:"priority"`
	Flags       int `yaml:"flags"`
	Timestamp   int `yaml:"timestamp"`
	Source      int `yaml:"source"`
	Destination int `yaml:"destination"`
}

// DefaultSchema matches the stock fwddmp export layout.
var DefaultSchema = Schema{
	Priority:    1,
	Flags:       3,
	Timestamp:   4,
	Source:      6,
	Destination: 12,
}

// LoadSchema reads a column schema from a YAML file. Fields omitted from the
// file keep their default indices.
func LoadSchema(path string) (Schema, error) {
	schema := DefaultSchema

	data, err := os.ReadFile(path)
	if err != nil {
		return schema, fmt.Errorf("failed to read schema file: %w", err)
	}

	if err := yaml.Unmarshal(data, &schema); err != nil {
		return schema, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	if err := schema.Validate(); err != nil {
		return schema, fmt.Errorf("invalid schema in %s: %w", path, err)
	}

	return schema, nil
}

// Validate rejects negative column indices.
func (s Schema) Validate() error {
	for name, idx := range map[string]int{
		"priority":    s.Priority,
		"flags":       s.Flags,
		"timestamp":   s.Timestamp,
		"source":      s.Source,
		"destination": s.Destination,
	} {
		if idx < 0 {
			return fmt.Errorf("column index for %q must be non-negative, got %d", name, idx)
		}
	}
	return nil
}
