package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML configuration with strict field checking:
// unrecognized keys (typos) are rejected.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML configuration: %w", err)
	}
	return &cfg, nil
}

// ToYAML renders the configuration as YAML, the inverse of ParseYAML.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
