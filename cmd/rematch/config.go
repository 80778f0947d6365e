package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coregx/rematch/meta"
)

// loadConfig reads an engine configuration from a YAML file. Keys missing
// from the file keep their default values. An empty path yields the
// defaults.
//
// Example file:
//
//	enable_bitnfa: false
//	min_literal_len: 3
func loadConfig(path string) (meta.Config, error) {
	config := meta.DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}
