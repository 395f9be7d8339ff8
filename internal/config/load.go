// Package config loads the optional YAML configuration file. Flags
// override whatever the file sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the connection settings for the responses server.
type Config struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
}

// Default returns the settings for a local vLLM server.
func Default() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Model:   "openai/gpt-oss-20b",
	}
}

// Load reads and parses a config file. Fields the file leaves unset keep
// their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize backfills fields an explicit empty value would otherwise
// blank out.
func (c *Config) normalize() {
	defaults := Default()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.Model == "" {
		c.Model = defaults.Model
	}
}
