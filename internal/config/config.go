// Package config loads the application configuration from YAML and the
// environment, layering bot-specific sections on top of the reusable core.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "astrobot/core/config"
	coredatabase "astrobot/core/database"
)

// NASAConfig holds credentials for the NASA open APIs.
type NASAConfig struct {
	APIKey string `yaml:"api_key" envconfig:"NASA_API_KEY"`
}

// Config is the full application configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	NASA     NASAConfig          `yaml:"nasa"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads the configuration file, applies environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.NASA.APIKey) == "" {
		return nil, fmt.Errorf("nasa.api_key is required")
	}
	return &cfg, nil
}
