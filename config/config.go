// Package config loads service configuration from YAML with sane
// defaults and environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `yaml:"addr"`
	// Dict selects the tokenizer system dictionary: "ipa" or "uni".
	Dict string `yaml:"dict"`
	// AllowedOrigins are the origins granted CORS access. A single "*"
	// allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
	// LogLevel is the zap level: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// BatchLimit caps the number of texts per batch request.
	BatchLimit int `yaml:"batch_limit"`
	// BatchWorkers bounds concurrent annotation within one batch.
	BatchWorkers int `yaml:"batch_workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr: ":8000",
		Dict: "ipa",
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		LogLevel:     "info",
		BatchLimit:   64,
		BatchWorkers: 4,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; the defaults (plus env overrides) are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CONVOLAB_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("CONVOLAB_DICT"); v != "" {
		c.Dict = v
	}
	if v := os.Getenv("CONVOLAB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
