package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults are compiled in; there is no environment-variable surface.
const (
	DefaultBaseURL        = "https://spiderdesk.asia/healto/api"
	DefaultRequestTimeout = 10 * time.Second
)

// Config holds the app-level settings. A YAML file may override any
// field; absent fields keep their defaults.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	StoragePath    string        `yaml:"storage_path"`
	Pretty         bool          `yaml:"pretty_logs"`
	Telemetry      bool          `yaml:"telemetry"`
	OTLPEndpoint   string        `yaml:"otlp_endpoint"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		StoragePath:    filepath.Join(home, ".heal-doc", "healdoc.db"),
		OTLPEndpoint:   "localhost:4317",
	}
}

// Load reads an optional YAML override file on top of the defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return cfg, nil
}
