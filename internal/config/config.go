package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration exists because yaml.v3 has no native decoding for
// time.Duration strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds the defaults applied before flag parsing. All fields
// are optional; an absent config file means stock defaults.
type Config struct {
	Timeout   Duration `yaml:"timeout,omitempty"`
	UserAgent string   `yaml:"user_agent,omitempty"`
	ProxyURL  string   `yaml:"proxy,omitempty"`
	Pretty    string   `yaml:"pretty,omitempty"` // all or none
	Headers   []string `yaml:"headers,omitempty"`
}

func Default() *Config {
	return &Config{
		Timeout: Duration(30 * time.Second),
		Pretty:  "all",
	}
}

func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "httpcat", "config.yaml")
}

// Load reads the YAML config at path, layering it over the stock
// defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}
