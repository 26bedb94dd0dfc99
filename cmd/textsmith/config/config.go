// Package config reads and writes the user's textsmith preferences.
// The API key is deliberately not part of the file: it lives only in memory
// for the lifetime of the process, resolved from the environment or typed
// into the TUI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so values like "10s" round-trip through YAML.
type Duration time.Duration

// MarshalYAML renders the duration in time.Duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts time.Duration strings ("10s", "1m30s").
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds user preferences.
type Config struct {
	Theme   string   `yaml:"theme"`    // "light" or "dark"
	Model   string   `yaml:"model"`    // Gemini model identifier
	BaseURL string   `yaml:"base_url"` // endpoint root, for testing against a fake
	Timeout Duration `yaml:"timeout"`  // per-request timeout
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:   "light",
		Model:   "gemini-2.0-flash",
		Timeout: Duration(60 * time.Second),
	}
}

// Dir returns the directory where config is stored. A project-local
// .textsmith directory wins over the home-level one.
func Dir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".textsmith")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".textsmith"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from disk. A missing file yields defaults.
func Load() (Config, error) {
	path, err := File()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path. Fields absent from
// the file keep their defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
