// Package config loads taxassist configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all taxassist configuration.
type Config struct {
	// API configures the backend endpoint.
	API APIConfig `yaml:"api"`

	// User is the identity threaded into chat requests.
	User UserConfig `yaml:"user"`

	// UI holds presentation preferences.
	UI UIConfig `yaml:"ui"`

	// Logging controls the debug log file.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the tax-assistant backend client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// UserConfig identifies the current user. Empty means anonymous.
type UserConfig struct {
	ID string `yaml:"id"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	Theme string `yaml:"theme"` // "light" or "dark"
}

// LoggingConfig controls debug logging.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "60s",
		},
		UI: UIConfig{
			Theme: "light",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taxassist/config.yaml"
	}
	return filepath.Join(home, ".taxassist", "config.yaml")
}

// Load reads configuration from path, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("TAXASSIST_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if id := os.Getenv("TAXASSIST_USER_ID"); id != "" {
		c.User.ID = id
	}
	if theme := os.Getenv("TAXASSIST_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if timeout := os.Getenv("TAXASSIST_TIMEOUT"); timeout != "" {
		c.API.Timeout = timeout
	}
	if file := os.Getenv("TAXASSIST_LOG_FILE"); file != "" {
		c.Logging.Debug = true
		c.Logging.File = file
	}
}

// GetTimeout parses the API timeout with a 60s fallback.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// LogFile returns the debug log path, defaulting next to the config.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(filepath.Dir(DefaultPath()), "logs", "taxassist.log")
}
