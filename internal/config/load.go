package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrEmptyMarker  = errors.New("naming marker must not be empty")
	ErrEmptyZoneKey = errors.New("zone key must not be empty")
	ErrDuplicateKey = errors.New("duplicate zone key")
	ErrModalRule    = errors.New("modal rule needs both marker and modal")
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the naming convention tables. An empty marker would match
// every mesh name, so it is rejected rather than silently misclassifying.
func (c *Config) Validate() error {
	markers := map[string]string{
		"glass":       c.Markers.Glass,
		"screen":      c.Markers.Screen,
		"interactive": c.Markers.Interactive,
		"clickable":   c.Markers.Clickable,
		"fan":         c.Markers.Fan,
	}
	for name, v := range markers {
		if v == "" {
			return fmt.Errorf("%s: %w", name, ErrEmptyMarker)
		}
	}

	seen := make(map[string]bool, len(c.Scene.Zones))
	for i, z := range c.Scene.Zones {
		if z.Key == "" {
			return fmt.Errorf("zone %d: %w", i, ErrEmptyZoneKey)
		}
		if seen[z.Key] {
			return fmt.Errorf("%q: %w", z.Key, ErrDuplicateKey)
		}
		seen[z.Key] = true
	}

	for i, r := range c.Modals {
		if r.Marker == "" || r.Modal == "" {
			return fmt.Errorf("modal rule %d: %w", i, ErrModalRule)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "PortfolioRoom")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "PortfolioRoom")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "portfolio-room")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "portfolio-room")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
