package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot start with.
func (c *Config) Validate() error {
	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", g.Width, g.Height)
	}
	if g.FOV <= 0 || g.FOV >= 180 {
		return fmt.Errorf("invalid fov %.1f: must be between 0 and 180", g.FOV)
	}
	if g.NearPlane <= 0 || g.FarPlane <= g.NearPlane {
		return fmt.Errorf("invalid clip planes near=%.3f far=%.3f", g.NearPlane, g.FarPlane)
	}
	return nil
}

// AssetPath resolves a path relative to the asset root.
func (c *Config) AssetPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Assets.Root, rel)
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
		return filepath.Join(home, "Library", "Application Support", "Lowpoly")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Lowpoly")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "lowpoly")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lowpoly")
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
