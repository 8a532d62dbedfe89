package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the generator configuration and validates it.
// Search order: customPath -> ~/.tui-maze/config.yaml -> ./configs/maze.yaml -> embedded default
//
// Only an explicit customPath is allowed to fail; unreadable or malformed
// files elsewhere in the search order are skipped.
func Load(customPath string) (MazeConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func load(customPath string) (MazeConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := parseFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if cfg, err := parseFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := parseFile(filepath.Join("configs", "maze.yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultMazeConfig()
	if err := yaml.Unmarshal(defaultMazeYAML, &cfg); err != nil {
		return DefaultMazeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseFile reads a YAML file on top of the defaults, so a file that sets
// only some keys keeps the rest.
func parseFile(path string) (MazeConfig, error) {
	cfg := DefaultMazeConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tui-maze", "config.yaml")
}
