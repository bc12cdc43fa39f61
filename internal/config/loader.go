package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "coaster.yaml"

// Load loads the simulation configuration.
// Search order: customPath -> ~/.coaster/configs/coaster.yaml -> ./configs/coaster.yaml -> embedded default
//
// Files only need to set the values they change; everything else keeps the
// embedded default.
func Load(customPath string) (Config, error) {
	cfg := embedded()

	// Try custom path first
	if customPath != "" {
		if err := decodeFile(customPath, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	for _, path := range []string{UserPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		candidate := cfg
		if err := decodeFile(path, &candidate); err == nil {
			return candidate, nil
		}
	}

	return cfg, nil
}

// Resolve returns the path Load would read, or empty for the embedded default.
func Resolve(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range []string{UserPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// UserPath returns ~/.coaster/configs/coaster.yaml, or empty if home is unavailable.
func UserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".coaster", "configs", FileName)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func embedded() Config {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default() // Fallback to hardcoded if embed fails
	}
	return cfg
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}
