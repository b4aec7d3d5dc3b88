// Package project persists RenoCalc preferences, the material catalog,
// saved rooms and backups as JSON files under ~/.renocalc.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. RENOCALC_THEME or
// RENOCALC_CALC_RESERVE_PERCENT.
const EnvPrefix = "RENOCALC_"

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.renocalc/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".renocalc")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// writeJSON marshals v with indentation and writes it to path, creating
// missing parent directories.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path. Fields missing from
// the file keep their defaults. If the file does not exist, it returns
// DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if config.RecentExports == nil {
		config.RecentExports = []string{}
	}
	return config, nil
}

// ApplyEnv overrides config fields from RENOCALC_* environment variables.
func ApplyEnv(config *model.AppConfig) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// LoadConfig loads the config file, applies environment overrides and
// validates the result.
func LoadConfig(path string) (model.AppConfig, error) {
	config, err := LoadAppConfig(path)
	if err != nil {
		return model.AppConfig{}, err
	}
	if err := ApplyEnv(&config); err != nil {
		return model.AppConfig{}, err
	}
	if err := config.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
