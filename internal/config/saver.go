package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Save writes the config to ~/.config/schemer/config.json
func Save(cfg *Config) error {
	path := ConfigPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveCurrentScheme updates only the active scheme name in config and saves.
func SaveCurrentScheme(name string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.Schemes.Current = name
	return Save(cfg)
}
