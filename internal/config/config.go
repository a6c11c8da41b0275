// Package config loads and saves the application configuration from
// ~/.config/schemer/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the root configuration structure.
type Config struct {
	Schemes SchemesConfig `json:"schemes"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
}

// SchemesConfig configures where user schemes live and which one is active.
type SchemesConfig struct {
	Dir        string `json:"dir"`        // scheme directory (supports ~ expansion)
	Current    string `json:"current"`    // active scheme name
	AutoReload bool   `json:"autoReload"` // re-read schemes when files change on disk
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter      bool   `json:"showFooter"`
	PreviewLanguage string `json:"previewLanguage"` // lexer used for the preview pane
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schemes: SchemesConfig{
			Dir:        "~/.config/schemer/schemes",
			Current:    "Default",
			AutoReload: true,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter:      true,
			PreviewLanguage: "go",
		},
	}
}

// Validate checks the configuration for errors, repairing what it can.
func (c *Config) Validate() error {
	if c.Schemes.Dir == "" {
		c.Schemes.Dir = "~/.config/schemer/schemes"
	}
	if c.Schemes.Current == "" {
		c.Schemes.Current = "Default"
	}
	if c.UI.PreviewLanguage == "" {
		c.UI.PreviewLanguage = "go"
	}
	if c.Keymap.Overrides == nil {
		c.Keymap.Overrides = make(map[string]string)
	}
	return nil
}

// SchemeDir returns the configured scheme directory with ~ expanded.
func (c *Config) SchemeDir() string {
	return ExpandPath(c.Schemes.Dir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// SetTestConfigPath points config I/O at a temporary file. Test helper.
func SetTestConfigPath(path string) {
	testConfigPath = path
}

// ConfigPath returns the path of the configuration file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".config", "schemer", "config.json")
}

// Load reads the configuration file, returning defaults when it does not
// exist. Values absent from the file keep their defaults.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigPath())
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", ConfigPath(), err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", ConfigPath(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
