// Package config loads optional install defaults from an ecc.yaml file in
// the destination configuration directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yuezheng2006/everything-claude-code/internal/defs"
)

// Defaults are persistent install preferences. Flags always win over the
// file; the file wins over built-in defaults.
type Defaults struct {
	// Components preselects asset categories (empty = all).
	Components []string `yaml:"components"`

	// Languages preselects programming-language rule sets.
	Languages []string `yaml:"languages"`

	// Locale is the preferred localization tag (e.g. "zh-CN").
	Locale string `yaml:"locale"`

	// Exclude holds glob patterns filtered out of every tree copy.
	Exclude []string `yaml:"exclude"`

	// Source overrides the default asset repository.
	Source string `yaml:"source"`
}

// Load reads defaults from <configDir>/ecc.yaml. A missing file yields zero
// defaults and no error; a malformed file warns and yields zero defaults.
func Load(configDir string) Defaults {
	var d Defaults

	path := filepath.Join(configDir, defs.InstallConfigYAML)
	data, err := os.ReadFile(path)
	if err != nil {
		return d
	}

	if err := yaml.Unmarshal(data, &d); err != nil {
		slog.Warn("failed to parse install defaults, ignoring", "path", path, "error", err)
		return Defaults{}
	}
	return d
}

// Save writes defaults to <configDir>/ecc.yaml.
func Save(configDir string, d Defaults) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal install defaults: %w", err)
	}
	path := filepath.Join(configDir, defs.InstallConfigYAML)
	if err := os.MkdirAll(configDir, defs.DirPerm); err != nil {
		return fmt.Errorf("create config directory %q: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write install defaults %q: %w", path, err)
	}
	return nil
}
