// Where: internal/infra/config/tool_config.go
// What: Tool config load/save.
// Why: Let a project pin the settings path and rewrite options in .mimesort.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/mimesort/internal/infra/fileops"
	"github.com/poruru/mimesort/internal/meta"
	"gopkg.in/yaml.v3"
)

// ErrToolConfigExists is returned by SaveToolConfig when it would replace a file.
var ErrToolConfigExists = errors.New("tool config already exists")

// ToolConfig represents the optional .mimesort.yaml file.
// Zero values mean "not set" so flags and built-in defaults can fill them.
type ToolConfig struct {
	Version   int    `yaml:"version"`
	File      string `yaml:"file,omitempty"`
	Indent    *int   `yaml:"indent,omitempty"`
	Atomic    bool   `yaml:"atomic,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	LogPreset string `yaml:"log_preset,omitempty"`
}

// DefaultToolConfig returns an initialized ToolConfig with version set.
func DefaultToolConfig() ToolConfig {
	return ToolConfig{Version: 1}
}

// ToolConfigPath returns the default config path inside dir.
func ToolConfigPath(dir string) (string, error) {
	root := strings.TrimSpace(dir)
	if root == "" {
		return "", fmt.Errorf("config directory is required")
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return filepath.Join(root, meta.ConfigFile), nil
}

// LoadToolConfig reads and parses a tool config file.
func LoadToolConfig(path string) (ToolConfig, error) {
	payload, err := fileops.ReadFile(path)
	if err != nil {
		return ToolConfig{}, fmt.Errorf("read tool config: %w", err)
	}

	cfg := DefaultToolConfig()
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return ToolConfig{}, fmt.Errorf("decode tool config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return ToolConfig{}, err
	}
	return cfg, nil
}

func (c ToolConfig) validate() error {
	if c.Indent != nil && (*c.Indent < 0 || *c.Indent > meta.MaxIndent) {
		return fmt.Errorf("tool config indent must be between 0 and %d, got %d", meta.MaxIndent, *c.Indent)
	}
	return nil
}

// LoadToolConfigOptional loads path when it exists. A missing file at the
// default location yields the default config; a missing explicit path is an error.
func LoadToolConfigOptional(path string, explicit bool) (ToolConfig, error) {
	cfg, err := LoadToolConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return DefaultToolConfig(), nil
	}
	return ToolConfig{}, err
}

// SaveToolConfig writes a ToolConfig to the specified path. An existing file
// is only replaced when overwrite is set.
func SaveToolConfig(path string, cfg ToolConfig, overwrite bool) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if !overwrite && fileops.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrToolConfigExists, path)
	}

	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode tool config: %w", err)
	}
	if err := fileops.WriteFileAtomic(path, payload); err != nil {
		return fmt.Errorf("write tool config: %w", err)
	}
	return nil
}
