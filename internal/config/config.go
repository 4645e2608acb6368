// Package config loads sysmod settings from a YAML file plus environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/sysmod/internal/modules"
	"github.com/idilsaglam/sysmod/internal/presets"
)

// FileName is the config file inside the data dir.
const FileName = "config.yaml"

// Config holds all sysmod settings.
type Config struct {
	// Theme for plain output: classic, neon or mono.
	Theme string `yaml:"theme" env:"SYSMOD_THEME"`

	// NoColor disables ANSI color in plain output.
	NoColor bool `yaml:"no_color" env:"SYSMOD_NO_COLOR"`

	// DataDir holds presets, the log file and the config itself.
	DataDir string `yaml:"data_dir" env:"SYSMOD_DATA_DIR"`

	// Labels used when naming modules.
	Labels LabelsConfig `yaml:"labels"`
}

// LabelsConfig mirrors modules.Labels for the config file.
type LabelsConfig struct {
	First    string `yaml:"first" env:"SYSMOD_LABEL_FIRST"`
	New      string `yaml:"new" env:"SYSMOD_LABEL_NEW"`
	Untitled string `yaml:"untitled" env:"SYSMOD_LABEL_UNTITLED"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	l := modules.DefaultLabels()
	return &Config{
		Theme:   "classic",
		DataDir: defaultDataDir(),
		Labels:  LabelsConfig{First: l.First, New: l.New, Untitled: l.Untitled},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sysmod"
	}
	return filepath.Join(home, ".sysmod")
}

// Load reads path (defaults when missing) and applies environment overrides.
// An empty path means <data dir>/config.yaml, where the data dir itself may
// come from SYSMOD_DATA_DIR.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		if d := os.Getenv("SYSMOD_DATA_DIR"); d != "" {
			cfg.DataDir = d
		}
		path = filepath.Join(cfg.DataDir, FileName)
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes the config as YAML to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ModuleLabels converts the label settings.
func (c *Config) ModuleLabels() modules.Labels {
	return modules.Labels{First: c.Labels.First, New: c.Labels.New, Untitled: c.Labels.Untitled}
}

// PresetsPath is the preset file location.
func (c *Config) PresetsPath() string { return filepath.Join(c.DataDir, presets.FileName) }

// Path is the config file location inside the data dir.
func (c *Config) Path() string { return filepath.Join(c.DataDir, FileName) }

// LogPath is where the TUI writes its log.
func (c *Config) LogPath() string { return filepath.Join(c.DataDir, "sysmod.log") }

func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.Labels.First == "" {
		c.Labels.First = d.Labels.First
	}
	if c.Labels.New == "" {
		c.Labels.New = d.Labels.New
	}
	if c.Labels.Untitled == "" {
		c.Labels.Untitled = d.Labels.Untitled
	}
}
