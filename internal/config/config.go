package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "ledgerlift.yaml"

// Config represents the top-level ledgerlift.yaml configuration. Command
// flags override anything set here.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Editor EditorConfig `yaml:"editor"`
}

// OutputConfig controls where exports land.
type OutputConfig struct {
	// File is the tabular output path; the spreadsheet is written beside
	// it under the same base name.
	File string `yaml:"file"`
}

// EditorConfig controls the interactive particulars editor.
type EditorConfig struct {
	// Enabled opens the editor after a clean verification even without
	// the --edit flag.
	Enabled  bool `yaml:"enabled"`
	PageSize int  `yaml:"page_size"`
}

// Load reads a ledgerlift.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault reads path if it exists and falls back to defaults when
// it does not.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no ledgerlift.yaml exists.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			File: "tables.csv",
		},
		Editor: EditorConfig{
			Enabled:  false,
			PageSize: 5,
		},
	}
}
