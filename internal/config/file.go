// Package config provides configuration helpers and config file parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice" yaml:"practice"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Duration *int    `toml:"duration" yaml:"duration"`
	Lines    *int    `toml:"lines" yaml:"lines"`
	Advance  *string `toml:"advance" yaml:"advance"`
	Diff     *string `toml:"diff" yaml:"diff"`
	Text     *string `toml:"text" yaml:"text"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	File  *string `toml:"file" yaml:"file"`
	Level *string `toml:"level" yaml:"level"`
}

// LoadConfig reads a TOML or YAML config from the given path, chosen by
// extension. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	return cfg, nil
}
