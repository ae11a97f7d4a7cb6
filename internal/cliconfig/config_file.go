package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations and pointers for
// booleans so that unset keys can be told apart.
type FileConfig struct {
	Frames      int    `toml:"frames" yaml:"frames"`
	Delta       string `toml:"delta" yaml:"delta"`
	HistorySize int    `toml:"history_size" yaml:"history_size"`
	SyncMode    string `toml:"sync_mode" yaml:"sync_mode"`
	Debug       *bool  `toml:"debug" yaml:"debug"`
	Strict      *bool  `toml:"strict" yaml:"strict"`
	Script      string `toml:"script" yaml:"script"`
	Animations  string `toml:"animations" yaml:"animations"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// LoadFileConfig reads a config file. Files ending in .yaml or .yml are
// parsed as YAML, anything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.xsm/config.toml if the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".xsm", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("frames", fc.Frames, &cfg.Frames)
	s.setInt("history-size", fc.HistorySize, &cfg.HistorySize)
	s.setString("sync-mode", fc.SyncMode, &cfg.SyncMode)
	s.setString("script", fc.Script, &cfg.Script)
	s.setString("animations", fc.Animations, &cfg.Animations)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	if err := s.setDuration("delta", fc.Delta, &cfg.Delta); err != nil {
		return err
	}

	s.setBool("debug", fc.Debug, &cfg.Debug)
	s.setBool("strict", fc.Strict, &cfg.Strict)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
