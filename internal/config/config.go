// Package config loads the tool configuration from .pylens/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete pylens configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	History HistoryConfig `json:"history" mapstructure:"history"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port string `json:"port" mapstructure:"port"`
}

// ScanConfig contains repository-mode scan configuration
type ScanConfig struct {
	// IgnoreDirs are directory names excluded from repository scans
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`

	// MaxFileSize skips files larger than this many bytes. Zero means
	// no limit.
	MaxFileSize int64 `json:"maxFileSize" mapstructure:"maxFileSize"`
}

// HistoryConfig contains analysis history configuration
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	DBPath  string `json:"dbPath" mapstructure:"dbPath"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
		Scan: ScanConfig{
			IgnoreDirs: []string{"__pycache__", "node_modules", "vendor", "venv", "site-packages"},
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(".pylens", "history.db"),
		},
	}
}

// Load reads configuration from <root>/.pylens/config.json, falling back
// to defaults when no config file exists.
func Load(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".pylens"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <root>/.pylens/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".pylens")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}
