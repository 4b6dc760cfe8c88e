// Package daemon manages the MemoClarity daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/memoclarity/memoclarity/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Store     StoreConfig     `toml:"store"`
	Chat      ChatConfig      `toml:"chat"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StoreConfig controls where tracker state lives.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// ChatConfig controls the FAQ assistant.
type ChatConfig struct {
	HistoryLimit int `toml:"history_limit"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := memoHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7575,
			CORSOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Dir: homeDir,
		},
		Chat: ChatConfig{
			HistoryLimit: domain.ChatHistoryLimit,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "memoclarity.log"),
		},
	}
}

// LoadConfig reads config from ~/.memoclarity/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(memoHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Chat.HistoryLimit <= 0 {
		cfg.Chat.HistoryLimit = domain.ChatHistoryLimit
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.memoclarity/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(memoHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// memoHome returns the MemoClarity data directory.
func memoHome() string {
	if env := os.Getenv("MEMOCLARITY_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".memoclarity")
}

// MemoHome is exported for use by other packages.
func MemoHome() string {
	return memoHome()
}
