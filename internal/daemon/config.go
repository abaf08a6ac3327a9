// Package daemon manages the QuestLog daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Data      DataConfig      `toml:"data"`
	Rewards   RewardsConfig   `toml:"rewards"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// DataConfig controls where the SQLite database lives.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// RewardsConfig tunes the gamification economy.
type RewardsConfig struct {
	ChestCost int64 `toml:"chest_cost"`
}

// TelemetryConfig controls observability endpoints.
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
	home := questlogHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8410,
			CORSOrigins: []string{"*"},
		},
		Data: DataConfig{
			Dir: home,
		},
		Rewards: RewardsConfig{
			ChestCost: 50,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "questlog.log"),
		},
	}
}

// LoadConfig reads config from ~/.questlog/config.toml, falling back to
// defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(questlogHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Rewards.ChestCost <= 0 {
		cfg.Rewards.ChestCost = 50
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.questlog/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(questlogHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// questlogHome returns the QuestLog data directory.
func questlogHome() string {
	if env := os.Getenv("QUESTLOG_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".questlog")
}

// Home is exported for use by other packages.
func Home() string {
	return questlogHome()
}
