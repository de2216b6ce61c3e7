package config

import (
	_ "embed"
)

//go:embed defaults/randomizer.yaml
var defaultRandomizerYAML []byte

// DefaultConfig returns the default randomizer configuration.
func DefaultConfig() Config {
	return Config{
		Roll: RollConfig{
			TowerCount:      5,
			AllowDuplicates: true,
			MaxDuplicates:   3,
		},
		Storage: StorageConfig{
			DBPath:       "~/.randomizer/history.db",
			HistoryLimit: 20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		SSH: SSHConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRandomizerYAML
}
