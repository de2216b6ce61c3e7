// Package config provides YAML-based configuration loading for the
// randomizer: default roll restrictions, storage, logging and SSH settings.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
	"github.com/vovakirdan/btd6-randomizer/internal/selector"
)

// Config contains all randomizer configuration.
type Config struct {
	Roll    RollConfig    `yaml:"roll"`
	Catalog CatalogConfig `yaml:"catalog"`
	Assets  AssetsConfig  `yaml:"assets"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// RollConfig defines the default restriction for a roll.
type RollConfig struct {
	TowerCount      int      `yaml:"tower_count"`
	AllowDuplicates bool     `yaml:"allow_duplicates"`
	MaxDuplicates   int      `yaml:"max_duplicates"`
	Modes           []string `yaml:"modes"`  // Empty = all modes
	Maps            []string `yaml:"maps"`   // Empty = all maps
	Heroes          []string `yaml:"heroes"` // Empty = all heroes
}

// CatalogConfig points at an optional custom catalog file.
type CatalogConfig struct {
	Path string `yaml:"path"` // Empty = built-in catalog
}

// AssetsConfig points at an optional custom image index.
type AssetsConfig struct {
	Path string `yaml:"path"` // Empty = built-in image URLs
}

// StorageConfig defines roll history persistence.
type StorageConfig struct {
	DBPath       string `yaml:"db_path"`
	HistoryLimit int    `yaml:"history_limit"`
}

// LoggingConfig defines log level and optional rotated log file.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // Empty = stderr only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// SSHConfig defines the SSH server settings.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"` // Empty = ~/.randomizer/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Roll.TowerCount < 1 {
		return fmt.Errorf("config: roll.tower_count must be at least 1, got %d", c.Roll.TowerCount)
	}
	if c.Roll.AllowDuplicates && c.Roll.MaxDuplicates < 1 {
		return fmt.Errorf("config: roll.max_duplicates must be at least 1, got %d", c.Roll.MaxDuplicates)
	}
	if c.Storage.HistoryLimit < 0 {
		return fmt.Errorf("config: storage.history_limit must not be negative")
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: ssh.idle_timeout_minutes must not be negative")
	}

	level := strings.ToLower(c.Logging.Level)
	for _, l := range validLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("config: unknown logging.level %q (want one of %s)", c.Logging.Level, strings.Join(validLevels, ", "))
}

// Restriction resolves the roll section against a catalog.
// Unknown names yield a *catalog.UnknownNameError.
func (r RollConfig) Restriction(cat *catalog.Catalog) (selector.Restriction, error) {
	res := selector.Restriction{
		TowerCount:            r.TowerCount,
		AllowDuplicates:       r.AllowDuplicates,
		MaxDuplicatesPerTower: r.MaxDuplicates,
	}

	var err error
	if res.Modes, err = resolve(r.Modes, cat.Modes, cat.Mode); err != nil {
		return selector.Restriction{}, err
	}
	if res.Maps, err = resolve(r.Maps, cat.Maps, cat.Map); err != nil {
		return selector.Restriction{}, err
	}
	if res.Heroes, err = resolve(r.Heroes, cat.Heroes, cat.Hero); err != nil {
		return selector.Restriction{}, err
	}
	return res, nil
}

// resolve maps names to catalog values; no names means everything.
func resolve[T any](names []string, all func() []T, lookup func(string) (T, error)) ([]T, error) {
	if len(names) == 0 {
		return all(), nil
	}
	out := make([]T, 0, len(names))
	for _, n := range names {
		v, err := lookup(strings.TrimSpace(n))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
