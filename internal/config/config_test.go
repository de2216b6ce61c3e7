package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Roll.TowerCount != def.Roll.TowerCount ||
		cfg.Roll.AllowDuplicates != def.Roll.AllowDuplicates ||
		cfg.Roll.MaxDuplicates != def.Roll.MaxDuplicates {
		t.Errorf("Roll defaults differ: %+v vs %+v", cfg.Roll, def.Roll)
	}
	if cfg.Storage != def.Storage {
		t.Errorf("Storage defaults differ: %+v vs %+v", cfg.Storage, def.Storage)
	}
	if cfg.Logging != def.Logging {
		t.Errorf("Logging defaults differ: %+v vs %+v", cfg.Logging, def.Logging)
	}
	if cfg.SSH != def.SSH {
		t.Errorf("SSH defaults differ: %+v vs %+v", cfg.SSH, def.SSH)
	}
	if cfg.Assets != def.Assets || cfg.Catalog != def.Catalog {
		t.Errorf("Path defaults differ: %+v %+v vs %+v %+v", cfg.Assets, cfg.Catalog, def.Assets, def.Catalog)
	}
}

func TestGetDefaultYAMLIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("Embedded default YAML does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Embedded default YAML does not validate: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
roll:
  tower_count: 8
  allow_duplicates: false
  modes: [CHIMPS]
logging:
  level: debug
assets:
  path: /srv/images.yaml
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Roll.TowerCount != 8 || cfg.Roll.AllowDuplicates {
		t.Errorf("Roll section not applied: %+v", cfg.Roll)
	}
	if len(cfg.Roll.Modes) != 1 || cfg.Roll.Modes[0] != "CHIMPS" {
		t.Errorf("Expected modes [CHIMPS], got %v", cfg.Roll.Modes)
	}
	if cfg.Assets.Path != "/srv/images.yaml" {
		t.Errorf("Expected assets path from file, got %q", cfg.Assets.Path)
	}
	// Untouched keys keep their defaults
	if cfg.Roll.MaxDuplicates != 3 {
		t.Errorf("Expected default max duplicates 3, got %d", cfg.Roll.MaxDuplicates)
	}
	if cfg.SSH.Address != ":23235" {
		t.Errorf("Expected default SSH address, got %q", cfg.SSH.Address)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".randomizer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("roll:\n  tower_count: 7\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Roll.TowerCount != 7 {
		t.Errorf("Expected tower count 7 from user config, got %d", cfg.Roll.TowerCount)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero towers", func(c *Config) { c.Roll.TowerCount = 0 }, true},
		{"zero dupes allowed", func(c *Config) { c.Roll.MaxDuplicates = 0 }, true},
		{"zero dupes disallowed", func(c *Config) { c.Roll.MaxDuplicates = 0; c.Roll.AllowDuplicates = false }, false},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"upper level", func(c *Config) { c.Logging.Level = "WARN" }, false},
		{"negative history", func(c *Config) { c.Storage.HistoryLimit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRollRestriction(t *testing.T) {
	cat := catalog.Default()

	roll := DefaultConfig().Roll
	r, err := roll.Restriction(cat)
	if err != nil {
		t.Fatalf("Restriction() failed: %v", err)
	}
	if len(r.Modes) != 14 || len(r.Maps) != 81 || len(r.Heroes) != 6 {
		t.Errorf("Empty lists should select the whole catalog, got %d/%d/%d", len(r.Modes), len(r.Maps), len(r.Heroes))
	}
	if r.TowerCount != 5 || !r.AllowDuplicates || r.MaxDuplicatesPerTower != 3 {
		t.Errorf("Unexpected numeric fields: %+v", r)
	}

	roll.Heroes = []string{"Quincy", " Silas "}
	r, err = roll.Restriction(cat)
	if err != nil {
		t.Fatalf("Restriction() failed: %v", err)
	}
	if len(r.Heroes) != 2 || r.Heroes[1].Name != "Silas" {
		t.Errorf("Unexpected heroes: %+v", r.Heroes)
	}

	roll.Maps = []string{"Atlantis"}
	_, err = roll.Restriction(cat)
	var unknown *catalog.UnknownNameError
	if !errors.As(err, &unknown) || unknown.Kind != "map" {
		t.Errorf("Expected unknown map error, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.randomizer/history.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".randomizer", "history.db"); got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("Absolute path should be unchanged, got %q", got)
	}
}
