package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/btd6.yaml
var defaultCatalogYAML []byte

// yamlCatalog is the on-disk catalog format.
type yamlCatalog struct {
	Name   string      `yaml:"name"`
	Modes  []yamlMode  `yaml:"modes"`
	Maps   []yamlMap   `yaml:"maps"`
	Heroes []yamlHero  `yaml:"heroes"`
	Towers []yamlTower `yaml:"towers"`
}

type yamlMode struct {
	Name string    `yaml:"name"`
	Rule *yamlRule `yaml:"rule,omitempty"`
}

// yamlRule sets at most one of its fields.
type yamlRule struct {
	Category string `yaml:"category,omitempty"`
	Exclude  string `yaml:"exclude,omitempty"`
}

type yamlMap struct {
	Name  string `yaml:"name"`
	Water bool   `yaml:"water"`
}

type yamlHero struct {
	Name          string `yaml:"name"`
	RequiresWater bool   `yaml:"requires_water,omitempty"`
}

type yamlTower struct {
	Name          string `yaml:"name"`
	Category      string `yaml:"category"`
	RequiresWater bool   `yaml:"requires_water,omitempty"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is parsed once and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultYAML returns the embedded default catalog document.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultCatalogYAML...)
}

// Load reads a catalog from a YAML file. An empty path returns the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var yc yamlCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	modes := make([]Mode, 0, len(yc.Modes))
	for _, m := range yc.Modes {
		rule, err := m.Rule.toRule()
		if err != nil {
			return nil, fmt.Errorf("mode %q: %w", m.Name, err)
		}
		modes = append(modes, Mode{Name: m.Name, Rule: rule})
	}

	maps := make([]Map, 0, len(yc.Maps))
	for _, m := range yc.Maps {
		maps = append(maps, Map{Name: m.Name, HasWater: m.Water})
	}

	heroes := make([]Hero, 0, len(yc.Heroes))
	for _, h := range yc.Heroes {
		heroes = append(heroes, Hero{Name: h.Name, RequiresWater: h.RequiresWater})
	}

	towers := make([]Tower, 0, len(yc.Towers))
	for _, t := range yc.Towers {
		cat, ok := ParseCategory(t.Category)
		if !ok {
			return nil, fmt.Errorf("tower %q: unknown category %q", t.Name, t.Category)
		}
		towers = append(towers, Tower{Name: t.Name, Category: cat, RequiresWater: t.RequiresWater})
	}

	name := yc.Name
	if name == "" {
		name = "custom"
	}
	return New(name, modes, maps, heroes, towers)
}

func (r *yamlRule) toRule() (TowerRule, error) {
	if r == nil {
		return NoRestriction(), nil
	}
	switch {
	case r.Category != "" && r.Exclude != "":
		return TowerRule{}, fmt.Errorf("rule sets both category and exclude")
	case r.Category != "":
		cat, ok := ParseCategory(r.Category)
		if !ok {
			return TowerRule{}, fmt.Errorf("unknown rule category %q", r.Category)
		}
		return CategoryOnly(cat), nil
	case r.Exclude != "":
		return Exclude(r.Exclude), nil
	default:
		return NoRestriction(), nil
	}
}
