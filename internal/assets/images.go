// Package assets maps catalog element names to image URLs.
//
// It is a lookup table only: nothing is downloaded, cached or converted here.
// A missing entry is not an error; callers simply show no image.
package assets

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/btd6-randomizer/internal/selector"
)

//go:embed defaults/images.yaml
var defaultImagesYAML []byte

// Kind selects which name space a lookup uses.
type Kind int

const (
	KindMode Kind = iota
	KindMap
	KindHero
	KindTower
)

func (k Kind) String() string {
	switch k {
	case KindMode:
		return "mode"
	case KindMap:
		return "map"
	case KindHero:
		return "hero"
	case KindTower:
		return "tower"
	default:
		return "unknown"
	}
}

// Lookup resolves an element name to an image URL.
type Lookup interface {
	ImageURL(kind Kind, name string) (string, bool)
}

// Index is an in-memory Lookup.
type Index struct {
	urls map[Kind]map[string]string
}

type yamlImages struct {
	Modes  map[string]string `yaml:"modes"`
	Maps   map[string]string `yaml:"maps"`
	Heroes map[string]string `yaml:"heroes"`
	Towers map[string]string `yaml:"towers"`
}

// DefaultIndex returns the built-in image index.
func DefaultIndex() *Index {
	idx, err := Parse(defaultImagesYAML)
	if err != nil {
		panic(fmt.Sprintf("assets: embedded image index is invalid: %v", err))
	}
	return idx
}

// LoadIndex reads an image index from a YAML file. An empty path returns
// the built-in index.
func LoadIndex(path string) (*Index, error) {
	if path == "" {
		return DefaultIndex(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image index %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds an index from a YAML document with modes/maps/heroes/towers
// sections, each a name -> URL mapping.
func Parse(data []byte) (*Index, error) {
	var yi yamlImages
	if err := yaml.Unmarshal(data, &yi); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return &Index{urls: map[Kind]map[string]string{
		KindMode:  yi.Modes,
		KindMap:   yi.Maps,
		KindHero:  yi.Heroes,
		KindTower: yi.Towers,
	}}, nil
}

// ImageURL implements Lookup.
func (i *Index) ImageURL(kind Kind, name string) (string, bool) {
	if i == nil {
		return "", false
	}
	u, ok := i.urls[kind][name]
	return u, ok && u != ""
}

// Len returns the number of entries of one kind.
func (i *Index) Len(kind Kind) int {
	return len(i.urls[kind])
}

// Image is one resolved image for a configuration element.
type Image struct {
	Kind Kind
	Name string
	URL  string
}

// ForConfiguration resolves images for every element of cfg: mode, map, hero,
// then each distinct tower in result order. Elements without an image are
// skipped.
func ForConfiguration(l Lookup, cfg selector.Configuration) []Image {
	var out []Image
	add := func(kind Kind, name string) {
		if u, ok := l.ImageURL(kind, name); ok {
			out = append(out, Image{Kind: kind, Name: name, URL: u})
		}
	}

	add(KindMode, cfg.Mode.Name)
	add(KindMap, cfg.Map.Name)
	add(KindHero, cfg.Hero.Name)

	seen := make(map[string]bool, len(cfg.Towers))
	for _, t := range cfg.Towers {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		add(KindTower, t.Name)
	}
	return out
}
