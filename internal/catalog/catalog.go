// Package catalog holds the static reference data the randomizer draws from:
// game modes, maps, heroes and towers, the per-mode tower rules and the
// canonical tower display order.
//
// A Catalog is immutable once built. Accessors return copies, so a Catalog
// can be shared freely between goroutines.
package catalog

import (
	"fmt"
	"strings"
)

// Category groups towers. Every tower belongs to exactly one category.
type Category int

const (
	CategoryPrimary Category = iota
	CategoryMilitary
	CategoryMagic
	CategorySupport
)

// Categories lists all categories in display order.
var Categories = []Category{CategoryPrimary, CategoryMilitary, CategoryMagic, CategorySupport}

// String returns the lowercase category name used in catalog files.
func (c Category) String() string {
	switch c {
	case CategoryPrimary:
		return "primary"
	case CategoryMilitary:
		return "military"
	case CategoryMagic:
		return "magic"
	case CategorySupport:
		return "support"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Title returns the capitalized category name for display.
func (c Category) Title() string {
	s := c.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseCategory converts a category name (case-insensitive) to a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, true
		}
	}
	return 0, false
}

// Mode is a game ruleset.
type Mode struct {
	Name string
	Rule TowerRule
}

// Map is a playable map.
type Map struct {
	Name     string
	HasWater bool
}

// Hero is a playable hero.
type Hero struct {
	Name          string
	RequiresWater bool // Hero can only be placed on maps with water
}

// CompatibleWith reports whether the hero can be used on a map with the given
// water attribute.
func (h Hero) CompatibleWith(hasWater bool) bool {
	return hasWater || !h.RequiresWater
}

// Tower is a placeable tower.
type Tower struct {
	Name          string
	Category      Category
	RequiresWater bool // Tower can only be placed on water
}

// CompatibleWith reports whether the tower can be used on a map with the
// given water attribute.
func (t Tower) CompatibleWith(hasWater bool) bool {
	return hasWater || !t.RequiresWater
}

// UnknownNameError is returned by lookups for names not in the catalog.
type UnknownNameError struct {
	Kind string // "mode", "map", "hero" or "tower"
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("catalog: unknown %s %q", e.Kind, e.Name)
}

// Catalog is the immutable set of reference data.
type Catalog struct {
	name   string
	modes  []Mode
	maps   []Map
	heroes []Hero
	towers []Tower

	modeIdx  map[string]int
	mapIdx   map[string]int
	heroIdx  map[string]int
	towerIdx map[string]int

	order *CanonicalOrder
}

// New builds a catalog from the given data and validates it.
// Slices are copied; the caller may reuse them.
func New(name string, modes []Mode, maps []Map, heroes []Hero, towers []Tower) (*Catalog, error) {
	c := &Catalog{
		name:   name,
		modes:  append([]Mode(nil), modes...),
		maps:   append([]Map(nil), maps...),
		heroes: append([]Hero(nil), heroes...),
		towers: append([]Tower(nil), towers...),
	}

	if err := c.index(); err != nil {
		return nil, err
	}
	if err := c.validateRules(); err != nil {
		return nil, err
	}

	c.order = newCanonicalOrder(c.towers)
	return c, nil
}

// index builds the name lookups, rejecting empty and duplicate names.
func (c *Catalog) index() error {
	if len(c.modes) == 0 || len(c.maps) == 0 || len(c.heroes) == 0 || len(c.towers) == 0 {
		return fmt.Errorf("catalog %q: modes, maps, heroes and towers must all be non-empty", c.name)
	}

	var err error
	if c.modeIdx, err = indexNames("mode", len(c.modes), func(i int) string { return c.modes[i].Name }); err != nil {
		return err
	}
	if c.mapIdx, err = indexNames("map", len(c.maps), func(i int) string { return c.maps[i].Name }); err != nil {
		return err
	}
	if c.heroIdx, err = indexNames("hero", len(c.heroes), func(i int) string { return c.heroes[i].Name }); err != nil {
		return err
	}
	if c.towerIdx, err = indexNames("tower", len(c.towers), func(i int) string { return c.towers[i].Name }); err != nil {
		return err
	}

	for _, t := range c.towers {
		if t.Category < CategoryPrimary || t.Category > CategorySupport {
			return fmt.Errorf("catalog: tower %q has invalid category %d", t.Name, int(t.Category))
		}
	}
	return nil
}

func indexNames(kind string, n int, name func(int) string) (map[string]int, error) {
	idx := make(map[string]int, n)
	for i := 0; i < n; i++ {
		nm := name(i)
		if strings.TrimSpace(nm) == "" {
			return nil, fmt.Errorf("catalog: %s #%d has an empty name", kind, i+1)
		}
		if _, dup := idx[nm]; dup {
			return nil, fmt.Errorf("catalog: duplicate %s %q", kind, nm)
		}
		idx[nm] = i
	}
	return idx, nil
}

// validateRules checks that every mode rule references catalog data and
// leaves at least one tower available.
func (c *Catalog) validateRules() error {
	for _, m := range c.modes {
		switch m.Rule.Kind {
		case RuleNone, RuleCategoryOnly:
		case RuleExclude:
			if _, ok := c.towerIdx[m.Rule.Tower]; !ok {
				return fmt.Errorf("catalog: mode %q excludes unknown tower %q", m.Name, m.Rule.Tower)
			}
		default:
			return fmt.Errorf("catalog: mode %q has invalid rule kind %d", m.Name, int(m.Rule.Kind))
		}
		if len(c.TowersForMode(m)) == 0 {
			return fmt.Errorf("catalog: mode %q allows no towers", m.Name)
		}
	}
	return nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.name }

// Modes returns all modes in catalog order.
func (c *Catalog) Modes() []Mode { return append([]Mode(nil), c.modes...) }

// Maps returns all maps in catalog order.
func (c *Catalog) Maps() []Map { return append([]Map(nil), c.maps...) }

// Heroes returns all heroes in catalog order.
func (c *Catalog) Heroes() []Hero { return append([]Hero(nil), c.heroes...) }

// Towers returns all towers in catalog-declared order.
func (c *Catalog) Towers() []Tower { return append([]Tower(nil), c.towers...) }

// TowersIn returns the towers of one category in catalog-declared order.
func (c *Catalog) TowersIn(cat Category) []Tower {
	var out []Tower
	for _, t := range c.towers {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// TowersForMode returns the towers a mode's rule allows, before any water
// filtering, in catalog-declared order.
func (c *Catalog) TowersForMode(m Mode) []Tower {
	out := make([]Tower, 0, len(c.towers))
	for _, t := range c.towers {
		if m.Rule.Allows(t) {
			out = append(out, t)
		}
	}
	return out
}

// Order returns the canonical tower ordering for this catalog.
func (c *Catalog) Order() *CanonicalOrder { return c.order }

// Mode looks up a mode by name.
func (c *Catalog) Mode(name string) (Mode, error) {
	i, ok := c.modeIdx[name]
	if !ok {
		return Mode{}, &UnknownNameError{Kind: "mode", Name: name}
	}
	return c.modes[i], nil
}

// Map looks up a map by name.
func (c *Catalog) Map(name string) (Map, error) {
	i, ok := c.mapIdx[name]
	if !ok {
		return Map{}, &UnknownNameError{Kind: "map", Name: name}
	}
	return c.maps[i], nil
}

// Hero looks up a hero by name.
func (c *Catalog) Hero(name string) (Hero, error) {
	i, ok := c.heroIdx[name]
	if !ok {
		return Hero{}, &UnknownNameError{Kind: "hero", Name: name}
	}
	return c.heroes[i], nil
}

// Tower looks up a tower by name.
func (c *Catalog) Tower(name string) (Tower, error) {
	i, ok := c.towerIdx[name]
	if !ok {
		return Tower{}, &UnknownNameError{Kind: "tower", Name: name}
	}
	return c.towers[i], nil
}
