package selector

import "github.com/vovakirdan/btd6-randomizer/internal/catalog"

// Defaults used when the caller does not say otherwise.
const (
	DefaultTowerCount    = 5
	DefaultMaxDuplicates = 3
)

// Restriction narrows the catalog for a single Generate call.
type Restriction struct {
	Modes                 []catalog.Mode
	Maps                  []catalog.Map
	Heroes                []catalog.Hero
	TowerCount            int
	AllowDuplicates       bool
	MaxDuplicatesPerTower int // Ignored when AllowDuplicates is false
}

// DefaultRestriction selects the whole catalog: five towers with up to three
// copies of each.
func DefaultRestriction(cat *catalog.Catalog) Restriction {
	return Restriction{
		Modes:                 cat.Modes(),
		Maps:                  cat.Maps(),
		Heroes:                cat.Heroes(),
		TowerCount:            DefaultTowerCount,
		AllowDuplicates:       true,
		MaxDuplicatesPerTower: DefaultMaxDuplicates,
	}
}

// Validate checks the restriction without sampling anything.
// Empty sets are reported in the order modes, maps, heroes.
func (r Restriction) Validate() error {
	switch {
	case len(r.Modes) == 0:
		return &EmptyRestrictionError{Field: "modes"}
	case len(r.Maps) == 0:
		return &EmptyRestrictionError{Field: "maps"}
	case len(r.Heroes) == 0:
		return &EmptyRestrictionError{Field: "heroes"}
	}

	if r.TowerCount < 1 {
		return &InvalidRestrictionError{Field: "tower count", Reason: "must be at least 1"}
	}
	if r.AllowDuplicates && r.MaxDuplicatesPerTower < 1 {
		return &InvalidRestrictionError{Field: "max duplicates per tower", Reason: "must be at least 1 when duplicates are allowed"}
	}
	return nil
}

// uniqueModes drops repeated names, keeping the first occurrence.
func uniqueModes(in []catalog.Mode) []catalog.Mode {
	seen := make(map[string]bool, len(in))
	out := make([]catalog.Mode, 0, len(in))
	for _, m := range in {
		if !seen[m.Name] {
			seen[m.Name] = true
			out = append(out, m)
		}
	}
	return out
}

func uniqueMaps(in []catalog.Map) []catalog.Map {
	seen := make(map[string]bool, len(in))
	out := make([]catalog.Map, 0, len(in))
	for _, m := range in {
		if !seen[m.Name] {
			seen[m.Name] = true
			out = append(out, m)
		}
	}
	return out
}

func uniqueHeroes(in []catalog.Hero) []catalog.Hero {
	seen := make(map[string]bool, len(in))
	out := make([]catalog.Hero, 0, len(in))
	for _, h := range in {
		if !seen[h.Name] {
			seen[h.Name] = true
			out = append(out, h)
		}
	}
	return out
}
