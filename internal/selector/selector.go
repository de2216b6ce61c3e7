// Package selector generates random game setups (mode, map, hero, towers)
// that respect the catalog's compatibility rules under a caller-supplied
// restriction.
//
// Generation is pure: the random source is passed in, nothing is logged or
// stored, and a fixed seed always yields the same result.
package selector

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
)

// Configuration is one generated setup.
type Configuration struct {
	Mode   catalog.Mode
	Map    catalog.Map
	Hero   catalog.Hero
	Towers []catalog.Tower // Canonical order
}

// TowerNames returns the tower names in result order.
func (c Configuration) TowerNames() []string {
	names := make([]string, len(c.Towers))
	for i, t := range c.Towers {
		names[i] = t.Name
	}
	return names
}

// Result is a successful generation plus any adjustments made on the way.
type Result struct {
	Configuration
	Advisories []Advisory

	// Effective limits after adjustment.
	TowerCount            int
	MaxDuplicatesPerTower int
}

// Selector draws configurations from a catalog.
// It holds no mutable state and is safe for concurrent use as long as each
// goroutine passes its own *rand.Rand.
type Selector struct {
	cat *catalog.Catalog
}

// New creates a selector over the given catalog.
func New(cat *catalog.Catalog) *Selector {
	return &Selector{cat: cat}
}

// Generate produces one valid configuration for r, drawing randomness from
// rng. A nil rng is seeded from the clock.
//
// Failures are *EmptyRestrictionError, *InvalidRestrictionError,
// ErrNoValidHero, ErrNoValidTower or ErrTowerSelectionExhausted. Nothing is
// sampled before the restriction has been validated.
func (s *Selector) Generate(r Restriction, rng *rand.Rand) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	modes := uniqueModes(r.Modes)
	maps := uniqueMaps(r.Maps)
	heroes := uniqueHeroes(r.Heroes)

	var res Result

	// Mode and map are independent uniform draws.
	mode := modes[rng.Intn(len(modes))]
	mp := maps[rng.Intn(len(maps))]
	hasWater := mp.HasWater

	hero, advisory, err := pickHero(heroes, hasWater, rng)
	if err != nil {
		return Result{}, err
	}
	if advisory != nil {
		res.Advisories = append(res.Advisories, *advisory)
	}

	valid := s.validTowers(mode, hasWater)
	if len(valid) == 0 {
		return Result{}, ErrNoValidTower
	}

	var towers []catalog.Tower
	if r.AllowDuplicates {
		maxDup := r.MaxDuplicatesPerTower
		if r.TowerCount > len(valid)*maxDup {
			raised := ceilDiv(r.TowerCount, len(valid))
			res.Advisories = append(res.Advisories, maxDuplicatesRaised(maxDup, raised))
			maxDup = raised
		}
		towers, err = sampleWithDuplicates(valid, r.TowerCount, maxDup, rng)
		if err != nil {
			return Result{}, err
		}
		res.TowerCount = r.TowerCount
		res.MaxDuplicatesPerTower = maxDup
	} else {
		count := r.TowerCount
		if count > len(valid) {
			res.Advisories = append(res.Advisories, towerCountReduced(count, len(valid)))
			count = len(valid)
		}
		towers = sampleDistinct(valid, count, rng)
		res.TowerCount = count
		res.MaxDuplicatesPerTower = 1
	}

	s.cat.Order().SortTowers(towers)

	res.Configuration = Configuration{
		Mode:   mode,
		Map:    mp,
		Hero:   hero,
		Towers: towers,
	}
	return res, nil
}

// pickHero draws a hero that suits the map. When none of the selected heroes
// does, it falls back to the selected heroes without a water requirement and
// fails if that set is empty too.
func pickHero(heroes []catalog.Hero, hasWater bool, rng *rand.Rand) (catalog.Hero, *Advisory, error) {
	var valid []catalog.Hero
	for _, h := range heroes {
		if h.CompatibleWith(hasWater) {
			valid = append(valid, h)
		}
	}
	if len(valid) > 0 {
		return valid[rng.Intn(len(valid))], nil, nil
	}

	var fallback []catalog.Hero
	for _, h := range heroes {
		if !h.RequiresWater {
			fallback = append(fallback, h)
		}
	}
	if len(fallback) == 0 {
		return catalog.Hero{}, nil, ErrNoValidHero
	}

	hero := fallback[rng.Intn(len(fallback))]
	adv := heroFallback(hero.Name)
	return hero, &adv, nil
}

// validTowers applies the mode rule, then the water requirement.
func (s *Selector) validTowers(mode catalog.Mode, hasWater bool) []catalog.Tower {
	byMode := s.cat.TowersForMode(mode)
	out := byMode[:0]
	for _, t := range byMode {
		if t.CompatibleWith(hasWater) {
			out = append(out, t)
		}
	}
	return out
}

// sampleDistinct draws count towers without replacement using a partial
// Fisher-Yates shuffle.
func sampleDistinct(valid []catalog.Tower, count int, rng *rand.Rand) []catalog.Tower {
	pool := append([]catalog.Tower(nil), valid...)
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}

// sampleWithDuplicates draws count towers with replacement, never letting a
// tower appear more than maxDup times.
//
// Each draw is uniform over the towers still below the cap, which is exactly
// the distribution of drawing from all towers and rejecting capped ones.
// Every draw succeeds, so the attempt bound is the total capacity
// len(valid)*maxDup; the caller guarantees count never exceeds it.
func sampleWithDuplicates(valid []catalog.Tower, count, maxDup int, rng *rand.Rand) ([]catalog.Tower, error) {
	available := make([]int, len(valid))
	for i := range available {
		available[i] = i
	}
	used := make([]int, len(valid))
	bound := len(valid) * maxDup

	out := make([]catalog.Tower, 0, count)
	for attempts := 0; len(out) < count; attempts++ {
		if attempts >= bound || len(available) == 0 {
			return nil, ErrTowerSelectionExhausted
		}

		k := rng.Intn(len(available))
		idx := available[k]
		out = append(out, valid[idx])
		used[idx]++
		if used[idx] >= maxDup {
			available = append(available[:k], available[k+1:]...)
		}
	}
	return out, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
