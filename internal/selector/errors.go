package selector

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValidHero means water filtering left no usable hero.
	ErrNoValidHero = errors.New("selector: no valid hero for the selected map")

	// ErrNoValidTower means mode and water filtering left no usable tower.
	ErrNoValidTower = errors.New("selector: no valid tower for the selected mode and map")

	// ErrTowerSelectionExhausted means duplicate-limited sampling ran out of
	// attempts. The count adjustment makes this unreachable; seeing it is a bug.
	ErrTowerSelectionExhausted = errors.New("selector: tower selection exhausted its attempt bound")
)

// EmptyRestrictionError reports an empty modes, maps or heroes set.
type EmptyRestrictionError struct {
	Field string // "modes", "maps" or "heroes"
}

func (e *EmptyRestrictionError) Error() string {
	return fmt.Sprintf("selector: restriction has no %s selected", e.Field)
}

// InvalidRestrictionError reports an out-of-range numeric restriction field.
type InvalidRestrictionError struct {
	Field  string
	Reason string
}

func (e *InvalidRestrictionError) Error() string {
	return fmt.Sprintf("selector: invalid %s: %s", e.Field, e.Reason)
}
