package selector

import "fmt"

// AdvisoryKind identifies an automatic adjustment made during generation.
type AdvisoryKind int

const (
	// AdvisoryTowerCountReduced: fewer distinct towers were valid than
	// requested with duplicates disallowed.
	AdvisoryTowerCountReduced AdvisoryKind = iota
	// AdvisoryMaxDuplicatesRaised: the duplicate cap could not reach the
	// requested tower count and was raised.
	AdvisoryMaxDuplicatesRaised
	// AdvisoryHeroFallback: no selected hero suited the map and a fallback
	// hero was drawn.
	AdvisoryHeroFallback
)

func (k AdvisoryKind) String() string {
	switch k {
	case AdvisoryTowerCountReduced:
		return "tower_count_reduced"
	case AdvisoryMaxDuplicatesRaised:
		return "max_duplicates_raised"
	case AdvisoryHeroFallback:
		return "hero_fallback"
	default:
		return "unknown"
	}
}

// Advisory is an informational note attached to a successful result.
type Advisory struct {
	Kind      AdvisoryKind
	Requested int // Value asked for, where numeric
	Adjusted  int // Value actually used, where numeric
	Message   string
}

func (a Advisory) String() string { return a.Message }

func towerCountReduced(requested, adjusted int) Advisory {
	return Advisory{
		Kind:      AdvisoryTowerCountReduced,
		Requested: requested,
		Adjusted:  adjusted,
		Message:   fmt.Sprintf("Only %d distinct towers are valid; tower count reduced from %d to %d.", adjusted, requested, adjusted),
	}
}

func maxDuplicatesRaised(requested, adjusted int) Advisory {
	return Advisory{
		Kind:      AdvisoryMaxDuplicatesRaised,
		Requested: requested,
		Adjusted:  adjusted,
		Message:   fmt.Sprintf("Max duplicates per tower raised from %d to %d to reach the tower count.", requested, adjusted),
	}
}

func heroFallback(hero string) Advisory {
	return Advisory{
		Kind:    AdvisoryHeroFallback,
		Message: fmt.Sprintf("No selected hero suits this map; using %s instead.", hero),
	}
}
