package catalog

import "sort"

// CanonicalOrder is the display order of towers: by category
// (primary, military, magic, support), then by catalog-declared order.
// It is used for presentation only, never for selection.
type CanonicalOrder struct {
	rank map[string]int
}

func newCanonicalOrder(towers []Tower) *CanonicalOrder {
	o := &CanonicalOrder{rank: make(map[string]int, len(towers))}
	r := 0
	for _, cat := range Categories {
		for _, t := range towers {
			if t.Category == cat {
				o.rank[t.Name] = r
				r++
			}
		}
	}
	return o
}

// Rank returns the tower's position in the canonical order.
// Towers unknown to the catalog rank after all known towers.
func (o *CanonicalOrder) Rank(t Tower) int {
	if r, ok := o.rank[t.Name]; ok {
		return r
	}
	return len(o.rank)
}

// Less reports whether a sorts before b.
func (o *CanonicalOrder) Less(a, b Tower) bool {
	return o.Rank(a) < o.Rank(b)
}

// SortTowers sorts towers in place into canonical order. The sort is stable.
func (o *CanonicalOrder) SortTowers(towers []Tower) {
	sort.SliceStable(towers, func(i, j int) bool {
		return o.Less(towers[i], towers[j])
	})
}

// IsSorted reports whether towers are already in canonical order.
func (o *CanonicalOrder) IsSorted(towers []Tower) bool {
	return sort.SliceIsSorted(towers, func(i, j int) bool {
		return o.Less(towers[i], towers[j])
	})
}
