package catalog

import "fmt"

// RuleKind tags the variant held by a TowerRule.
type RuleKind int

const (
	// RuleNone allows every tower.
	RuleNone RuleKind = iota
	// RuleCategoryOnly allows only towers of one category.
	RuleCategoryOnly
	// RuleExclude allows every tower except one.
	RuleExclude
)

// TowerRule restricts which towers a mode allows.
// Only the field matching Kind is meaningful.
type TowerRule struct {
	Kind     RuleKind
	Category Category // RuleCategoryOnly
	Tower    string   // RuleExclude
}

// NoRestriction returns a rule allowing every tower.
func NoRestriction() TowerRule { return TowerRule{Kind: RuleNone} }

// CategoryOnly returns a rule allowing only towers of cat.
func CategoryOnly(cat Category) TowerRule {
	return TowerRule{Kind: RuleCategoryOnly, Category: cat}
}

// Exclude returns a rule allowing every tower except the named one.
func Exclude(tower string) TowerRule {
	return TowerRule{Kind: RuleExclude, Tower: tower}
}

// Allows reports whether the rule permits the tower.
func (r TowerRule) Allows(t Tower) bool {
	switch r.Kind {
	case RuleCategoryOnly:
		return t.Category == r.Category
	case RuleExclude:
		return t.Name != r.Tower
	default:
		return true
	}
}

// IsRestricted reports whether the rule removes any tower at all.
func (r TowerRule) IsRestricted() bool { return r.Kind != RuleNone }

// String describes the rule for listings.
func (r TowerRule) String() string {
	switch r.Kind {
	case RuleCategoryOnly:
		return fmt.Sprintf("%s towers only", r.Category.Title())
	case RuleExclude:
		return fmt.Sprintf("no %s", r.Tower)
	default:
		return "all towers"
	}
}
