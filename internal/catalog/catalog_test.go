package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogCounts(t *testing.T) {
	c := Default()

	if got := len(c.Modes()); got != 14 {
		t.Errorf("Expected 14 modes, got %d", got)
	}
	if got := len(c.Maps()); got != 81 {
		t.Errorf("Expected 81 maps, got %d", got)
	}
	if got := len(c.Heroes()); got != 6 {
		t.Errorf("Expected 6 heroes, got %d", got)
	}
	if got := len(c.Towers()); got != 25 {
		t.Errorf("Expected 25 towers, got %d", got)
	}

	want := map[Category]int{
		CategoryPrimary:  7,
		CategoryMilitary: 7,
		CategoryMagic:    6,
		CategorySupport:  5,
	}
	for cat, n := range want {
		if got := len(c.TowersIn(cat)); got != n {
			t.Errorf("Expected %d %s towers, got %d", n, cat, got)
		}
	}
}

func TestDefaultCatalogIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same catalog instance")
	}
}

func TestWaterAttributes(t *testing.T) {
	c := Default()

	meadow, err := c.Map("Monkey Meadow")
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if meadow.HasWater {
		t.Error("Monkey Meadow should not have water")
	}

	logs, err := c.Map("Logs")
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if !logs.HasWater {
		t.Error("Logs should have water")
	}

	dry := 0
	for _, m := range c.Maps() {
		if !m.HasWater {
			dry++
		}
	}
	if dry != 16 {
		t.Errorf("Expected 16 maps without water, got %d", dry)
	}

	waterTowers := map[string]bool{}
	for _, tw := range c.Towers() {
		if tw.RequiresWater {
			waterTowers[tw.Name] = true
		}
	}
	for _, name := range []string{"Monkey Sub", "Monkey Buccaneer", "Beast Handler"} {
		if !waterTowers[name] {
			t.Errorf("Expected %s to require water", name)
		}
	}
	if len(waterTowers) != 3 {
		t.Errorf("Expected 3 water towers, got %d", len(waterTowers))
	}

	brickell, err := c.Hero("Admiral Brickell")
	if err != nil {
		t.Fatalf("Hero() failed: %v", err)
	}
	if brickell.CompatibleWith(false) {
		t.Error("Admiral Brickell should not be compatible with a dry map")
	}
	if !brickell.CompatibleWith(true) {
		t.Error("Admiral Brickell should be compatible with a water map")
	}

	quincy, _ := c.Hero("Quincy")
	if !quincy.CompatibleWith(false) {
		t.Error("Quincy should be compatible with any map")
	}
}

func TestModeRules(t *testing.T) {
	c := Default()

	tests := []struct {
		mode  string
		count int
		check func(Tower) bool
	}{
		{"Primary Only", 7, func(tw Tower) bool { return tw.Category == CategoryPrimary }},
		{"Military Only", 7, func(tw Tower) bool { return tw.Category == CategoryMilitary }},
		{"Magic Only", 6, func(tw Tower) bool { return tw.Category == CategoryMagic }},
		{"CHIMPS", 24, func(tw Tower) bool { return tw.Name != "Banana Farm" }},
		{"Standard (Easy)", 25, func(Tower) bool { return true }},
		{"Half Cash", 25, func(Tower) bool { return true }},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			m, err := c.Mode(tt.mode)
			if err != nil {
				t.Fatalf("Mode() failed: %v", err)
			}
			towers := c.TowersForMode(m)
			if len(towers) != tt.count {
				t.Errorf("Expected %d towers, got %d", tt.count, len(towers))
			}
			for _, tw := range towers {
				if !tt.check(tw) {
					t.Errorf("Tower %s should not be allowed in %s", tw.Name, tt.mode)
				}
			}
		})
	}
}

func TestUnknownName(t *testing.T) {
	c := Default()

	_, err := c.Hero("Benjamin")
	var unknown *UnknownNameError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownNameError, got %v", err)
	}
	if unknown.Kind != "hero" || unknown.Name != "Benjamin" {
		t.Errorf("Unexpected error fields: %+v", unknown)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()

	towers := c.Towers()
	towers[0].Name = "Mutated"

	if c.Towers()[0].Name != "Dart Monkey" {
		t.Error("Mutating a returned slice should not change the catalog")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New("dup",
		[]Mode{{Name: "A"}},
		[]Map{{Name: "M"}, {Name: "M"}},
		[]Hero{{Name: "H"}},
		[]Tower{{Name: "T"}},
	)
	if err == nil {
		t.Error("Expected duplicate map name to be rejected")
	}
}

func TestNewRejectsRuleWithoutTowers(t *testing.T) {
	_, err := New("bad",
		[]Mode{{Name: "Magic Only", Rule: CategoryOnly(CategoryMagic)}},
		[]Map{{Name: "M"}},
		[]Hero{{Name: "H"}},
		[]Tower{{Name: "Dart Monkey", Category: CategoryPrimary}},
	)
	if err == nil {
		t.Error("Expected a mode that allows no towers to be rejected")
	}

	_, err = New("bad",
		[]Mode{{Name: "CHIMPS", Rule: Exclude("Banana Farm")}},
		[]Map{{Name: "M"}},
		[]Hero{{Name: "H"}},
		[]Tower{{Name: "Dart Monkey", Category: CategoryPrimary}},
	)
	if err == nil {
		t.Error("Expected exclusion of an unknown tower to be rejected")
	}
}

func TestParseCustomCatalog(t *testing.T) {
	doc := []byte(`
name: tiny
modes:
  - name: Standard
  - name: Primary Only
    rule: {category: primary}
maps:
  - {name: Dry, water: false}
  - {name: Wet, water: true}
heroes:
  - name: Quincy
towers:
  - {name: Dart Monkey, category: primary}
  - {name: Monkey Sub, category: military, requires_water: true}
`)

	c, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if c.Name() != "tiny" {
		t.Errorf("Expected name 'tiny', got %q", c.Name())
	}

	m, _ := c.Mode("Primary Only")
	if m.Rule.Kind != RuleCategoryOnly || m.Rule.Category != CategoryPrimary {
		t.Errorf("Unexpected rule: %+v", m.Rule)
	}

	sub, _ := c.Tower("Monkey Sub")
	if !sub.RequiresWater || sub.Category != CategoryMilitary {
		t.Errorf("Unexpected tower: %+v", sub)
	}
}

func TestParseRejectsBadCategory(t *testing.T) {
	doc := []byte(`
modes: [{name: A}]
maps: [{name: M}]
heroes: [{name: H}]
towers: [{name: T, category: artillery}]
`)
	if _, err := Parse(doc); err == nil {
		t.Error("Expected unknown category to be rejected")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, DefaultYAML(), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(c.Towers()) != 25 {
		t.Errorf("Expected 25 towers, got %d", len(c.Towers()))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	def, err := Load("")
	if err != nil || def != Default() {
		t.Error("Load(\"\") should return the default catalog")
	}
}
