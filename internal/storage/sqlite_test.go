package storage

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
	"github.com/vovakirdan/btd6-randomizer/internal/selector"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.randomizer/history.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".randomizer", "history.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	in := Roll{
		Seed:       42,
		Mode:       "CHIMPS",
		Map:        "Logs",
		Hero:       "Quincy",
		Towers:     []string{"Dart Monkey", "Dart Monkey", "Ninja Monkey"},
		Advisories: []string{"tower count reduced"},
		User:       "alice",
	}

	id, err := store.SaveRoll(in)
	if err != nil {
		t.Fatalf("SaveRoll() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected generated ID")
	}

	got, err := store.RollByID(id)
	if err != nil {
		t.Fatalf("RollByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected saved roll, got nil")
	}

	if got.Seed != 42 || got.Mode != "CHIMPS" || got.Map != "Logs" || got.Hero != "Quincy" || got.User != "alice" {
		t.Errorf("Unexpected roll: %+v", got)
	}
	if len(got.Towers) != 3 || got.Towers[0] != "Dart Monkey" || got.Towers[2] != "Ninja Monkey" {
		t.Errorf("Towers not round-tripped in order: %v", got.Towers)
	}
	if len(got.Advisories) != 1 {
		t.Errorf("Expected 1 advisory, got %v", got.Advisories)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRoll(Roll{ID: "fixed", Mode: "Easy", Map: "Logs", Hero: "Quincy", Towers: []string{"Dart Monkey"}})
	if err != nil {
		t.Fatalf("SaveRoll() failed: %v", err)
	}
	if id != "fixed" {
		t.Errorf("Expected ID fixed, got %q", id)
	}

	// Duplicate IDs are rejected
	if _, err := store.SaveRoll(Roll{ID: "fixed", Mode: "Easy", Map: "Logs", Hero: "Quincy"}); err == nil {
		t.Error("Expected error for duplicate ID")
	}
}

func TestStoreRollByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RollByID("nope")
	if err != nil {
		t.Fatalf("RollByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing roll, got %+v", got)
	}
}

func TestStoreRecentRollsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.SaveRoll(Roll{
			Seed:      int64(i),
			Mode:      "Easy",
			Map:       "Logs",
			Hero:      "Quincy",
			Towers:    []string{"Dart Monkey"},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRoll() failed: %v", err)
		}
	}

	rolls, err := store.RecentRolls(3)
	if err != nil {
		t.Fatalf("RecentRolls() failed: %v", err)
	}
	if len(rolls) != 3 {
		t.Fatalf("Expected 3 rolls with limit, got %d", len(rolls))
	}
	if rolls[0].Seed != 4 || rolls[1].Seed != 3 || rolls[2].Seed != 2 {
		t.Errorf("Rolls not newest first: %d %d %d", rolls[0].Seed, rolls[1].Seed, rolls[2].Seed)
	}
	if !rolls[0].CreatedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("Unexpected CreatedAt %v", rolls[0].CreatedAt)
	}

	// Same timestamp falls back to insertion order
	for i := 10; i < 12; i++ {
		store.SaveRoll(Roll{Seed: int64(i), Mode: "Easy", Map: "Logs", Hero: "Quincy", CreatedAt: base.Add(time.Hour)})
	}
	rolls, _ = store.RecentRolls(0)
	if len(rolls) != 7 {
		t.Fatalf("Expected default limit to return all 7 rolls, got %d", len(rolls))
	}
	if rolls[0].Seed != 11 || rolls[1].Seed != 10 {
		t.Errorf("Expected ties ordered by insertion, got %d %d", rolls[0].Seed, rolls[1].Seed)
	}
}

func TestStoreModeCounts(t *testing.T) {
	store := openTestStore(t)

	for _, mode := range []string{"CHIMPS", "Easy", "CHIMPS", "Magic Only", "CHIMPS", "Easy"} {
		if _, err := store.SaveRoll(Roll{Mode: mode, Map: "Logs", Hero: "Quincy"}); err != nil {
			t.Fatalf("SaveRoll() failed: %v", err)
		}
	}

	counts, err := store.ModeCounts()
	if err != nil {
		t.Fatalf("ModeCounts() failed: %v", err)
	}

	want := []ModeCount{{"CHIMPS", 3}, {"Easy", 2}, {"Magic Only", 1}}
	if len(counts) != len(want) {
		t.Fatalf("Expected %d modes, got %v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}

	n, err := store.CountRolls()
	if err != nil {
		t.Fatalf("CountRolls() failed: %v", err)
	}
	if n != 6 {
		t.Errorf("Expected 6 rolls, got %d", n)
	}
}

func TestStoreClearRolls(t *testing.T) {
	store := openTestStore(t)

	store.SaveRoll(Roll{Mode: "Easy", Map: "Logs", Hero: "Quincy"})
	store.SaveRoll(Roll{Mode: "Hard", Map: "Logs", Hero: "Quincy"})

	if err := store.ClearRolls(); err != nil {
		t.Fatalf("ClearRolls() failed: %v", err)
	}

	rolls, _ := store.RecentRolls(10)
	if len(rolls) != 0 {
		t.Errorf("Expected 0 rolls after clear, got %d", len(rolls))
	}
}

func TestNewRollFromResult(t *testing.T) {
	cat := catalog.Default()
	sel := selector.New(cat)

	r := selector.DefaultRestriction(cat)
	r.TowerCount = 30
	r.AllowDuplicates = false

	res, err := sel.Generate(r, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	roll := NewRoll(res, 7, "bob")
	if roll.Mode != res.Mode.Name || roll.Map != res.Map.Name || roll.Hero != res.Hero.Name {
		t.Errorf("Roll does not match result: %+v", roll)
	}
	if len(roll.Towers) != len(res.Towers) {
		t.Errorf("Expected %d towers, got %d", len(res.Towers), len(roll.Towers))
	}
	if len(roll.Advisories) != len(res.Advisories) || len(roll.Advisories) == 0 {
		t.Errorf("Expected reduced-count advisory, got %v", roll.Advisories)
	}

	store := openTestStore(t)
	id, err := store.SaveRoll(roll)
	if err != nil {
		t.Fatalf("SaveRoll() failed: %v", err)
	}
	got, _ := store.RollByID(id)
	if got == nil || got.User != "bob" || got.Seed != 7 {
		t.Errorf("Unexpected stored roll: %+v", got)
	}
}
