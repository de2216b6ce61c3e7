// Package storage provides SQLite-based persistence for generated rolls.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/btd6-randomizer/internal/config"
	"github.com/vovakirdan/btd6-randomizer/internal/selector"
)

const (
	timeLayout   = "2006-01-02 15:04:05"
	defaultLimit = 20
)

// Store manages the SQLite database connection for roll history.
type Store struct {
	db *sql.DB
}

// Roll is a single generated configuration as recorded in history.
type Roll struct {
	ID         string
	Seed       int64
	Mode       string
	Map        string
	Hero       string
	Towers     []string
	Advisories []string
	User       string // SSH user, empty for local rolls
	CreatedAt  time.Time
}

// ModeCount is how many recorded rolls landed on a mode.
type ModeCount struct {
	Mode  string
	Count int
}

// NewRoll builds a history record from a selector result.
func NewRoll(res selector.Result, seed int64, user string) Roll {
	advisories := make([]string, 0, len(res.Advisories))
	for _, a := range res.Advisories {
		advisories = append(advisories, a.Message)
	}
	return Roll{
		Seed:       seed,
		Mode:       res.Mode.Name,
		Map:        res.Map.Name,
		Hero:       res.Hero.Name,
		Towers:     res.TowerNames(),
		Advisories: advisories,
		User:       user,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rolls (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			mode TEXT NOT NULL,
			map TEXT NOT NULL,
			hero TEXT NOT NULL,
			towers TEXT NOT NULL,
			advisories TEXT NOT NULL DEFAULT '[]',
			username TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rolls_created ON rolls(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_rolls_mode ON rolls(mode);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRoll records a roll and returns its ID.
// A new UUID is assigned when the roll has none, and CreatedAt defaults to now.
func (s *Store) SaveRoll(roll Roll) (string, error) {
	if roll.ID == "" {
		roll.ID = uuid.NewString()
	}
	if roll.CreatedAt.IsZero() {
		roll.CreatedAt = time.Now()
	}

	towers, err := encodeList(roll.Towers)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode towers: %w", err)
	}
	advisories, err := encodeList(roll.Advisories)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode advisories: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO rolls (id, seed, mode, map, hero, towers, advisories, username, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		roll.ID,
		roll.Seed,
		roll.Mode,
		roll.Map,
		roll.Hero,
		towers,
		advisories,
		roll.User,
		roll.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save roll: %w", err)
	}

	return roll.ID, nil
}

// RecentRolls retrieves the most recent rolls, newest first.
func (s *Store) RecentRolls(limit int) ([]Roll, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.Query(
		`SELECT id, seed, mode, map, hero, towers, advisories, username, created_at
		 FROM rolls
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rolls: %w", err)
	}
	defer rows.Close()

	var rolls []Roll
	for rows.Next() {
		roll, err := scanRoll(rows)
		if err != nil {
			return nil, err
		}
		rolls = append(rolls, roll)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rolls, nil
}

// RollByID retrieves a roll by its ID.
// Returns nil without error when no such roll exists.
func (s *Store) RollByID(id string) (*Roll, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, mode, map, hero, towers, advisories, username, created_at
		 FROM rolls
		 WHERE id = ?`,
		id,
	)

	roll, err := scanRoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &roll, nil
}

// ModeCounts returns how often each mode was rolled, most frequent first.
func (s *Store) ModeCounts() ([]ModeCount, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*) AS n
		 FROM rolls
		 GROUP BY mode
		 ORDER BY n DESC, mode ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode counts: %w", err)
	}
	defer rows.Close()

	var counts []ModeCount
	for rows.Next() {
		var c ModeCount
		if err := rows.Scan(&c.Mode, &c.Count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// CountRolls returns the number of recorded rolls.
func (s *Store) CountRolls() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM rolls").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count rolls: %w", err)
	}
	return n, nil
}

// ClearRolls deletes the whole roll history.
func (s *Store) ClearRolls() error {
	if _, err := s.db.Exec("DELETE FROM rolls"); err != nil {
		return fmt.Errorf("storage: cannot clear rolls: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoll(sc scanner) (Roll, error) {
	var (
		r          Roll
		towers     string
		advisories string
		createdAt  any
	)

	err := sc.Scan(&r.ID, &r.Seed, &r.Mode, &r.Map, &r.Hero, &towers, &advisories, &r.User, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	if r.Towers, err = decodeList(towers); err != nil {
		return r, fmt.Errorf("storage: cannot decode towers of %s: %w", r.ID, err)
	}
	if r.Advisories, err = decodeList(advisories); err != nil {
		return r, fmt.Errorf("storage: cannot decode advisories of %s: %w", r.ID, err)
	}
	r.CreatedAt = parseTime(createdAt)

	return r, nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(s string) ([]string, error) {
	var items []string
	if s == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	return items, nil
}
