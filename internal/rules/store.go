// Package rules persists user-defined extension→category overrides.
//
// Rules survive across sessions in a SQLite key-value table: the full
// mapping is stored as a JSON object under a single fixed key and rewritten
// on every change. Only explicit user edits are ever stored here; oracle and
// fallback categorizations never reach the store.
package rules

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/curator/internal/models"
)

// storeKey is the fixed key the rule mapping lives under.
const storeKey = "custom_rules"

// Store manages the SQLite database holding custom rules.
type Store struct {
	db     *sql.DB
	dbPath string
	rules  map[string]models.Category
}

// NewStore opens (creating if necessary) the rule database at dbPath and
// loads the persisted mapping. ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks instead of
	// failing when another curator process holds the database.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
		rules:  make(map[string]models.Category),
	}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := store.Load(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// execWithRetry executes a statement with exponential backoff on
// "database is locked" errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load restores the persisted mapping into memory. A missing record means an
// empty mapping, not an error.
func (s *Store) Load() error {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", storeKey).Scan(&value)
	if err == sql.ErrNoRows {
		s.rules = make(map[string]models.Category)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return fmt.Errorf("decode rules: %w", err)
	}

	rules := make(map[string]models.Category, len(raw))
	for ext, label := range raw {
		category, err := models.ParseCategory(label)
		if err != nil {
			// A hand-edited or corrupted entry: skip it rather than poison
			// the whole mapping.
			continue
		}
		rules[ext] = category
	}
	s.rules = rules
	return nil
}

// Get returns a copy of the current extension→category mapping.
func (s *Store) Get() map[string]models.Category {
	out := make(map[string]models.Category, len(s.rules))
	for ext, category := range s.rules {
		out[ext] = category
	}
	return out
}

// Set records a rule for an extension, overwriting any existing rule for the
// same extension, and persists the full mapping. Setting the same pair twice
// leaves exactly one stored rule.
func (s *Store) Set(extension string, category models.Category) error {
	rule := models.CustomRule{Extension: extension, Category: category}
	if err := rule.Validate(); err != nil {
		return err
	}
	s.rules[extension] = category
	return s.persist()
}

// SetAll applies a batch of rules in one persist, last write wins per
// extension. Used by bulk import.
func (s *Store) SetAll(batch map[string]models.Category) error {
	for ext, category := range batch {
		rule := models.CustomRule{Extension: ext, Category: category}
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	for ext, category := range batch {
		s.rules[ext] = category
	}
	return s.persist()
}

// Delete removes the rule for an extension, if any, and persists the
// mapping. Deleting an absent extension is a no-op.
func (s *Store) Delete(extension string) error {
	if _, ok := s.rules[extension]; !ok {
		return nil
	}
	delete(s.rules, extension)
	return s.persist()
}

// persist rewrites the full mapping under the fixed key.
func (s *Store) persist() error {
	raw := make(map[string]string, len(s.rules))
	for ext, category := range s.rules {
		raw[ext] = category.String()
	}
	value, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		storeKey, string(value),
	)
	if err != nil {
		return fmt.Errorf("persist rules: %w", err)
	}
	return nil
}
