// Package store persists named slots of JSON data in a local SQLite file.
// Loads and saves are best-effort: persistence is a convenience, not a
// guarantee, so failures fall back to defaults instead of surfacing.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SlotTasks is the slot holding the serialized task list.
const SlotTasks = "todos-v1"

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load reads the slot under key and unmarshals it into T. A missing slot,
// a failed read, or a value that doesn't parse as T all yield def.
func Load[T any](s *Store, key string, def T) T {
	var raw string
	if err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?;`, key).Scan(&raw); err != nil {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}

// Save serializes value and writes it under key, replacing any previous
// value. Failures are discarded; the in-memory state stays authoritative
// for the session.
func Save[T any](s *Store, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		key, string(data))
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
