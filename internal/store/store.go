// Package store provides the key/value storage behind favorites and the
// last-selected region.
//
// It plays the role browser localStorage plays for the website: string
// keys, string values, best-effort durability. SQLite is the persistent
// backend; Memory is the transparent fallback when SQLite cannot be opened.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/abelbrown/aagag/internal/logging"
	_ "modernc.org/sqlite"
)

// ErrClosed is returned by operations on a closed storage.
var ErrClosed = errors.New("storage closed")

// Storage is a string key/value store.
type Storage interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	// Persistent reports whether values survive a restart.
	Persistent() bool
	Close() error
}

// SQLite is a Storage backed by a single SQLite table.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SQLite struct {
	db     *sql.DB
	mu     sync.RWMutex // Protects all database operations
	closed bool
}

// Open creates a SQLite storage at dbPath, creating the table if needed.
// Uses WAL mode for file-based databases.
func Open(dbPath string) (*SQLite, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &SQLite{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

func (s *SQLite) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *SQLite) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLite) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *SQLite) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Persistent is always true for SQLite.
func (s *SQLite) Persistent() bool { return true }

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// OpenOrMemory tries to open SQLite storage at path and falls back to an
// in-memory storage when that fails. The fallback is logged; callers check
// Persistent() to learn which one they got.
func OpenOrMemory(path string) Storage {
	if path == "" {
		logging.Warn("No storage path configured, favorites will not persist")
		return NewMemory()
	}

	s, err := Open(path)
	if err != nil {
		logging.Warn("Persistent storage unavailable, using memory", "path", path, "error", err)
		return NewMemory()
	}

	logging.Info("Storage opened", "path", path)
	return s
}
