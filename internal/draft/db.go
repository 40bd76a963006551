package draft

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	key     TEXT PRIMARY KEY,
	value   TEXT NOT NULL,
	updated INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_drafts_updated ON drafts(updated);
`

// DB is the SQLite-backed Storage implementation. Persistence failures are
// logged and swallowed — drafts are a recovery aid, never a hard dependency.
type DB struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the draft database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open draft db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database. Safe on a nil receiver.
func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	return d.db.Close()
}

// Get returns the stored value for key. Safe on a nil receiver (miss).
func (d *DB) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var value string
	err := d.db.QueryRow("SELECT value FROM drafts WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any prior record. No-op on nil.
func (d *DB) Set(key, value string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(
		"INSERT OR REPLACE INTO drafts (key, value, updated) VALUES (?, ?, ?)",
		key, value, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to persist draft")
	}
}

// Remove deletes the record for key. No-op on nil.
func (d *DB) Remove(key string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.db.Exec("DELETE FROM drafts WHERE key = ?", key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove draft")
	}
}
