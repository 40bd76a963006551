// Package draft persists timestamped snapshots of the edit buffer so a
// crashed or abandoned session can be recovered on the next open. Records are
// keyed by a caller-supplied identifier under a fixed namespace and expire
// logically after 24 hours — stale records are ignored, not deleted.
package draft

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// keyPrefix namespaces every caller key in the backing storage.
	keyPrefix = "markpad:draft:"

	// MaxAge is the staleness window: drafts older than this are never
	// restored automatically.
	MaxAge = 24 * time.Hour

	// DefaultAutosaveInterval is how often the owning UI should tick Autosave.
	DefaultAutosaveInterval = 30 * time.Second
)

// Record is the persisted draft value, serialized as JSON.
type Record struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// Storage is the key-value persistence the store writes through. Injected so
// tests can use an in-memory fake instead of the SQLite database.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Store tracks one draft key and the last-persisted snapshot for that key.
// Instances for different keys share nothing beyond the Storage itself.
type Store struct {
	storage   Storage
	key       string
	lastSaved string
}

// New creates a store for key. content is the buffer at session start; it
// becomes the baseline snapshot so an unedited buffer never writes a draft.
func New(storage Storage, key, content string) *Store {
	return &Store{storage: storage, key: keyPrefix + key, lastSaved: content}
}

// Restore reads the persisted draft and returns its content when it should
// replace the current buffer: the record exists, parses, is younger than
// MaxAge, and differs from current. Malformed records count as absent.
// On restore the snapshot baseline advances to the draft content, so the
// next autosave tick sees a clean buffer.
func (s *Store) Restore(now time.Time, current string) (string, bool) {
	raw, ok := s.storage.Get(s.key)
	if !ok {
		return current, false
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		log.Debug().Err(err).Str("key", s.key).Msg("malformed draft record, treating as absent")
		return current, false
	}
	age := now.UnixMilli() - rec.Timestamp
	if age >= MaxAge.Milliseconds() {
		return current, false
	}
	if rec.Content == current {
		return current, false
	}
	s.lastSaved = rec.Content
	return rec.Content, true
}

// Autosave persists content if it differs from the last-persisted snapshot.
// Returns true when a write happened. At most one write occurs per dirty
// tick; a tick with unchanged content writes nothing.
func (s *Store) Autosave(now time.Time, content string) bool {
	if content == s.lastSaved {
		return false
	}
	raw, err := json.Marshal(Record{Content: content, Timestamp: now.UnixMilli()})
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("failed to encode draft record")
		return false
	}
	s.storage.Set(s.key, string(raw))
	s.lastSaved = content
	return true
}

// Dirty reports whether content differs from the last-persisted snapshot.
// UI hint only; correctness never depends on it.
func (s *Store) Dirty(content string) bool {
	return content != s.lastSaved
}

// Clear removes the persisted record entirely — a later session for the same
// key sees no draft. current re-baselines the snapshot so the buffer that was
// just submitted is not immediately re-drafted.
func (s *Store) Clear(current string) {
	s.storage.Remove(s.key)
	s.lastSaved = current
}
