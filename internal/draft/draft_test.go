package draft

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

// fakeStorage is an in-memory Storage with a write counter.
type fakeStorage struct {
	m      map[string]string
	writes int
}

func newFakeStorage() *fakeStorage { return &fakeStorage{m: map[string]string{}} }

func (f *fakeStorage) Get(key string) (string, bool) { v, ok := f.m[key]; return v, ok }
func (f *fakeStorage) Set(key, value string)         { f.m[key] = value; f.writes++ }
func (f *fakeStorage) Remove(key string)             { delete(f.m, key) }

func seedRecord(t *testing.T, st Storage, key, content string, ts time.Time) {
	t.Helper()
	raw, err := json.Marshal(Record{Content: content, Timestamp: ts.UnixMilli()})
	if err != nil {
		t.Fatal(err)
	}
	st.Set(keyPrefix+key, string(raw))
}

func TestRestore_FreshDraft(t *testing.T) {
	st := newFakeStorage()
	now := time.Now()
	seedRecord(t, st, "item-1", "draft body", now.Add(-time.Hour))

	s := New(st, "item-1", "server body")
	got, restored := s.Restore(now, "server body")
	if !restored {
		t.Fatal("expected restore")
	}
	if got != "draft body" {
		t.Errorf("got %q", got)
	}
	// Restore re-baselines the snapshot: next tick is clean.
	if s.Autosave(now, "draft body") {
		t.Error("autosave right after restore should not write")
	}
}

func TestRestore_StaleDraftIgnored(t *testing.T) {
	st := newFakeStorage()
	now := time.Now()
	seedRecord(t, st, "item-1", "old draft", now.Add(-25*time.Hour))

	s := New(st, "item-1", "current")
	got, restored := s.Restore(now, "current")
	if restored {
		t.Fatal("stale draft must never overwrite the buffer")
	}
	if got != "current" {
		t.Errorf("got %q", got)
	}
}

func TestRestore_IdenticalContentSkipped(t *testing.T) {
	st := newFakeStorage()
	now := time.Now()
	seedRecord(t, st, "k", "same", now.Add(-time.Minute))

	s := New(st, "k", "same")
	if _, restored := s.Restore(now, "same"); restored {
		t.Fatal("identical draft should not trigger a restore")
	}
}

func TestRestore_MalformedRecord(t *testing.T) {
	st := newFakeStorage()
	st.Set(keyPrefix+"k", "{not json")

	s := New(st, "k", "current")
	got, restored := s.Restore(time.Now(), "current")
	if restored || got != "current" {
		t.Fatalf("malformed record must behave as no draft, got (%q, %v)", got, restored)
	}
}

func TestRestore_NoDraft(t *testing.T) {
	st := newFakeStorage()
	s := New(st, "k", "current")
	if _, restored := s.Restore(time.Now(), "current"); restored {
		t.Fatal("expected no restore on empty storage")
	}
}

func TestAutosave_OneWritePerChange(t *testing.T) {
	st := newFakeStorage()
	now := time.Now()
	s := New(st, "k", "original")

	// Clean buffer: no write.
	if s.Autosave(now, "original") {
		t.Fatal("unchanged content must not write")
	}
	if st.writes != 0 {
		t.Fatalf("writes = %d, want 0", st.writes)
	}

	// First dirty tick writes once.
	if !s.Autosave(now.Add(30*time.Second), "edited") {
		t.Fatal("dirty content must write")
	}
	// Second tick with no further change: nothing.
	if s.Autosave(now.Add(60*time.Second), "edited") {
		t.Fatal("second tick without change must not write")
	}
	if st.writes != 1 {
		t.Fatalf("writes = %d, want 1", st.writes)
	}
}

func TestAutosave_TimestampsAdvance(t *testing.T) {
	st := newFakeStorage()
	now := time.Now()
	s := New(st, "k", "")

	s.Autosave(now, "v1")
	var first Record
	raw, _ := st.Get(keyPrefix + "k")
	if err := json.Unmarshal([]byte(raw), &first); err != nil {
		t.Fatal(err)
	}

	s.Autosave(now.Add(30*time.Second), "v2")
	var second Record
	raw, _ = st.Get(keyPrefix + "k")
	if err := json.Unmarshal([]byte(raw), &second); err != nil {
		t.Fatal(err)
	}
	if second.Timestamp < first.Timestamp {
		t.Errorf("timestamp went backwards: %d -> %d", first.Timestamp, second.Timestamp)
	}
	if second.Content != "v2" {
		t.Errorf("content = %q", second.Content)
	}
}

func TestDirty(t *testing.T) {
	s := New(newFakeStorage(), "k", "base")
	if s.Dirty("base") {
		t.Error("clean buffer reported dirty")
	}
	if !s.Dirty("base+edit") {
		t.Error("edited buffer reported clean")
	}
	s.Autosave(time.Now(), "base+edit")
	if s.Dirty("base+edit") {
		t.Error("buffer dirty after autosave")
	}
}

func TestClear_RemovesRecord(t *testing.T) {
	st := newFakeStorage()
	now := time.Now()
	s := New(st, "k", "")
	s.Autosave(now, "draft")

	s.Clear("draft")
	if _, ok := st.Get(keyPrefix + "k"); ok {
		t.Fatal("record must be removed entirely")
	}
	// A later session for the same key sees nothing.
	next := New(st, "k", "draft")
	if _, restored := next.Restore(now, "draft"); restored {
		t.Fatal("restore after clear must find nothing")
	}
	// Clearing also re-baselines: no immediate re-draft.
	if s.Autosave(now.Add(30*time.Second), "draft") {
		t.Fatal("unedited buffer re-drafted after clear")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	st := newFakeStorage()
	now := time.Now()
	a := New(st, "item-a", "")
	b := New(st, "item-b", "")
	a.Autosave(now, "content a")
	b.Autosave(now, "content b")

	a.Clear("content a")
	if _, ok := st.Get(keyPrefix + "item-b"); !ok {
		t.Fatal("clearing one key must not touch another")
	}
}

// --- SQLite storage ---

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drafts.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDB_SetGetRemove(t *testing.T) {
	d := openTestDB(t)

	if _, ok := d.Get("k"); ok {
		t.Fatal("expected miss on empty db")
	}
	d.Set("k", "v1")
	if v, ok := d.Get("k"); !ok || v != "v1" {
		t.Fatalf("got (%q, %v)", v, ok)
	}
	d.Set("k", "v2")
	if v, _ := d.Get("k"); v != "v2" {
		t.Fatalf("overwrite failed, got %q", v)
	}
	d.Remove("k")
	if _, ok := d.Get("k"); ok {
		t.Fatal("expected miss after remove")
	}
}

func TestDB_NilReceiver(t *testing.T) {
	var d *DB
	if _, ok := d.Get("k"); ok {
		t.Fatal("nil db must miss")
	}
	d.Set("k", "v") // no-op
	d.Remove("k")   // no-op
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestStoreOverSQLite(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()

	s := New(d, "note-7", "hello")
	if !s.Autosave(now, "hello world") {
		t.Fatal("expected write")
	}

	// A fresh session against the same db restores the draft.
	next := New(d, "note-7", "hello")
	got, restored := next.Restore(now.Add(time.Minute), "hello")
	if !restored || got != "hello world" {
		t.Fatalf("got (%q, %v)", got, restored)
	}
}

func TestDiffStat(t *testing.T) {
	added, removed := DiffStat("a\nb\nc\n", "a\nB\nc\nd\n")
	if added != 2 || removed != 1 {
		t.Errorf("DiffStat = (+%d, -%d), want (+2, -1)", added, removed)
	}
	added, removed = DiffStat("same\n", "same\n")
	if added != 0 || removed != 0 {
		t.Errorf("identical inputs produced (+%d, -%d)", added, removed)
	}
}
