package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"

	"github.com/xonecas/markpad/internal/config"
	"github.com/xonecas/markpad/internal/draft"
)

// memStorage is an in-memory draft.Storage for tests.
type memStorage struct{ m map[string]string }

func newMemStorage() *memStorage { return &memStorage{m: map[string]string{}} }

func (s *memStorage) Get(key string) (string, bool) { v, ok := s.m[key]; return v, ok }
func (s *memStorage) Set(key, value string)         { s.m[key] = value }
func (s *memStorage) Remove(key string)             { delete(s.m, key) }

func newTestModel(t *testing.T, content string, st draft.Storage) Model {
	t.Helper()
	cfg := &config.Config{}
	var drafts *draft.Store
	if st != nil {
		drafts = draft.New(st, "test.md", content)
	}
	m := New(cfg, filepath.Join(t.TempDir(), "test.md"), content, drafts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func TestGenerateLayout(t *testing.T) {
	ly := generateLayout(100, 30, modeSplit, 50)
	if ly.edit.Dx() != 50 {
		t.Errorf("edit width = %d, want 50", ly.edit.Dx())
	}
	if ly.div.Min.X != 50 || ly.div.Dx() != 1 {
		t.Errorf("divider = %v", ly.div)
	}
	if ly.preview.Min.X != 51 || ly.preview.Max.X != 100 {
		t.Errorf("preview = %v", ly.preview)
	}
	if ly.edit.Min.Y != toolbarRows || ly.edit.Max.Y != 30-statusRows {
		t.Errorf("content rows = %v", ly.edit)
	}

	ly = generateLayout(100, 30, modeEdit, 50)
	if ly.edit.Dx() != 100 || ly.preview.Dx() != 0 || ly.div.Dx() != 0 {
		t.Errorf("edit mode rects: edit=%v div=%v preview=%v", ly.edit, ly.div, ly.preview)
	}

	ly = generateLayout(100, 30, modePreview, 50)
	if ly.preview.Dx() != 100 || ly.edit.Dx() != 0 {
		t.Errorf("preview mode rects: edit=%v preview=%v", ly.edit, ly.preview)
	}
}

func TestModeTransitions(t *testing.T) {
	m := newTestModel(t, "hello", nil)
	if m.mode != modeSplit {
		t.Fatalf("initial mode = %v, want split", m.mode)
	}

	mdl, _, _ := m.handleCtrl1()
	if mdl.mode != modeEdit {
		t.Errorf("ctrl+1 mode = %v", mdl.mode)
	}
	mdl2, _, _ := mdl.handleCtrl2()
	if mdl2.mode != modePreview {
		t.Errorf("ctrl+2 mode = %v", mdl2.mode)
	}
	mdl3, _, _ := mdl2.handleCtrl3()
	if mdl3.mode != modeSplit {
		t.Errorf("ctrl+3 mode = %v", mdl3.mode)
	}
	if mdl3.splitRatio != 50 {
		t.Errorf("ratio = %d, ratio must survive mode changes", mdl3.splitRatio)
	}
}

func TestDividerDragClampsRatio(t *testing.T) {
	m := newTestModel(t, "hello", nil)
	divX := m.layout.div.Min.X
	divY := m.layout.div.Min.Y

	u, _ := m.Update(tea.MouseClickMsg{X: divX, Y: divY, Button: tea.MouseLeft})
	m = u.(Model)
	if !m.resizingSplit {
		t.Fatal("click on divider must start a resize")
	}

	u, _ = m.Update(tea.MouseMotionMsg{X: 2, Y: divY})
	m = u.(Model)
	if m.splitRatio != minSplitRatio {
		t.Errorf("ratio = %d, want clamp to %d", m.splitRatio, minSplitRatio)
	}

	u, _ = m.Update(tea.MouseMotionMsg{X: 97, Y: divY})
	m = u.(Model)
	if m.splitRatio != maxSplitRatio {
		t.Errorf("ratio = %d, want clamp to %d", m.splitRatio, maxSplitRatio)
	}

	u, _ = m.Update(tea.MouseReleaseMsg{X: 97, Y: divY, Button: tea.MouseLeft})
	m = u.(Model)
	if m.resizingSplit {
		t.Error("release must end the resize")
	}

	// Motion after release must not change the ratio.
	before := m.splitRatio
	u, _ = m.Update(tea.MouseMotionMsg{X: 50, Y: divY})
	m = u.(Model)
	if m.splitRatio != before {
		t.Errorf("ratio moved to %d after release", m.splitRatio)
	}
}

func TestToolbarClickAppliesAction(t *testing.T) {
	m := newTestModel(t, "", nil)
	buttons, _ := toolbarSpans(m.width)
	// First button is bold.
	u, _ := m.Update(tea.MouseClickMsg{X: buttons[0].x0, Y: 0, Button: tea.MouseLeft})
	m = u.(Model)
	if got := m.editor.Value(); got != "****" {
		t.Errorf("buffer = %q, want empty bold pair", got)
	}
	if off := m.editor.CursorOffset(); off != 2 {
		t.Errorf("cursor = %d, want 2 (between the markers)", off)
	}
}

func TestToolbarTabClickSwitchesMode(t *testing.T) {
	m := newTestModel(t, "x", nil)
	_, tabs := toolbarSpans(m.width)
	for _, s := range tabs {
		if s.id != "preview" {
			continue
		}
		u, _ := m.Update(tea.MouseClickMsg{X: s.x0 + 1, Y: 0, Button: tea.MouseLeft})
		m = u.(Model)
	}
	if m.mode != modePreview {
		t.Errorf("mode = %v, want preview", m.mode)
	}
}

// TestToolbarSpansGolden pins the hit regions both the renderer and the mouse
// handler derive from the width.
func TestToolbarSpansGolden(t *testing.T) {
	var b strings.Builder
	buttons, tabs := toolbarSpans(100)
	for _, s := range buttons {
		fmt.Fprintf(&b, "btn %-6s [%d,%d)\n", s.id, s.x0, s.x1)
	}
	for i := len(tabs) - 1; i >= 0; i-- {
		s := tabs[i]
		fmt.Fprintf(&b, "tab %-8s [%d,%d)\n", s.id, s.x0, s.x1)
	}
	golden.RequireEqual(t, []byte(b.String()))
}

func TestApplyActionWithSelection(t *testing.T) {
	m := newTestModel(t, "hello world", nil)
	m.editor.Replace("hello world", 0)
	// Select "hello" by offsets via a synthetic drag.
	u, _ := m.Update(tea.MouseClickMsg{X: m.layout.edit.Min.X + 3, Y: m.layout.edit.Min.Y, Button: tea.MouseLeft})
	m = u.(Model)
	m.applyAction("h1")
	if got := m.editor.Value(); got != "# hello world" {
		t.Errorf("buffer = %q", got)
	}
}

func TestBoldShortcutRequiresFocus(t *testing.T) {
	m := newTestModel(t, "note", nil)

	mdl, _, _ := m.handleEsc()
	m = mdl
	mdl, _, _ = m.handleCtrlB()
	m = mdl
	if got := m.editor.Value(); got != "note" {
		t.Errorf("blurred editor changed: %q", got)
	}

	mdl, _, _ = m.handleCtrl2()
	m = mdl
	if m.editor.Focused() {
		t.Fatal("preview mode must blur the editor")
	}
	mdl, _, _ = m.handleCtrlI()
	m = mdl
	if got := m.editor.Value(); got != "note" {
		t.Errorf("preview mode changed buffer: %q", got)
	}

	// Back in edit mode the shortcut works again.
	mdl, _, _ = m.handleCtrl1()
	m = mdl
	mdl, _, _ = m.handleCtrlB()
	m = mdl
	if got := m.editor.Value(); got != "****note" {
		t.Errorf("focused editor buffer = %q, want bold pair at cursor", got)
	}
}

func TestSaveClearsDraft(t *testing.T) {
	st := newMemStorage()
	m := newTestModel(t, "hello", st)

	m.editor.Replace("hello edited", 0)
	// Autosave writes a draft record first.
	u, _ := m.Update(autosaveTickMsg(time.Now()))
	m = u.(Model)
	if len(st.m) != 1 {
		t.Fatalf("draft records = %d, want 1", len(st.m))
	}
	if !m.dirty() {
		t.Fatal("buffer must be dirty before save")
	}

	mdl, cmd, _ := m.handleCtrlS()
	m = mdl
	if cmd == nil {
		t.Fatal("ctrl+s must return a save command")
	}
	u, _ = m.Update(cmd())
	m = u.(Model)

	if m.dirty() {
		t.Error("buffer still dirty after successful save")
	}
	if len(st.m) != 0 {
		t.Error("draft record must be cleared on save")
	}
	data, err := os.ReadFile(m.filePath)
	if err != nil || string(data) != "hello edited" {
		t.Errorf("file content = %q, err = %v", data, err)
	}
}

func TestDraftRestoredOnStartup(t *testing.T) {
	st := newMemStorage()
	seed := draft.New(st, "test.md", "server content")
	seed.Autosave(time.Now(), "draft content line")

	m := newTestModel(t, "server content", st)
	if got := m.editor.Value(); got != "draft content line" {
		t.Errorf("buffer = %q, want restored draft", got)
	}
	if !strings.Contains(m.statusHint, "draft restored (+") {
		t.Errorf("hint = %q", m.statusHint)
	}
}

func TestPreviewCopyClick(t *testing.T) {
	m := newTestModel(t, "```go\nx := 1\n```\n", nil)
	mdl, _, _ := m.handleCtrl2() // preview mode, full-width pane
	m = mdl
	m.refreshDoc()
	if len(m.doc.Copies) != 1 {
		t.Fatalf("copies = %d, want 1", len(m.doc.Copies))
	}
	ct := m.doc.Copies[0]

	y := m.layout.preview.Min.Y + ct.Line - m.previewScroll
	u, cmd := m.Update(tea.MouseClickMsg{X: m.layout.preview.Min.X + 2, Y: y, Button: tea.MouseLeft})
	m = u.(Model)
	if cmd == nil {
		t.Fatal("copy click must return a clipboard command")
	}
	if m.renderer.CopiedLine != ct.Line {
		t.Errorf("CopiedLine = %d, want %d", m.renderer.CopiedLine, ct.Line)
	}

	// The revert message flips the label back.
	u, _ = m.Update(copiedResetMsg{line: ct.Line})
	m = u.(Model)
	if m.renderer.CopiedLine != -1 {
		t.Errorf("CopiedLine = %d after reset", m.renderer.CopiedLine)
	}
}

func TestPreviewFollowsEdits(t *testing.T) {
	m := newTestModel(t, "# one", nil)
	first := len(m.doc.Lines)
	if first == 0 {
		t.Fatal("split mode must render a preview document")
	}
	m.editor.Replace("# one\n\nnew paragraph", 0)
	m.refreshDoc()
	if len(m.doc.Lines) <= first {
		t.Errorf("doc did not grow after edit: %d -> %d", first, len(m.doc.Lines))
	}
}

func TestStatusBarShowsDirtyMarker(t *testing.T) {
	m := newTestModel(t, "clean", nil)
	var b strings.Builder
	m.renderStatusBar(&b)
	if strings.Contains(ansi.Strip(b.String()), "test.md*") {
		t.Error("clean buffer must not show the dirty marker")
	}

	m.editor.Replace("edited", 0)
	b.Reset()
	m.renderStatusBar(&b)
	if !strings.Contains(ansi.Strip(b.String()), "test.md*") {
		t.Error("edited buffer must show the dirty marker")
	}
}
