// Package tui is the markpad application shell: a toolbar of markdown
// actions, an editor pane, a rendered preview pane, and a status bar, glued
// together by the bubbletea update loop.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/markpad/internal/config"
	"github.com/xonecas/markpad/internal/draft"
	"github.com/xonecas/markpad/internal/editor"
	"github.com/xonecas/markpad/internal/highlight"
	"github.com/xonecas/markpad/internal/preview"
)

// viewMode selects which panes are visible.
type viewMode int

const (
	modeEdit viewMode = iota
	modePreview
	modeSplit
)

func (v viewMode) String() string {
	switch v {
	case modeEdit:
		return "edit"
	case modePreview:
		return "preview"
	default:
		return "split"
	}
}

// Model is the application model.
type Model struct {
	width  int
	height int
	layout layout
	styles Styles

	filePath string
	fileName string

	editor editor.Model

	mode          viewMode
	splitRatio    int // edit-pane width percent in split view, [20, 80]
	resizingSplit bool

	// Preview render cache: doc is rebuilt only when the source or the
	// copied-control state changes.
	renderer      preview.Renderer
	doc           preview.Document
	docSource     string
	docWidth      int
	previewScroll int

	// Draft persistence
	drafts           *draft.Store
	autosaveInterval time.Duration

	// fileBaseline is the buffer content as of the last file save; the dirty
	// marker compares against it. pendingSave holds the content of an
	// in-flight ctrl+s until its result arrives.
	fileBaseline string
	pendingSave  string
	statusHint   string

	ctx    context.Context
	cancel context.CancelFunc
}

// New builds the application model. content is the file's current text;
// drafts may hold a newer snapshot from a previous session, which is restored
// here (with a diff-stat hint) before the first render.
func New(cfg *config.Config, filePath, content string, drafts *draft.Store) Model {
	theme := cfg.UI.SyntaxThemeOrDefault()
	styles := NewStyles(highlight.ThemePalette(theme))

	ed := editor.New()
	ed.ShowLineNumbers = true
	ed.Language = "markdown"
	ed.SyntaxTheme = theme
	ed.LineNumStyle = styles.Gutter
	ed.SelectionStyle = styles.Selection
	ed.BgColor = styles.bgColor
	ed.SetValue(content)
	ed.Focus()

	m := Model{
		styles:           styles,
		filePath:         filePath,
		fileName:         filepath.Base(filePath),
		editor:           ed,
		mode:             modeSplit,
		splitRatio:       clampRatio(cfg.UI.SplitRatioOrDefault()),
		renderer:         preview.New(0, theme),
		drafts:           drafts,
		autosaveInterval: time.Duration(cfg.Draft.AutosaveSecondsOrDefault()) * time.Second,
		fileBaseline:     content,
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.restoreDraft(content)
	return m
}

// Init starts cursor blinking and the autosave ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(editor.Blink, m.autosaveTick())
}

// dirty reports whether the buffer differs from the last saved file content.
func (m Model) dirty() bool {
	return m.editor.Value() != m.fileBaseline
}

// restoreDraft swaps in a persisted draft when one qualifies, and records a
// diff-stat hint for the status bar.
func (m *Model) restoreDraft(content string) {
	if m.drafts == nil {
		return
	}
	restored, ok := m.drafts.Restore(time.Now(), content)
	if !ok {
		return
	}
	m.editor.SetValue(restored)
	added, removed := draft.DiffStat(content, restored)
	m.statusHint = fmt.Sprintf("draft restored (+%d -%d)", added, removed)
}

func clampRatio(r int) int {
	if r < minSplitRatio {
		return minSplitRatio
	}
	if r > maxSplitRatio {
		return maxSplitRatio
	}
	return r
}
