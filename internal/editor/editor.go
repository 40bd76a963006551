// Package editor provides the markdown text buffer component for bubbletea:
// line-based rune storage, cursor and scroll state, keyboard and mouse
// selection, a line-number gutter kept row-aligned with the text, and a flat
// rune-offset selection API for toolbar transformations.
package editor

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/cursor"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Model is the editable markdown buffer.
type Model struct {
	// Public configuration — set before first Update/View.
	ReadOnly        bool
	ShowLineNumbers bool
	Language        string // Chroma lexer name (empty = no highlighting)
	SyntaxTheme     string // Chroma style name (empty = no highlighting)
	Placeholder     string // Shown when empty and blurred

	// Styles — set by parent.
	LineNumStyle   lipgloss.Style // Line number gutter
	PlaceholderSty lipgloss.Style // Placeholder text
	SelectionStyle lipgloss.Style // Selected text
	BgColor        color.Color    // Fallback bg when no syntax theme

	// Internal state
	lines  [][]rune // Backing store, one entry per line
	row    int      // Cursor row (0-indexed into lines)
	col    int      // Cursor column (0-indexed into line runes)
	scroll int      // First visible row

	width  int // Viewport width (cells)
	height int // Viewport height (rows)

	focus  bool
	cursor cursor.Model

	// Selection
	dragging bool
	sel      *selection

	// Cached computed values
	gutterWidth int // Width of line number gutter (0 if disabled)
}

type pos struct{ row, col int }

// New creates a new editor with sensible defaults.
func New() Model {
	c := cursor.New()
	c.SetMode(cursor.CursorBlink)
	return Model{
		lines:  [][]rune{{}},
		cursor: c,
	}
}

// ---------------------------------------------------------------------------
// Public methods called by parent
// ---------------------------------------------------------------------------

func (m *Model) SetWidth(w int)  { m.width = w; m.clampScroll() }
func (m *Model) SetHeight(h int) { m.height = h; m.clampScroll() }

func (m *Model) Focus() {
	m.focus = true
	m.cursor.Focus()
}

func (m *Model) Blur() {
	m.focus = false
	m.cursor.Blur()
}

func (m Model) Focused() bool { return m.focus }

// Blink is the initial blink command for the editor cursor.
func Blink() tea.Msg { return cursor.Blink() }

// SetValue replaces the buffer and resets cursor, scroll, and selection.
func (m *Model) SetValue(s string) {
	m.lines = splitLines(s)
	m.row = 0
	m.col = 0
	m.scroll = 0
	m.ClearSelection()
}

// Replace swaps in a new buffer and places the cursor at the given rune
// offset, keeping the scroll position as close as clamping allows. Used by
// toolbar actions, which always return a full replacement buffer.
func (m *Model) Replace(s string, cursorOffset int) {
	m.lines = splitLines(s)
	m.row, m.col = m.offsetToPos(cursorOffset)
	m.ClearSelection()
	m.clampCursor()
	m.clampScroll()
}

func (m Model) Value() string {
	var sb strings.Builder
	for i, line := range m.lines {
		sb.WriteString(string(line))
		if i < len(m.lines)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// LineCount returns the number of buffer lines (drives the gutter labels).
func (m Model) LineCount() int { return len(m.lines) }

// ScrollOffset returns the first visible row. The gutter renders from the
// same offset, which keeps both columns row-aligned.
func (m Model) ScrollOffset() int { return m.scroll }

func splitLines(s string) [][]rune {
	raw := strings.Split(s, "\n")
	lines := make([][]rune, len(raw))
	for i, l := range raw {
		lines[i] = []rune(l)
	}
	if len(lines) == 0 {
		lines = [][]rune{{}}
	}
	return lines
}

// ---------------------------------------------------------------------------
// Rune offsets — the selection contract used by toolbar actions
// ---------------------------------------------------------------------------

// SelectionOffsets returns the selection as flat rune offsets [start, end]
// into Value(). With no selection both equal the cursor offset.
func (m Model) SelectionOffsets() (int, int) {
	if !m.HasSelection() {
		off := m.posToOffset(pos{m.row, m.col})
		return off, off
	}
	s, e := m.sel.ordered()
	return m.posToOffset(s), m.posToOffset(e)
}

// CursorOffset returns the cursor position as a flat rune offset.
func (m Model) CursorOffset() int {
	return m.posToOffset(pos{m.row, m.col})
}

// posToOffset converts (row, col) to a rune offset; newlines count as one rune.
func (m Model) posToOffset(p pos) int {
	off := 0
	for i := 0; i < p.row && i < len(m.lines); i++ {
		off += len(m.lines[i]) + 1
	}
	col := p.col
	if p.row < len(m.lines) && col > len(m.lines[p.row]) {
		col = len(m.lines[p.row])
	}
	return off + col
}

// offsetToPos converts a flat rune offset back to (row, col), clamping to the
// buffer bounds.
func (m Model) offsetToPos(off int) (int, int) {
	if off < 0 {
		off = 0
	}
	for row, line := range m.lines {
		if off <= len(line) {
			return row, off
		}
		off -= len(line) + 1
	}
	last := len(m.lines) - 1
	return last, len(m.lines[last])
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

func (m *Model) currentLine() []rune { return m.lines[m.row] }

func (m *Model) clampCursor() {
	if m.row < 0 {
		m.row = 0
	}
	if m.row >= len(m.lines) {
		m.row = len(m.lines) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	if m.col > len(m.currentLine()) {
		m.col = len(m.currentLine())
	}
}

func (m *Model) clampScroll() {
	if m.height <= 0 {
		return
	}
	// Ensure cursor is visible
	if m.row < m.scroll {
		m.scroll = m.row
	}
	if m.row >= m.scroll+m.height {
		m.scroll = m.row - m.height + 1
	}
	m.clampScrollBounds()
}

// clampScrollBounds keeps the scroll offset within the content without
// chasing the cursor (wheel scrolling may leave the cursor off-screen).
func (m *Model) clampScrollBounds() {
	maxScroll := len(m.lines) - m.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// textWidth returns the width available for text content and refreshes the
// cached gutter width (digits + 1 space, derived from the line count).
func (m *Model) textWidth() int {
	m.gutterWidth = 0
	if m.ShowLineNumbers {
		digits := len(fmt.Sprintf("%d", len(m.lines)))
		if digits < 2 {
			digits = 2
		}
		m.gutterWidth = digits + 1
	}
	w := m.width - m.gutterWidth
	if w < 1 {
		w = 1
	}
	return w
}

// bgForRender returns the background style. Extracts from syntax theme if
// available, falls back to BgColor.
func (m *Model) bgForRender() lipgloss.Style {
	if m.Language != "" && m.SyntaxTheme != "" {
		if hex := themeBgCached(m.SyntaxTheme); hex != "" {
			return lipgloss.NewStyle().Background(lipgloss.Color(hex))
		}
	}
	return lipgloss.NewStyle().Background(m.BgColor)
}
