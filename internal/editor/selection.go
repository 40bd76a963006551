package editor

import "strings"

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

// selection tracks a drag or shift-extended range. anchor is where it
// started; active follows the cursor.
type selection struct {
	anchor pos
	active pos
}

func (s *selection) empty() bool { return s == nil || s.anchor == s.active }

func (s *selection) ordered() (start, end pos) {
	a, b := s.anchor, s.active
	if a.row > b.row || (a.row == b.row && a.col > b.col) {
		a, b = b, a
	}
	return a, b
}

// HasSelection reports whether a non-empty selection exists.
func (m Model) HasSelection() bool { return !m.sel.empty() }

// ClearSelection drops the selection and any in-progress drag.
func (m *Model) ClearSelection() {
	m.dragging = false
	m.sel = nil
}

// startOrExtendSelection anchors a new selection at the cursor if none exists.
func (m *Model) startOrExtendSelection() {
	if m.sel == nil {
		p := pos{m.row, m.col}
		m.sel = &selection{anchor: p, active: p}
	}
}

// updateSelectionActive moves the active end to the cursor, collapsing an
// empty range.
func (m *Model) updateSelectionActive() {
	if m.sel == nil {
		return
	}
	m.sel.active = pos{m.row, m.col}
	if m.sel.empty() {
		m.sel = nil
	}
}

// SelectedText returns the selection contents, "" when empty.
func (m Model) SelectedText() string {
	if !m.HasSelection() {
		return ""
	}
	s, e := m.sel.ordered()
	if s.row == e.row {
		line := m.lines[s.row]
		return string(line[clampMax(s.col, len(line)):clampMax(e.col, len(line))])
	}
	var sb strings.Builder
	first := m.lines[s.row]
	sb.WriteString(string(first[clampMax(s.col, len(first)):]))
	for r := s.row + 1; r < e.row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(m.lines[r]))
	}
	sb.WriteByte('\n')
	last := m.lines[e.row]
	sb.WriteString(string(last[:clampMax(e.col, len(last))]))
	return sb.String()
}

// DeleteSelection removes the selected range and places the cursor at its
// start. No-op without a selection or in ReadOnly mode.
func (m *Model) DeleteSelection() {
	if m.ReadOnly || !m.HasSelection() {
		return
	}
	s, e := m.sel.ordered()
	first := m.lines[s.row]
	last := m.lines[e.row]
	merged := make([]rune, 0, clampMax(s.col, len(first))+len(last))
	merged = append(merged, first[:clampMax(s.col, len(first))]...)
	merged = append(merged, last[clampMax(e.col, len(last)):]...)

	newLines := make([][]rune, 0, len(m.lines)-(e.row-s.row))
	newLines = append(newLines, m.lines[:s.row]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, m.lines[e.row+1:]...)
	m.lines = newLines

	m.row = s.row
	m.col = clampMax(s.col, len(merged))
	m.ClearSelection()
	m.clampCursor()
	m.clampScroll()
}

// screenToPos converts component-local x,y to a buffer row,col.
func (m *Model) screenToPos(x, y int) pos {
	m.textWidth() // refresh gutterWidth
	row := m.scroll + y
	if row < 0 {
		row = 0
	}
	if row >= len(m.lines) {
		row = len(m.lines) - 1
	}
	col := x - m.gutterWidth
	if col < 0 {
		col = 0
	}
	if col > len(m.lines[row]) {
		col = len(m.lines[row])
	}
	return pos{row: row, col: col}
}

func clampMax(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
