package editor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the buffer without wrapping: one buffer line per screen row,
// truncated at the viewport edge. The gutter renders from the same scroll
// offset as the text, so both columns stay row-aligned.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	// Show placeholder when empty
	if len(m.lines) == 1 && len(m.lines[0]) == 0 && m.Placeholder != "" {
		return m.placeholderView()
	}

	tw := m.textWidth()
	bg := m.bgForRender()
	lineNumSty := m.LineNumStyle.Background(bg.GetBackground())
	hasSyntax := m.Language != "" && m.SyntaxTheme != ""
	bgHex := m.bgHexForHighlight()

	hasSel := m.HasSelection()
	var selStart, selEnd pos
	if hasSel {
		selStart, selEnd = m.sel.ordered()
	}

	var b strings.Builder

	for vi := 0; vi < m.height; vi++ {
		if vi > 0 {
			b.WriteByte('\n')
		}

		bufRow := m.scroll + vi
		if bufRow >= len(m.lines) {
			// End-of-buffer: fill entire row with bg
			b.WriteString(bg.Render(strings.Repeat(" ", m.width)))
			continue
		}

		// -- Gutter (line numbers) -------------------------------------------
		if m.ShowLineNumbers {
			digits := m.gutterWidth - 1
			b.WriteString(lineNumSty.Render(fmt.Sprintf("%*d ", digits, bufRow+1)))
		}

		// -- Text content ------------------------------------------------------
		lineStr := string(m.lines[bufRow])
		lineLen := len(m.lines[bufRow])

		var fullHL string
		if hasSyntax {
			fullHL = cachedHighlight(lineStr, m.Language, m.SyntaxTheme, bgHex)
		}

		// Selection intersection with this row, in rune columns.
		rowHasSel := false
		selColStart, selColEnd := 0, 0
		if hasSel && bufRow >= selStart.row && bufRow <= selEnd.row {
			from := 0
			if bufRow == selStart.row {
				from = selStart.col
			}
			to := lineLen
			if bufRow == selEnd.row {
				to = clampMax(selEnd.col, lineLen)
			}
			if from < to {
				rowHasSel = true
				selColStart = from
				selColEnd = to
			}
		}

		isCursorHere := m.focus && bufRow == m.row

		var rendered string
		switch {
		case rowHasSel:
			rendered = m.renderSelectedLine(lineStr, fullHL, selColStart, selColEnd,
				bg, isCursorHere)
		case isCursorHere:
			rendered = m.renderCursorLine(lineStr, fullHL)
		case hasSyntax && fullHL != "":
			rendered = fullHL
		default:
			rendered = bg.Render(lineStr)
		}

		// Truncate and pad to text width
		rw := lipgloss.Width(rendered)
		if rw > tw {
			rendered = ansi.Truncate(rendered, tw, "")
			rw = lipgloss.Width(rendered)
		}
		b.WriteString(rendered)
		if rw < tw {
			b.WriteString(bg.Render(strings.Repeat(" ", tw-rw)))
		}
	}

	return b.String()
}

// renderCursorLine renders the cursor row as before/cursor/after so syntax
// coloring is never broken mid-sequence. fullHL may be "" for plain lines.
func (m Model) renderCursorLine(lineStr, fullHL string) string {
	bg := m.bgForRender()
	runes := []rune(lineStr)

	col := m.col
	if col > len(runes) {
		col = len(runes)
	}

	cursorChar := " "
	if col < len(runes) {
		cursorChar = string(runes[col])
	}

	var before, after string
	if fullHL != "" {
		before = ansi.Cut(fullHL, 0, col)
		after = ansi.Cut(fullHL, col+1, len(runes))
	} else {
		before = bg.Render(string(runes[:col]))
		if col+1 <= len(runes) {
			after = bg.Render(string(runes[col+1:]))
		}
	}

	m.cursor.SetChar(cursorChar)
	m.cursor.TextStyle = bg
	return before + m.cursor.View() + after
}

// renderSelectedLine renders a row with a selection highlight and, when the
// cursor sits on the same row, the blinking cursor inside or beside it.
// selStart/selEnd are rune columns into lineStr.
func (m Model) renderSelectedLine(
	lineStr, fullHL string, selStart, selEnd int,
	bg lipgloss.Style, hasCursor bool,
) string {
	runes := []rune(lineStr)
	selSty := m.SelectionStyle

	renderSel := func(from, to int) string {
		if from >= to {
			return ""
		}
		if fullHL != "" {
			// Strip syntax styling under the selection so its bg wins.
			return selSty.Render(ansi.Strip(ansi.Cut(fullHL, from, to)))
		}
		return selSty.Render(string(runes[from:to]))
	}

	renderNormal := func(from, to int) string {
		if from >= to {
			return ""
		}
		if fullHL != "" {
			return ansi.Cut(fullHL, from, to)
		}
		return bg.Render(string(runes[from:to]))
	}

	if hasCursor {
		cc := m.col
		if cc > len(runes) {
			cc = len(runes)
		}
		cursorChar := " "
		if cc < len(runes) {
			cursorChar = string(runes[cc])
		}
		m.cursor.SetChar(cursorChar)
		if cc >= selStart && cc < selEnd {
			m.cursor.TextStyle = selSty
		} else {
			m.cursor.TextStyle = bg
		}
		cv := m.cursor.View()

		var sb strings.Builder
		switch {
		case cc < selStart:
			sb.WriteString(renderNormal(0, cc))
			sb.WriteString(cv)
			sb.WriteString(renderNormal(cc+1, selStart))
			sb.WriteString(renderSel(selStart, selEnd))
			sb.WriteString(renderNormal(selEnd, len(runes)))
		case cc >= selEnd:
			sb.WriteString(renderNormal(0, selStart))
			sb.WriteString(renderSel(selStart, selEnd))
			sb.WriteString(renderNormal(selEnd, cc))
			sb.WriteString(cv)
			if cc+1 <= len(runes) {
				sb.WriteString(renderNormal(cc+1, len(runes)))
			}
		default:
			sb.WriteString(renderNormal(0, selStart))
			sb.WriteString(renderSel(selStart, cc))
			sb.WriteString(cv)
			if cc+1 < selEnd {
				sb.WriteString(renderSel(cc+1, selEnd))
			}
			sb.WriteString(renderNormal(selEnd, len(runes)))
		}
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(renderNormal(0, selStart))
	sb.WriteString(renderSel(selStart, selEnd))
	sb.WriteString(renderNormal(selEnd, len(runes)))
	return sb.String()
}

// ---------------------------------------------------------------------------
// Placeholder view (shown when empty)
// ---------------------------------------------------------------------------

func (m Model) placeholderView() string {
	if m.Placeholder == "" {
		return ""
	}
	bg := m.bgForRender()
	tw := m.textWidth()

	var b strings.Builder
	if m.ShowLineNumbers {
		lineNumSty := m.LineNumStyle.Background(bg.GetBackground())
		digits := m.gutterWidth - 1
		b.WriteString(lineNumSty.Render(fmt.Sprintf("%*d ", digits, 1)))
	}

	// First line: cursor (if focused) then placeholder text
	if m.focus {
		phRunes := []rune(m.Placeholder)
		m.cursor.SetChar(string(phRunes[0]))
		m.cursor.TextStyle = m.PlaceholderSty
		cv := m.cursor.View()
		rest := m.PlaceholderSty.Render(string(phRunes[1:]))
		b.WriteString(cv)
		b.WriteString(rest)
		rw := lipgloss.Width(cv) + lipgloss.Width(rest)
		if rw < tw {
			b.WriteString(bg.Render(strings.Repeat(" ", tw-rw)))
		}
	} else {
		ph := m.PlaceholderSty.Render(m.Placeholder)
		pw := lipgloss.Width(ph)
		b.WriteString(ph)
		if pw < tw {
			b.WriteString(bg.Render(strings.Repeat(" ", tw-pw)))
		}
	}

	for vi := 1; vi < m.height; vi++ {
		b.WriteByte('\n')
		b.WriteString(bg.Render(strings.Repeat(" ", m.width)))
	}

	return b.String()
}
