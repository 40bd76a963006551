package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// renderContent produces the string content for the view: toolbar, the panes
// the current mode shows, and the status bar.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	ly := m.layout
	contentH := ly.edit.Dy()
	if m.mode == modePreview {
		contentH = ly.preview.Dy()
	}

	var b strings.Builder
	m.renderToolbar(&b)
	b.WriteByte('\n')

	var editorLines []string
	if ly.edit.Dx() > 0 {
		editorLines = strings.Split(m.editor.View(), "\n")
	}

	divider := m.styles.Border.Render("│")
	if m.resizingSplit {
		divider = m.styles.DividerActive.Render("│")
	}

	for row := 0; row < contentH; row++ {
		if ly.edit.Dx() > 0 {
			m.renderPaneRow(&b, editorLines, row, ly.edit.Dx())
		}
		if ly.div.Dx() > 0 {
			b.WriteString(divider)
		}
		if ly.preview.Dx() > 0 {
			m.renderPreviewRow(&b, row, ly.preview.Dx())
		}
		b.WriteByte('\n')
	}

	m.renderStatusBar(&b)
	return b.String()
}

// renderPaneRow writes one editor row padded to the pane width.
func (m Model) renderPaneRow(b *strings.Builder, lines []string, row, width int) {
	if row >= len(lines) {
		b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", width)))
		return
	}
	line := lines[row]
	w := lipgloss.Width(line)
	if w > width {
		line = ansi.Truncate(line, width, "")
		w = width
	}
	b.WriteString(line)
	if w < width {
		b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", width-w)))
	}
}

// renderPreviewRow writes one rendered-document row at the preview scroll
// offset, truncated and padded to the pane width.
func (m Model) renderPreviewRow(b *strings.Builder, row, width int) {
	idx := m.previewScroll + row
	if idx < 0 || idx >= len(m.doc.Lines) {
		b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", width)))
		return
	}
	line := m.doc.Lines[idx]
	w := lipgloss.Width(line)
	if w > width {
		line = ansi.Truncate(line, width, "")
		w = width
	}
	b.WriteString(line)
	if w < width {
		b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", width-w)))
	}
}
