package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// renderStatusBar writes the bottom separator and status line: file name and
// dirty marker on the left, transient hint in the middle, mode on the right.
func (m Model) renderStatusBar(b *strings.Builder) {
	var leftParts []string

	name := m.styles.StatusText.Render(" " + m.fileName)
	if m.dirty() {
		name += m.styles.Dirty.Render("*")
	}
	leftParts = append(leftParts, name)

	if m.statusHint != "" {
		sty := m.styles.StatusHint
		if strings.HasPrefix(m.statusHint, "save failed") {
			sty = m.styles.Error
		}
		leftParts = append(leftParts, sty.Render(m.statusHint))
	}
	left := strings.Join(leftParts, m.styles.StatusText.Render("  "))

	modeLabel := m.mode.String()
	if m.mode == modeSplit {
		modeLabel = fmt.Sprintf("split %d/%d", m.splitRatio, 100-m.splitRatio)
	}
	right := m.styles.StatusText.Render(modeLabel + "  ctrl+s save  ctrl+1/2/3 mode")

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		gap = 0
	}
	b.WriteString(left)
	b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
	b.WriteString(m.styles.BgFill.Render(" "))
}
