package tui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/xonecas/markpad/internal/action"
)

// span is a clickable column range [x0, x1) on the toolbar row.
type span struct {
	id     string
	x0, x1 int
}

var modeTabs = []viewMode{modeEdit, modePreview, modeSplit}

// toolbarSpans computes the button and tab hit regions for a given width.
// Pure function of the width: the renderer and the mouse handler both derive
// the same spans, so there is no recorded state to go stale.
func toolbarSpans(width int) (buttons, tabs []span) {
	x := 1
	for _, a := range action.All() {
		w := lipgloss.Width(a.Label) + 2
		buttons = append(buttons, span{id: a.ID, x0: x, x1: x + w})
		x += w + 1
	}

	tx := width - 1
	for i := len(modeTabs) - 1; i >= 0; i-- {
		name := modeTabs[i].String()
		w := lipgloss.Width(name) + 2
		tx -= w
		tabs = append(tabs, span{id: name, x0: tx, x1: tx + w})
		tx--
	}
	return buttons, tabs
}

// renderToolbar writes the action buttons and right-aligned mode tabs.
func (m Model) renderToolbar(b *strings.Builder) {
	buttons, tabs := toolbarSpans(m.width)
	actions := action.All()

	x := 0
	pad := func(to int) {
		if to > x {
			b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", to-x)))
			x = to
		}
	}

	for i, s := range buttons {
		if s.x1 > m.width {
			break
		}
		pad(s.x0)
		b.WriteString(m.styles.ToolBtn.Render(" " + actions[i].Label + " "))
		x = s.x1
	}

	// Tabs were built right-to-left; render them left-to-right.
	for i := len(tabs) - 1; i >= 0; i-- {
		s := tabs[i]
		if s.x0 < x {
			continue
		}
		pad(s.x0)
		sty := m.styles.Tab
		if s.id == m.mode.String() {
			sty = m.styles.TabActive
		}
		b.WriteString(sty.Render(" " + s.id + " "))
		x = s.x1
	}
	pad(m.width)
}
