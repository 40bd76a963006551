package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Mouse filter — throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling — toolbar first, then divider drag, then per-pane routing.
// ---------------------------------------------------------------------------

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	mm := msg.Mouse()
	return mm.X, mm.Y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := mouseXY(msg)

	// --- Divider drag -------------------------------------------------------
	if done, handled := m.handleDividerDrag(msg, x, y); handled {
		return done, nil
	}

	// --- Toolbar ------------------------------------------------------------
	if click, ok := msg.(tea.MouseClickMsg); ok && click.Button == tea.MouseLeft &&
		inRect(x, y, m.layout.toolbar) {
		m.handleToolbarClick(x)
		m.refreshDoc()
		return m, nil
	}

	// --- Editor: translate coords to component-local ------------------------
	if inRect(x, y, m.layout.edit) {
		if click, ok := msg.(tea.MouseClickMsg); ok && click.Button == tea.MouseLeft {
			m.editor.Focus()
		}
		translated := translateMouse(msg, m.layout.edit.Min.X, m.layout.edit.Min.Y)
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(translated)
		m.refreshDoc()
		return m, cmd
	}

	// --- Preview: scroll + copy controls ------------------------------------
	if inRect(x, y, m.layout.preview) {
		return m, m.handlePreviewMouse(msg, x, y)
	}

	// Motion outside the edit pane still finishes an in-progress drag.
	if _, ok := msg.(tea.MouseReleaseMsg); ok {
		translated := translateMouse(msg, m.layout.edit.Min.X, m.layout.edit.Min.Y)
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(translated)
		return m, cmd
	}

	return m, nil
}

// handleDividerDrag tracks divider click/release and processes drag motion.
// Only reachable in split mode: the divider rect is empty otherwise.
// Returns (model, true) if the event was consumed by the divider.
func (m *Model) handleDividerDrag(msg tea.MouseMsg, x, y int) (Model, bool) {
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button == tea.MouseLeft && inRect(x, y, m.layout.div) {
			m.resizingSplit = true
			return *m, true
		}
	case tea.MouseReleaseMsg:
		if m.resizingSplit {
			m.resizingSplit = false
			return *m, true
		}
	case tea.MouseMotionMsg:
		if m.resizingSplit && m.width > 0 {
			m.splitRatio = clampRatio(100 * x / m.width)
			m.relayout()
			return *m, true
		}
	}
	return Model{}, false
}

// handleToolbarClick hit-tests action buttons and mode tabs.
func (m *Model) handleToolbarClick(x int) {
	buttons, tabs := toolbarSpans(m.width)
	for _, s := range buttons {
		if x >= s.x0 && x < s.x1 {
			m.applyAction(s.id)
			m.editor.Focus()
			return
		}
	}
	for _, s := range tabs {
		if x >= s.x0 && x < s.x1 {
			switch s.id {
			case "edit":
				m.setMode(modeEdit)
			case "preview":
				m.setMode(modePreview)
			case "split":
				m.setMode(modeSplit)
			}
			return
		}
	}
}

// handlePreviewMouse scrolls the rendered pane and resolves copy clicks.
func (m *Model) handlePreviewMouse(msg tea.MouseMsg, x, y int) tea.Cmd {
	switch ev := msg.(type) {
	case tea.MouseWheelMsg:
		if ev.Button == tea.MouseWheelUp {
			m.previewScroll -= 3
		} else if ev.Button == tea.MouseWheelDown {
			m.previewScroll += 3
		}
		m.clampPreviewScroll()

	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft {
			return nil
		}
		line := m.previewScroll + (y - m.layout.preview.Min.Y)
		for _, ct := range m.doc.Copies {
			if ct.Line != line {
				continue
			}
			m.renderer.CopiedLine = ct.Line
			m.docSource = "" // force re-render with the copied label
			m.refreshDoc()
			return tea.Batch(copyToClipboard(ct.Code), copiedReset(ct.Line))
		}
	}
	return nil
}

// translateMouse offsets a mouse message's coordinates for child components.
func translateMouse(msg tea.MouseMsg, offX, offY int) tea.Msg {
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseMotionMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseReleaseMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseWheelMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	}
	return msg
}
