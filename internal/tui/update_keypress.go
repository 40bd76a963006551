package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/markpad/internal/action"
)

// handleKeyPress processes key events. Returns (model, cmd, true) if handled.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	handler := m.keyPressHandlers()[msg.Keystroke()]
	if handler == nil {
		return Model{}, nil, false
	}
	return handler(m)
}

func (m *Model) keyPressHandlers() map[string]func(*Model) (Model, tea.Cmd, bool) {
	return map[string]func(*Model) (Model, tea.Cmd, bool){
		"ctrl+c":       (*Model).handleCtrlC,
		"ctrl+s":       (*Model).handleCtrlS,
		"ctrl+b":       (*Model).handleCtrlB,
		"ctrl+i":       (*Model).handleCtrlI,
		"ctrl+1":       (*Model).handleCtrl1,
		"ctrl+2":       (*Model).handleCtrl2,
		"ctrl+3":       (*Model).handleCtrl3,
		"ctrl+shift+c": (*Model).handleCtrlShiftC,
		"ctrl+shift+v": (*Model).handleCtrlShiftV,
		"esc":          (*Model).handleEsc,
	}
}

func (m *Model) handleCtrlC() (Model, tea.Cmd, bool) {
	return *m, tea.Batch(m.cancelProgramCmd(), tea.Quit), true
}

func (m *Model) handleCtrlS() (Model, tea.Cmd, bool) {
	content := m.editor.Value()
	m.pendingSave = content
	m.statusHint = "saving..."
	return *m, saveFile(m.filePath, content), true
}

func (m *Model) handleCtrlB() (Model, tea.Cmd, bool) {
	if m.editor.Focused() {
		m.applyAction("bold")
	}
	return *m, nil, true
}

// Many terminals report tab as ctrl+i; with the keyboard enhancement protocol
// active the two arrive distinctly and italic works. Without it, tab wins.
func (m *Model) handleCtrlI() (Model, tea.Cmd, bool) {
	if m.editor.Focused() {
		m.applyAction("italic")
	}
	return *m, nil, true
}

func (m *Model) handleCtrl1() (Model, tea.Cmd, bool) {
	m.setMode(modeEdit)
	return *m, nil, true
}

func (m *Model) handleCtrl2() (Model, tea.Cmd, bool) {
	m.setMode(modePreview)
	return *m, nil, true
}

func (m *Model) handleCtrl3() (Model, tea.Cmd, bool) {
	m.setMode(modeSplit)
	return *m, nil, true
}

func (m *Model) handleCtrlShiftC() (Model, tea.Cmd, bool) {
	if text := m.editor.SelectedText(); text != "" {
		return *m, copyToClipboard(text), true
	}
	return *m, nil, true
}

func (m *Model) handleCtrlShiftV() (Model, tea.Cmd, bool) {
	return *m, tea.ReadClipboard, true
}

func (m *Model) handleEsc() (Model, tea.Cmd, bool) {
	m.editor.Blur()
	return *m, nil, true
}

func (m *Model) cancelProgramCmd() tea.Cmd {
	if m.cancel == nil {
		return nil
	}
	cancel := m.cancel
	return func() tea.Msg {
		cancel()
		return nil
	}
}

// applyAction runs a registry transformation over the current selection and
// swaps the result into the editor.
func (m *Model) applyAction(id string) {
	act, ok := action.Get(id)
	if !ok {
		return
	}
	if !m.editor.Focused() {
		m.editor.Focus()
	}
	start, end := m.editor.SelectionOffsets()
	text, cursor := act.Apply(m.editor.Value(), start, end)
	m.editor.Replace(text, cursor)
}
