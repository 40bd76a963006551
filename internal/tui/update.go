package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	// -- Paste (clipboard read or bracketed paste) ---------------------------
	case tea.ClipboardMsg:
		m.insertPaste(msg.String())
		m.refreshDoc()
		return m, nil
	case tea.PasteMsg:
		m.insertPaste(msg.Content)
		m.refreshDoc()
		return m, nil

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		return m.handleMouse(msg)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		if mdl, cmd, handled := m.handleKeyPress(msg); handled {
			mdl.refreshDoc()
			return mdl, cmd
		}

	// -- Draft autosave ------------------------------------------------------
	case autosaveTickMsg:
		if m.drafts != nil {
			if m.drafts.Autosave(time.Time(msg), m.editor.Value()) {
				log.Debug().Str("file", m.fileName).Msg("draft autosaved")
			}
		}
		return m, m.autosaveTick()

	// -- Preview copy control revert -----------------------------------------
	case copiedResetMsg:
		if m.renderer.CopiedLine == msg.line {
			m.renderer.CopiedLine = -1
			m.docSource = "" // force re-render
			m.refreshDoc()
		}
		return m, nil

	// -- File save outcome ---------------------------------------------------
	case saveResultMsg:
		m.handleSaveResult(msg)
		return m, nil
	}

	// Forward non-mouse messages to the editor.
	var cmds []tea.Cmd
	if _, isMouse := msg.(tea.MouseMsg); !isMouse {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refreshDoc()
	return m, tea.Batch(cmds...)
}

// handleResize applies a window size change and re-derives layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.relayout()
}

// relayout regenerates pane rectangles and pushes sizes to sub-models.
func (m *Model) relayout() {
	m.layout = generateLayout(m.width, m.height, m.mode, m.splitRatio)
	m.editor.SetWidth(m.layout.edit.Dx())
	m.editor.SetHeight(m.layout.edit.Dy())
	m.refreshDoc()
}

// insertPaste inserts pasted text into the editor.
func (m *Model) insertPaste(text string) {
	if text == "" {
		return
	}
	m.editor.DeleteSelection()
	m.editor.InsertText(text)
}

// setMode switches the view mode and recomputes the layout. The split ratio
// survives mode changes.
func (m *Model) setMode(mode viewMode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	m.resizingSplit = false
	if mode == modePreview {
		m.editor.Blur()
	} else {
		m.editor.Focus()
	}
	m.relayout()
}

// handleSaveResult finalizes a ctrl+s: on success the save baseline advances
// and the draft record is cleared.
func (m *Model) handleSaveResult(msg saveResultMsg) {
	if msg.err != nil {
		m.statusHint = "save failed: " + msg.err.Error()
		return
	}
	m.fileBaseline = m.pendingSave
	if m.drafts != nil {
		m.drafts.Clear(m.pendingSave)
	}
	m.statusHint = "saved"
	log.Info().Str("file", m.fileName).Msg("file saved")
}

// refreshDoc re-renders the preview document when its inputs changed. Cheap
// when nothing did; called after every state-mutating message.
func (m *Model) refreshDoc() {
	w := m.layout.preview.Dx()
	if w <= 0 {
		return
	}
	src := m.editor.Value()
	if src == m.docSource && w == m.docWidth {
		return
	}
	m.renderer.Width = w
	m.doc = m.renderer.Render(src)
	m.docSource = src
	m.docWidth = w
	m.clampPreviewScroll()
}

func (m *Model) clampPreviewScroll() {
	maxScroll := len(m.doc.Lines) - m.layout.preview.Dy()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.previewScroll > maxScroll {
		m.previewScroll = maxScroll
	}
	if m.previewScroll < 0 {
		m.previewScroll = 0
	}
}
