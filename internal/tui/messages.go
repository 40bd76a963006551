package tui

import (
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

// autosaveTickMsg fires the periodic draft write.
type autosaveTickMsg time.Time

// copiedResetMsg reverts a preview copy control from "copied" back to "copy".
type copiedResetMsg struct{ line int }

// saveResultMsg reports the outcome of writing the file to disk.
type saveResultMsg struct{ err error }

// ---------------------------------------------------------------------------
// ELM commands
// ---------------------------------------------------------------------------

// autosaveTick schedules the next draft autosave. The tick checks the program
// context so a cancelled program stops the chain.
func (m Model) autosaveTick() tea.Cmd {
	ctx := m.ctx
	return tea.Tick(m.autosaveInterval, func(t time.Time) tea.Msg {
		if ctx != nil && ctx.Err() != nil {
			return nil
		}
		return autosaveTickMsg(t)
	})
}

// copiedReset schedules the copy-control label revert after 2 seconds.
func copiedReset(line int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return copiedResetMsg{line: line}
	})
}

// copyToClipboard writes text to the clipboard through both routes: OSC 52
// (works over SSH/tmux) and the native clipboard. Native failures are logged
// and swallowed.
func copyToClipboard(text string) tea.Cmd {
	return tea.Batch(
		tea.SetClipboard(text),
		func() tea.Msg {
			if err := clipboard.WriteAll(text); err != nil {
				log.Warn().Err(err).Msg("native clipboard write failed")
			}
			return nil
		},
	)
}

// saveFile writes the buffer to disk and reports the result.
func saveFile(path, content string) tea.Cmd {
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(content), 0644)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("save failed")
		}
		return saveResultMsg{err: err}
	}
}
