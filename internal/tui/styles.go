package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/xonecas/markpad/internal/highlight"
)

// Styles holds every lipgloss style the shell renders with, derived from the
// syntax theme's palette so chrome and code share one look.
type Styles struct {
	BgFill     lipgloss.Style
	Border     lipgloss.Style
	Gutter     lipgloss.Style
	Selection  lipgloss.Style
	StatusText lipgloss.Style
	StatusHint lipgloss.Style
	Dirty      lipgloss.Style
	Error      lipgloss.Style

	ToolBtn       lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	DividerActive lipgloss.Style

	bgColor color.Color
}

// NewStyles derives the shell styles from a theme palette.
func NewStyles(p highlight.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	return Styles{
		BgFill:     lipgloss.NewStyle().Background(bg),
		Border:     lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Border)),
		Gutter:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)),
		Selection:  lipgloss.NewStyle().Background(lipgloss.Color(p.Muted)).Foreground(bg),
		StatusText: lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Muted)),
		StatusHint: lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Accent)),
		Dirty:      lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Accent)),
		Error:      lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Error)),

		ToolBtn:       lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Fg)),
		Tab:           lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Muted)),
		TabActive:     lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Accent)).Bold(true),
		DividerActive: lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Accent)),

		bgColor: bg,
	}
}
