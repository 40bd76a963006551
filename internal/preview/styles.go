package preview

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/markpad/internal/highlight"
)

// Styles collects the lipgloss styles used by the renderer.
type Styles struct {
	Heading    [6]lipgloss.Style
	Emph       lipgloss.Style
	Strong     lipgloss.Style
	Strike     lipgloss.Style
	InlineCode lipgloss.Style
	Link       lipgloss.Style
	LinkURL    lipgloss.Style
	Badge      lipgloss.Style
	CopyCtrl   lipgloss.Style
	Copied     lipgloss.Style
	CodeLine   lipgloss.Style
	QuoteBar   lipgloss.Style
	Bullet     lipgloss.Style
	Rule       lipgloss.Style
}

// DefaultStyles derives the preview look from the UI palette so the rendered
// pane matches the editor's syntax colors.
func DefaultStyles(p highlight.Palette) Styles {
	accent := lipgloss.Color(p.Accent)
	fg := lipgloss.Color(p.Fg)
	dim := lipgloss.Color(p.Dim)
	muted := lipgloss.Color(p.Muted)
	border := lipgloss.Color(p.Border)

	h := lipgloss.NewStyle().Bold(true)
	var headings [6]lipgloss.Style
	headings[0] = h.Foreground(accent)
	headings[1] = h.Foreground(accent)
	headings[2] = h.Foreground(fg)
	headings[3] = h.Foreground(fg)
	headings[4] = h.Foreground(muted)
	headings[5] = h.Foreground(muted)

	return Styles{
		Heading:    headings,
		Emph:       lipgloss.NewStyle().Italic(true),
		Strong:     lipgloss.NewStyle().Bold(true),
		Strike:     lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		InlineCode: lipgloss.NewStyle().Foreground(accent).Background(border),
		Link:       lipgloss.NewStyle().Foreground(accent).Underline(true),
		LinkURL:    lipgloss.NewStyle().Foreground(muted),
		Badge:      lipgloss.NewStyle().Foreground(fg).Background(border).Bold(true),
		CopyCtrl:   lipgloss.NewStyle().Foreground(muted).Underline(true),
		Copied:     lipgloss.NewStyle().Foreground(accent),
		CodeLine:   lipgloss.NewStyle().Foreground(muted),
		QuoteBar:   lipgloss.NewStyle().Foreground(dim),
		Bullet:     lipgloss.NewStyle().Foreground(accent),
		Rule:       lipgloss.NewStyle().Foreground(dim),
	}
}
