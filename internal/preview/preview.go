// Package preview renders markdown source into styled terminal lines. It
// parses with goldmark and walks the AST directly instead of going through an
// HTML renderer, which lets fenced code blocks carry a language badge, a
// clickable copy control, and Chroma highlighting.
package preview

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/xonecas/markpad/internal/highlight"
)

// CopyTarget maps a copy-control row in Document.Lines to the code it copies.
type CopyTarget struct {
	Line int    // index into Document.Lines of the control row
	Code string // code block body (trailing newline stripped)
}

// Document is a rendered markdown buffer: one styled string per terminal row,
// plus the copy controls the caller hit-tests against mouse clicks.
type Document struct {
	Lines  []string
	Copies []CopyTarget
}

// Renderer converts markdown source to a Document. Zero value is unusable;
// set Width and Styles first.
type Renderer struct {
	Width       int
	SyntaxTheme string
	Styles      Styles

	// CopiedLine is the Lines index of the copy control currently showing
	// "copied", or -1 for none. The caller flips it on click and reverts it
	// after a delay.
	CopiedLine int
}

// New returns a Renderer with default styles derived from the syntax theme.
func New(width int, syntaxTheme string) Renderer {
	return Renderer{
		Width:       width,
		SyntaxTheme: syntaxTheme,
		Styles:      DefaultStyles(highlight.ThemePalette(syntaxTheme)),
		CopiedLine:  -1,
	}
}

var engine = goldmark.New(goldmark.WithExtensions(
	extension.GFM,
	extension.Linkify,
	extension.TaskList,
))

// Render parses and renders the full source.
func (r Renderer) Render(source string) Document {
	src := []byte(source)
	root := engine.Parser().Parse(text.NewReader(src))

	b := &builder{r: &r, src: src}
	b.blocks(root, "")

	// Drop a single trailing blank row left by block spacing.
	if n := len(b.doc.Lines); n > 0 && b.doc.Lines[n-1] == "" {
		b.doc.Lines = b.doc.Lines[:n-1]
	}
	return b.doc
}

// ---------------------------------------------------------------------------
// AST walk
// ---------------------------------------------------------------------------

type builder struct {
	r   *Renderer
	src []byte
	doc Document
}

func (b *builder) blocks(parent ast.Node, indent string) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		b.block(n, indent)
	}
}

func (b *builder) block(n ast.Node, indent string) {
	switch n := n.(type) {
	case *ast.Heading:
		b.heading(n, indent)
	case *ast.Paragraph, *ast.TextBlock:
		b.paragraph(n, indent)
	case *ast.FencedCodeBlock:
		lang := highlight.FenceLanguage(string(n.Language(b.src)))
		b.codeBlock(b.blockText(n), lang, indent)
	case *ast.CodeBlock:
		// Indented code blocks have no info string.
		b.codeBlock(b.blockText(n), "", indent)
	case *ast.Blockquote:
		b.blockquote(n, indent)
	case *ast.List:
		b.list(n, indent)
	case *ast.ThematicBreak:
		b.rule(indent)
	case *ast.HTMLBlock:
		// Raw HTML has no terminal rendering; show it verbatim and dim.
		for _, line := range strings.Split(strings.TrimRight(b.blockText(n), "\n"), "\n") {
			b.push(indent + b.r.Styles.Rule.Render(line))
		}
		b.blank()
	default:
		if n.HasChildren() {
			b.blocks(n, indent)
		}
	}
}

func (b *builder) heading(n *ast.Heading, indent string) {
	level := n.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	sty := b.r.Styles.Heading[level-1]
	marker := strings.Repeat("#", level) + " "
	b.wrapInto(sty.Render(marker+ansi.Strip(b.inlineChildren(n))), indent)
	b.blank()
}

// paragraph renders inline content, flushing early when a code span contains
// a newline: those are treated as code blocks, not inline code.
func (b *builder) paragraph(n ast.Node, indent string) {
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		b.wrapInto(sb.String(), indent)
		sb.Reset()
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if cs, ok := c.(*ast.CodeSpan); ok {
			if code := b.inlineText(cs); strings.Contains(code, "\n") {
				flush()
				b.codeBlock(code, "", indent)
				continue
			}
		}
		sb.WriteString(b.inline(c))
	}
	flush()
	b.blank()
}

func (b *builder) blockquote(n *ast.Blockquote, indent string) {
	start := len(b.doc.Lines)
	b.blocks(n, indent)
	// Re-prefix the rendered region with the quote bar.
	bar := b.r.Styles.QuoteBar.Render("│ ")
	end := len(b.doc.Lines)
	if end > start && b.doc.Lines[end-1] == "" {
		end-- // keep the trailing blank unbarred
	}
	for i := start; i < end; i++ {
		b.doc.Lines[i] = indent + bar + strings.TrimPrefix(b.doc.Lines[i], indent)
	}
	// Copy controls inside the quote kept their line indexes; nothing to fix.
}

func (b *builder) list(n *ast.List, indent string) {
	num := n.Start
	if num == 0 {
		num = 1
	}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := b.r.Styles.Bullet.Render("• ")
		if n.IsOrdered() {
			marker = b.r.Styles.Bullet.Render(strconv.Itoa(num) + ". ")
			num++
		}
		start := len(b.doc.Lines)
		b.blocks(item, indent+"  ")
		// First row of the item gets the marker; continuation rows keep the
		// two-space hang.
		if start < len(b.doc.Lines) {
			b.doc.Lines[start] = indent + marker + strings.TrimPrefix(b.doc.Lines[start], indent+"  ")
		}
		// Tight lists: drop the blank row between items.
		if !n.IsTight {
			continue
		}
		if last := len(b.doc.Lines) - 1; last >= 0 && b.doc.Lines[last] == "" {
			b.doc.Lines = b.doc.Lines[:last]
		}
	}
	b.blank()
}

func (b *builder) rule(indent string) {
	w := b.r.Width - len(indent)
	if w < 3 {
		w = 3
	}
	b.push(indent + b.r.Styles.Rule.Render(strings.Repeat("─", w)))
	b.blank()
}

// codeBlock emits the badge + copy control header, then the highlighted body.
func (b *builder) codeBlock(code, lang, indent string) {
	code = strings.TrimSuffix(code, "\n")

	badge := "code"
	if lang != "" {
		badge = lang
	}
	headerIdx := len(b.doc.Lines)
	label := b.r.Styles.CopyCtrl.Render("copy")
	if b.r.CopiedLine == headerIdx {
		label = b.r.Styles.Copied.Render("copied")
	}
	b.push(indent + b.r.Styles.Badge.Render(" "+badge+" ") + " " + label)
	b.doc.Copies = append(b.doc.Copies, CopyTarget{Line: headerIdx, Code: code})

	bgHex := highlight.ThemeBg(b.r.SyntaxTheme)
	lines := highlight.Lines(code, lang, b.r.SyntaxTheme, bgHex)
	for _, line := range lines {
		if ansi.Strip(line) == line {
			// Plain text (no lexer matched): apply the fallback code style.
			line = b.r.Styles.CodeLine.Render(line)
		}
		b.push(indent + "  " + line)
	}
	b.blank()
}

// ---------------------------------------------------------------------------
// Inline rendering
// ---------------------------------------------------------------------------

func (b *builder) inlineChildren(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		sb.WriteString(b.inline(c))
	}
	return sb.String()
}

func (b *builder) inline(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(b.src))
		if n.SoftLineBreak() || n.HardLineBreak() {
			s += " "
		}
		return s
	case *ast.String:
		return string(n.Value)
	case *ast.Emphasis:
		sty := b.r.Styles.Emph
		if n.Level >= 2 {
			sty = b.r.Styles.Strong
		}
		return sty.Render(ansi.Strip(b.inlineChildren(n)))
	case *east.Strikethrough:
		return b.r.Styles.Strike.Render(ansi.Strip(b.inlineChildren(n)))
	case *ast.CodeSpan:
		return b.r.Styles.InlineCode.Render(b.inlineText(n))
	case *ast.Link:
		label := b.r.Styles.Link.Render(ansi.Strip(b.inlineChildren(n)))
		url := string(n.Destination)
		if url == "" {
			return label
		}
		return label + b.r.Styles.LinkURL.Render(" ("+url+")")
	case *ast.AutoLink:
		return b.r.Styles.Link.Render(string(n.URL(b.src)))
	case *ast.Image:
		return b.r.Styles.LinkURL.Render("[image: " + ansi.Strip(b.inlineChildren(n)) + "]")
	case *east.TaskCheckBox:
		if n.IsChecked {
			return b.r.Styles.Bullet.Render("[x] ")
		}
		return b.r.Styles.Bullet.Render("[ ] ")
	case *ast.RawHTML:
		return ""
	default:
		return b.inlineChildren(n)
	}
}

// inlineText collects the raw text of an inline node's children.
func (b *builder) inlineText(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(b.src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// blockText collects the raw source lines of a block node.
func (b *builder) blockText(n ast.Node) string {
	var sb strings.Builder
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		seg := l.At(i)
		sb.Write(seg.Value(b.src))
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// Row helpers
// ---------------------------------------------------------------------------

func (b *builder) push(line string) {
	b.doc.Lines = append(b.doc.Lines, line)
}

func (b *builder) blank() {
	b.doc.Lines = append(b.doc.Lines, "")
}

// wrapInto word-wraps styled text to the renderer width and appends the rows.
func (b *builder) wrapInto(s, indent string) {
	w := b.r.Width - lipgloss.Width(indent)
	if w < 8 {
		w = 8
	}
	for _, line := range strings.Split(ansi.Wordwrap(s, w, ""), "\n") {
		b.push(indent + line)
	}
}
