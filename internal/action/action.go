// Package action provides the toolbar text transformations for the markdown
// editor. Every action is a pure function over the full buffer plus a rune
// selection range and returns a replacement buffer with a new cursor offset —
// the buffer itself is never mutated in place.
package action

import "strings"

// Action is a single toolbar entry. Apply takes the buffer text and a rune
// selection [start, end] (start == end for a bare caret) and returns the new
// buffer plus the desired cursor offset. Callers guarantee
// 0 <= start <= end <= len([]rune(text)).
type Action struct {
	ID    string
	Label string
	Apply func(text string, start, end int) (string, int)
}

// All returns the registry in toolbar display order.
func All() []Action {
	return registry
}

// Get returns the action with the given id, or false if unknown.
func Get(id string) (Action, bool) {
	for _, a := range registry {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

var registry = []Action{
	{ID: "bold", Label: "B", Apply: wrap("**")},
	{ID: "italic", Label: "I", Apply: wrap("*")},
	{ID: "code", Label: "</>", Apply: codeAction},
	{ID: "h1", Label: "H1", Apply: linePrefix("# ")},
	{ID: "h2", Label: "H2", Apply: linePrefix("## ")},
	{ID: "h3", Label: "H3", Apply: linePrefix("### ")},
	{ID: "ul", Label: "•", Apply: linePrefix("- ")},
	{ID: "ol", Label: "1.", Apply: linePrefix("1. ")},
	{ID: "quote", Label: ">", Apply: linePrefix("> ")},
	{ID: "link", Label: "[]", Apply: linkAction},
	{ID: "hr", Label: "—", Apply: hrAction},
}

// wrap builds an inline wrap action for a marker pair. A non-empty selection
// is surrounded by the marker; an empty one gets an empty pair with the
// cursor placed between the markers.
func wrap(marker string) func(string, int, int) (string, int) {
	return func(text string, start, end int) (string, int) {
		runes := []rune(text)
		mlen := len([]rune(marker))
		if start == end {
			out := string(runes[:start]) + marker + marker + string(runes[start:])
			return out, start + mlen
		}
		out := string(runes[:start]) + marker + string(runes[start:end]) + marker + string(runes[end:])
		return out, end + 2*mlen
	}
}

// codeAction wraps multi-line selections in a fenced block and everything
// else in inline backticks. The cursor for a fenced block lands right after
// the opening fence line so a language tag can be typed immediately.
func codeAction(text string, start, end int) (string, int) {
	runes := []rune(text)
	sel := string(runes[start:end])
	if strings.ContainsRune(sel, '\n') {
		open := "```\n"
		out := string(runes[:start]) + open + sel + "\n```" + string(runes[end:])
		return out, start + len([]rune(open))
	}
	return wrap("`")(text, start, end)
}

// linePrefix builds an action that inserts prefix at the start of the line
// containing the selection start. Only that line is touched, even when the
// selection spans several lines.
func linePrefix(prefix string) func(string, int, int) (string, int) {
	return func(text string, start, end int) (string, int) {
		runes := []rune(text)
		lineStart := 0
		for i := start - 1; i >= 0; i-- {
			if runes[i] == '\n' {
				lineStart = i + 1
				break
			}
		}
		out := string(runes[:lineStart]) + prefix + string(runes[lineStart:])
		return out, end + len([]rune(prefix))
	}
}

// linkAction turns the selection into a markdown link label and places the
// cursor on the first character of the url placeholder.
func linkAction(text string, start, end int) (string, int) {
	runes := []rune(text)
	label := string(runes[start:end])
	if label == "" {
		label = "link text"
	}
	out := string(runes[:start]) + "[" + label + "](url)" + string(runes[end:])
	return out, start + len([]rune(label)) + 3
}

// hrAction inserts a horizontal rule at the selection start, ignoring the
// selection end.
func hrAction(text string, start, _ int) (string, int) {
	runes := []rune(text)
	const rule = "\n---\n"
	out := string(runes[:start]) + rule + string(runes[start:])
	return out, start + len(rule)
}
