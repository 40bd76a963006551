package highlight

import (
	"strings"
	"testing"
)

func TestHighlightUnknownLanguagePassthrough(t *testing.T) {
	in := "plain text, no lexer"
	if got := Highlight(in, "not-a-language", "github-dark", "#0d1117"); got != in {
		t.Errorf("unknown language should pass text through, got %q", got)
	}
}

func TestHighlightInjectsBackground(t *testing.T) {
	got := Highlight("package main", "go", "github-dark", "#0d1117")
	if !strings.Contains(got, "\x1b[48;2;13;17;23m") {
		t.Errorf("expected injected bg sequence in %q", got)
	}
}

func TestLinesCount(t *testing.T) {
	lines := Lines("a := 1\nb := 2\nc := 3", "go", "github-dark", "#0d1117")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
}

func TestSplitLinesPropagatesStyle(t *testing.T) {
	// Style opened on line 1 without a reset must re-open on line 2.
	in := "\x1b[38;2;255;0;0mred\nstill red"
	lines := SplitLines(in)
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "\x1b[38;2;255;0;0m") {
		t.Errorf("line 2 lost style state: %q", lines[1])
	}
}

func TestThemeBg(t *testing.T) {
	if bg := ThemeBg("github-dark"); !strings.HasPrefix(bg, "#") {
		t.Errorf("ThemeBg = %q, want hex color", bg)
	}
	if bg := ThemeBg("definitely-missing-theme"); bg != "" {
		// Chroma falls back to a default style; either way the result must
		// be a hex color or empty.
		if !strings.HasPrefix(bg, "#") {
			t.Errorf("ThemeBg = %q", bg)
		}
	}
}

func TestThemePaletteDeterministic(t *testing.T) {
	a := ThemePalette("github-dark")
	b := ThemePalette("github-dark")
	if a != b {
		t.Error("palette must be deterministic")
	}
	if a.Bg == "" || a.Fg == "" || a.Border == "" {
		t.Errorf("incomplete palette: %+v", a)
	}
}

func TestFenceLanguage(t *testing.T) {
	tests := []struct{ in, want string }{
		{"js", "javascript"},
		{"  Sh ", "bash"},
		{"go", "go"},
		{"", ""},
		{"yml", "yaml"},
	}
	for _, tt := range tests {
		if got := FenceLanguage(tt.in); got != tt.want {
			t.Errorf("FenceLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
