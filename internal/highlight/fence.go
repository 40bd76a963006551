package highlight

import "strings"

// fenceAliases maps common fenced-code language tags to Chroma lexer names
// where they differ.
var fenceAliases = map[string]string{
	"js":         "javascript",
	"ts":         "typescript",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"yml":        "yaml",
	"md":         "markdown",
	"py":         "python",
	"rb":         "ruby",
	"rs":         "rust",
	"golang":     "go",
	"dockerfile": "docker",
}

// FenceLanguage normalizes a fenced code block's language tag to a Chroma
// lexer name. An empty tag stays empty (no highlighting).
func FenceLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if lang, ok := fenceAliases[tag]; ok {
		return lang
	}
	return tag
}
