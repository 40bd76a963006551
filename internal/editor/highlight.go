package editor

import (
	"sync"

	"github.com/xonecas/markpad/internal/highlight"
)

// ---------------------------------------------------------------------------
// Highlight cache (global, shared across instances)
// ---------------------------------------------------------------------------

var (
	hlCache   = make(map[string]string)
	hlCacheMu sync.RWMutex
)

func cachedHighlight(text, language, theme, bgHex string) string {
	cacheKey := language + ":" + theme + ":" + bgHex + ":" + text
	hlCacheMu.RLock()
	if v, ok := hlCache[cacheKey]; ok {
		hlCacheMu.RUnlock()
		return v
	}
	hlCacheMu.RUnlock()

	result := highlight.Highlight(text, language, theme, bgHex)

	hlCacheMu.Lock()
	if len(hlCache) > 2000 {
		hlCache = make(map[string]string)
	}
	hlCache[cacheKey] = result
	hlCacheMu.Unlock()
	return result
}

var (
	themeBgCache   = make(map[string]string)
	themeBgCacheMu sync.Mutex
)

func themeBgCached(theme string) string {
	themeBgCacheMu.Lock()
	defer themeBgCacheMu.Unlock()
	if v, ok := themeBgCache[theme]; ok {
		return v
	}
	v := highlight.ThemeBg(theme)
	themeBgCache[theme] = v
	return v
}

// bgHexForHighlight returns the hex bg passed to the highlighter, "" when the
// component has no syntax theme.
func (m Model) bgHexForHighlight() string {
	if m.Language == "" || m.SyntaxTheme == "" {
		return ""
	}
	return themeBgCached(m.SyntaxTheme)
}
