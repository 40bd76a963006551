package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/markpad/internal/config"
	"github.com/xonecas/markpad/internal/draft"
	"github.com/xonecas/markpad/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: markpad [flags] <file.md>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	filePath := flag.Arg(0)

	closeLog, err := initLogging(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "markpad: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "markpad: %v\n", err)
		os.Exit(1)
	}

	content, err := readFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "markpad: %v\n", err)
		os.Exit(1)
	}

	drafts, closeDrafts := openDrafts(cfg, filePath, content)
	defer closeDrafts()

	p := tea.NewProgram(
		tui.New(cfg, filePath, content, drafts),
		tea.WithFilter(tui.MouseEventFilter),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "markpad: %v\n", err)
		os.Exit(1)
	}
}

// initLogging routes the global zerolog logger to a file under the data dir.
// The TUI owns stdout, so logs must never touch it.
func initLogging(debug bool) (func(), error) {
	dir, err := config.EnsureDataDir()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "markpad.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return func() { f.Close() }, nil
}

// readFile loads the markdown file, treating a missing file as an empty
// buffer so `markpad new.md` starts a fresh document.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// openDrafts opens the SQLite draft store. Draft persistence is best-effort:
// when the database cannot be opened the editor still runs, it just loses
// crash recovery.
func openDrafts(cfg *config.Config, filePath, content string) (*draft.Store, func()) {
	dbPath, err := cfg.Draft.PathOrDefault()
	if err != nil {
		log.Warn().Err(err).Msg("no draft db path, drafts disabled")
		return nil, func() {}
	}
	db, err := draft.Open(dbPath)
	if err != nil {
		log.Warn().Err(err).Str("path", dbPath).Msg("draft db unavailable, drafts disabled")
		return nil, func() {}
	}

	key, err := filepath.Abs(filePath)
	if err != nil {
		key = filePath
	}
	return draft.New(db, key, content), func() { db.Close() }
}
