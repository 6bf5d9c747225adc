// cmd/verdant/main.go
//
// Entry point for the verdant storefront TUI.
//
// Flow:
// 1. Resolve the config directory and materialize defaults on first run
// 2. Wire the file logger, activity logbook, session store and API client
// 3. Launch the bubbletea program

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lralston/verdant/internal/api"
	"github.com/lralston/verdant/internal/config"
	"github.com/lralston/verdant/internal/logbook"
	"github.com/lralston/verdant/internal/logging"
	"github.com/lralston/verdant/internal/session"
	"github.com/lralston/verdant/internal/tui"
)

func main() {
	server := flag.String("server", "", "backend base URL (overrides config and "+config.ServerEnvVar+")")
	debug := flag.Bool("debug", false, "enable debug logging")
	configDir := flag.String("config-dir", "", "config directory (defaults to the user config dir)")
	flag.Parse()

	if err := run(*server, *debug, *configDir); err != nil {
		fmt.Fprintf(os.Stderr, "verdant: %v\n", err)
		os.Exit(1)
	}
}

func run(server string, debug bool, dir string) error {
	var err error
	if dir == "" {
		dir, err = config.DefaultDir()
		if err != nil {
			return err
		}
	}
	if err := config.InitDir(dir); err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if server != "" {
		cfg.File.ServerURL = server
	}

	logger, err := logging.New(cfg.LogsDir(), debug || cfg.Debug())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	book, err := logbook.Open(filepath.Join(cfg.LogsDir(), "activity.log"))
	if err != nil {
		return err
	}
	defer book.Close()

	store := session.NewStore(cfg.Dir)
	client, err := api.New(cfg.ServerURL(), store, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.NewApp(cfg, client, book, logger),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
