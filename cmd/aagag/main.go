// Command aagag is the terminal restaurant browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/aagag/internal/catalog"
	"github.com/abelbrown/aagag/internal/config"
	"github.com/abelbrown/aagag/internal/controller"
	"github.com/abelbrown/aagag/internal/favorites"
	"github.com/abelbrown/aagag/internal/fetch"
	"github.com/abelbrown/aagag/internal/i18n"
	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/store"
	"github.com/abelbrown/aagag/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.aagag/config.yaml)")
	region := flag.String("region", "", "region to open (default: last used)")
	flag.Parse()

	// Setup context for shutdown; cancelling abandons in-flight fetches.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aagag: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file under the home dir.
	if err := logging.Init(config.Home(), cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "aagag: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()
	logging.Info("Starting", "data_url", cfg.DataURL, "locale", cfg.Locale)

	i18n.SetLocale(cfg.Locale)
	tr := i18n.Default()

	st := store.OpenOrMemory(cfg.StoragePath)
	defer st.Close()

	fetcher := fetch.NewFetcher(cfg.DataURL, cfg.Browse.FetchTimeout, cfg.Regions)
	defer fetcher.Close()

	browser := controller.New(controller.Options{
		Catalog:      cfg.Regions,
		Favorites:    favorites.Open(st),
		Storage:      st,
		PageSize:     cfg.Browse.PageSize,
		LoadInterval: cfg.Browse.LoadInterval,
		Language:     tr.Language(),
	})

	start := cfg.StartRegion()
	if _, saved, _ := st.Get(catalog.LastRegionKey); saved {
		start = catalog.LoadLast(st, cfg.Regions)
	}
	if r, ok := cfg.Regions.Lookup(*region); ok {
		start = r
	}

	// load runs one dataset request off the update loop.
	load := func(req controller.Request) tea.Cmd {
		return func() tea.Msg {
			ds, err := fetcher.Fetch(ctx, req.Region)
			if err != nil {
				logging.Warn("Dataset load failed", "region", req.Region, "error", err)
			}
			return ui.DatasetLoaded{Loaded: controller.Loaded{Request: req, Dataset: ds, Err: err}}
		}
	}

	app := ui.NewApp(browser, load, tr, start.Key)
	program := tea.NewProgram(app, tea.WithAltScreen())

	// Run UI (blocks until quit)
	if _, err := program.Run(); err != nil {
		logging.Error("Program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "aagag: %v\n", err)
	}

	stats := fetcher.Stats()
	logging.Info("Stopped", "requests", stats.Requests, "failures", stats.Failures)
}
