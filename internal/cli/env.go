package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abelbrown/aagag/internal/config"
	"github.com/abelbrown/aagag/internal/controller"
	"github.com/abelbrown/aagag/internal/favorites"
	"github.com/abelbrown/aagag/internal/fetch"
	"github.com/abelbrown/aagag/internal/i18n"
	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/store"
)

// env is what a command needs at run time.
type env struct {
	cfg       *config.Config
	storage   store.Storage
	favorites *favorites.Store
	fetcher   *fetch.Fetcher
	tr        *i18n.Translator
	out       *OutputFormatter
}

// newEnv loads the config and opens storage. Logs go to stderr.
func newEnv(cmd *cobra.Command, opts *RootOptions) (*env, error) {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, out.Fail(ExitCommandError, "load config", err)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logging.InitWriter(cmd.ErrOrStderr(), level)

	st := store.OpenOrMemory(cfg.StoragePath)
	return &env{
		cfg:       cfg,
		storage:   st,
		favorites: favorites.Open(st),
		fetcher:   fetch.NewFetcher(cfg.DataURL, cfg.Browse.FetchTimeout, cfg.Regions),
		tr:        i18n.New(cfg.Locale),
		out:       out,
	}, nil
}

func (e *env) Close() {
	e.fetcher.Close()
	if err := e.storage.Close(); err != nil {
		logging.Warn("Failed to close storage", "error", err)
	}
}

// browse fetches region and returns a Browser holding its dataset.
func (e *env) browse(ctx context.Context, region string, seed uint64) (*controller.Browser, error) {
	b := controller.New(controller.Options{
		Catalog:   e.cfg.Regions,
		Favorites: e.favorites,
		PageSize:  e.cfg.Browse.PageSize,
		Language:  e.tr.Language(),
		Seed:      seed,
	})
	req := b.SelectRegion(region)
	ds, err := e.fetcher.Fetch(ctx, region)
	b.Receive(controller.Loaded{Request: req, Dataset: ds, Err: err})
	if err != nil {
		return nil, err
	}
	return b, nil
}
