package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/server"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	addr    string
	dataDir string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browse API and the dataset files",
		Long: `Serve the browse API over HTTP.

Datasets are read from the configured data URL. The data directory's
data/ folder is also served at /data/, so a single process can host the
datasets and point data_url at itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			if opts.addr == "" {
				opts.addr = e.cfg.Server.Addr
			}
			if opts.dataDir == "" {
				opts.dataDir = e.cfg.Server.DataDir
			}

			ln, err := net.Listen("tcp", opts.addr)
			if err != nil {
				return e.out.Fail(ExitCommandError, "listen", err)
			}
			logging.Info("Serving", "addr", ln.Addr().String(), "data_url", e.cfg.DataURL, "data_dir", opts.dataDir)
			return serveUntilDone(cmd.Context(), newHTTPServer(e, opts), ln)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "directory whose data/ folder is served (default from config)")
	return cmd
}

func newHTTPServer(e *env, opts *serveOptions) *http.Server {
	handler := server.New(e.fetcher, e.favorites, server.Options{
		DataDir:        opts.dataDir,
		AllowedOrigins: e.cfg.Server.AllowedOrigins,
		PageSize:       e.cfg.Browse.PageSize,
		Language:       e.tr.Language(),
	})

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if l := logging.WithPrefix("http"); l != nil {
		srv.ErrorLog = l.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
	}
	return srv
}

// serveUntilDone serves on ln until ctx is cancelled, then shuts down.
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
