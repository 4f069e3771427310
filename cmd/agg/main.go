// Command agg inspects the restaurant datasets, manages favorites and
// serves the browse API.
//
// Usage:
//
//	agg regions [--probe]             Region catalog
//	agg list <region> [flags]         Browse a region
//	agg tags <region> [-q query]      Tags in collation order
//	agg favorites list|toggle|count   Favorites maintenance
//	agg serve [--addr :8080]          HTTP API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abelbrown/aagag/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "agg:", err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
