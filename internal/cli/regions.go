package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// regionResult is one row of `agg regions`.
type regionResult struct {
	Key     string `json:"key"`
	Source  string `json:"source"`
	Entries *int   `json:"entries,omitempty"`
}

// NewRegionsCommand creates the regions command.
func NewRegionsCommand(rootOpts *RootOptions) *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the region catalog",
		Long: `List the selectable regions in catalog order.

With --probe, every region's dataset is fetched and only the loadable
ones are shown with their entry counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			var rows []regionResult
			if probe {
				for _, a := range e.fetcher.Probe(cmd.Context()) {
					entries := a.Entries
					rows = append(rows, regionResult{Key: a.Region.Key, Source: a.Source, Entries: &entries})
				}
			} else {
				for _, r := range e.cfg.Regions {
					rows = append(rows, regionResult{Key: r.Key, Source: r.Source})
				}
			}

			return e.out.Success(rows, func(w io.Writer) {
				for _, r := range rows {
					if r.Entries != nil {
						fmt.Fprintf(w, "%-12s %s\t%d\n", r.Key, r.Source, *r.Entries)
					} else {
						fmt.Fprintf(w, "%-12s %s\n", r.Key, r.Source)
					}
				}
			})
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "fetch each dataset and show only loadable regions")
	return cmd
}
