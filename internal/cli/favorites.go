package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abelbrown/aagag/internal/model"
)

// NewFavoritesCommand creates the favorites command group.
func NewFavoritesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Inspect and edit favorites",
	}

	cmd.AddCommand(newFavoritesListCommand(rootOpts))
	cmd.AddCommand(newFavoritesToggleCommand(rootOpts))
	cmd.AddCommand(newFavoritesCountCommand(rootOpts))
	return cmd
}

func newFavoritesListCommand(rootOpts *RootOptions) *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites, optionally for one region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			entries := []model.Favorite{}
			for _, f := range e.favorites.Entries() {
				if region == "" || f.Region == region {
					entries = append(entries, f)
				}
			}

			return e.out.Success(entries, func(w io.Writer) {
				for _, f := range entries {
					fmt.Fprintf(w, "%-12s %s\n", f.Region, f.Name)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "only this region")
	return cmd
}

// toggleResult is the output of `agg favorites toggle`.
type toggleResult struct {
	Name        string `json:"name"`
	Region      string `json:"region"`
	Favorite    bool   `json:"favorite"`
	RegionCount int    `json:"region_count"`
}

func newFavoritesToggleCommand(rootOpts *RootOptions) *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "toggle <name>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, ok := e.cfg.Regions.Lookup(region); !ok {
				return e.out.Fail(ExitCommandError, "unknown region", fmt.Errorf("%q", region))
			}
			if !e.favorites.Persistent() {
				fmt.Fprintln(cmd.ErrOrStderr(), e.tr.T("favorites_memory"))
			}

			res := toggleResult{
				Name:     args[0],
				Region:   region,
				Favorite: e.favorites.Toggle(args[0], region),
			}
			res.RegionCount = e.favorites.CountForRegion(region)

			return e.out.Success(res, func(w io.Writer) {
				mark := "-"
				if res.Favorite {
					mark = "♥"
				}
				fmt.Fprintf(w, "%s %s (%s)\n", mark, res.Name, e.tr.Count("favorites_count", res.RegionCount))
			})
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "region key (required)")
	cmd.MarkFlagRequired("region")
	return cmd
}

// countResult is the output of `agg favorites count`.
type countResult struct {
	Region string `json:"region,omitempty"`
	Count  int    `json:"count"`
}

func newFavoritesCountCommand(rootOpts *RootOptions) *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count favorites, optionally for one region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			res := countResult{Region: region, Count: e.favorites.TotalCount()}
			if region != "" {
				res.Count = e.favorites.CountForRegion(region)
			}

			return e.out.Success(res, func(w io.Writer) {
				fmt.Fprintln(w, e.tr.Count("favorites_count", res.Count))
			})
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "only this region")
	return cmd
}
