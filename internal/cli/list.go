package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abelbrown/aagag/internal/fetch"
	"github.com/abelbrown/aagag/internal/i18n"
	"github.com/abelbrown/aagag/internal/model"
)

// listItem is one entry of `agg list`.
type listItem struct {
	model.Restaurant
	Favorite bool `json:"favorite"`
}

// listResult is the output of `agg list`.
type listResult struct {
	Region  string     `json:"region"`
	Source  string     `json:"source"`
	State   string     `json:"state"`
	Items   []listItem `json:"items"`
	Total   int        `json:"total_count"`
	Page    int        `json:"page"`
	HasMore bool       `json:"has_more"`
	Sort    string     `json:"sort"`
	Seed    uint64     `json:"seed,string"`
}

type listOptions struct {
	query     string
	tags      []string
	favorites bool
	sort      string
	page      int
	seed      uint64
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list <region>",
		Short: "List a region's restaurants",
		Long: `Fetch a region's dataset and print the browse result.

Filters combine: the query matches name, summary or tags, every --tag
must be present, and --favorites keeps only this region's favorites. Without
--sort the order is a shuffle fixed by --seed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "search name, summary or tags")
	cmd.Flags().StringArrayVarP(&opts.tags, "tag", "t", nil, "require tag (repeatable)")
	cmd.Flags().BoolVar(&opts.favorites, "favorites", false, "only favorites")
	cmd.Flags().StringVar(&opts.sort, "sort", "none", "none|name-asc|name-desc|rating-desc|rating-asc")
	cmd.Flags().IntVar(&opts.page, "page", 1, "show pages 1..n")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "shuffle seed (0 picks one)")
	return cmd
}

func runList(cmd *cobra.Command, rootOpts *RootOptions, opts *listOptions, region string) error {
	e, err := newEnv(cmd, rootOpts)
	if err != nil {
		return err
	}
	defer e.Close()

	sortOpt, err := model.ParseSortPreset(opts.sort)
	if err != nil {
		return e.out.Fail(ExitCommandError, "invalid --sort", err)
	}
	if opts.page < 1 {
		return e.out.Fail(ExitCommandError, "invalid --page", fmt.Errorf("page %d", opts.page))
	}

	b, err := e.browse(cmd.Context(), region, opts.seed)
	if err != nil {
		return e.out.Fail(loadExitCode(err), "load "+region, err)
	}
	b.SetQuery(opts.query)
	b.SetTags(opts.tags)
	b.SetFavoritesOnly(opts.favorites)
	b.SetSort(sortOpt)
	v := b.SeekPage(opts.page)

	res := listResult{
		Region:  v.Region.Key,
		Source:  v.Source,
		State:   v.State.String(),
		Items:   make([]listItem, len(v.Items)),
		Total:   v.Total,
		Page:    v.Page,
		HasMore: v.HasMore,
		Sort:    v.Sort.Preset(),
		Seed:    b.Seed(),
	}
	for i, item := range v.Items {
		res.Items[i] = listItem{Restaurant: item, Favorite: v.Favorite[i]}
	}

	return e.out.Success(res, func(w io.Writer) {
		fmt.Fprintln(w, e.tr.Tf("result_count", i18n.Data{"Source": res.Source, "Count": res.Total}))
		if len(res.Items) == 0 {
			fmt.Fprintln(w, e.tr.T("no_results"))
			return
		}
		for _, item := range res.Items {
			mark := " "
			if item.Favorite {
				mark = "♥"
			}
			line := mark + " " + item.Name
			if item.HasRating() {
				line += fmt.Sprintf("  ★%.1f", item.Rating())
			}
			if len(item.Tags) > 0 {
				line += "  #" + strings.Join(item.Tags, " #")
			}
			fmt.Fprintln(w, line)
		}
		if res.HasMore {
			fmt.Fprintf(w, "%s: --page %d --seed %d\n", e.tr.T("load_more"), res.Page+1, res.Seed)
		} else {
			fmt.Fprintln(w, e.tr.T("all_loaded"))
		}
	})
}

// NewTagsCommand creates the tags command.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "tags <region>",
		Short: "List a region's tags in collation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			b, err := e.browse(cmd.Context(), args[0], 0)
			if err != nil {
				return e.out.Fail(loadExitCode(err), "load "+args[0], err)
			}
			v := b.SetTagQuery(query)

			return e.out.Success(v.AvailableTags, func(w io.Writer) {
				fmt.Fprintln(w, e.tr.Count("tags_title", v.TagCount))
				if len(v.AvailableTags) == 0 {
					fmt.Fprintln(w, e.tr.Tf("no_tags", i18n.Data{"Query": query}))
				}
				for _, tag := range v.AvailableTags {
					fmt.Fprintln(w, tag)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "narrow tags by substring")
	return cmd
}

// loadExitCode treats an unknown region as a usage error.
func loadExitCode(err error) int {
	if errors.Is(err, fetch.ErrUnknownRegion) {
		return ExitCommandError
	}
	return ExitFailure
}
