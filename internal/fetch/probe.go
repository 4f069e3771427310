package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/aagag/internal/catalog"
)

// maxConcurrentProbes bounds parallel dataset requests during Probe.
const maxConcurrentProbes = 4

// Available is a region whose dataset loaded during Probe.
type Available struct {
	Region  catalog.Region
	Source  string // metadata.source of the loaded dataset
	Entries int
}

// Probe fetches every region of the fetcher's catalog in parallel and
// returns those that loaded, in catalog order. Failed regions are skipped.
func (f *Fetcher) Probe(ctx context.Context) []Available {
	results := make([]*Available, len(f.regions))

	var g errgroup.Group
	g.SetLimit(maxConcurrentProbes)

	for i, r := range f.regions {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			ds, err := f.Fetch(ctx, r.Key)
			if err != nil {
				return nil // reported per region
			}
			source := ds.Metadata.Source
			if source == "" {
				source = r.Source
			}
			results[i] = &Available{Region: r, Source: source, Entries: ds.Len()}
			return nil
		})
	}

	_ = g.Wait()

	available := make([]Available, 0, len(results))
	for _, a := range results {
		if a != nil {
			available = append(available, *a)
		}
	}
	return available
}
