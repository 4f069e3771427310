package controller

import (
	"github.com/abelbrown/aagag/internal/catalog"
	"github.com/abelbrown/aagag/internal/filter"
	"github.com/abelbrown/aagag/internal/model"
)

// State is what the result area should show.
type State int

const (
	StateLoading State = iota
	StateError
	StateEmpty
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// View is an immutable snapshot of the browse state, ready to render.
type View struct {
	Region   catalog.Region
	Source   string // dataset metadata source, falling back to the catalog label
	Metadata model.Metadata

	State State
	Err   string

	Items    []model.Restaurant // visible prefix of the ordered list
	Favorite []bool             // parallel to Items
	Total    int                // entries after filtering
	HasMore  bool
	Page     int

	Query         string
	SelectedTags  []string
	TagQuery      string
	AvailableTags []string // narrowed by TagQuery
	TagCount      int      // distinct tags in the dataset
	FavoritesOnly bool
	Sort          model.SortOption
	Generation    uint64
	Filtering     bool

	RegionFavorites int
	TotalFavorites  int
	Persistent      bool
}

// View builds the current snapshot.
func (b *Browser) View() View {
	v := View{
		Region:        b.region,
		Source:        b.region.Source,
		Query:         b.query,
		SelectedTags:  append([]string(nil), b.tags...),
		TagQuery:      b.tagQuery,
		FavoritesOnly: b.favoritesOnly,
		Sort:          b.sort,
		Generation:    b.generation,
		Page:          b.pager.Page(),
		Filtering:     b.criteria().Active(),

		RegionFavorites: b.favorites.CountForRegion(b.region.Key),
		TotalFavorites:  b.favorites.TotalCount(),
		Persistent:      b.favorites.Persistent(),
	}
	if b.dataset != nil {
		v.Metadata = b.dataset.Metadata
		if b.dataset.Metadata.Source != "" {
			v.Source = b.dataset.Metadata.Source
		}
	}

	switch {
	case b.loading:
		v.State = StateLoading
		return v
	case b.err != nil:
		v.State = StateError
		v.Err = b.err.Error()
		return v
	}

	all := b.availableTags()
	v.TagCount = len(all)
	v.AvailableTags = filter.SearchTags(all, b.tagQuery)

	ordered := b.ordered()
	v.Total = len(ordered)
	v.HasMore = b.pager.HasMore(v.Total)
	v.Items = ordered[:b.pager.Visible(v.Total)]
	v.Favorite = make([]bool, len(v.Items))
	favs := b.favorites.ForRegion(b.region.Key)
	for i, item := range v.Items {
		v.Favorite[i] = favs[item.Name]
	}

	if v.Total == 0 {
		v.State = StateEmpty
	} else {
		v.State = StateReady
	}
	return v
}
