// Package controller implements the browse state that sits between the
// fetched dataset and whatever renders it.
//
// # Architecture
//
//	┌─────────┐     ┌─────────────────────────────────┐     ┌──────┐
//	│ Dataset │ ──> │ Browser                         │ ──> │ View │
//	│ (fetch) │     │ filter -> sort|shuffle -> page  │     │ (UI) │
//	└─────────┘     └─────────────────────────────────┘     └──────┘
//
// The Browser never fetches. SelectRegion and Retry return a Request that
// the caller executes (a tea.Cmd in the TUI, a direct call in the CLI and
// server) and hands back through Receive as a Loaded. Each request carries
// a token; a Loaded whose token is no longer current is dropped, so a slow
// response for a region the user already left never overwrites newer state.
//
// # Pipeline
//
// Entries pass through three stages, each a pure function:
//
//	filtered := filter.Apply(entries, criteria)       // query, tags, favorites
//	ordered  := ranking.Sort(filtered, comparator)    // sort mode
//	         or filter.Apply(shuffled, criteria)      // shuffle mode
//	shown    := ordered[:pager.Visible(len(ordered))]
//
// In shuffle mode the whole dataset is shuffled once per generation and then
// filtered, so editing the query narrows a fixed order instead of reshuffling.
// The ordered list is memoized on (dataset, generation, criteria, sort,
// favorites revision).
//
// # Concurrency
//
// A Browser is not safe for concurrent use. The TUI drives one from its
// update loop; the server builds one per request.
package controller

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abelbrown/aagag/internal/catalog"
	"github.com/abelbrown/aagag/internal/favorites"
	"github.com/abelbrown/aagag/internal/filter"
	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/model"
	"github.com/abelbrown/aagag/internal/pager"
	"github.com/abelbrown/aagag/internal/ranking"
	"github.com/abelbrown/aagag/internal/store"
)

// Request identifies one dataset load.
type Request struct {
	Region string
	Token  uint64
}

// Loaded is the outcome of executing a Request.
type Loaded struct {
	Request Request
	Dataset *model.Dataset
	Err     error
}

// Options configures a Browser.
type Options struct {
	Catalog   catalog.Catalog
	Favorites *favorites.Store

	// Storage, when set, receives the last selected region.
	Storage store.Storage

	PageSize int
	// LoadInterval is the minimum time between two LoadMore advances.
	LoadInterval time.Duration
	// Language selects name and tag collation. Defaults to Korean.
	Language language.Tag
	// Seed fixes the shuffle stream. Zero picks a random seed.
	Seed uint64
}

// Browser holds the browse state for one user.
type Browser struct {
	catalog   catalog.Catalog
	favorites *favorites.Store
	storage   store.Storage
	lang      language.Tag
	seed      uint64

	region  catalog.Region
	dataset *model.Dataset
	err     error
	loading bool
	token   uint64

	query         string
	tags          []string
	tagQuery      string
	favoritesOnly bool
	sort          model.SortOption
	generation    uint64
	pager         *pager.Pager

	memo memo
}

// memoKey captures every input of the ordered list.
type memoKey struct {
	dataset       *model.Dataset
	generation    uint64
	query         string
	tags          string
	favoritesOnly bool
	favorites     uint64
	sort          model.SortOption
}

type memo struct {
	shuffledFor struct {
		dataset    *model.Dataset
		generation uint64
	}
	shuffled []model.Restaurant

	orderedFor memoKey
	ordered    []model.Restaurant
	valid      bool

	tagsFor *model.Dataset
	tags    []string
}

// New creates a Browser. No region is selected until SelectRegion.
func New(opts Options) *Browser {
	if len(opts.Catalog) == 0 {
		opts.Catalog = catalog.Default()
	}
	if opts.Favorites == nil {
		opts.Favorites = favorites.Open(store.NewMemory())
	}
	if opts.Language == language.Und {
		opts.Language = language.Korean
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	return &Browser{
		catalog:   opts.Catalog,
		favorites: opts.Favorites,
		storage:   opts.Storage,
		lang:      opts.Language,
		seed:      opts.Seed,
		pager:     pager.New(opts.PageSize, opts.LoadInterval),
	}
}

// SelectRegion switches to key and returns the load to perform.
// Tags, favorites-only, sort and page reset; the search query is kept.
func (b *Browser) SelectRegion(key string) Request {
	r, ok := b.catalog.Lookup(key)
	if !ok {
		r = catalog.Region{Key: key}
	}

	b.region = r
	b.dataset = nil
	b.err = nil
	b.tags = nil
	b.tagQuery = ""
	b.favoritesOnly = false
	b.sort = model.SortOption{}
	b.pager.Reset()
	b.generation++

	if ok && b.storage != nil {
		catalog.SaveLast(b.storage, key)
	}

	logging.Debug("Region selected", "region", key)
	return b.request()
}

// Retry repeats the load for the current region.
func (b *Browser) Retry() Request {
	b.err = nil
	return b.request()
}

func (b *Browser) request() Request {
	b.token++
	b.loading = true
	return Request{Region: b.region.Key, Token: b.token}
}

// Receive applies a finished load. It reports false, leaving the state
// untouched, when the load is no longer the current one.
func (b *Browser) Receive(msg Loaded) (View, bool) {
	if msg.Request.Token != b.token || msg.Request.Region != b.region.Key {
		logging.Debug("Dropping stale dataset", "region", msg.Request.Region, "token", msg.Request.Token)
		return b.View(), false
	}

	b.loading = false
	if msg.Err != nil {
		b.dataset = nil
		b.err = msg.Err
		return b.View(), true
	}
	if msg.Dataset == nil {
		msg.Dataset = &model.Dataset{}
	}

	b.dataset = msg.Dataset
	b.err = nil
	b.pager.Reset()
	b.generation++
	return b.View(), true
}

// SetQuery replaces the search query.
func (b *Browser) SetQuery(q string) View {
	if q != b.query {
		b.query = q
		b.pager.Reset()
	}
	return b.View()
}

// ToggleTag adds tag to the selection, or removes it when selected.
func (b *Browser) ToggleTag(tag string) View {
	if i := slices.Index(b.tags, tag); i >= 0 {
		b.tags = slices.Delete(slices.Clone(b.tags), i, i+1)
	} else {
		b.tags = append(slices.Clone(b.tags), tag)
	}
	b.pager.Reset()
	return b.View()
}

// SetTags replaces the tag selection.
func (b *Browser) SetTags(tags []string) View {
	b.tags = slices.Clone(tags)
	b.pager.Reset()
	return b.View()
}

// ClearTags empties the tag selection.
func (b *Browser) ClearTags() View {
	return b.SetTags(nil)
}

// SetTagQuery narrows the tag list offered for selection.
func (b *Browser) SetTagQuery(q string) View {
	b.tagQuery = q
	return b.View()
}

// SetFavoritesOnly restricts results to the region's favorites.
func (b *Browser) SetFavoritesOnly(on bool) View {
	if on != b.favoritesOnly {
		b.favoritesOnly = on
		b.pager.Reset()
	}
	return b.View()
}

// SetSort selects sort mode, or shuffle mode for a disabled option.
func (b *Browser) SetSort(opt model.SortOption) View {
	b.sort = opt
	b.pager.Reset()
	return b.View()
}

// Shuffle draws a new order for shuffle mode.
func (b *Browser) Shuffle() View {
	b.generation++
	b.pager.Reset()
	return b.View()
}

// LoadMore reveals the next page if the rate limit allows. The bool reports
// whether anything changed.
func (b *Browser) LoadMore(now time.Time) (View, bool) {
	advanced := b.pager.LoadMore(now, len(b.ordered()))
	return b.View(), advanced
}

// SeekPage jumps straight to page.
func (b *Browser) SeekPage(page int) View {
	b.pager.Seek(page)
	return b.View()
}

// ToggleFavorite flips name in the current region. The page is kept.
func (b *Browser) ToggleFavorite(name string) View {
	b.favorites.Toggle(name, b.region.Key)
	return b.View()
}

// Region returns the selected region.
func (b *Browser) Region() catalog.Region {
	return b.region
}

// Catalog returns the selectable regions.
func (b *Browser) Catalog() catalog.Catalog {
	return b.catalog
}

func (b *Browser) entries() []model.Restaurant {
	if b.dataset == nil {
		return nil
	}
	return b.dataset.Data
}

func (b *Browser) criteria() filter.Criteria {
	c := filter.Criteria{
		Query:         b.query,
		Tags:          b.tags,
		FavoritesOnly: b.favoritesOnly,
	}
	if b.favoritesOnly {
		c.Favorites = b.favorites.ForRegion(b.region.Key)
	}
	return c
}

// ordered returns the filtered, sorted or shuffled list, recomputing only
// when an input changed.
func (b *Browser) ordered() []model.Restaurant {
	key := memoKey{
		dataset:       b.dataset,
		generation:    b.generation,
		query:         b.query,
		tags:          strings.Join(b.tags, "\x00"),
		favoritesOnly: b.favoritesOnly,
		sort:          b.sort,
	}
	if b.favoritesOnly {
		key.favorites = b.favorites.Updates()
	}
	if b.memo.valid && b.memo.orderedFor == key {
		return b.memo.ordered
	}

	var ordered []model.Restaurant
	if cmp := ranking.ForOption(b.sort, b.lang); cmp != nil {
		ordered = ranking.Sort(filter.Apply(b.entries(), b.criteria()), cmp)
	} else {
		ordered = filter.Apply(b.shuffled(), b.criteria())
	}

	b.memo.orderedFor = key
	b.memo.ordered = ordered
	b.memo.valid = true
	return ordered
}

func (b *Browser) shuffled() []model.Restaurant {
	m := &b.memo
	if m.shuffled != nil && m.shuffledFor.dataset == b.dataset && m.shuffledFor.generation == b.generation {
		return m.shuffled
	}
	m.shuffled = ranking.Shuffle(b.entries(), ranking.ShuffleSource(b.seed, b.generation))
	m.shuffledFor.dataset = b.dataset
	m.shuffledFor.generation = b.generation
	return m.shuffled
}

func (b *Browser) availableTags() []string {
	if b.memo.tags == nil || b.memo.tagsFor != b.dataset {
		b.memo.tags = filter.AvailableTags(b.entries(), collate.New(b.lang))
		b.memo.tagsFor = b.dataset
	}
	return b.memo.tags
}

// Seed returns the shuffle seed, so a shuffled order can be reproduced.
func (b *Browser) Seed() uint64 {
	return b.seed
}
