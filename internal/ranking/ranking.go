// Package ranking orders restaurants for display: a stable sort by name or
// rating, or a reproducible shuffle.
package ranking

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abelbrown/aagag/internal/model"
)

// Comparator orders two entries. Negative means a sorts before b.
type Comparator interface {
	Name() string
	Compare(a, b model.Restaurant) int
}

// NameComparator orders by name using locale collation.
// A collator is not safe for concurrent use; build one per goroutine.
type NameComparator struct {
	col *collate.Collator
}

func NewNameComparator(tag language.Tag) *NameComparator {
	return &NameComparator{col: collate.New(tag)}
}

func (c *NameComparator) Name() string { return "name" }

func (c *NameComparator) Compare(a, b model.Restaurant) int {
	return c.col.CompareString(a.Name, b.Name)
}

// RatingComparator orders by rating, counting a missing rating as 0.
type RatingComparator struct{}

func (RatingComparator) Name() string { return "rating" }

func (RatingComparator) Compare(a, b model.Restaurant) int {
	return cmp.Compare(a.Rating(), b.Rating())
}

// Descending negates another comparator.
type Descending struct {
	Comparator
}

func (d Descending) Name() string { return d.Comparator.Name() + "-desc" }

func (d Descending) Compare(a, b model.Restaurant) int {
	return -d.Comparator.Compare(a, b)
}

// ForOption returns the comparator selected by opt, or nil when opt
// selects shuffle mode.
func ForOption(opt model.SortOption, tag language.Tag) Comparator {
	if !opt.Sorting() {
		return nil
	}

	var c Comparator
	switch opt.Field {
	case model.SortName:
		c = NewNameComparator(tag)
	case model.SortRating:
		c = RatingComparator{}
	default:
		return nil
	}

	if opt.Order == model.OrderDesc {
		return Descending{c}
	}
	return c
}

// Sort returns a stably sorted copy of items. Equal entries keep their
// input order in both directions.
func Sort(items []model.Restaurant, c Comparator) []model.Restaurant {
	sorted := slices.Clone(items)
	if c == nil {
		return sorted
	}
	slices.SortStableFunc(sorted, c.Compare)
	return sorted
}

// ShuffleSource returns the random stream for one shuffle generation.
// The same (seed, generation) always yields the same permutation.
func ShuffleSource(seed, generation uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, generation))
}

// Shuffle returns a Fisher-Yates permutation of items drawn from rng.
func Shuffle(items []model.Restaurant, rng *rand.Rand) []model.Restaurant {
	shuffled := slices.Clone(items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
