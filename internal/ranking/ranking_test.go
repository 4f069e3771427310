package ranking

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/abelbrown/aagag/internal/model"
)

func star(v float64) *float64 { return &v }

func names(items []model.Restaurant) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func restaurants(ns ...string) []model.Restaurant {
	items := make([]model.Restaurant, len(ns))
	for i, n := range ns {
		items[i] = model.Restaurant{Name: n}
	}
	return items
}

func TestSortByKoreanName(t *testing.T) {
	items := restaurants("다래", "하늘", "가람", "마루", "나무")

	asc := Sort(items, ForOption(model.SortOption{Field: model.SortName, Order: model.OrderAsc, Enabled: true}, language.Korean))
	want := []string{"가람", "나무", "다래", "마루", "하늘"}
	if diff := cmp.Diff(want, names(asc)); diff != "" {
		t.Errorf("ascending mismatch (-want +got):\n%s", diff)
	}

	desc := Sort(items, ForOption(model.SortOption{Field: model.SortName, Order: model.OrderDesc, Enabled: true}, language.Korean))
	reversed := slices.Clone(names(asc))
	slices.Reverse(reversed)
	if diff := cmp.Diff(reversed, names(desc)); diff != "" {
		t.Errorf("descending should be the reverse of ascending (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"다래", "하늘", "가람", "마루", "나무"}, names(items)); diff != "" {
		t.Errorf("Sort must not reorder its input (-want +got):\n%s", diff)
	}
}

func TestSortByRating(t *testing.T) {
	items := []model.Restaurant{
		{Name: "A", ReviewStar: star(3.5)},
		{Name: "B"},
		{Name: "C", ReviewStar: star(4.8)},
		{Name: "D", ReviewStar: star(3.5)},
		{Name: "E", ReviewStar: star(0)},
	}

	desc := Sort(items, ForOption(model.SortOption{Field: model.SortRating, Order: model.OrderDesc, Enabled: true}, language.Korean))
	// Ties keep input order: A before D, B before E.
	if diff := cmp.Diff([]string{"C", "A", "D", "B", "E"}, names(desc)); diff != "" {
		t.Errorf("rating desc mismatch (-want +got):\n%s", diff)
	}

	asc := Sort(items, ForOption(model.SortOption{Field: model.SortRating, Order: model.OrderAsc, Enabled: true}, language.Korean))
	if diff := cmp.Diff([]string{"B", "E", "A", "D", "C"}, names(asc)); diff != "" {
		t.Errorf("rating asc mismatch (-want +got):\n%s", diff)
	}
}

func TestForOption(t *testing.T) {
	tests := []struct {
		opt  model.SortOption
		want string
	}{
		{model.SortOption{}, ""},
		{model.SortOption{Field: model.SortName, Order: model.OrderAsc}, ""},
		{model.SortOption{Field: model.SortNone, Enabled: true}, ""},
		{model.SortOption{Field: model.SortName, Order: model.OrderAsc, Enabled: true}, "name"},
		{model.SortOption{Field: model.SortRating, Order: model.OrderDesc, Enabled: true}, "rating-desc"},
	}

	for _, tt := range tests {
		c := ForOption(tt.opt, language.Korean)
		got := ""
		if c != nil {
			got = c.Name()
		}
		if got != tt.want {
			t.Errorf("ForOption(%+v) = %q, want %q", tt.opt, got, tt.want)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	items := restaurants("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	want := names(items)
	slices.Sort(want)

	for gen := uint64(0); gen < 50; gen++ {
		got := names(Shuffle(items, ShuffleSource(42, gen)))
		slices.Sort(got)
		if !slices.Equal(want, got) {
			t.Fatalf("generation %d is not a permutation: %v", gen, got)
		}
	}
}

func TestShuffleIsReproducible(t *testing.T) {
	items := restaurants("a", "b", "c", "d", "e", "f", "g", "h")

	first := names(Shuffle(items, ShuffleSource(7, 3)))
	again := names(Shuffle(items, ShuffleSource(7, 3)))
	if diff := cmp.Diff(first, again); diff != "" {
		t.Errorf("same generation should reproduce the order (-first +again):\n%s", diff)
	}

	// Across many generations at least one order must differ.
	differs := false
	for gen := uint64(4); gen < 20 && !differs; gen++ {
		differs = !slices.Equal(first, names(Shuffle(items, ShuffleSource(7, gen))))
	}
	if !differs {
		t.Error("new generations never changed the order")
	}
}

func TestShuffleEdgeCases(t *testing.T) {
	if got := Shuffle(nil, ShuffleSource(1, 1)); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	one := restaurants("solo")
	if got := names(Shuffle(one, ShuffleSource(1, 1))); !slices.Equal(got, []string{"solo"}) {
		t.Errorf("single entry should be unchanged, got %v", got)
	}
}
