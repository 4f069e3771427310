package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abelbrown/aagag/internal/model"
)

func names(items []model.Restaurant) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

var sample = []model.Restaurant{
	{Name: "광화문 국밥", Summary: "진한 국물", Tags: []string{"한식", "국밥"}},
	{Name: "Pasta Bar", Summary: "handmade pasta", Tags: []string{"양식"}},
	{Name: "을지로 노가리", Summary: "맥주와 노가리", Tags: []string{"주점", "한식"}},
	{Name: "스시 오마카세", Summary: "Omakase course", Tags: []string{"일식"}},
}

func TestByQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty keeps all", "", []string{"광화문 국밥", "Pasta Bar", "을지로 노가리", "스시 오마카세"}},
		{"trailing space narrows", "국밥 ", []string{}},
		{"inner space", "a b", []string{"Pasta Bar"}},
		{"name", "국밥", []string{"광화문 국밥"}},
		{"case insensitive name", "pasta", []string{"Pasta Bar"}},
		{"summary", "맥주", []string{"을지로 노가리"}},
		{"case insensitive summary", "OMAKASE", []string{"스시 오마카세"}},
		{"tag", "한식", []string{"광화문 국밥", "을지로 노가리"}},
		{"no match", "피자", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(ByQuery(sample, tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ByQuery(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestByQuerySpaceIsLiteral(t *testing.T) {
	items := []model.Restaurant{
		{Name: "강남 국밥"},
		{Name: "우동집", Summary: "가락국수", Tags: []string{"일식"}},
		{Name: "냉면집", Tags: []string{"여름 한정"}},
	}
	got := names(ByQuery(items, " "))
	want := []string{"강남 국밥", "냉면집"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ByQuery(\" \") mismatch (-want +got):\n%s", diff)
	}
}

// Every result must match the query, and every non-result must not.
func TestByQueryPartitions(t *testing.T) {
	for _, q := range []string{"국", "a", "식", "노가리"} {
		kept := make(map[string]bool)
		for _, item := range ByQuery(sample, q) {
			kept[item.Name] = true
		}
		for _, item := range sample {
			if matchesQuery(item, q) != kept[item.Name] {
				t.Errorf("query %q: %q kept=%v but matches=%v", q, item.Name, kept[item.Name], matchesQuery(item, q))
			}
		}
	}
}

func TestByTagsIsConjunctive(t *testing.T) {
	got := names(ByTags(sample, []string{"한식", "주점"}))
	if diff := cmp.Diff([]string{"을지로 노가리"}, got); diff != "" {
		t.Errorf("AND filter mismatch (-want +got):\n%s", diff)
	}

	// Adding a tag never grows the result.
	one := ByTags(sample, []string{"한식"})
	two := ByTags(sample, []string{"한식", "국밥"})
	if len(two) > len(one) {
		t.Errorf("adding a tag grew the result from %d to %d", len(one), len(two))
	}

	if len(ByTags(sample, nil)) != len(sample) {
		t.Error("no tags should keep everything")
	}
}

func TestApply(t *testing.T) {
	favs := map[string]bool{"을지로 노가리": true, "Pasta Bar": true}

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"zero value", Criteria{}, names(sample)},
		{"favorites only", Criteria{FavoritesOnly: true, Favorites: favs}, []string{"Pasta Bar", "을지로 노가리"}},
		{"favorites ignored when off", Criteria{Favorites: favs}, names(sample)},
		{"query and tag", Criteria{Query: "노가리", Tags: []string{"한식"}}, []string{"을지로 노가리"}},
		{"all three", Criteria{Query: "a", Tags: []string{"양식"}, FavoritesOnly: true, Favorites: favs}, []string{"Pasta Bar"}},
		{"favorites only with none", Criteria{FavoritesOnly: true}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Apply(sample, tt.c))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyDoesNotAlias(t *testing.T) {
	got := Apply(sample, Criteria{})
	got[0].Name = "changed"
	if sample[0].Name == "changed" {
		t.Error("Apply must not return the input slice")
	}
}

func TestCriteriaActive(t *testing.T) {
	if (Criteria{}).Active() {
		t.Error("empty criteria should not count as active")
	}
	if !(Criteria{Query: " "}).Active() {
		t.Error("a space is a query like any other")
	}
	if !(Criteria{Tags: []string{"한식"}}).Active() {
		t.Error("tags should count as active")
	}
}

func TestAvailableTags(t *testing.T) {
	got := AvailableTags(sample, nil)
	want := []string{"국밥", "양식", "일식", "주점", "한식"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AvailableTags mismatch (-want +got):\n%s", diff)
	}

	if got := AvailableTags(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSearchTags(t *testing.T) {
	tags := []string{"Bar", "bakery", "한식", "한우"}

	if diff := cmp.Diff([]string{"Bar", "bakery"}, SearchTags(tags, "BA")); diff != "" {
		t.Errorf("case-insensitive search mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"한식", "한우"}, SearchTags(tags, "한")); diff != "" {
		t.Errorf("hangul search mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(tags, SearchTags(tags, "")); diff != "" {
		t.Errorf("empty search should keep all (-want +got):\n%s", diff)
	}
}
