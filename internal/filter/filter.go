// Package filter provides pure filter functions for restaurants.
// All functions are simple: []Restaurant in, []Restaurant out. No side effects.
// Input order is always preserved.
package filter

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abelbrown/aagag/internal/model"
)

// Criteria is the full set of active filters. The zero value matches
// everything.
type Criteria struct {
	Query         string
	Tags          []string
	FavoritesOnly bool
	// Favorites holds the current region's favorite names. Only consulted
	// when FavoritesOnly is set.
	Favorites map[string]bool
}

// Active reports whether any filter would exclude entries.
func (c Criteria) Active() bool {
	return c.Query != "" || len(c.Tags) > 0 || c.FavoritesOnly
}

// Apply keeps the entries that pass every filter in c.
func Apply(items []model.Restaurant, c Criteria) []model.Restaurant {
	result := ByQuery(items, c.Query)
	result = ByTags(result, c.Tags)
	if c.FavoritesOnly {
		result = ByFavorites(result, c.Favorites)
	}
	return result
}

// ByQuery keeps entries whose name, summary or any tag contains query,
// ignoring case. An empty query keeps everything; whitespace is matched
// as typed.
func ByQuery(items []model.Restaurant, query string) []model.Restaurant {
	if query == "" {
		return cloneOrEmpty(items)
	}

	q := strings.ToLower(query)
	result := make([]model.Restaurant, 0, len(items))
	for _, item := range items {
		if matchesQuery(item, q) {
			result = append(result, item)
		}
	}
	return result
}

func matchesQuery(item model.Restaurant, q string) bool {
	if strings.Contains(strings.ToLower(item.Name), q) ||
		strings.Contains(strings.ToLower(item.Summary), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// ByTags keeps entries carrying every tag in tags. No tags keeps everything.
func ByTags(items []model.Restaurant, tags []string) []model.Restaurant {
	if len(tags) == 0 {
		return cloneOrEmpty(items)
	}

	result := make([]model.Restaurant, 0, len(items))
	for _, item := range items {
		if hasAll(item, tags) {
			result = append(result, item)
		}
	}
	return result
}

func hasAll(item model.Restaurant, tags []string) bool {
	for _, tag := range tags {
		if !item.HasTag(tag) {
			return false
		}
	}
	return true
}

// ByFavorites keeps entries whose name is in favorites.
func ByFavorites(items []model.Restaurant, favorites map[string]bool) []model.Restaurant {
	result := make([]model.Restaurant, 0, len(items))
	for _, item := range items {
		if favorites[item.Name] {
			result = append(result, item)
		}
	}
	return result
}

// AvailableTags returns the distinct tags across items in collation order.
// A nil collator uses Korean collation.
func AvailableTags(items []model.Restaurant, col *collate.Collator) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, item := range items {
		for _, tag := range item.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	if col == nil {
		col = collate.New(language.Korean)
	}
	slices.SortStableFunc(tags, col.CompareString)
	return tags
}

// SearchTags keeps the tags containing query, ignoring case.
func SearchTags(tags []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if q == "" || strings.Contains(strings.ToLower(tag), q) {
			result = append(result, tag)
		}
	}
	return result
}

func cloneOrEmpty(items []model.Restaurant) []model.Restaurant {
	if len(items) == 0 {
		return []model.Restaurant{}
	}
	return slices.Clone(items)
}
