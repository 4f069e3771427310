package model

import "fmt"

// SortField selects the comparator used in sort mode.
type SortField string

const (
	SortNone   SortField = "none"
	SortName   SortField = "name"
	SortRating SortField = "rating"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SortOption picks between sort mode and shuffle mode. Sort mode is active
// only when Enabled is true and Field is not SortNone.
type SortOption struct {
	Field   SortField `json:"field"`
	Order   SortOrder `json:"order"`
	Enabled bool      `json:"enabled"`
}

// Sorting reports whether the option selects sort mode.
func (o SortOption) Sorting() bool {
	return o.Enabled && o.Field != SortNone && o.Field != ""
}

// Preset returns the preset value for the option ("none" when disabled).
func (o SortOption) Preset() string {
	if !o.Sorting() {
		return "none"
	}
	return fmt.Sprintf("%s-%s", o.Field, o.Order)
}

// SortPreset is one entry in the sort selector.
type SortPreset struct {
	Value string
	Label string
	Field SortField
	Order SortOrder
}

// Option converts the preset to a SortOption.
func (p SortPreset) Option() SortOption {
	return SortOption{Field: p.Field, Order: p.Order, Enabled: p.Field != SortNone}
}

// SortPresets lists the selector entries in display order.
var SortPresets = []SortPreset{
	{Value: "none", Label: "정렬 없음", Field: SortNone, Order: OrderAsc},
	{Value: "name-asc", Label: "이름 오름차순", Field: SortName, Order: OrderAsc},
	{Value: "name-desc", Label: "이름 내림차순", Field: SortName, Order: OrderDesc},
	{Value: "rating-desc", Label: "별점 높은 순", Field: SortRating, Order: OrderDesc},
	{Value: "rating-asc", Label: "별점 낮은 순", Field: SortRating, Order: OrderAsc},
}

// ParseSortPreset looks up a preset by value. Empty means "none".
func ParseSortPreset(value string) (SortOption, error) {
	if value == "" {
		value = "none"
	}
	for _, p := range SortPresets {
		if p.Value == value {
			return p.Option(), nil
		}
	}
	return SortOption{}, fmt.Errorf("unknown sort %q", value)
}

// NextSortPreset returns the preset after the one matching o, wrapping.
func NextSortPreset(o SortOption) SortPreset {
	current := o.Preset()
	for i, p := range SortPresets {
		if p.Value == current {
			return SortPresets[(i+1)%len(SortPresets)]
		}
	}
	return SortPresets[0]
}
