// Package model provides the data types shared by the pipeline, the
// favorites store and the views.
//
// JSON tags follow the per-region dataset files exactly; those files are
// produced elsewhere and consumed read-only.
package model

import (
	"slices"
	"strings"
	"time"
)

// UnknownRegion is assigned to favorites migrated from the name-only format.
const UnknownRegion = "unknown"

// Restaurant is a single directory entry. Name is the key within one
// region's dataset; the same name in two regions is two distinct entries.
type Restaurant struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Link        string   `json:"link"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags"`
	NaverMapURL string   `json:"navermapurl,omitempty"`
	ReviewStar  *float64 `json:"review_star,omitempty"`
	ReviewImg   []string `json:"review_img,omitempty"`
	ReviewURL   string   `json:"review_url,omitempty"`
}

// Rating returns the review rating, treating a missing rating as 0.
func (r Restaurant) Rating() float64 {
	if r.ReviewStar == nil {
		return 0
	}
	return *r.ReviewStar
}

// HasRating reports whether the entry carries a rating.
func (r Restaurant) HasRating() bool {
	return r.ReviewStar != nil
}

// HasTag reports whether tag is one of the entry's tags (exact match).
func (r Restaurant) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// Metadata describes how a region's dataset was produced.
type Metadata struct {
	ParsedAt        string `json:"parsed_at"`
	TotalGroups     int    `json:"total_groups"`
	Source          string `json:"source"`
	HasActualLinks  bool   `json:"has_actual_links"`
	HasNaverMapURLs bool   `json:"has_naver_map_urls,omitempty"`
	HasKakaoReviews bool   `json:"has_kakao_reviews,omitempty"`
	HasKakaoMapURLs bool   `json:"has_kakao_map_urls,omitempty"`
}

// parsedAtLayouts covers RFC3339 and the naive ISO-8601 timestamps the
// dataset generator emits.
var parsedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsedTime parses ParsedAt. ok is false when the field is empty or in an
// unrecognised format.
func (m Metadata) ParsedTime() (t time.Time, ok bool) {
	s := strings.TrimSpace(m.ParsedAt)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parsedAtLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Dataset is one region's file: metadata plus the ordered entries.
// A Dataset is replaced wholesale on region change and never mutated.
type Dataset struct {
	Metadata Metadata     `json:"metadata"`
	Data     []Restaurant `json:"data"`
}

// Len returns the number of entries, tolerating a nil Dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Data)
}

// Favorite is a (name, region) pair in the favorites store.
type Favorite struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}
