// Package pager tracks how much of a result list is visible.
//
// Results are revealed in pages of a fixed size. LoadMore reveals one more
// page and is rate limited, so a scroll that fires repeatedly near the end
// of the list advances at most once per interval.
package pager

import (
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultPageSize is the number of entries revealed per page.
	DefaultPageSize = 12

	// DefaultInterval is the minimum time between two LoadMore advances.
	DefaultInterval = 300 * time.Millisecond

	// Proximity is how many rows from the end of the shown list count as
	// "near the end".
	Proximity = 3
)

// Pager holds the current page. The zero value is not usable; call New.
type Pager struct {
	size    int
	page    int
	limiter *rate.Limiter
}

// New creates a pager on page 1. Non-positive arguments select defaults.
func New(size int, interval time.Duration) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Pager{
		size:    size,
		page:    1,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// Page returns the current page, starting at 1.
func (p *Pager) Page() int { return p.page }

// Visible returns how many of total entries are shown.
func (p *Pager) Visible(total int) int {
	if total <= 0 {
		return 0
	}
	// Compare pages first; page*size overflows for pages set through Seek.
	if p.page >= (total+p.size-1)/p.size {
		return total
	}
	return p.page * p.size
}

// HasMore reports whether entries remain beyond the visible prefix.
func (p *Pager) HasMore(total int) bool {
	return p.Visible(total) < total
}

// Reset returns to page 1.
func (p *Pager) Reset() {
	p.page = 1
}

// Seek jumps to page directly, bypassing the rate limit. Pages below 1
// select page 1.
func (p *Pager) Seek(page int) {
	p.page = max(page, 1)
}

// LoadMore advances one page when more entries remain and the interval
// since the last advance has passed. It reports whether the page changed.
// A suppressed call does not delay the next one.
func (p *Pager) LoadMore(now time.Time, total int) bool {
	if !p.HasMore(total) {
		return false
	}
	if !p.limiter.AllowN(now, 1) {
		return false
	}
	p.page++
	return true
}

// NearEnd reports whether cursor is within Proximity rows of the end of
// the shown list.
func NearEnd(cursor, shown int) bool {
	return shown > 0 && cursor >= shown-Proximity
}
