// Package catalog holds the fixed list of regions a dataset can be loaded for.
package catalog

import (
	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/store"
)

// LastRegionKey stores the most recently selected region key.
const LastRegionKey = "애객 세끼 For Web-last-region"

// Region is one selectable dataset. Key names the file under data/,
// Source is the display label.
type Region struct {
	Key    string `json:"key" yaml:"key"`
	Source string `json:"source" yaml:"source"`
}

// Catalog is an ordered region list. The first entry is the default.
type Catalog []Region

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		{Key: "seoul", Source: "서울"},
		{Key: "incheon", Source: "인천"},
	}
}

// Lookup finds a region by key.
func (c Catalog) Lookup(key string) (Region, bool) {
	for _, r := range c {
		if r.Key == key {
			return r, true
		}
	}
	return Region{}, false
}

// Keys returns the region keys in catalog order.
func (c Catalog) Keys() []string {
	keys := make([]string, len(c))
	for i, r := range c {
		keys[i] = r.Key
	}
	return keys
}

// First returns the default region. An empty catalog yields the zero Region.
func (c Catalog) First() Region {
	if len(c) == 0 {
		return Region{}
	}
	return c[0]
}

// Index returns the position of key, or -1.
func (c Catalog) Index(key string) int {
	for i, r := range c {
		if r.Key == key {
			return i
		}
	}
	return -1
}

// Neighbor returns the region delta steps from key, wrapping around.
// An unknown key starts from the default.
func (c Catalog) Neighbor(key string, delta int) Region {
	if len(c) == 0 {
		return Region{}
	}
	i := c.Index(key)
	if i < 0 {
		i = 0
	}
	n := len(c)
	return c[((i+delta)%n+n)%n]
}

// LoadLast returns the persisted region, or the default when nothing usable
// is stored.
func LoadLast(st store.Storage, c Catalog) Region {
	key, ok, err := st.Get(LastRegionKey)
	if err != nil {
		logging.Warn("Failed to read last region", "error", err)
		return c.First()
	}
	if !ok {
		return c.First()
	}
	r, found := c.Lookup(key)
	if !found {
		logging.Debug("Stored region no longer in catalog", "region", key)
		return c.First()
	}
	return r
}

// SaveLast persists key as the last selected region. Failures are logged.
func SaveLast(st store.Storage, key string) {
	if err := st.Set(LastRegionKey, key); err != nil {
		logging.Warn("Failed to save last region", "region", key, "error", err)
	}
}
