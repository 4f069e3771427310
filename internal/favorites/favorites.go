// Package favorites keeps the user's (name, region) favorite pairs in a
// key/value storage.
//
// Two keys are written on every change: the JSON list and its length as a
// decimal string. Older builds stored a bare array of names; Open migrates
// that shape in place, collapsing repeated names, so the stored count can
// shrink. Storage failures never reach the caller. They are logged, the
// in-memory list keeps working for the session and Persistent turns false
// until a later write succeeds.
package favorites

import (
	"encoding/json"
	"slices"
	"strconv"
	"sync"

	"github.com/abelbrown/aagag/internal/logging"
	"github.com/abelbrown/aagag/internal/model"
	"github.com/abelbrown/aagag/internal/store"
)

// Storage keys. The prefix is shared with the web build so an exported
// storage carries over unchanged.
const (
	ListKey  = "애객 세끼 For Web-favorites"
	CountKey = "애객 세끼 For Web-favorites-count"
)

// Store is the favorites list plus its backing storage.
// Thread-safety: All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	storage store.Storage
	entries []model.Favorite
	updates uint64
	// degraded is set while the last write to storage failed.
	degraded bool
}

// Open loads favorites from storage, migrating the legacy name-only shape.
func Open(storage store.Storage) *Store {
	s := &Store{storage: storage}
	s.load()
	return s
}

func (s *Store) load() {
	raw, ok, err := s.storage.Get(ListKey)
	if err != nil {
		logging.Warn("Failed to read favorites", "error", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	entries, migrated, err := decode(raw)
	if err != nil {
		logging.Warn("Discarding unreadable favorites", "error", err)
		return
	}
	s.entries = entries

	if migrated {
		logging.Info("Migrated legacy favorites", "count", len(entries))
		s.persist()
		return
	}

	// A stale count (written by a crashed session or edited by hand) is
	// rewritten from the list.
	count, ok, err := s.storage.Get(CountKey)
	if err != nil {
		logging.Warn("Failed to read favorites count", "error", err)
		return
	}
	if !ok || count != strconv.Itoa(len(s.entries)) {
		s.persist()
	}
}

// decode parses the stored list. A first element that is a JSON string
// marks the legacy shape, whose names are assigned model.UnknownRegion.
// Duplicate pairs collapse to their first occurrence.
func decode(raw string) (entries []model.Favorite, migrated bool, err error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, false, err
	}
	if len(elems) == 0 {
		return nil, false, nil
	}

	var probe string
	if json.Unmarshal(elems[0], &probe) == nil {
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return nil, false, err
		}
		for _, name := range names {
			entries = appendUnique(entries, model.Favorite{Name: name, Region: model.UnknownRegion})
		}
		return entries, true, nil
	}

	var pairs []model.Favorite
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, false, err
	}
	for _, f := range pairs {
		entries = appendUnique(entries, f)
	}
	return entries, false, nil
}

func appendUnique(entries []model.Favorite, f model.Favorite) []model.Favorite {
	if slices.Contains(entries, f) {
		return entries
	}
	return append(entries, f)
}

// persist writes both keys. Callers hold the write lock or own s exclusively.
func (s *Store) persist() {
	s.degraded = true
	data, err := json.Marshal(s.listForWrite())
	if err != nil {
		logging.Error("Failed to encode favorites", "error", err)
		return
	}
	if err := s.storage.Set(ListKey, string(data)); err != nil {
		logging.Warn("Failed to save favorites", "error", err)
		return
	}
	if err := s.storage.Set(CountKey, strconv.Itoa(len(s.entries))); err != nil {
		logging.Warn("Failed to save favorites count", "error", err)
		return
	}
	s.degraded = false
}

// listForWrite keeps an empty list encoded as [] rather than null.
func (s *Store) listForWrite() []model.Favorite {
	if s.entries == nil {
		return []model.Favorite{}
	}
	return s.entries
}

// Toggle removes the exact (name, region) pair when present and appends it
// otherwise. It returns whether the pair is a favorite afterwards.
func (s *Store) Toggle(name, region string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := model.Favorite{Name: name, Region: region}
	added := true
	if i := slices.Index(s.entries, f); i >= 0 {
		s.entries = slices.Delete(s.entries, i, i+1)
		added = false
	} else {
		s.entries = append(s.entries, f)
	}
	s.updates++
	s.persist()

	logging.Debug("Favorite toggled", "name", name, "region", region, "added", added)
	return added
}

// IsFavorite reports whether (name, region) is in the list.
func (s *Store) IsFavorite(name, region string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.entries, model.Favorite{Name: name, Region: region})
}

// ForRegion returns the set of favorite names in region.
func (s *Store) ForRegion(region string) map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make(map[string]bool)
	for _, f := range s.entries {
		if f.Region == region {
			names[f.Name] = true
		}
	}
	return names
}

// CountForRegion returns how many favorites belong to region.
func (s *Store) CountForRegion(region string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, f := range s.entries {
		if f.Region == region {
			n++
		}
	}
	return n
}

// TotalCount returns the number of favorites across all regions.
func (s *Store) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of the list in insertion order.
func (s *Store) Entries() []model.Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Updates counts Toggle calls. Views compare it to know when favorite-derived
// state needs recomputing.
func (s *Store) Updates() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}

// Persistent reports whether changes survive a restart: the storage is
// durable and the last write to it succeeded.
func (s *Store) Persistent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage.Persistent() && !s.degraded
}
