// Package filterstate tracks a client's active listing filters and the
// current result page. Changing any filter resets pagination to the
// first page, so stale page numbers never outlive the result set they
// were computed for.
package filterstate

import (
	"maps"
	"sync"
)

// Known filter keys. Unknown keys are stored as-is; the server treats
// them as no-ops.
const (
	KeyPropertyType = "propertyType"
	KeyCity         = "city"
	KeyBedrooms     = "bedrooms"
	KeyPriceRange   = "priceRange"
	KeySearchTerm   = "searchTerm"
	KeySortBy       = "sortBy"
)

// All resets a filter dimension to "no restriction".
const All = "all"

// Snapshot is an immutable view of the filter state at one point in
// time.
type Snapshot struct {
	Filters map[string]string
	Page    int
}

// Listener is notified after every state change with the new snapshot.
type Listener func(Snapshot)

// Store is a concurrency-safe holder of the active filters and page.
type Store struct {
	mu        sync.Mutex
	filters   map[string]string
	page      int
	listeners []Listener
}

func New() *Store {
	return &Store{
		filters: make(map[string]string),
		page:    1,
	}
}

// Set updates one filter and resets the page to 1. Setting a key to
// "all" or the empty string removes the restriction.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	if value == "" || value == All {
		delete(s.filters, key)
	} else {
		s.filters[key] = value
	}
	s.page = 1
	snap := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// SetPage moves pagination without touching filters. Pages below 1 are
// clamped to 1.
func (s *Store) SetPage(page int) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.page = page
	snap := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// Reset clears every filter and returns to the first page.
func (s *Store) Reset() {
	s.mu.Lock()
	s.filters = make(map[string]string)
	s.page = 1
	snap := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a listener for future state changes. Listeners
// run synchronously on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Filters: maps.Clone(s.filters),
		Page:    s.page,
	}
}
