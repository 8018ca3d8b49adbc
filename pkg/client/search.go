package client

import (
	"context"
	"sync"
	"sync/atomic"

	"dwellio/pkg/filterstate"
)

// PropertyLister is the slice of PropertyClient the searcher needs.
type PropertyLister interface {
	List(ctx context.Context, filters map[string]string, page, limit int) (*PropertyPage, error)
}

// Searcher re-fetches listings whenever the filter state changes.
// Responses are sequence-guarded: a slow fetch started before a newer
// state change is discarded so results never regress to a stale filter
// set.
type Searcher struct {
	lister PropertyLister
	limit  int

	onResults func(filterstate.Snapshot, *PropertyPage)
	onError   func(filterstate.Snapshot, error)

	seq     atomic.Uint64
	deliver sync.Mutex
	pending sync.WaitGroup
}

func NewSearcher(lister PropertyLister, limit int, onResults func(filterstate.Snapshot, *PropertyPage), onError func(filterstate.Snapshot, error)) *Searcher {
	return &Searcher{
		lister:    lister,
		limit:     limit,
		onResults: onResults,
		onError:   onError,
	}
}

// Bind subscribes the searcher to a filter store and performs an
// initial fetch for the store's current state.
func (s *Searcher) Bind(ctx context.Context, store *filterstate.Store) {
	store.Subscribe(func(snap filterstate.Snapshot) {
		s.fetch(ctx, snap)
	})
	s.fetch(ctx, store.Snapshot())
}

func (s *Searcher) fetch(ctx context.Context, snap filterstate.Snapshot) {
	seq := s.seq.Add(1)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		page, err := s.lister.List(ctx, snap.Filters, snap.Page, s.limit)

		// The staleness check and the callback run under one lock;
		// a fetch cannot pass the check and then deliver after a
		// newer fetch has already delivered.
		s.deliver.Lock()
		defer s.deliver.Unlock()

		// A newer fetch has started; this result is stale.
		if s.seq.Load() != seq {
			return
		}

		if err != nil {
			if s.onError != nil {
				s.onError(snap, err)
			}
			return
		}
		if s.onResults != nil {
			s.onResults(snap, page)
		}
	}()
}

// Wait blocks until all in-flight fetches finish. Intended for tests
// and shutdown.
func (s *Searcher) Wait() {
	s.pending.Wait()
}
