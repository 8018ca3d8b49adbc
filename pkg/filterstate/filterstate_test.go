package filterstate

import (
	"testing"
)

func TestSetResetsPage(t *testing.T) {
	s := New()
	s.SetPage(5)

	s.Set(KeyCity, "Austin")

	snap := s.Snapshot()
	if snap.Page != 1 {
		t.Errorf("expected page reset to 1 after filter change, got %d", snap.Page)
	}
	if snap.Filters[KeyCity] != "Austin" {
		t.Errorf("expected city filter to be Austin, got %q", snap.Filters[KeyCity])
	}
}

func TestSetAllRemovesFilter(t *testing.T) {
	s := New()
	s.Set(KeyPropertyType, "house")
	s.Set(KeyPropertyType, All)

	snap := s.Snapshot()
	if _, ok := snap.Filters[KeyPropertyType]; ok {
		t.Error("expected 'all' to remove the filter")
	}
}

func TestSetPageClampsToOne(t *testing.T) {
	s := New()
	s.SetPage(0)
	if got := s.Snapshot().Page; got != 1 {
		t.Errorf("expected page 1, got %d", got)
	}
	s.SetPage(-3)
	if got := s.Snapshot().Page; got != 1 {
		t.Errorf("expected page 1, got %d", got)
	}
}

func TestSetPageKeepsFilters(t *testing.T) {
	s := New()
	s.Set(KeyBedrooms, "3")
	s.SetPage(4)

	snap := s.Snapshot()
	if snap.Page != 4 {
		t.Errorf("expected page 4, got %d", snap.Page)
	}
	if snap.Filters[KeyBedrooms] != "3" {
		t.Errorf("expected bedrooms filter preserved, got %q", snap.Filters[KeyBedrooms])
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.Set(KeySearchTerm, "loft")
	s.SetPage(2)

	s.Reset()

	snap := s.Snapshot()
	if len(snap.Filters) != 0 {
		t.Errorf("expected no filters after reset, got %v", snap.Filters)
	}
	if snap.Page != 1 {
		t.Errorf("expected page 1 after reset, got %d", snap.Page)
	}
}

func TestSubscribeNotifiedOnEveryChange(t *testing.T) {
	s := New()

	var calls []Snapshot
	s.Subscribe(func(snap Snapshot) {
		calls = append(calls, snap)
	})

	s.Set(KeyCity, "Dallas")
	s.SetPage(3)
	s.Reset()

	if len(calls) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(calls))
	}
	if calls[0].Filters[KeyCity] != "Dallas" || calls[0].Page != 1 {
		t.Errorf("unexpected first notification: %+v", calls[0])
	}
	if calls[1].Page != 3 {
		t.Errorf("expected page 3 in second notification, got %d", calls[1].Page)
	}
	if len(calls[2].Filters) != 0 {
		t.Errorf("expected empty filters in third notification, got %v", calls[2].Filters)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	s.Set(KeyCity, "Austin")

	snap := s.Snapshot()
	snap.Filters[KeyCity] = "mutated"

	if got := s.Snapshot().Filters[KeyCity]; got != "Austin" {
		t.Errorf("snapshot mutation leaked into store: %q", got)
	}
}
