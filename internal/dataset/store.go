package dataset

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/medlux/wardgrid/internal/grid"
)

// Snapshot is the latest state of one named dataset.
type Snapshot struct {
	Name                string
	Data                grid.Dataset
	HasData             bool
	Generation          uint64 // bumped on every successful update
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsStale reports whether the source has failed on several refreshes in a row.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to per-table snapshots.
type Store struct {
	mu    sync.RWMutex
	snaps map[string]*Snapshot
}

// Update replaces the data stored under name. When err is non-nil the previous
// data is kept but the error is recorded for visibility. Data equal to what is
// already stored clears the failure state without bumping the generation, so
// a poll that finds nothing new leaves readers on their current page.
func (s *Store) Update(name string, data grid.Dataset, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snaps == nil {
		s.snaps = make(map[string]*Snapshot)
	}
	snap, ok := s.snaps[name]
	if !ok {
		snap = &Snapshot{Name: name}
		s.snaps[name] = snap
	}

	if err != nil {
		snap.LastError = err
		snap.LastUpdated = time.Now()
		snap.ConsecutiveFailures++
		return
	}

	if !snap.HasData || !reflect.DeepEqual(snap.Data, data) {
		snap.Data = data.Clone()
		snap.HasData = true
		snap.Generation++
	}
	snap.LastError = nil
	snap.LastUpdated = time.Now()
	snap.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the named snapshot. ok is false when nothing
// was ever stored under name.
func (s *Store) Snapshot(name string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.snaps[name]
	if !ok {
		return Snapshot{Name: name}, false
	}
	snap := *stored
	snap.Data = stored.Data.Clone()
	if stored.LastError != nil {
		snap.LastError = fmt.Errorf("%w", stored.LastError)
	}
	return snap, true
}

// Status returns the named snapshot without its records.
func (s *Store) Status(name string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.snaps[name]
	if !ok {
		return Snapshot{Name: name}, false
	}
	snap := *stored
	snap.Data = nil
	return snap, true
}

// Generation returns the generation of name without copying its data.
func (s *Store) Generation(name string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if snap, ok := s.snaps[name]; ok {
		return snap.Generation
	}
	return 0
}

// Names returns every stored name in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.snaps))
	for name := range s.snaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
