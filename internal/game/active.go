package game

import (
	"sort"
)

// ActiveSet holds the indices of notes that are spawned but not yet
// resolved, kept in (Time, Lane, Index) order so that nearest-candidate
// searches are deterministic.
type ActiveSet struct {
	chart   *Chart
	indices []int
}

func NewActiveSet(chart *Chart) *ActiveSet {
	return &ActiveSet{chart: chart}
}

func (s *ActiveSet) Len() int {
	return len(s.indices)
}

// Indices returns the backing slice. Callers must not hold it across a
// mutation.
func (s *ActiveSet) Indices() []int {
	return s.indices
}

// Add inserts a note index at its ordered position. The scheduler
// spawns notes in chart order so this is almost always an append.
func (s *ActiveSet) Add(i int) {
	n := s.chart.Note(i)
	at := sort.Search(len(s.indices), func(j int) bool {
		return Less(n, s.chart.Note(s.indices[j]))
	})
	s.indices = append(s.indices, 0)
	copy(s.indices[at+1:], s.indices[at:])
	s.indices[at] = i
}

// Remove drops a note index from the set. Removing an absent index is
// a no-op, never an error, so that judge and sweeper cannot double-fault.
func (s *ActiveSet) Remove(i int) {
	for j, idx := range s.indices {
		if idx == i {
			s.indices = append(s.indices[:j], s.indices[j+1:]...)
			return
		}
	}
}

func (s *ActiveSet) Clear() {
	s.indices = nil
}
