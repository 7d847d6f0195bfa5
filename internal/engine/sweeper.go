package engine

import (
	"time"

	"lanefall/internal/game"
)

// Sweeper converts notes that aged past the hit window into misses.
// It is the only path by which a note resolves without player input.
type Sweeper struct {
	chart  *game.Chart
	active *game.ActiveSet
}

func NewSweeper(chart *game.Chart, active *game.ActiveSet) *Sweeper {
	return &Sweeper{chart: chart, active: active}
}

// Sweep marks every spawned note older than its target time plus grace
// as missed and returns their indices. Grace must be at least the hit
// window so a still-judgeable note is never preempted. Within a tick
// all judge calls run before the sweep.
func (s *Sweeper) Sweep(now, grace time.Duration) []int {
	var missed []int
	for _, idx := range s.active.Indices() {
		n := s.chart.Note(idx)
		if now <= n.Time+grace {
			// The set is ordered by target time; the rest are younger.
			break
		}
		missed = append(missed, idx)
	}
	for _, idx := range missed {
		if err := s.chart.Resolve(idx, game.StatusMissed, game.AccuracyNone, now); nil != err {
			continue
		}
		s.active.Remove(idx)
	}
	return missed
}

// SweepAll force-misses every remaining spawned note, used when the
// clock has stopped for good with notes still on the field.
func (s *Sweeper) SweepAll(now time.Duration) []int {
	remaining := append([]int(nil), s.active.Indices()...)
	for _, idx := range remaining {
		if err := s.chart.Resolve(idx, game.StatusMissed, game.AccuracyNone, now); nil != err {
			continue
		}
	}
	s.active.Clear()
	return remaining
}
