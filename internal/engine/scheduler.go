// Package engine holds the per-tick timing core: spawning notes onto
// the playfield, judging presses against them, and sweeping the ones
// that aged out. All three operate on one chart arena and one active
// set and are only ever driven from a single session tick.
package engine

import (
	"time"

	"lanefall/internal/game"
)

// Scheduler decides which notes must begin travelling. A note is due
// once current time reaches its target time minus the travel duration.
type Scheduler struct {
	chart  *game.Chart
	active *game.ActiveSet

	// First arena index that might still be pending. Spawning is
	// guarded by status, not by this cursor; it only skips work.
	cursor int
}

func NewScheduler(chart *game.Chart, active *game.ActiveSet) *Scheduler {
	return &Scheduler{chart: chart, active: active}
}

// Advance spawns every note due at now and returns their indices in
// ascending target-time order. Calling it again with the same or a
// jittered clock never re-returns a spawned note.
func (s *Scheduler) Advance(now, travel time.Duration) []int {
	var spawned []int
	for ; s.cursor < len(s.chart.Notes); s.cursor++ {
		n := s.chart.Note(s.cursor)
		if n.Time-travel > now {
			break
		}
		if n.IsMine || n.Status != game.StatusPending {
			continue
		}
		if err := s.chart.Spawn(n.Index); nil != err {
			continue
		}
		s.active.Add(n.Index)
		spawned = append(spawned, n.Index)
	}
	return spawned
}

// Pending reports whether any judgeable note has yet to spawn.
func (s *Scheduler) Pending() bool {
	for i := s.cursor; i < len(s.chart.Notes); i++ {
		n := s.chart.Note(i)
		if !n.IsMine && n.Status == game.StatusPending {
			return true
		}
	}
	return false
}
