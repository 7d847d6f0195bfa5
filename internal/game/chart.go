package game

import (
	"fmt"
	"time"
)

// Chart is one difficulty of one song. The note slice is the arena:
// every other component refers to notes by index into it, never by
// holding a pointer of its own. Layout is immutable after parsing,
// only resolution state changes, and only through Spawn and Resolve.
type Chart struct {
	Song       string
	Artist     string
	Difficulty Difficulty

	Notes []Note // sorted by (Time, Lane, Index)

	NoteCount int64 // judgeable notes, mines excluded
	HoldCount int64
	MineCount int64
}

func (c *Chart) Note(i int) *Note {
	return &c.Notes[i]
}

// Duration is the target time of the last note, zero for an empty chart.
func (c *Chart) Duration() time.Duration {
	if len(c.Notes) == 0 {
		return 0
	}
	last := c.Notes[len(c.Notes)-1]
	return last.End()
}

// Spawn moves a pending note to the spawned state. Calling it on a
// note in any other state is an invariant violation and changes nothing.
func (c *Chart) Spawn(i int) error {
	n := &c.Notes[i]
	if n.Status != StatusPending {
		return fmt.Errorf("spawn note %d: status is %v, want pending", i, n.Status)
	}
	n.Status = StatusSpawned
	return nil
}

// Resolve moves a spawned note to its terminal state. A note can be
// resolved exactly once; a second attempt fails and changes nothing.
func (c *Chart) Resolve(i int, status Status, accuracy Accuracy, at time.Duration) error {
	n := &c.Notes[i]
	if n.Status != StatusSpawned {
		return fmt.Errorf("resolve note %d: status is %v, want spawned", i, n.Status)
	}
	switch status {
	case StatusHit:
		n.Status = StatusHit
		n.Accuracy = accuracy
		n.HitTime = at
	case StatusMissed:
		n.Status = StatusMissed
		n.MissTime = at
	default:
		return fmt.Errorf("resolve note %d: %v is not a terminal status", i, status)
	}
	return nil
}

// Release records when a held note was let go. Only valid for a hit note.
func (c *Chart) Release(i int, at time.Duration) error {
	n := &c.Notes[i]
	if n.Status != StatusHit {
		return fmt.Errorf("release note %d: status is %v, want hit", i, n.Status)
	}
	n.ReleaseTime = at
	return nil
}

// Less orders notes for the arena and the active set: target time
// ascending, ties broken by lane then original position.
func Less(a, b *Note) bool {
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if a.Lane != b.Lane {
		return a.Lane < b.Lane
	}
	return a.Index < b.Index
}
