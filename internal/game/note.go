package game

import (
	"time"
)

// Status is the lifecycle state of a note. Transitions are one-way:
// Pending -> Spawned -> Hit or Missed.
type Status uint8

const (
	StatusPending Status = iota
	StatusSpawned
	StatusHit
	StatusMissed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSpawned:
		return "spawned"
	case StatusHit:
		return "hit"
	case StatusMissed:
		return "missed"
	}
	return "unknown"
}

type Accuracy uint8

const (
	AccuracyNone Accuracy = iota
	AccuracyPerfect
	AccuracyGreat
	AccuracyGood
	AccuracyOkay
)

func (a Accuracy) String() string {
	switch a {
	case AccuracyPerfect:
		return "Perfect"
	case AccuracyGreat:
		return "Great"
	case AccuracyGood:
		return "Good"
	case AccuracyOkay:
		return "Okay"
	}
	return "None"
}

type Note struct {
	Index  int   // position in the chart arena, stable for the session
	Lane   uint8 // the chart column
	Denom  int   // the beat length, as a denominator, 4 = 1/4 beat
	IsMine bool

	Time     time.Duration // the time the note should be hit
	Duration time.Duration // hold length, 0 for a tap note

	// Resolution state, mutated only through the Chart methods
	Status      Status
	Accuracy    Accuracy
	HitTime     time.Duration
	MissTime    time.Duration
	ReleaseTime time.Duration
}

// End is the time a hold note should be released. For a tap note
// this is the hit time itself.
func (n *Note) End() time.Duration {
	return n.Time + n.Duration
}

func (n *Note) IsHold() bool {
	return n.Duration != 0
}

func (n *Note) Resolved() bool {
	return n.Status == StatusHit || n.Status == StatusMissed
}
