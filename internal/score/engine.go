// Package score turns judged events into score, combo and multiplier
// state, and persists finished runs.
package score

import (
	"lanefall/internal/game"
)

// State is the running tally. Mutated only by Engine; everyone else
// reads a copy.
type State struct {
	Score           int
	Combo           int
	MaxCombo        int
	ConsecutiveHits int
	Multiplier      int

	Counts [5]int // indexed by game.Accuracy, AccuracyNone counts misses
}

func (s *State) Hits() int {
	return s.Counts[game.AccuracyPerfect] +
		s.Counts[game.AccuracyGreat] +
		s.Counts[game.AccuracyGood] +
		s.Counts[game.AccuracyOkay]
}

func (s *State) Misses() int {
	return s.Counts[game.AccuracyNone]
}

// AccuracyPercent is recomputed from the counters every time rather
// than carried incrementally, so rounding can never drift.
func (s *State) AccuracyPercent(totalNotes int64) float64 {
	if totalNotes == 0 {
		return 0
	}
	return float64(s.Hits()) / float64(totalNotes) * 100.0
}

// Engine is the scoring state machine. It is pure bookkeeping: no
// clock, no notes, just events in and state out.
type Engine struct {
	state State

	values        [5]int // base score per accuracy tier
	notesPerStep  int    // consecutive hits per multiplier step
	maxMultiplier int
}

func NewEngine(table []game.Judgement, notesPerStep, maxMultiplier int) *Engine {
	if notesPerStep < 1 {
		notesPerStep = 1
	}
	if maxMultiplier < 1 {
		maxMultiplier = 1
	}
	e := &Engine{
		notesPerStep:  notesPerStep,
		maxMultiplier: maxMultiplier,
	}
	e.state.Multiplier = 1
	for _, j := range table {
		e.values[j.Accuracy] = j.Value
	}
	return e
}

// Hit credits one judged hit. The hit is scored at the multiplier as
// it stood before this hit; the streak that completes a step raises
// the multiplier for the notes after it.
func (e *Engine) Hit(accuracy game.Accuracy) {
	s := &e.state
	s.Score += e.values[accuracy] * s.Multiplier
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	s.ConsecutiveHits++
	s.Multiplier = 1 + s.ConsecutiveHits/e.notesPerStep
	if s.Multiplier > e.maxMultiplier {
		s.Multiplier = e.maxMultiplier
	}
	s.Counts[accuracy]++
}

// Miss breaks the streak. Score never decreases; a timed-out note and
// a whiffed press are deliberately equivalent here.
func (e *Engine) Miss() {
	s := &e.state
	s.Combo = 0
	s.ConsecutiveHits = 0
	s.Multiplier = 1
	s.Counts[game.AccuracyNone]++
}

// HoldDrop breaks the streak without counting a missed note; the hold
// head was already credited as a hit.
func (e *Engine) HoldDrop() {
	s := &e.state
	s.Combo = 0
	s.ConsecutiveHits = 0
	s.Multiplier = 1
}

func (e *Engine) State() State {
	return e.state
}
