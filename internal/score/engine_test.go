package score

import (
	"testing"
	"time"

	"lanefall/internal/game"
)

var testTable = []game.Judgement{
	{Window: 50 * time.Millisecond, Accuracy: game.AccuracyPerfect, Value: 100, Name: "Perfect"},
	{Window: 80 * time.Millisecond, Accuracy: game.AccuracyGreat, Value: 70, Name: "Great"},
	{Window: 100 * time.Millisecond, Accuracy: game.AccuracyGood, Value: 40, Name: "Good"},
}

func TestSinglePerfectScoresBaseValue(t *testing.T) {
	e := NewEngine(testTable, 10, 4)
	e.Hit(game.AccuracyPerfect)
	s := e.State()
	if s.Score != 100 {
		t.Error("single perfect at x1 must score the base value:", s.Score)
	}
	if s.Combo != 1 || s.MaxCombo != 1 {
		t.Error("combo not counted:", s)
	}
}

// With one note per step the second hit is earned at x2: 100 + 200.
func TestMultiplierAppliesFromTheNextHit(t *testing.T) {
	e := NewEngine(testTable, 1, 4)
	e.Hit(game.AccuracyPerfect)
	e.Hit(game.AccuracyPerfect)
	s := e.State()
	if s.Score != 300 {
		t.Error("expected 100 + 100*2 = 300, got", s.Score)
	}
}

func TestMultiplierSteps(t *testing.T) {
	e := NewEngine(testTable, 10, 4)
	for i := 0; i < 9; i++ {
		e.Hit(game.AccuracyGood)
	}
	if m := e.State().Multiplier; m != 1 {
		t.Error("multiplier rose before the step completed:", m)
	}
	e.Hit(game.AccuracyGood)
	if m := e.State().Multiplier; m != 2 {
		t.Error("multiplier must reach 2 exactly at ten consecutive hits:", m)
	}

	e.Miss()
	s := e.State()
	if s.Multiplier != 1 || s.Combo != 0 || s.ConsecutiveHits != 0 {
		t.Error("miss must reset the streak:", s)
	}
}

func TestMultiplierCap(t *testing.T) {
	e := NewEngine(testTable, 1, 4)
	for i := 0; i < 20; i++ {
		e.Hit(game.AccuracyPerfect)
	}
	if m := e.State().Multiplier; m != 4 {
		t.Error("multiplier escaped its cap:", m)
	}
}

func TestMissNeverSubtracts(t *testing.T) {
	e := NewEngine(testTable, 10, 4)
	e.Hit(game.AccuracyGreat)
	before := e.State().Score
	for i := 0; i < 5; i++ {
		e.Miss()
	}
	s := e.State()
	if s.Score != before {
		t.Error("miss changed the score:", before, "->", s.Score)
	}
	if s.Score < 0 {
		t.Error("score went negative")
	}
}

func TestHoldDropBreaksComboOnly(t *testing.T) {
	e := NewEngine(testTable, 1, 4)
	e.Hit(game.AccuracyPerfect)
	e.HoldDrop()
	s := e.State()
	if s.Combo != 0 || s.Multiplier != 1 {
		t.Error("hold drop must break the streak:", s)
	}
	if s.Misses() != 0 {
		t.Error("hold drop must not count a missed note:", s.Misses())
	}
	if s.Hits() != 1 {
		t.Error("hold drop must not uncount the head hit:", s.Hits())
	}
}

func TestAccuracyPercent(t *testing.T) {
	e := NewEngine(testTable, 10, 4)
	for i := 0; i < 7; i++ {
		e.Hit(game.AccuracyPerfect)
	}
	for i := 0; i < 3; i++ {
		e.Miss()
	}
	s := e.State()
	if got := s.AccuracyPercent(10); got != 70.0 {
		t.Error("7 hits of 10 notes must be 70.0, got", got)
	}
}

func TestMaxComboSurvivesReset(t *testing.T) {
	e := NewEngine(testTable, 10, 4)
	e.Hit(game.AccuracyGood)
	e.Hit(game.AccuracyGood)
	e.Miss()
	e.Hit(game.AccuracyGood)
	s := e.State()
	if s.MaxCombo != 2 || s.Combo != 1 {
		t.Error("max combo lost across a reset:", s)
	}
}
