package game

import (
	"testing"
	"time"
)

func testChart(times ...time.Duration) *Chart {
	notes := make([]Note, len(times))
	for i, at := range times {
		notes[i] = Note{Index: i, Time: at}
	}
	return &Chart{
		Notes:     notes,
		NoteCount: int64(len(times)),
	}
}

func TestStatusTransitionsAreOneWay(t *testing.T) {
	c := testChart(time.Second)

	if err := c.Resolve(0, StatusHit, AccuracyPerfect, time.Second); nil == err {
		t.Error("resolved a pending note")
	}
	if err := c.Spawn(0); nil != err {
		t.Error("unable to spawn a pending note:", err)
	}
	if err := c.Spawn(0); nil == err {
		t.Error("spawned a note twice")
	}
	if err := c.Resolve(0, StatusPending, AccuracyNone, time.Second); nil == err {
		t.Error("resolved a note to a non-terminal status")
	}
	if err := c.Resolve(0, StatusHit, AccuracyGreat, time.Second); nil != err {
		t.Error("unable to resolve a spawned note:", err)
	}
	if err := c.Resolve(0, StatusMissed, AccuracyNone, time.Second); nil == err {
		t.Error("resolved a note twice")
	}

	n := c.Note(0)
	if n.Status != StatusHit || n.Accuracy != AccuracyGreat || n.HitTime != time.Second {
		t.Error("hit state not recorded:", n)
	}
}

func TestReleaseRequiresHit(t *testing.T) {
	c := testChart(time.Second)
	if err := c.Release(0, 2*time.Second); nil == err {
		t.Error("released an unhit note")
	}
	c.Spawn(0)
	c.Resolve(0, StatusHit, AccuracyGood, time.Second)
	if err := c.Release(0, 2*time.Second); nil != err {
		t.Error("unable to release a hit note:", err)
	}
	if c.Note(0).ReleaseTime != 2*time.Second {
		t.Error("release time not recorded")
	}
}

func TestActiveSetOrder(t *testing.T) {
	c := &Chart{Notes: []Note{
		{Index: 0, Lane: 1, Time: time.Second},
		{Index: 1, Lane: 0, Time: time.Second},
		{Index: 2, Lane: 0, Time: 500 * time.Millisecond},
		{Index: 3, Lane: 2, Time: 2 * time.Second},
	}}
	s := NewActiveSet(c)
	for i := range c.Notes {
		s.Add(i)
	}

	// Time ascending, ties broken by lane
	expected := []int{2, 1, 0, 3}
	got := s.Indices()
	if len(got) != len(expected) {
		t.Fatal("wrong length", got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Log("got     ", got)
			t.Log("expected", expected)
			t.Fail()
			break
		}
	}

	s.Remove(1)
	s.Remove(1) // absent, must be a no-op
	if s.Len() != 3 {
		t.Error("remove broke the set:", s.Indices())
	}
}
