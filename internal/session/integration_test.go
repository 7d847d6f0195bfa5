package session

import (
	"testing"
	"time"

	"lanefall/internal/testdata"
)

// Full pass over a parsed chart: every tap on time, hold kept to the end.
func TestSessionPlaysParsedChart(t *testing.T) {
	chart, err := testdata.GetChart()
	if nil != err {
		t.Fatal("unable to parse test chart:", err)
	}
	if chart.NoteCount != 5 {
		t.Fatal("unexpected test chart:", chart.NoteCount)
	}

	clock := &fakeClock{}
	sink := newRecordingSink(clock)
	s, err := New(chart, clock, sink, testSettings())
	if nil != err {
		t.Fatal(err)
	}

	drive(s, clock, 4*time.Second, map[time.Duration][]Input{
		0:                       {{Lane: 0}},
		500 * time.Millisecond:  {{Lane: 1}},
		1000 * time.Millisecond: {{Lane: 2}},
		1500 * time.Millisecond: {{Lane: 3}},
		2000 * time.Millisecond: {{Lane: 0}},
		2960 * time.Millisecond: {{Lane: 0, Released: true}},
	})

	res := s.Results()
	if nil == res {
		t.Fatal("session never finalized")
	}
	if res.Song != "Test Song" || res.Artist != "Test Artist" || res.Difficulty != "Beginner" {
		t.Error("chart metadata lost:", res)
	}
	if res.PerfectCount != 5 || res.MissCount != 0 {
		t.Error("unexpected counts:", res)
	}
	if res.MaxCombo != 5 {
		t.Error("hold released in its grace must keep the combo:", res.MaxCombo)
	}
	if res.Score != 500 {
		t.Error("five perfects at x1:", res.Score)
	}
	if res.AccuracyPercent != 100.0 {
		t.Error("full pass accuracy:", res.AccuracyPercent)
	}
	if sink.hits != 5 || sink.misses != 0 || sink.whiffs != 0 {
		t.Error("event stream out of step:", sink.hits, sink.misses, sink.whiffs)
	}
}
